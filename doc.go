// Package ppap implements split-channel file delivery: a file is encrypted
// into an AES-256 zip archive, the archive is emailed as an attachment, and
// the password follows in a second email, optionally after a delay and
// optionally replaced by a decoy of the same length ("secure mode").
//
// The scheme offers no real protection. It reproduces a well-known
// corporate habit, including its weaknesses.
//
// Basic usage:
//
//	transport, err := ppap.NewRESTTransport(apiKey, "sender@example.com")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	o, err := ppap.New(transport)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := o.Deliver(ctx, "report.txt", "a@example.com", ppap.DeliveryPlan{
//	    DelayHours: 1,
//	})
//	if err != nil {
//	    var dErr *ppap.DeliveryError
//	    if errors.As(err, &dErr) && dErr.ArchivePath != "" {
//	        ppap.Cleanup(dErr.ArchivePath)
//	    }
//	    log.Fatal(err)
//	}
//
//	fmt.Println("State:", report.State)
//
// Transports perform exactly one delivery attempt per call. Wrap a transport
// with NewRetryTransport to retry transient failures.
package ppap
