package main

import (
	"io"
	"sync"

	"github.com/pterm/pterm"

	ppap "github.com/Rindrics/ppap-cli"
)

// output renders operator-facing progress and results.
type output struct {
	w   io.Writer
	mu  sync.Mutex
	bar *pterm.ProgressbarPrinter
}

func newOutput(w io.Writer) *output {
	return &output{w: w}
}

// observe is registered as the orchestrator observer.
func (o *output) observe(e ppap.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch {
	case e.State == ppap.StateAttachmentSent:
		pterm.Success.WithWriter(o.w).Println("Encrypted file sent")
	case e.State == ppap.StateDelaying && e.Tick == 0:
		pterm.Info.WithWriter(o.w).Printfln("Password will be sent in %s", e.Remaining)
		bar, err := pterm.DefaultProgressbar.
			WithTotal(e.Ticks).
			WithTitle("Waiting to send password").
			WithWriter(o.w).
			Start()
		if err == nil {
			o.bar = bar
		}
	case e.State == ppap.StateDelaying:
		if o.bar != nil {
			o.bar.Increment()
		}
	case e.State == ppap.StatePasswordSent:
		o.stopBar()
		pterm.Success.WithWriter(o.w).Println("Password sent")
	case e.State == ppap.StateFailed:
		o.stopBar()
	}
}

func (o *output) stopBar() {
	if o.bar != nil {
		o.bar.Stop()
		o.bar = nil
	}
}

// finish releases the progress bar if the run ended while it was shown.
func (o *output) finish() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stopBar()
}

func (o *output) report(r *ppap.Report) {
	if r.Decoy {
		pterm.Warning.WithWriter(o.w).Println("A decoy password was sent. The real password is:")
		pterm.DefaultBasicText.WithWriter(o.w).Println(r.RealPassword)
	}
	if r.CleanupErr != nil {
		pterm.Warning.WithWriter(o.w).Printfln("Archive %s could not be removed: %v", r.ArchivePath, r.CleanupErr)
		return
	}
	pterm.Success.WithWriter(o.w).Printfln("Delivered %s to %s", r.SourcePath, r.Recipient)
}

func (o *output) archiveLeft(path, password string) {
	pterm.Warning.WithWriter(o.w).Printfln("Encrypted archive left at %s", path)
	if password != "" {
		pterm.Info.WithWriter(o.w).Println("Its password is:")
		pterm.DefaultBasicText.WithWriter(o.w).Println(password)
	}
}

func (o *output) extracted(path string) {
	pterm.Success.WithWriter(o.w).Printfln("Extracted %s", path)
}
