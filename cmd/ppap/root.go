package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	ppap "github.com/Rindrics/ppap-cli"
)

type sendOptions struct {
	secure   bool
	after    uint
	envFiles []string
	retries  int
	logLevel string
	sender   string
}

func newRootCmd(cfg Config) *cobra.Command {
	opts := &sendOptions{}

	cmd := &cobra.Command{
		Use:   "ppap <file> <email>",
		Short: "Send a file as an encrypted zip, then send its password",
		Long: `ppap compresses a file into an AES-256 encrypted zip, mails the zip to the
recipient and mails the password in a second message.

With --after the password message is held back for the given number of hours.
With --secure a random decoy of the same length is sent instead of the real
password; the real password is only printed here.

Mail settings are read from the environment and from .env:
  SENDGRID_API_KEY, EMAIL_FROM_ADDRESS, SENDGRID_PROTOCOL (rest|smtp|mbox),
  SENDGRID_API_URL, SMTP_SERVER, SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD,
  PPAP_MBOX_PATH`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd, cfg, opts, args[0], args[1])
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.secure, "secure", false, "send a decoy instead of the real password")
	flags.UintVar(&opts.after, "after", 0, "hours to wait before sending the password")
	flags.StringSliceVar(&opts.envFiles, "env-file", nil, "env file(s) to load instead of .env")
	flags.IntVar(&opts.retries, "retries", 0, "retry transient send failures this many times")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.StringVar(&opts.sender, "sender", "", "name used to sign both messages")

	cmd.AddCommand(newOpenCmd(cfg))
	return cmd
}

func runSend(cmd *cobra.Command, cfg Config, opts *sendOptions, file, recipient string) error {
	logger, err := newLogger(opts.logLevel, cfg.Stderr)
	if err != nil {
		return err
	}
	defer logger.Sync()

	settings, err := cfg.LoadConfig(opts.envFiles...)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded",
		zap.String("protocol", string(settings.Protocol)),
		zap.String("from", settings.FromAddress),
	)

	transport, err := cfg.NewTransport(settings)
	if err != nil {
		return err
	}
	if opts.retries > 0 {
		rc := ppap.DefaultRetryConfig()
		rc.MaxRetries = opts.retries
		transport = ppap.NewRetryTransport(transport, rc)
	}

	out := newOutput(cfg.Stdout)
	orchOpts := []ppap.Option{
		ppap.WithLogger(logger),
		ppap.WithObserver(out.observe),
		ppap.WithSender(opts.sender),
	}
	if cfg.Clock != nil {
		orchOpts = append(orchOpts, ppap.WithClock(cfg.Clock))
	}

	o, err := ppap.New(transport, orchOpts...)
	if err != nil {
		return err
	}

	plan := ppap.DeliveryPlan{SecureMode: opts.secure, DelayHours: opts.after}
	report, err := o.Deliver(cmd.Context(), file, recipient, plan)
	out.finish()
	if err != nil {
		var dErr *ppap.DeliveryError
		if errors.As(err, &dErr) && dErr.ArchivePath != "" {
			out.archiveLeft(dErr.ArchivePath, report.RealPassword)
		}
		return err
	}

	out.report(report)
	return nil
}

func newOpenCmd(cfg Config) *cobra.Command {
	var password, outDir string

	cmd := &cobra.Command{
		Use:           "open <archive>",
		Short:         "Decrypt an archive created by ppap",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := extract(args[0], password, outDir)
			if err != nil {
				return err
			}
			newOutput(cfg.Stdout).extracted(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "archive password")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default: next to the archive)")
	if err := cmd.MarkFlagRequired("password"); err != nil {
		panic(fmt.Sprintf("mark password flag: %v", err))
	}
	return cmd
}
