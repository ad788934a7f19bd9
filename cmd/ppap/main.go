// Command ppap sends a file as an encrypted zip attachment and mails the
// password separately.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	ppap "github.com/Rindrics/ppap-cli"
)

// Config holds the process I/O and the factories used by run, so tests can
// replace them.
type Config struct {
	Stdout io.Writer
	Stderr io.Writer

	LoadConfig   func(envFiles ...string) (*ppap.Config, error)
	NewTransport func(*ppap.Config) (ppap.Transport, error)
	// Clock drives the delay before the password message. Nil uses the
	// real clock.
	Clock ppap.Clock
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		LoadConfig:   ppap.LoadConfig,
		NewTransport: ppap.NewTransport,
	}
}

func run(args []string, cfg Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(cfg)
	cmd.SetArgs(args[1:])
	cmd.SetOut(cfg.Stdout)
	cmd.SetErr(cfg.Stderr)
	return cmd.ExecuteContext(ctx)
}

var exit = os.Exit

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	exit(1)
}
