// Package mbox appends composed messages to a local mbox file instead of
// sending them over the network.
package mbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	mboxlib "github.com/emersion/go-mbox"

	"github.com/Rindrics/ppap-cli/internal/compose"
)

// ErrEmptyPath is returned when no outbox path is configured.
var ErrEmptyPath = errors.New("mbox path is empty")

// Outbox is an append-only mbox file.
type Outbox struct {
	path string
	mu   sync.Mutex
}

// New returns an Outbox writing to path. The file is created on first use.
func New(path string) (*Outbox, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrEmptyPath
	}
	return &Outbox{path: path}, nil
}

// Path returns the mbox file location.
func (o *Outbox) Path() string {
	return o.path
}

// Append composes m and adds it as a new message at the end of the outbox.
func (o *Outbox) Append(ctx context.Context, m *compose.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if m.Date.IsZero() {
		m.Date = time.Now()
	}

	var buf bytes.Buffer
	if err := compose.Write(&buf, m); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	f, err := os.OpenFile(o.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o600)
	if err != nil {
		return fmt.Errorf("open mbox: %w", err)
	}

	w := mboxlib.NewWriter(f)
	mw, err := w.CreateMessage(m.From, m.Date)
	if err != nil {
		f.Close()
		return fmt.Errorf("create mbox message: %w", err)
	}
	if _, err := mw.Write(buf.Bytes()); err != nil {
		f.Close()
		return fmt.Errorf("write mbox message: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("flush mbox: %w", err)
	}
	return f.Close()
}
