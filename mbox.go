package ppap

import (
	"context"
	"time"

	"github.com/Rindrics/ppap-cli/internal/compose"
	"github.com/Rindrics/ppap-cli/internal/mbox"
)

// MboxTransport appends messages to a local mbox file instead of sending
// them. It is meant for dry runs and for inspecting what would be sent.
type MboxTransport struct {
	outbox *mbox.Outbox
	from   string
	now    func() time.Time
}

var _ Transport = (*MboxTransport)(nil)

// NewMboxTransport creates a transport writing to the mbox file at path.
func NewMboxTransport(path, fromAddress string) (*MboxTransport, error) {
	if fromAddress == "" {
		return nil, ErrMissingFromAddress
	}
	outbox, err := mbox.New(path)
	if err != nil {
		return nil, &ConfigError{Key: "mbox", Message: err.Error()}
	}
	return &MboxTransport{outbox: outbox, from: fromAddress, now: time.Now}, nil
}

// Path returns the mbox file location.
func (t *MboxTransport) Path() string {
	return t.outbox.Path()
}

// SendMessage appends msg to the outbox.
func (t *MboxTransport) SendMessage(ctx context.Context, msg EmailMessage) error {
	if err := validateSend(msg, false); err != nil {
		return err
	}
	return t.append(ctx, msg, nil)
}

// SendMessageWithAttachment appends msg and its attachment to the outbox.
func (t *MboxTransport) SendMessageWithAttachment(ctx context.Context, msg EmailMessage) error {
	if err := validateSend(msg, true); err != nil {
		return err
	}
	att, err := loadAttachment(msg.Attachment)
	if err != nil {
		return err
	}
	return t.append(ctx, msg, att)
}

func (t *MboxTransport) append(ctx context.Context, msg EmailMessage, att *compose.Attachment) error {
	err := t.outbox.Append(ctx, &compose.Message{
		From:       t.from,
		To:         msg.To,
		Subject:    msg.Subject,
		Body:       msg.Body,
		Date:       t.now(),
		Attachment: att,
	})
	if err != nil {
		return &TransportError{Transport: transportMbox, Err: err}
	}
	return nil
}
