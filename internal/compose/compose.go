// Package compose renders outgoing messages as RFC 5322 / MIME documents.
package compose

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-message/mail"
)

// ErrMissingRecipient is returned when a message has no recipient.
var ErrMissingRecipient = errors.New("message has no recipient")

// Attachment is a file carried as a base64 MIME part.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is a single-recipient plain-text message with at most one attachment.
type Message struct {
	From       string
	To         string
	Subject    string
	Body       string
	Date       time.Time
	Attachment *Attachment
}

var textParams = map[string]string{"charset": "utf-8"}

// Write renders m to w. Messages without an attachment are a single
// text/plain entity; with an attachment they are multipart/mixed.
func Write(w io.Writer, m *Message) error {
	if m.To == "" {
		return ErrMissingRecipient
	}

	date := m.Date
	if date.IsZero() {
		date = time.Now()
	}

	var h mail.Header
	h.SetDate(date)
	h.SetSubject(m.Subject)
	h.SetAddressList("To", []*mail.Address{{Address: m.To}})
	if m.From != "" {
		h.SetAddressList("From", []*mail.Address{{Address: m.From}})
	}
	if err := h.GenerateMessageID(); err != nil {
		return fmt.Errorf("failed to generate message id: %w", err)
	}

	if m.Attachment == nil {
		h.SetContentType("text/plain", textParams)
		bw, err := mail.CreateSingleInlineWriter(w, h)
		if err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}
		if _, err := io.WriteString(bw, m.Body); err != nil {
			return fmt.Errorf("failed to write body: %w", err)
		}
		return bw.Close()
	}

	mw, err := mail.CreateWriter(w, h)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	var th mail.InlineHeader
	th.SetContentType("text/plain", textParams)
	tw, err := mw.CreateSingleInline(th)
	if err != nil {
		return fmt.Errorf("failed to create body part: %w", err)
	}
	if _, err := io.WriteString(tw, m.Body); err != nil {
		return fmt.Errorf("failed to write body: %w", err)
	}
	if err := tw.Close(); err != nil {
		return err
	}

	var ah mail.AttachmentHeader
	ah.SetContentType(m.Attachment.ContentType, nil)
	ah.SetFilename(m.Attachment.Filename)
	aw, err := mw.CreateAttachment(ah)
	if err != nil {
		return fmt.Errorf("failed to create attachment part: %w", err)
	}
	if _, err := aw.Write(m.Attachment.Content); err != nil {
		return fmt.Errorf("failed to write attachment: %w", err)
	}
	if err := aw.Close(); err != nil {
		return err
	}

	return mw.Close()
}
