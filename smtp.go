package ppap

import (
	"context"
	"crypto/tls"
	"os"
	"time"

	"github.com/Rindrics/ppap-cli/internal/compose"
	"github.com/Rindrics/ppap-cli/internal/smtp"
)

// SMTPConfig configures an SMTPTransport.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// Timeout bounds the dial and each SMTP command. Defaults to 10 seconds.
	Timeout time.Duration
	// TLSConfig overrides the TLS settings used for STARTTLS and port 465.
	TLSConfig *tls.Config
	// DisableTLS sends in cleartext. Otherwise the relay must offer
	// STARTTLS, or listen on port 465 for implicit TLS.
	DisableTLS bool
}

// SMTPTransport sends mail through an SMTP relay.
type SMTPTransport struct {
	client *smtp.Client
	from   string
}

var _ Transport = (*SMTPTransport)(nil)

// NewSMTPTransport creates a transport for the relay described by cfg.
func NewSMTPTransport(cfg SMTPConfig) (*SMTPTransport, error) {
	if cfg.From == "" {
		return nil, ErrMissingFromAddress
	}
	client, err := smtp.New(smtp.Config{
		Host:       cfg.Host,
		Port:       cfg.Port,
		Username:   cfg.Username,
		Password:   cfg.Password,
		Timeout:    cfg.Timeout,
		TLSConfig:  cfg.TLSConfig,
		DisableTLS: cfg.DisableTLS,
	})
	if err != nil {
		return nil, &ConfigError{Key: "smtp", Message: err.Error()}
	}
	return &SMTPTransport{client: client, from: cfg.From}, nil
}

// SendMessage sends msg without an attachment.
func (t *SMTPTransport) SendMessage(ctx context.Context, msg EmailMessage) error {
	if err := validateSend(msg, false); err != nil {
		return err
	}
	return wrapError(t.client.Send(ctx, t.compose(msg, nil)))
}

// SendMessageWithAttachment sends msg with its attachment as a MIME part.
func (t *SMTPTransport) SendMessageWithAttachment(ctx context.Context, msg EmailMessage) error {
	if err := validateSend(msg, true); err != nil {
		return err
	}
	att, err := loadAttachment(msg.Attachment)
	if err != nil {
		return err
	}
	return wrapError(t.client.Send(ctx, t.compose(msg, att)))
}

func (t *SMTPTransport) compose(msg EmailMessage, att *compose.Attachment) *compose.Message {
	return &compose.Message{
		From:       t.from,
		To:         msg.To,
		Subject:    msg.Subject,
		Body:       msg.Body,
		Attachment: att,
	}
}

func loadAttachment(a *Attachment) (*compose.Attachment, error) {
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: a.Path, Err: err}
	}
	return &compose.Attachment{
		Filename:    a.filename(),
		ContentType: a.contentType(),
		Content:     data,
	}, nil
}
