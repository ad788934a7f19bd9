package ppap

import (
	"context"
)

const (
	transportREST = "rest"
	transportSMTP = "smtp"
	transportMbox = "mbox"
)

// Transport sends email messages. Each call blocks until the remote
// endpoint has accepted or rejected the message and performs exactly one
// delivery attempt.
type Transport interface {
	// SendMessage sends a message without an attachment.
	SendMessage(ctx context.Context, msg EmailMessage) error
	// SendMessageWithAttachment sends a message whose Attachment is set.
	SendMessageWithAttachment(ctx context.Context, msg EmailMessage) error
}
