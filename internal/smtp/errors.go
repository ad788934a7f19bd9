package smtp

import (
	"errors"
	"fmt"

	gosmtp "github.com/emersion/go-smtp"
)

// ReplyError is a negative SMTP reply.
type ReplyError struct {
	Code    int
	Message string
}

func (e *ReplyError) Error() string {
	return fmt.Sprintf("SMTP error %d: %s", e.Code, e.Message)
}

// NetworkError represents a connection-level failure.
type NetworkError struct {
	Err  error
	Addr string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

func classify(err error, addr string) error {
	var smtpErr *gosmtp.SMTPError
	if errors.As(err, &smtpErr) {
		return &ReplyError{Code: smtpErr.Code, Message: smtpErr.Message}
	}
	return &NetworkError{Err: err, Addr: addr}
}
