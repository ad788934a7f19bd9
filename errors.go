package ppap

import (
	"errors"
	"fmt"

	"github.com/Rindrics/ppap-cli/internal/api"
	"github.com/Rindrics/ppap-cli/internal/config"
	"github.com/Rindrics/ppap-cli/internal/crypto"
	"github.com/Rindrics/ppap-cli/internal/smtp"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrMissingFromAddress is returned when no sender address is provided.
	ErrMissingFromAddress = errors.New("from address is required")

	// ErrMissingRecipient is returned when a message has no recipient.
	ErrMissingRecipient = errors.New("recipient is required")

	// ErrNilTransport is returned when an Orchestrator is built without a transport.
	ErrNilTransport = errors.New("transport is required")

	// ErrAttachmentRequired is returned when SendMessageWithAttachment is
	// called with a message that carries no attachment.
	ErrAttachmentRequired = errors.New("message has no attachment")

	// ErrUnexpectedAttachment is returned when SendMessage is called with a
	// message that carries an attachment.
	ErrUnexpectedAttachment = errors.New("message must not have an attachment")

	// ErrDelayTooLong is returned when a delivery plan delays the password
	// by more than MaxDelayHours.
	ErrDelayTooLong = errors.New("password delay is too long")

	// ErrUnauthorized is returned when the mail service rejects the credentials.
	ErrUnauthorized = errors.New("invalid or expired API key")

	// ErrRateLimited is returned when the mail service rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrServerError is returned when the mail service fails on its side.
	ErrServerError = errors.New("mail service error")

	// ErrInvalidPassword is returned when an archive password does not match
	// the archive's password verifier.
	ErrInvalidPassword = crypto.ErrInvalidPassword

	// ErrAuthenticationFailed is returned when archive content fails its
	// integrity check.
	ErrAuthenticationFailed = crypto.ErrAuthenticationFailed
)

// Error is implemented by all package errors.
type Error interface {
	error
	PPAPError() // marker method
}

// IOError represents a filesystem failure while building or removing an archive.
type IOError struct {
	Op   string // "read", "create", "write", "remove"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// PPAPError implements the Error interface.
func (e *IOError) PPAPError() {}

// TransportError represents a failed send. StatusCode and Body are set when
// the remote endpoint answered with a failure; Err is set for network
// failures. For the SMTP transport StatusCode is the SMTP reply code.
type TransportError struct {
	Transport  string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s transport: %v", e.Transport, e.Err)
	case e.Body != "":
		return fmt.Sprintf("%s transport: status %d: %s", e.Transport, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("%s transport: status %d", e.Transport, e.StatusCode)
	}
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *TransportError) Is(target error) bool {
	if e.Transport == transportSMTP {
		switch e.StatusCode {
		case 530, 535:
			return target == ErrUnauthorized
		case 421, 451:
			return target == ErrServerError
		}
		return false
	}

	switch {
	case e.StatusCode == 401:
		return target == ErrUnauthorized
	case e.StatusCode == 429:
		return target == ErrRateLimited
	case e.StatusCode >= 500:
		return target == ErrServerError
	}
	return false
}

// PPAPError implements the Error interface.
func (e *TransportError) PPAPError() {}

// ConfigError represents a missing or invalid configuration value.
type ConfigError struct {
	Key     string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Message)
}

// PPAPError implements the Error interface.
func (e *ConfigError) PPAPError() {}

// DeliveryError reports a failed Deliver. Step is the last state reached
// before the failure. ArchivePath is set once the archive exists; it is left
// on disk and callers may pass it to Cleanup.
type DeliveryError struct {
	Step        State
	ArchivePath string
	Err         error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery failed at %s: %v", e.Step, e.Err)
}

// Unwrap returns the underlying error.
func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// PPAPError implements the Error interface.
func (e *DeliveryError) PPAPError() {}

// wrapError converts internal errors to public errors.
// This ensures that errors.Is() checks work with public sentinel errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return &TransportError{
			Transport:  transportREST,
			StatusCode: apiErr.StatusCode,
			Body:       apiErr.Body,
		}
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return &TransportError{Transport: transportREST, Err: netErr.Err}
	}

	var replyErr *smtp.ReplyError
	if errors.As(err, &replyErr) {
		return &TransportError{
			Transport:  transportSMTP,
			StatusCode: replyErr.Code,
			Body:       replyErr.Message,
		}
	}

	var smtpNetErr *smtp.NetworkError
	if errors.As(err, &smtpNetErr) {
		return &TransportError{Transport: transportSMTP, Err: smtpNetErr.Err}
	}

	var cfgErr *config.Error
	if errors.As(err, &cfgErr) {
		return &ConfigError{Key: cfgErr.Key, Message: cfgErr.Message}
	}

	if errors.Is(err, api.ErrMissingAPIKey) {
		return ErrMissingAPIKey
	}

	return err
}
