package ppap

import (
	"context"
	"io"
	"net"
	"strconv"
	"testing"

	"github.com/emersion/go-sasl"
	gosmtp "github.com/emersion/go-smtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// relay accepts PLAIN auth for one password and discards every message.
type relay struct {
	password string
}

func (r *relay) NewSession(_ *gosmtp.Conn) (gosmtp.Session, error) {
	return &relaySession{password: r.password}, nil
}

type relaySession struct {
	password string
}

func (s *relaySession) AuthMechanisms() []string {
	return []string{sasl.Plain}
}

func (s *relaySession) Auth(string) (sasl.Server, error) {
	return sasl.NewPlainServer(func(_, _, password string) error {
		if password != s.password {
			return &gosmtp.SMTPError{
				Code:         535,
				EnhancedCode: gosmtp.EnhancedCode{5, 7, 8},
				Message:      "authentication failed",
			}
		}
		return nil
	}), nil
}

func (s *relaySession) Mail(string, *gosmtp.MailOptions) error { return nil }
func (s *relaySession) Rcpt(string, *gosmtp.RcptOptions) error { return nil }

func (s *relaySession) Data(r io.Reader) error {
	_, err := io.Copy(io.Discard, r)
	return err
}

func (s *relaySession) Reset()        {}
func (s *relaySession) Logout() error { return nil }

func startRelay(t *testing.T, password string) (string, int) {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := gosmtp.NewServer(&relay{password: password})
	s.Domain = "localhost"
	s.AllowInsecureAuth = true
	go s.Serve(l)
	t.Cleanup(func() { s.Close() })

	host, portStr, _ := net.SplitHostPort(l.Addr().String())
	port, _ := strconv.Atoi(portStr)
	return host, port
}

func TestSMTPTransport_Unauthorized(t *testing.T) {
	host, port := startRelay(t, "secret")

	tr, err := NewSMTPTransport(SMTPConfig{
		Host:       host,
		Port:       port,
		Username:   "apikey",
		Password:   "wrong",
		From:       "sender@example.com",
		DisableTLS: true,
	})
	require.NoError(t, err)

	err = tr.SendMessage(context.Background(), EmailMessage{To: "a@example.com", Subject: "x", Body: "y"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, "smtp", tErr.Transport)
	assert.Equal(t, 535, tErr.StatusCode)
}

func TestSMTPTransport_SendMessage(t *testing.T) {
	host, port := startRelay(t, "secret")

	tr, err := NewSMTPTransport(SMTPConfig{
		Host:       host,
		Port:       port,
		Username:   "apikey",
		Password:   "secret",
		From:       "sender@example.com",
		DisableTLS: true,
	})
	require.NoError(t, err)

	err = tr.SendMessage(context.Background(), EmailMessage{To: "a@example.com", Subject: "x", Body: "y"})
	assert.NoError(t, err)
}
