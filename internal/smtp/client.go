// Package smtp delivers composed messages through an SMTP relay.
package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/emersion/go-sasl"
	gosmtp "github.com/emersion/go-smtp"

	"github.com/Rindrics/ppap-cli/internal/compose"
)

// DefaultTimeout bounds dialing and each SMTP command.
const DefaultTimeout = 10 * time.Second

// implicitTLSPort is the submissions port, which speaks TLS from the start.
const implicitTLSPort = 465

var (
	// ErrMissingHost is returned when no relay host is configured.
	ErrMissingHost = errors.New("SMTP host is required")
	// ErrInvalidPort is returned when the port is outside 1..65535.
	ErrInvalidPort = errors.New("SMTP port must be between 1 and 65535")
)

// Config configures a Client.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// Timeout bounds the dial and every command. Zero means DefaultTimeout.
	Timeout time.Duration
	// TLSConfig is used for STARTTLS and implicit TLS. If nil, a config
	// verifying Host is used.
	TLSConfig *tls.Config
	// DisableTLS sends in plain text. Otherwise port 465 uses implicit TLS
	// and every other port requires the server to offer STARTTLS.
	DisableTLS bool
}

// Client sends messages through one relay. Every Send opens its own
// connection, so a Client is safe for concurrent use.
type Client struct {
	cfg  Config
	addr string
}

// New validates cfg and returns a Client.
func New(cfg Config) (*Client, error) {
	if cfg.Host == "" {
		return nil, ErrMissingHost
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPort, cfg.Port)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.TLSConfig == nil {
		cfg.TLSConfig = &tls.Config{ServerName: cfg.Host}
	}
	return &Client{
		cfg:  cfg,
		addr: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
	}, nil
}

// Addr returns the relay address.
func (c *Client) Addr() string {
	return c.addr
}

// Send delivers m in a single SMTP transaction.
func (c *Client) Send(ctx context.Context, m *compose.Message) error {
	var buf bytes.Buffer
	if err := compose.Write(&buf, m); err != nil {
		return err
	}

	conn, err := c.dial(ctx)
	if err != nil {
		return &NetworkError{Err: err, Addr: c.addr}
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	client, err := c.newClient(conn)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &NetworkError{Err: ctxErr, Addr: c.addr}
		}
		return classify(err, c.addr)
	}
	client.CommandTimeout = c.cfg.Timeout
	client.SubmissionTimeout = c.cfg.Timeout
	defer client.Close()

	if err := c.transact(client, m.From, m.To, buf.Bytes()); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &NetworkError{Err: ctxErr, Addr: c.addr}
		}
		return classify(err, c.addr)
	}
	return nil
}

func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: c.cfg.Timeout}
	if c.cfg.Port == implicitTLSPort && !c.cfg.DisableTLS {
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: c.cfg.TLSConfig}
		return tlsDialer.DialContext(ctx, "tcp", c.addr)
	}
	return dialer.DialContext(ctx, "tcp", c.addr)
}

// newClient starts the SMTP session on conn, upgrading it with STARTTLS
// unless TLS is disabled or already in place.
func (c *Client) newClient(conn net.Conn) (*gosmtp.Client, error) {
	if c.cfg.DisableTLS || c.cfg.Port == implicitTLSPort {
		return gosmtp.NewClient(conn), nil
	}
	conn.SetDeadline(time.Now().Add(c.cfg.Timeout))
	client, err := gosmtp.NewClientStartTLS(conn, c.cfg.TLSConfig)
	if err != nil {
		conn.Close()
		return nil, err
	}
	conn.SetDeadline(time.Time{})
	return client, nil
}

func (c *Client) transact(client *gosmtp.Client, from, to string, data []byte) error {
	if c.cfg.Username != "" {
		auth := sasl.NewPlainClient("", c.cfg.Username, c.cfg.Password)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(from, nil); err != nil {
		return err
	}
	if err := client.Rcpt(to, nil); err != nil {
		return err
	}

	wc, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return err
	}

	return client.Quit()
}
