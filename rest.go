package ppap

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/Rindrics/ppap-cli/internal/api"
	"github.com/Rindrics/ppap-cli/internal/crypto"
)

// restConfig holds configuration for the REST transport.
type restConfig struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// RESTOption configures a RESTTransport.
type RESTOption func(*restConfig)

// WithBaseURL sets the mail API base URL.
func WithBaseURL(url string) RESTOption {
	return func(c *restConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) RESTOption {
	return func(c *restConfig) {
		c.httpClient = client
	}
}

// WithRequestTimeout bounds each request. By default requests are bounded
// only by the context passed to the send methods.
func WithRequestTimeout(timeout time.Duration) RESTOption {
	return func(c *restConfig) {
		c.timeout = timeout
	}
}

// RESTTransport sends mail through the SendGrid v3 HTTP API.
type RESTTransport struct {
	client *api.Client
	from   string
}

var _ Transport = (*RESTTransport)(nil)

// NewRESTTransport creates a transport that authenticates with apiKey and
// sends from fromAddress.
func NewRESTTransport(apiKey, fromAddress string, opts ...RESTOption) (*RESTTransport, error) {
	if fromAddress == "" {
		return nil, ErrMissingFromAddress
	}

	cfg := &restConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var apiOpts []api.Option
	if cfg.baseURL != "" {
		apiOpts = append(apiOpts, api.WithBaseURL(cfg.baseURL))
	}
	switch {
	case cfg.httpClient != nil:
		apiOpts = append(apiOpts, api.WithHTTPClient(cfg.httpClient))
	case cfg.timeout > 0:
		apiOpts = append(apiOpts, api.WithTimeout(cfg.timeout))
	}

	client, err := api.New(apiKey, apiOpts...)
	if err != nil {
		return nil, wrapError(err)
	}

	return &RESTTransport{client: client, from: fromAddress}, nil
}

// SendMessage sends msg without an attachment.
func (t *RESTTransport) SendMessage(ctx context.Context, msg EmailMessage) error {
	if err := validateSend(msg, false); err != nil {
		return err
	}
	req := api.NewMailSendRequest(t.from, msg.To, msg.Subject, msg.Body)
	return wrapError(t.client.SendMail(ctx, req))
}

// SendMessageWithAttachment reads the attachment file, encodes it as base64
// and sends it with msg.
func (t *RESTTransport) SendMessageWithAttachment(ctx context.Context, msg EmailMessage) error {
	if err := validateSend(msg, true); err != nil {
		return err
	}

	data, err := os.ReadFile(msg.Attachment.Path)
	if err != nil {
		return &IOError{Op: "read", Path: msg.Attachment.Path, Err: err}
	}

	req := api.NewMailSendRequest(t.from, msg.To, msg.Subject, msg.Body)
	req.Attachments = []api.Attachment{{
		Content:     crypto.ToBase64(data),
		Filename:    msg.Attachment.filename(),
		Type:        msg.Attachment.contentType(),
		Disposition: api.DispositionAttachment,
	}}
	return wrapError(t.client.SendMail(ctx, req))
}
