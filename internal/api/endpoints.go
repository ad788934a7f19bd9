package api

import (
	"context"
	"net/http"
)

// MailSendPath is the SendGrid v3 mail send endpoint.
const MailSendPath = "/v3/mail/send"

// SendMail submits one message. SendGrid answers 202 Accepted on success.
func (c *Client) SendMail(ctx context.Context, req *MailSendRequest) error {
	return c.Do(ctx, http.MethodPost, MailSendPath, req)
}
