package api

// MailSendRequest is the body of POST /v3/mail/send.
type MailSendRequest struct {
	Personalizations []Personalization `json:"personalizations"`
	From             EmailAddress      `json:"from"`
	Subject          string            `json:"subject"`
	Content          []Content         `json:"content"`
	Attachments      []Attachment      `json:"attachments,omitempty"`
}

// Personalization holds the recipients of a message.
type Personalization struct {
	To []EmailAddress `json:"to"`
}

// EmailAddress is a single address.
type EmailAddress struct {
	Email string `json:"email"`
}

// Content is one body part.
type Content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Attachment is a base64-encoded file.
type Attachment struct {
	Content     string `json:"content"`
	Filename    string `json:"filename"`
	Type        string `json:"type"`
	Disposition string `json:"disposition"`
}

// DispositionAttachment marks an attachment as a regular download.
const DispositionAttachment = "attachment"

// NewMailSendRequest builds a single-recipient plain-text message.
func NewMailSendRequest(from, to, subject, body string) *MailSendRequest {
	return &MailSendRequest{
		Personalizations: []Personalization{{
			To: []EmailAddress{{Email: to}},
		}},
		From:    EmailAddress{Email: from},
		Subject: subject,
		Content: []Content{{Type: "text/plain", Value: body}},
	}
}
