package ppap

import (
	"path/filepath"
	"strings"
)

// EmailMessage is a single-recipient plain-text message.
type EmailMessage struct {
	To         string
	Subject    string
	Body       string
	Attachment *Attachment
}

// Attachment references a file on disk to be sent with a message.
type Attachment struct {
	Path string
	// Filename is the name shown to the recipient. Defaults to the base
	// name of Path.
	Filename string
	// ContentType overrides the type derived from the file extension.
	ContentType string
}

// filename returns the display name of the attachment.
func (a *Attachment) filename() string {
	if a.Filename != "" {
		return a.Filename
	}
	return filepath.Base(a.Path)
}

// contentType returns the MIME type of the attachment.
func (a *Attachment) contentType() string {
	if a.ContentType != "" {
		return a.ContentType
	}
	return ContentTypeFor(a.filename())
}

var contentTypes = map[string]string{
	".zip": "application/zip",
	".gz":  "application/gzip",
	".tgz": "application/gzip",
	".7z":  "application/x-7z-compressed",
	".tar": "application/x-tar",
	".rar": "application/vnd.rar",
}

// ContentTypeFor returns the MIME type for a file name based on its
// extension, or application/octet-stream if the extension is unknown.
func ContentTypeFor(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

func validateSend(msg EmailMessage, withAttachment bool) error {
	if strings.TrimSpace(msg.To) == "" {
		return ErrMissingRecipient
	}
	if withAttachment && msg.Attachment == nil {
		return ErrAttachmentRequired
	}
	if !withAttachment && msg.Attachment != nil {
		return ErrUnexpectedAttachment
	}
	return nil
}
