package crypto

import (
	"encoding/base64"
)

// ToBase64 encodes bytes to standard base64 with padding.
// Use this for attachment content and non-URL contexts.
func ToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
