package ppap

import (
	"github.com/Rindrics/ppap-cli/internal/crypto"
)

// GenerateDecoy returns a random alphanumeric string of exactly length
// characters. It is drawn independently of any real password. A negative
// length yields an empty string.
func GenerateDecoy(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}
	return crypto.RandomAlphanumeric(length)
}
