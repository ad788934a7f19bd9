package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
)

// randReader is the source of randomness. It can be replaced for testing.
var randReader io.Reader = rand.Reader

// RandomBytes returns n bytes from the package random source.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(randReader, b); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return b, nil
}

// RandomString returns a string of length n drawn uniformly from alphabet.
// Bytes at or above the largest multiple of len(alphabet) are rejected so
// that no symbol is favoured.
func RandomString(n int, alphabet string) (string, error) {
	if len(alphabet) == 0 || len(alphabet) > 256 {
		return "", fmt.Errorf("%w: %d symbols", ErrInvalidAlphabet, len(alphabet))
	}
	if n <= 0 {
		return "", nil
	}

	limit := 256 - 256%len(alphabet)
	var sb strings.Builder
	sb.Grow(n)

	buf := make([]byte, n)
	for sb.Len() < n {
		if _, err := io.ReadFull(randReader, buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			sb.WriteByte(alphabet[int(b)%len(alphabet)])
			if sb.Len() == n {
				break
			}
		}
	}

	return sb.String(), nil
}

// RandomAlphanumeric returns a string of length n over [A-Za-z0-9].
func RandomAlphanumeric(n int) (string, error) {
	return RandomString(n, Alphanumeric)
}

// GeneratePassword returns a fresh archive password of PasswordLength characters.
func GeneratePassword() (string, error) {
	return RandomAlphanumeric(PasswordLength)
}
