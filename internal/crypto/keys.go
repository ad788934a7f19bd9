package crypto

import (
	"crypto/sha1"

	"golang.org/x/crypto/pbkdf2"
)

// Keys holds the material derived from a password and salt.
type Keys struct {
	Encryption []byte
	Auth       []byte
	Verifier   []byte
}

// DeriveKeys derives the AES key, HMAC key and password verification value
// for a WinZip AES-256 entry.
func DeriveKeys(password string, salt []byte) Keys {
	dk := pbkdf2.Key([]byte(password), salt, KDFIterations, 2*AESKeySize+VerifierSize, sha1.New)
	return Keys{
		Encryption: dk[:AESKeySize],
		Auth:       dk[AESKeySize : 2*AESKeySize],
		Verifier:   dk[2*AESKeySize:],
	}
}
