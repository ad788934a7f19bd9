package crypto

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"fmt"
)

// Seal encrypts plaintext under password using WinZip AES-256.
// Returns: salt (16 bytes) || verifier (2 bytes) || ciphertext || auth code (10 bytes)
func Seal(password string, plaintext []byte) ([]byte, error) {
	salt, err := RandomBytes(SaltSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return sealWithSalt(password, salt, plaintext)
}

func sealWithSalt(password string, salt, plaintext []byte) ([]byte, error) {
	keys := DeriveKeys(password, salt)

	stream, err := NewCTR(keys.Encryption)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(plaintext)+Overhead)
	out = append(out, salt...)
	out = append(out, keys.Verifier...)

	ciphertext := make([]byte, len(plaintext))
	stream.XORKeyStream(ciphertext, plaintext)
	out = append(out, ciphertext...)

	return append(out, authCode(keys.Auth, ciphertext)...), nil
}

// Open authenticates and decrypts a payload produced by Seal.
func Open(password string, sealed []byte) ([]byte, error) {
	if len(sealed) < Overhead {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrInvalidCiphertextSize, len(sealed), Overhead)
	}

	salt := sealed[:SaltSize]
	verifier := sealed[SaltSize : SaltSize+VerifierSize]
	ciphertext := sealed[SaltSize+VerifierSize : len(sealed)-AuthCodeSize]
	tag := sealed[len(sealed)-AuthCodeSize:]

	keys := DeriveKeys(password, salt)
	if subtle.ConstantTimeCompare(keys.Verifier, verifier) != 1 {
		return nil, ErrInvalidPassword
	}

	// The 2-byte verifier lets roughly one wrong password in 65536 through,
	// so the auth code is checked before anything is decrypted.
	if !hmac.Equal(authCode(keys.Auth, ciphertext), tag) {
		return nil, ErrAuthenticationFailed
	}

	stream, err := NewCTR(keys.Encryption)
	if err != nil {
		return nil, err
	}

	plaintext := make([]byte, len(ciphertext))
	stream.XORKeyStream(plaintext, ciphertext)
	return plaintext, nil
}

func authCode(key, ciphertext []byte) []byte {
	mac := hmac.New(sha1.New, key)
	mac.Write(ciphertext)
	return mac.Sum(nil)[:AuthCodeSize]
}
