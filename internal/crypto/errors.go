package crypto

import "errors"

var (
	// ErrInvalidKeySize is returned when the AES key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidCiphertextSize is returned when a sealed payload is too short
	// to contain a salt, verifier and authentication code.
	ErrInvalidCiphertextSize = errors.New("invalid ciphertext size")

	// ErrInvalidPassword is returned when the password verification value
	// derived from the supplied password does not match the stored one.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrAuthenticationFailed is returned when the authentication code does
	// not match the ciphertext.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrInvalidAlphabet is returned when a random string is requested over
	// an empty alphabet or one larger than 256 symbols.
	ErrInvalidAlphabet = errors.New("invalid alphabet")
)
