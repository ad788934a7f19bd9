package archive

import "errors"

var (
	// ErrNotEncrypted is returned when the entry is not WinZip AES encrypted.
	ErrNotEncrypted = errors.New("archive entry is not AES encrypted")

	// ErrUnexpectedEntries is returned when an archive does not hold exactly one entry.
	ErrUnexpectedEntries = errors.New("archive must contain exactly one entry")

	// ErrUnsupportedMethod is returned when the AES extra field names a
	// compression method other than store or deflate.
	ErrUnsupportedMethod = errors.New("unsupported compression method")

	// ErrMalformedExtra is returned when the AES extra field is missing or truncated.
	ErrMalformedExtra = errors.New("malformed AES extra field")

	// ErrSizeMismatch is returned when the decrypted entry size differs
	// from the size recorded in the archive.
	ErrSizeMismatch = errors.New("entry size mismatch")
)
