// Package crypto provides the cryptographic primitives behind ppap archives.
// It implements the WinZip AES (AE-2) entry encryption scheme and the random
// password generation used for archive and decoy passwords.
//
// # Algorithm Suite
//
//   - PBKDF2-HMAC-SHA1 with 1000 iterations derives 66 bytes from the
//     password and a 16-byte random salt: a 32-byte AES key, a 32-byte
//     HMAC key and a 2-byte password verification value.
//
//   - AES-256 in counter mode with a little-endian counter starting at 1
//     encrypts the (already compressed) entry data.
//
//   - HMAC-SHA1 over the ciphertext, truncated to 10 bytes, authenticates it.
//
// A sealed payload is laid out as:
//
//	salt (16) || verifier (2) || ciphertext || auth code (10)
//
// The scheme is interoperable with 7-Zip, WinZip and Info-ZIP derived tools.
// It is only as strong as the password, which is the point: the password
// travels by email right after the archive.
//
// # Random Strings
//
// [RandomAlphanumeric] draws from crypto/rand with rejection sampling, so
// every symbol of [Alphanumeric] is equally likely. crypto/rand is safe for
// concurrent use; no package-level generator state is shared between calls.
//
// # Base64 Encoding
//
// [ToBase64] implements standard base64 with padding and no
// line breaks, which is what mail APIs expect for attachment content.
package crypto
