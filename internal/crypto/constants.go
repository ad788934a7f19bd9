package crypto

const (
	// AESKeySize is the size of an AES-256 key in bytes.
	AESKeySize = 32
	// AESBlockSize is the AES block size in bytes.
	AESBlockSize = 16

	// SaltSize is the WinZip AES salt length for 256-bit keys.
	SaltSize = 16
	// VerifierSize is the size of the password verification value stored
	// after the salt.
	VerifierSize = 2
	// AuthCodeSize is the size of the truncated HMAC-SHA1 authentication code
	// appended to the ciphertext.
	AuthCodeSize = 10
	// KDFIterations is the fixed PBKDF2 iteration count of the WinZip AES scheme.
	KDFIterations = 1000

	// Overhead is the number of bytes Seal adds to a plaintext.
	Overhead = SaltSize + VerifierSize + AuthCodeSize

	// PasswordLength is the length of generated archive passwords.
	PasswordLength = 16
)

// Alphanumeric is the alphabet used for generated passwords.
const Alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
