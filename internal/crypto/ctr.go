package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"fmt"
)

// ctrStream is AES in counter mode with the little-endian counter WinZip
// uses. crypto/cipher's CTR increments big-endian, so it cannot be reused.
type ctrStream struct {
	block   cipher.Block
	counter uint64
	nonce   [AESBlockSize]byte
	stream  [AESBlockSize]byte
	pos     int
}

// NewCTR returns a keystream starting at counter value 1.
func NewCTR(key []byte) (cipher.Stream, error) {
	if len(key) != AESKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), AESKeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	return &ctrStream{block: block, pos: AESBlockSize}, nil
}

func (s *ctrStream) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("crypto: output smaller than input")
	}
	for i := range src {
		if s.pos == AESBlockSize {
			s.counter++
			binary.LittleEndian.PutUint64(s.nonce[:8], s.counter)
			s.block.Encrypt(s.stream[:], s.nonce[:])
			s.pos = 0
		}
		dst[i] = src[i] ^ s.stream[s.pos]
		s.pos++
	}
}
