package archive

import (
	"archive/zip"
	"encoding/binary"
	"fmt"
)

const (
	// MethodAES is the compression method id recorded for AES encrypted entries.
	MethodAES uint16 = 99

	aesExtraID     uint16 = 0x9901
	aesExtraSize   uint16 = 7
	aeVersion2     uint16 = 2
	aesStrength256 byte   = 3

	flagEncrypted uint16 = 0x1
	flagUTF8      uint16 = 0x800

	// 5.1 is the minimum version for AES encryption.
	zipVersionAES uint16 = 51
)

// aesExtra builds the 0x9901 extra field announcing AE-2, AES-256 and the
// real compression method.
func aesExtra(method uint16) []byte {
	b := make([]byte, 4+aesExtraSize)
	binary.LittleEndian.PutUint16(b[0:], aesExtraID)
	binary.LittleEndian.PutUint16(b[2:], aesExtraSize)
	binary.LittleEndian.PutUint16(b[4:], aeVersion2)
	b[6], b[7] = 'A', 'E'
	b[8] = aesStrength256
	binary.LittleEndian.PutUint16(b[9:], method)
	return b
}

// parseAESExtra finds the 0x9901 field in extra and returns the actual
// compression method of the entry.
func parseAESExtra(extra []byte) (uint16, error) {
	for len(extra) >= 4 {
		tag := binary.LittleEndian.Uint16(extra[0:])
		size := int(binary.LittleEndian.Uint16(extra[2:]))
		extra = extra[4:]
		if size > len(extra) {
			break
		}
		field := extra[:size]
		extra = extra[size:]

		if tag != aesExtraID {
			continue
		}
		if size < int(aesExtraSize) || field[2] != 'A' || field[3] != 'E' {
			return 0, ErrMalformedExtra
		}
		if field[4] != aesStrength256 {
			return 0, fmt.Errorf("%w: AES strength %d", ErrUnsupportedMethod, field[4])
		}
		return binary.LittleEndian.Uint16(field[5:]), nil
	}
	return 0, ErrMalformedExtra
}

func isSupportedMethod(m uint16) bool {
	return m == zip.Store || m == zip.Deflate
}
