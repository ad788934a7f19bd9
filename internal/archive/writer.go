package archive

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/Rindrics/ppap-cli/internal/crypto"
)

// Extension is appended to a source path to name its archive.
const Extension = ".zip"

// entryMode is the permission recorded for the archived file.
const entryMode os.FileMode = 0o644

// PathFor returns the archive path for a source file: the source path with
// Extension appended, in the same directory.
func PathFor(source string) string {
	return source + Extension
}

// Write writes a single-entry encrypted zip archive to w.
func Write(w io.Writer, name string, content []byte, password string, modified time.Time) error {
	var compressed bytes.Buffer
	fw, err := flate.NewWriter(&compressed, flate.DefaultCompression)
	if err != nil {
		return fmt.Errorf("failed to create deflate writer: %w", err)
	}
	if _, err := fw.Write(content); err != nil {
		return fmt.Errorf("failed to compress entry: %w", err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("failed to compress entry: %w", err)
	}

	sealed, err := crypto.Seal(password, compressed.Bytes())
	if err != nil {
		return fmt.Errorf("failed to encrypt entry: %w", err)
	}

	fh := &zip.FileHeader{
		Name:               name,
		Method:             MethodAES,
		Flags:              flagEncrypted,
		CreatorVersion:     zipVersionAES,
		ReaderVersion:      zipVersionAES,
		Extra:              aesExtra(zip.Deflate),
		CRC32:              0, // AE-2
		CompressedSize64:   uint64(len(sealed)),
		UncompressedSize64: uint64(len(content)),
	}
	if !isASCII(name) && utf8.ValidString(name) {
		fh.Flags |= flagUTF8
	}
	fh.ModifiedDate, fh.ModifiedTime = msDosTime(modified)
	fh.SetMode(entryMode)

	zw := zip.NewWriter(w)
	ew, err := zw.CreateRaw(fh)
	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}
	if _, err := ew.Write(sealed); err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return nil
}

// Create writes the archive to path. A partially written file is removed
// when writing fails.
func Create(path, name string, content []byte, password string, modified time.Time) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}

	if err := Write(f, name, content, password, modified); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// msDosTime converts t to the MS-DOS date and time fields. Times before
// 1980 are clamped to the DOS epoch.
func msDosTime(t time.Time) (date, clock uint16) {
	if t.Year() < 1980 {
		t = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	date = uint16(t.Day() + int(t.Month())<<5 + (t.Year()-1980)<<9)
	clock = uint16(t.Second()/2 + t.Minute()<<5 + t.Hour()<<11)
	return date, clock
}
