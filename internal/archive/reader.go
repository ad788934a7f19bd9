package archive

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"os"

	"github.com/Rindrics/ppap-cli/internal/crypto"
)

// Entry is the decrypted content of an archive.
type Entry struct {
	Name    string
	Content []byte
}

// Read decrypts the single entry of the archive in r.
func Read(r io.ReaderAt, size int64, password string) (*Entry, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}
	if len(zr.File) != 1 {
		return nil, fmt.Errorf("%w: found %d", ErrUnexpectedEntries, len(zr.File))
	}

	f := zr.File[0]
	if f.Method != MethodAES || f.Flags&flagEncrypted == 0 {
		return nil, ErrNotEncrypted
	}

	method, err := parseAESExtra(f.Extra)
	if err != nil {
		return nil, err
	}
	if !isSupportedMethod(method) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMethod, method)
	}

	raw, err := f.OpenRaw()
	if err != nil {
		return nil, fmt.Errorf("failed to open entry: %w", err)
	}
	sealed, err := io.ReadAll(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to read entry: %w", err)
	}

	payload, err := crypto.Open(password, sealed)
	if err != nil {
		return nil, err
	}

	content := payload
	if method == zip.Deflate {
		fr := flate.NewReader(bytes.NewReader(payload))
		content, err = io.ReadAll(fr)
		fr.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to inflate entry: %w", err)
		}
	}

	if uint64(len(content)) != f.UncompressedSize64 {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSizeMismatch, len(content), f.UncompressedSize64)
	}

	return &Entry{Name: f.Name, Content: content}, nil
}

// Open decrypts the single entry of the archive file at path.
func Open(path, password string) (*Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return Read(f, info.Size(), password)
}
