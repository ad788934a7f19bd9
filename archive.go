package ppap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Rindrics/ppap-cli/internal/archive"
	"github.com/Rindrics/ppap-cli/internal/crypto"
)

// Archive is an encrypted zip created next to its source file.
type Archive struct {
	Path           string
	Password       string
	SourceFileName string
}

// Archiver creates and removes archives. The package-level Compress and
// Cleanup functions back the default implementation.
type Archiver interface {
	Compress(sourcePath string) (*Archive, error)
	Cleanup(path string) error
}

type zipArchiver struct{}

func (zipArchiver) Compress(sourcePath string) (*Archive, error) { return Compress(sourcePath) }
func (zipArchiver) Cleanup(path string) error                    { return Cleanup(path) }

// DefaultArchiver returns the Archiver backed by Compress and Cleanup.
func DefaultArchiver() Archiver {
	return zipArchiver{}
}

// Compress encrypts the file at sourcePath into sourcePath + ".zip" using a
// freshly generated 16-character alphanumeric password.
func Compress(sourcePath string) (*Archive, error) {
	password, err := crypto.GeneratePassword()
	if err != nil {
		return nil, fmt.Errorf("generate password: %w", err)
	}
	return CompressWithPassword(sourcePath, password)
}

// CompressWithPassword encrypts the file at sourcePath with the given
// password. The archive holds a single entry named after the source file.
func CompressWithPassword(sourcePath, password string) (*Archive, error) {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return nil, &IOError{Op: "read", Path: sourcePath, Err: err}
	}
	if info.IsDir() {
		return nil, &IOError{Op: "read", Path: sourcePath, Err: errors.New("is a directory")}
	}

	content, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, &IOError{Op: "read", Path: sourcePath, Err: err}
	}

	name := filepath.Base(sourcePath)
	path := archive.PathFor(sourcePath)
	if err := archive.Create(path, name, content, password, info.ModTime()); err != nil {
		op := "write"
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) && pathErr.Op == "open" {
			op = "create"
		}
		return nil, &IOError{Op: op, Path: path, Err: err}
	}

	return &Archive{
		Path:           path,
		Password:       password,
		SourceFileName: name,
	}, nil
}

// Cleanup removes the archive at path. Removing a file that does not exist
// is an error.
func Cleanup(path string) error {
	if err := os.Remove(path); err != nil {
		return &IOError{Op: "remove", Path: path, Err: err}
	}
	return nil
}

// OpenArchive decrypts the archive at path and returns the name and content
// of its entry. A wrong password yields ErrInvalidPassword, or
// ErrAuthenticationFailed in the rare case the password verifier collides.
func OpenArchive(path, password string) (string, []byte, error) {
	entry, err := archive.Open(path, password)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return "", nil, &IOError{Op: "read", Path: path, Err: err}
		}
		return "", nil, err
	}
	return entry.Name, entry.Content, nil
}
