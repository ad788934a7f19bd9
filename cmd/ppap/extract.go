package main

import (
	"fmt"
	"os"
	"path/filepath"

	ppap "github.com/Rindrics/ppap-cli"
)

// extract decrypts archivePath into outDir and returns the written path.
// Existing files are never overwritten.
func extract(archivePath, password, outDir string) (string, error) {
	name, content, err := ppap.OpenArchive(archivePath, password)
	if err != nil {
		return "", err
	}

	if outDir == "" {
		outDir = filepath.Dir(archivePath)
	}
	dest := filepath.Join(outDir, filepath.Base(name))

	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create output: %w", err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(dest)
		return "", fmt.Errorf("write output: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write output: %w", err)
	}
	return dest, nil
}
