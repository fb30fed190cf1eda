package sink

import (
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
)

type Sink struct{}

func NewSink() *Sink {
	return &Sink{}
}

// Run gzip-compresses the serialized document and writes it to path via a
// temp file in the same directory plus rename, so a failed write never
// replaces a previously valid artifact. Returns the compressed size.
func (s *Sink) Run(doc string, path string) (int64, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}

	closed := false
	defer func() {
		if !closed {
			tmpFile.Close()
		}
		// Only removes when the rename never happened
		if _, statErr := os.Stat(tmpFile.Name()); !os.IsNotExist(statErr) {
			os.Remove(tmpFile.Name())
		}
	}()

	writer := gzip.NewWriter(tmpFile)
	if _, err := writer.Write([]byte(doc)); err != nil {
		return 0, fmt.Errorf("failed to compress document: %w", err)
	}
	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("failed to flush compressed stream: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return 0, fmt.Errorf("failed to sync temp file: %w", err)
	}

	info, err := tmpFile.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return 0, fmt.Errorf("failed to close temp file: %w", err)
	}
	closed = true

	if err := os.Rename(tmpFile.Name(), path); err != nil {
		return 0, fmt.Errorf("failed to replace output artifact: %w", err)
	}

	return info.Size(), nil
}
