package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalSink stores files in a directory on disk.
type LocalSink struct {
	basePath string
}

// NewLocalSink creates a sink writing to dir, creating it if needed.
func NewLocalSink(dir string) (*LocalSink, error) {
	p, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(p, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create upload directory: %w", err)
	}

	return &LocalSink{basePath: p}, nil
}

// Dir returns the absolute directory files are written to.
func (l *LocalSink) Dir() string {
	return l.basePath
}

// Move copies src next to its destination and renames it into place, so a
// reader never sees a partially written image.
func (l *LocalSink) Move(ctx context.Context, src io.Reader, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name = filepath.Base(name)

	staged, err := os.CreateTemp(l.basePath, ".staged-*")
	if err != nil {
		return "", fmt.Errorf("failed to stage upload: %w", err)
	}
	defer os.Remove(staged.Name())

	_, copyErr := io.Copy(staged, src)
	closeErr := staged.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		return "", fmt.Errorf("failed to write staged upload %s: %w", name, err)
	}

	if err := os.Rename(staged.Name(), filepath.Join(l.basePath, name)); err != nil {
		return "", fmt.Errorf("failed to store upload %s: %w", name, err)
	}

	return PublicPrefix + name, nil
}
