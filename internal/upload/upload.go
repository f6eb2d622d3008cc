// Package upload validates product images and moves them into storage.
package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"trimmers-api/internal/model"

	"github.com/rs/zerolog"
)

// DefaultMaxBytes is the largest accepted image (1 MiB).
const DefaultMaxBytes int64 = 1024 * 1024

// PublicPrefix is the URL path local uploads are served under.
const PublicPrefix = "/uploads/"

// Sink stores an uploaded file under name and returns its public URL.
// Storing a name twice replaces the earlier file.
type Sink interface {
	Move(ctx context.Context, src io.Reader, name string) (string, error)
}

// ImageUploader validates uploaded images and hands them to a Sink.
type ImageUploader struct {
	sink     Sink
	maxBytes int64
	logger   zerolog.Logger
}

// NewImageUploader creates an uploader storing into sink. A non-positive maxBytes uses DefaultMaxBytes.
func NewImageUploader(sink Sink, maxBytes int64, logger zerolog.Logger) *ImageUploader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &ImageUploader{
		sink:     sink,
		maxBytes: maxBytes,
		logger:   logger.With().Str("component", "image-uploader").Logger(),
	}
}

// Validate checks, in order, that a file is present, declares an image
// content type and fits within maxBytes.
func Validate(file *multipart.FileHeader, maxBytes int64) error {
	if file == nil {
		return model.ErrNoFileUploaded
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image") {
		return model.ErrNotAnImage
	}
	if file.Size > maxBytes {
		return model.ImageTooLarge(maxBytes)
	}
	return nil
}

// Upload validates file and stores it under its base name.
func (u *ImageUploader) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if err := Validate(file, u.maxBytes); err != nil {
		return "", err
	}

	name := filepath.Base(file.Filename)
	if name == "." || name == string(filepath.Separator) {
		return "", model.NewBadRequest("Please provide a file name")
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	url, err := u.sink.Move(ctx, src, name)
	if err != nil {
		u.logger.Error().Err(err).Str("file_name", name).Msg("failed to store image")
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	u.logger.Info().
		Str("file_name", name).
		Int64("size", file.Size).
		Str("url", url).
		Msg("image uploaded")

	return url, nil
}
