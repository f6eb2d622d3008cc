package upload

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"trimmers-api/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// PutObjectAPI is the subset of the S3 client used by S3Sink.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink stores files as objects in an S3 bucket.
type S3Sink struct {
	client    PutObjectAPI
	bucket    string
	prefix    string
	publicURL string
	logger    zerolog.Logger
}

// NewS3Sink creates an S3 sink using the default AWS credential chain.
func NewS3Sink(ctx context.Context, cfg config.S3Config, logger zerolog.Logger) (*S3Sink, error) {
	logger = logger.With().Str("component", "s3-image-sink").Logger()

	// Load AWS configuration
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", cfg.Bucket).
		Str("region", cfg.Region).
		Msg("S3 image sink initialised")

	return NewS3SinkWithClient(s3.NewFromConfig(awsCfg), cfg, logger), nil
}

// NewS3SinkWithClient creates an S3 sink around an existing client.
func NewS3SinkWithClient(client PutObjectAPI, cfg config.S3Config, logger zerolog.Logger) *S3Sink {
	return &S3Sink{
		client:    client,
		bucket:    cfg.Bucket,
		prefix:    cfg.Prefix,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		logger:    logger,
	}
}

// Move uploads src to the bucket under prefix+name.
func (s *S3Sink) Move(ctx context.Context, src io.Reader, name string) (string, error) {
	name = filepath.Base(name)
	key := s.prefix + name

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   src,
	}
	if contentType := mime.TypeByExtension(filepath.Ext(name)); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to put object to S3")
		return "", fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	s.logger.Debug().Str("bucket", s.bucket).Str("key", key).Msg("image stored in S3")

	return s.publicURL + "/" + key, nil
}
