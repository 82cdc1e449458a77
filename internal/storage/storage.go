package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/shop-queue/internal/config"
)

var ErrDisabled = errors.New("storage: bucket not configured")

// Uploader grava um objeto e devolve a URL pública.
type Uploader interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type putAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3 struct {
	api        putAPI
	bucket     string
	publicBase string
}

// NewS3 aceita endpoints compatíveis (MinIO, R2) via S3Endpoint.
func NewS3(cfg *config.Config) (*S3, error) {
	if cfg.S3Bucket == "" {
		return nil, ErrDisabled
	}

	opts := s3.Options{
		Region: cfg.S3Region,
	}
	if cfg.S3AccessKey != "" {
		opts.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		)
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	base := cfg.S3PublicBaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &S3{
		api:        s3.New(opts),
		bucket:     cfg.S3Bucket,
		publicBase: strings.TrimRight(base, "/"),
	}, nil
}

func (s *S3) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=86400"),
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}

	return s.publicBase + "/" + key, nil
}

var _ Uploader = (*S3)(nil)
