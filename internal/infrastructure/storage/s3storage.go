// Package storage persists generated videos to S3-compatible object storage
// and downloads provider assets.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/reelpop-inc/reelpop/internal/shared/config"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

// ErrStorageDisabled is returned by DisabledStorage.
var ErrStorageDisabled = errors.New("object storage is not configured")

// S3VideoStorage works with AWS S3 and S3-compatible services such as MinIO
// or Supabase Storage.
type S3VideoStorage struct {
	client *s3.Client
	bucket string
	logger logger.Interface
}

func NewS3VideoStorage(ctx context.Context, cfg config.StorageConfig, log logger.Interface) (*S3VideoStorage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			endpoint := cfg.Endpoint
			if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
				endpoint = "https://" + endpoint
			}
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &S3VideoStorage{client: client, bucket: cfg.Bucket, logger: log}, nil
}

// Upload writes data to key, replacing any existing object.
func (s *S3VideoStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		s.logger.Errorw("failed to upload object", "bucket", s.bucket, "key", key, "error", err)
		return fmt.Errorf("failed to upload object: %w", err)
	}

	s.logger.Infow("object uploaded", "bucket", s.bucket, "key", key, "size", len(data))
	return nil
}

func (s *S3VideoStorage) Bucket() string {
	return s.bucket
}

// DisabledStorage rejects every upload. It stands in when no bucket is configured.
type DisabledStorage struct{}

func (DisabledStorage) Upload(context.Context, string, []byte, string) error {
	return ErrStorageDisabled
}
