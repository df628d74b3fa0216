package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	adapterStorage "github.com/vkarasev/catalog-media/internal/adapter/storage"
	"github.com/vkarasev/catalog-media/internal/domain"
	"github.com/vkarasev/catalog-media/internal/infrastructure/config"
)

// S3Backend stores objects in an S3-compatible bucket. A custom
// endpoint with path-style addressing covers MinIO and other
// compatible servers.
type S3Backend struct {
	client        *s3.Client
	presigner     *s3.PresignClient
	bucket        string
	publicURL     string
	presignExpiry time.Duration
}

func NewS3Backend(cfg config.S3Config) (*S3Backend, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 storage requires a bucket")
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			)
		},
	}

	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.UsePathStyle
		})
	}

	client := s3.New(s3.Options{}, opts...)
	presigner := s3.NewPresignClient(client)

	return &S3Backend{
		client:        client,
		presigner:     presigner,
		bucket:        cfg.Bucket,
		publicURL:     cfg.PublicURL,
		presignExpiry: cfg.PresignExpiry,
	}, nil
}

func (s *S3Backend) Save(ctx context.Context, path string, reader io.Reader, contentType string, size int64) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(path),
		Body:          reader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return classifyS3("uploading to s3", err)
	}
	return nil
}

func (s *S3Backend) Read(ctx context.Context, path string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return nil, classifyS3("reading from s3", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading from s3: %w", err)
	}
	return data, nil
}

func (s *S3Backend) Stat(ctx context.Context, path string) (adapterStorage.ObjectInfo, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return adapterStorage.ObjectInfo{}, classifyS3("stat on s3", err)
	}
	return adapterStorage.ObjectInfo{
		Size:         aws.ToInt64(out.ContentLength),
		ContentType:  aws.ToString(out.ContentType),
		LastModified: aws.ToTime(out.LastModified),
	}, nil
}

func (s *S3Backend) URL(ctx context.Context, path string) (string, error) {
	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s", s.publicURL, path), nil
	}

	presignResult, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = s.presignExpiry
	})
	if err != nil {
		return "", classifyS3("generating presigned url", err)
	}
	return presignResult.URL, nil
}

func (s *S3Backend) Delete(ctx context.Context, path string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return classifyS3("deleting from s3", err)
	}
	return nil
}

func (s *S3Backend) Exists(ctx context.Context, path string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		classified := classifyS3("stat on s3", err)
		if errors.Is(classified, domain.ErrFileNotFound) {
			return false, nil
		}
		return false, classified
	}
	return true, nil
}

// classifyS3 maps SDK failures onto domain sentinels so callers can
// react without importing AWS types.
func classifyS3(op string, err error) error {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return fmt.Errorf("%s: %w", op, domain.ErrFileNotFound)
	}

	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return fmt.Errorf("%s: %w", op, domain.ErrBucketNotFound)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "AccessDenied" {
		return fmt.Errorf("%s: %w", op, domain.ErrAccessDenied)
	}

	return fmt.Errorf("%s: %w: %w", op, domain.ErrBackendUnavailable, err)
}
