package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/miltrack/miltrack/internal/logging"
)

const presignExpiry = 15 * time.Minute

// S3Config carries the object-storage connection settings.
type S3Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// S3Store is the real blob-store backend over S3-compatible object storage
// (AWS S3 or MinIO). Paths map to object keys; URL issues presigned GETs.
type S3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	logger  logging.Logger
}

var _ Store = (*S3Store)(nil)

// NewS3Store builds the client once from static credentials.
func NewS3Store(ctx context.Context, cfg S3Config, logger logging.Logger) (*S3Store, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		}
		o.UsePathStyle = cfg.BaseEndpoint != ""
	})

	return &S3Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		logger:  logger,
	}, nil
}

// mapS3Error converts a driver failure into the capability taxonomy.
// fallback classifies failures the taxonomy has no specific entry for.
func mapS3Error(err error, fallback error) error {
	var noKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noKey) || errors.As(err, &notFound) {
		return ErrFileNotFound
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return ErrNetwork
	}
	return fmt.Errorf("%w: %v", fallback, err)
}

func (s *S3Store) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	s.logger.Debug(ctx, "upload", "path", path, "contentType", contentType, "bytes", len(data))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", mapS3Error(err, ErrUploadFailed)
	}
	return path, nil
}

func (s *S3Store) UploadImage(ctx context.Context, path string, data []byte) (string, error) {
	if err := validateImage(data); err != nil {
		return "", err
	}
	return s.Upload(ctx, path, data, "image/jpeg")
}

func (s *S3Store) Download(ctx context.Context, path string) ([]byte, error) {
	s.logger.Debug(ctx, "download", "path", path)

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return nil, mapS3Error(err, ErrDownloadFailed)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, mapS3Error(err, ErrDownloadFailed)
	}
	return data, nil
}

// Delete removes the object. S3 deletes are idempotent, so existence is
// checked first to keep delete one-shot across backends.
func (s *S3Store) Delete(ctx context.Context, path string) error {
	s.logger.Debug(ctx, "delete", "path", path)

	if err := s.head(ctx, path); err != nil {
		return err
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return mapS3Error(err, ErrFileNotFound)
	}
	return nil
}

// URL issues a presigned GET for the object.
func (s *S3Store) URL(ctx context.Context, path string) (string, error) {
	s.logger.Debug(ctx, "presign url", "path", path)

	if err := s.head(ctx, path); err != nil {
		return "", err
	}

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", mapS3Error(err, ErrDownloadFailed)
	}
	return req.URL, nil
}

func (s *S3Store) head(ctx context.Context, path string) error {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return mapS3Error(err, ErrFileNotFound)
	}
	return nil
}
