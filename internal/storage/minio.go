package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/md-dataset/md-dataset/internal/config"
	apperrors "github.com/md-dataset/md-dataset/internal/pkg/errors"
)

const parquetContentType = "application/vnd.apache.parquet"

// NewMinioClient creates a MinIO client from the storage configuration
func NewMinioClient(cfg config.StorageConfig) (*minio.Client, error) {
	if cfg.Endpoint == "" {
		return nil, apperrors.Configuration("minio_endpoint is not set")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return client, nil
}

// MinioStore implements ObjectStore on top of a MinIO / S3 client
type MinioStore struct {
	client *minio.Client
}

// NewMinioStore creates a new MinIO-backed object store
func NewMinioStore(client *minio.Client) *MinioStore {
	return &MinioStore{client: client}
}

// Get opens the object. GetObject is lazy, so the object is stat'ed first
// to surface a missing key here rather than on the first read.
func (s *MinioStore) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, translateError(bucket, key, err)
	}

	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, translateError(bucket, key, err)
	}

	return obj, nil
}

// Put uploads size bytes from r
func (s *MinioStore) Put(ctx context.Context, bucket, key string, r io.Reader, size int64) error {
	_, err := s.client.PutObject(ctx, bucket, key, r, size, minio.PutObjectOptions{
		ContentType: parquetContentType,
	})
	if err != nil {
		return translateError(bucket, key, err)
	}
	return nil
}

// EnsureBucket creates bucket when it does not exist
func (s *MinioStore) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

func translateError(bucket, key string, err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return apperrors.StorageNotFound(bucket, key).WithError(err)
	}
	return apperrors.Storage(bucket+"/"+key, err)
}
