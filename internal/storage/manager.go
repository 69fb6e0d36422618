package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/md-dataset/md-dataset/internal/domain"
	"github.com/md-dataset/md-dataset/internal/frame"
	apperrors "github.com/md-dataset/md-dataset/internal/pkg/errors"
	"github.com/md-dataset/md-dataset/internal/pkg/metrics"
)

// ObjectStore is a key/value blob store addressed by bucket and key
type ObjectStore interface {
	// Get opens the object for reading. Missing objects return a
	// StorageNotFound error.
	Get(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	Put(ctx context.Context, bucket, key string, r io.Reader, size int64) error
}

// Manager moves tables between object storage and the dataset model
type Manager struct {
	store         ObjectStore
	defaultBucket string
	logger        *zap.Logger
}

// NewManager creates a new storage manager. defaultBucket is used when a
// call does not name a bucket, and for every upload.
func NewManager(store ObjectStore, defaultBucket string, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		store:         store,
		defaultBucket: defaultBucket,
		logger:        logger,
	}
}

// DefaultBucket returns the configured default bucket
func (m *Manager) DefaultBucket() string {
	return m.defaultBucket
}

func (m *Manager) resolveBucket(bucket string) (string, error) {
	if bucket != "" {
		return bucket, nil
	}
	if m.defaultBucket != "" {
		return m.defaultBucket, nil
	}
	return "", apperrors.Configuration("source bucket not provided and no default bucket configured")
}

// Download reads the object at (bucket, key) fully into memory. The object
// reader is closed before Download returns, on success and on error.
func (m *Manager) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	bucket, err := m.resolveBucket(bucket)
	if err != nil {
		metrics.RecordStorageError(metrics.OpDownload, apperrors.Code(err))
		return nil, err
	}

	log := m.logger.With(zap.String("bucket", bucket), zap.String("key", key))
	start := time.Now()
	log.Debug("download")

	rc, err := m.store.Get(ctx, bucket, key)
	if err != nil {
		err = storageError(bucket+"/"+key, err)
		metrics.RecordStorageError(metrics.OpDownload, apperrors.Code(err))
		return nil, err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			log.Warn("failed to close object reader", zap.Error(cerr))
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rc); err != nil {
		err = storageError(bucket+"/"+key, err)
		metrics.RecordStorageError(metrics.OpDownload, apperrors.Code(err))
		return nil, err
	}

	metrics.RecordStorageOp(metrics.OpDownload, time.Since(start), buf.Len())
	log.Debug("download complete", zap.Int("bytes", buf.Len()))

	return buf.Bytes(), nil
}

// LoadTable downloads and decodes one parquet table. It implements
// domain.TableLoader.
func (m *Manager) LoadTable(ctx context.Context, bucket, key string) (*frame.Frame, error) {
	data, err := m.Download(ctx, bucket, key)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	f, err := DecodeParquet(data)
	if err != nil {
		metrics.RecordStorageError(metrics.OpDecode, apperrors.CodeDecode)
		return nil, apperrors.Decode(key, err)
	}
	metrics.RecordStorageOp(metrics.OpDecode, time.Since(start), 0)
	metrics.RecordTableHydrated()

	rows, cols := f.Shape()
	m.logger.Debug("loaded table",
		zap.String("key", key),
		zap.Int("rows", rows),
		zap.Int("columns", cols),
	)

	return f, nil
}

// SaveTables uploads every table to the default bucket in order. Items are
// independent: the first failure is returned as a StorageError naming its
// path, and tables uploaded before it are kept.
func (m *Manager) SaveTables(ctx context.Context, tables []domain.PathTable) error {
	if m.defaultBucket == "" {
		return apperrors.Configuration("no default bucket configured for uploads")
	}

	for _, t := range tables {
		if err := m.SaveTable(ctx, t.Path, t.Data); err != nil {
			return err
		}
	}

	m.logger.Info("saved tables", zap.Int("count", len(tables)), zap.String("bucket", m.defaultBucket))
	return nil
}

// SaveTable encodes one frame as parquet and uploads it to the default
// bucket at path
func (m *Manager) SaveTable(ctx context.Context, path string, f *frame.Frame) error {
	if m.defaultBucket == "" {
		return apperrors.Configuration("no default bucket configured for uploads")
	}

	start := time.Now()
	data, err := EncodeParquet(f)
	if err != nil {
		metrics.RecordStorageError(metrics.OpEncode, apperrors.CodeStorage)
		return apperrors.Storage(path, err)
	}
	metrics.RecordStorageOp(metrics.OpEncode, time.Since(start), 0)

	start = time.Now()
	if err := m.store.Put(ctx, m.defaultBucket, path, bytes.NewReader(data), int64(len(data))); err != nil {
		metrics.RecordStorageError(metrics.OpUpload, apperrors.CodeStorage)
		m.logger.Error("upload failed", zap.String("path", path), zap.Error(err))
		return uploadError(path, err)
	}
	metrics.RecordStorageOp(metrics.OpUpload, time.Since(start), len(data))

	m.logger.Debug("uploaded table", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}

// storageError keeps classified errors and wraps everything else as a
// StorageError for path
func storageError(path string, err error) error {
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.Storage(path, err)
}

// uploadError always reports a StorageError naming the upload path
func uploadError(path string, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code == apperrors.CodeStorage && appErr.Details["path"] == path {
		return err
	}
	return apperrors.Storage(path, err)
}
