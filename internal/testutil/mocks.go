package testutil

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockObjectStore is a testify mock of the storage object store
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockObjectStore) Put(ctx context.Context, bucket, key string, r io.Reader, size int64) error {
	args := m.Called(ctx, bucket, key, r, size)
	return args.Error(0)
}

// FailingReader returns err from every Read and records Close
type FailingReader struct {
	Err    error
	Closed bool
}

func (r *FailingReader) Read([]byte) (int, error) { return 0, r.Err }

func (r *FailingReader) Close() error {
	r.Closed = true
	return nil
}
