package testutil

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	apperrors "github.com/md-dataset/md-dataset/internal/pkg/errors"
)

// MemoryObjectStore is an in-memory object store keyed by bucket and key.
// It counts reads and tracks every reader it hands out so tests can assert
// that readers are closed.
type MemoryObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	gets    map[string]int
	readers []*TrackedReader

	// FailPut makes Put fail for the listed keys
	FailPut map[string]error
}

// NewMemoryObjectStore creates an empty store
func NewMemoryObjectStore() *MemoryObjectStore {
	return &MemoryObjectStore{
		objects: make(map[string][]byte),
		gets:    make(map[string]int),
		FailPut: make(map[string]error),
	}
}

func objectKey(bucket, key string) string {
	return bucket + "/" + key
}

// Seed stores data at (bucket, key)
func (s *MemoryObjectStore) Seed(bucket, key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectKey(bucket, key)] = bytes.Clone(data)
}

// Get returns a reader over the stored object, or a StorageNotFound error
func (s *MemoryObjectStore) Get(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := objectKey(bucket, key)
	s.gets[k]++

	data, ok := s.objects[k]
	if !ok {
		return nil, apperrors.StorageNotFound(bucket, key)
	}

	r := &TrackedReader{Reader: bytes.NewReader(data)}
	s.readers = append(s.readers, r)
	return r, nil
}

// Put stores the content of r at (bucket, key)
func (s *MemoryObjectStore) Put(_ context.Context, bucket, key string, r io.Reader, size int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.FailPut[key]; ok {
		return err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if int64(len(data)) != size {
		return errors.New("short write")
	}
	s.objects[objectKey(bucket, key)] = data
	return nil
}

// Object returns the stored bytes at (bucket, key)
func (s *MemoryObjectStore) Object(bucket, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[objectKey(bucket, key)]
	return data, ok
}

// Keys returns every stored "bucket/key", sorted
func (s *MemoryObjectStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetCount returns how many times (bucket, key) was read
func (s *MemoryObjectStore) GetCount(bucket, key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets[objectKey(bucket, key)]
}

// OpenReaders returns the number of readers not yet closed
func (s *MemoryObjectStore) OpenReaders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	open := 0
	for _, r := range s.readers {
		if !r.Closed() {
			open++
		}
	}
	return open
}

// TrackedReader records whether it has been closed
type TrackedReader struct {
	io.Reader
	mu     sync.Mutex
	closed bool
}

// Close marks the reader closed
func (r *TrackedReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// Closed reports whether Close was called
func (r *TrackedReader) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
