package mediastore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/evanlin/lifeboard/internal/domain/content"
)

// ErrObjectNotFound indicates a missing object key.
var ErrObjectNotFound = errors.New("object not found")

type memoryObject struct {
	data     []byte
	mimeType string
}

// MemoryStore keeps attachments in process, for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]memoryObject)}
}

func (s *MemoryStore) Put(_ context.Context, key string, data []byte, mimeType string) (content.Media, error) {
	buf := make([]byte, len(data))
	copy(buf, data)
	s.mu.Lock()
	s.objects[key] = memoryObject{data: buf, mimeType: mimeType}
	s.mu.Unlock()
	return content.Media{Key: key, Size: int64(len(data)), MimeType: mimeType}, nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	obj, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

var _ content.ObjectStorage = (*MemoryStore)(nil)
