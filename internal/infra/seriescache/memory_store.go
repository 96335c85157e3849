package seriescache

import (
	"context"
	"sync"
	"time"

	"github.com/evanlin/lifeboard/internal/domain/dashboard"
)

type memoryEntry struct {
	response  dashboard.SeriesResponse
	expiresAt time.Time
}

// MemoryStore caches series in process, for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (dashboard.SeriesResponse, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return dashboard.SeriesResponse{}, false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return dashboard.SeriesResponse{}, false, nil
	}
	return entry.response, true, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, response dashboard.SeriesResponse, ttl time.Duration) error {
	entry := memoryEntry{response: response}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()
	return nil
}

var _ dashboard.SeriesStore = (*MemoryStore)(nil)
