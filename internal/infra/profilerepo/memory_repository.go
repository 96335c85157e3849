package profilerepo

import (
	"context"
	"sync"

	"github.com/evanlin/lifeboard/internal/domain/profile"
)

// MemoryRepository keeps the profile in process.
type MemoryRepository struct {
	mu     sync.RWMutex
	record profile.Record
	stored bool
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Load(_ context.Context) (profile.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.record, r.stored, nil
}

func (r *MemoryRepository) Save(_ context.Context, record profile.Record) (profile.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record = record
	r.stored = true
	return record, nil
}

var _ profile.Repository = (*MemoryRepository)(nil)
