package eventrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/evanlin/lifeboard/internal/domain/caffeine"
	"github.com/evanlin/lifeboard/internal/domain/habits"
)

// MemoryRepository keeps brew events in process, for development and tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	events map[string]caffeine.BrewEvent
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{events: make(map[string]caffeine.BrewEvent)}
}

func (r *MemoryRepository) Insert(_ context.Context, event caffeine.BrewEvent) (caffeine.BrewEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[event.ID] = event
	return event, nil
}

func (r *MemoryRepository) ListRange(_ context.Context, from, to time.Time) ([]caffeine.BrewEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []caffeine.BrewEvent
	for _, event := range r.events {
		if event.Timestamp.Before(from) || !event.Timestamp.Before(to) {
			continue
		}
		out = append(out, event)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return habits.ErrNotFound
	}
	delete(r.events, id)
	return nil
}

var _ habits.Repository = (*MemoryRepository)(nil)
