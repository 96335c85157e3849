package userrepo

import (
	"context"
	"sync"
	"time"

	"github.com/evanlin/lifeboard/internal/domain/auth"
)

// MemoryRepository keeps accounts in process, for development and tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]auth.User
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1, users: make(map[int64]auth.User)}
}

func (r *MemoryRepository) Create(_ context.Context, email, passwordHash, googleSub string) (auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return auth.User{}, auth.ErrEmailExists
		}
	}
	user := auth.User{
		ID:           r.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		GoogleSub:    googleSub,
		CreatedAt:    time.Now().UTC(),
	}
	r.nextID++
	r.users[user.ID] = user
	return user, nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (auth.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, true, nil
		}
	}
	return auth.User{}, false, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (auth.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	return user, ok, nil
}

func (r *MemoryRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

func (r *MemoryRepository) SetGoogleSub(_ context.Context, id int64, sub string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil
	}
	user.GoogleSub = sub
	r.users[id] = user
	return nil
}

var _ auth.Repository = (*MemoryRepository)(nil)
