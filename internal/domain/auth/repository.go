package auth

import (
	"context"
	"errors"
)

// ErrEmailExists indicates a duplicate email address.
var ErrEmailExists = errors.New("email already exists")

// Repository abstracts owner account persistence.
type Repository interface {
	Create(ctx context.Context, email, passwordHash, googleSub string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	GetByID(ctx context.Context, id int64) (User, bool, error)
	Count(ctx context.Context) (int64, error)
	SetGoogleSub(ctx context.Context, id int64, sub string) error
}
