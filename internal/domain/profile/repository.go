package profile

import "context"

// Repository abstracts single-row profile persistence.
type Repository interface {
	Load(ctx context.Context) (Record, bool, error)
	Save(ctx context.Context, record Record) (Record, error)
}
