package habits

import (
	"context"
	"errors"
	"time"

	"github.com/evanlin/lifeboard/internal/domain/caffeine"
)

// ErrNotFound indicates the event id does not exist.
var ErrNotFound = errors.New("brew event not found")

// Repository abstracts brew event persistence.
type Repository interface {
	Insert(ctx context.Context, event caffeine.BrewEvent) (caffeine.BrewEvent, error)
	ListRange(ctx context.Context, from, to time.Time) ([]caffeine.BrewEvent, error)
	Delete(ctx context.Context, id string) error
}
