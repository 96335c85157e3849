package dashboard

import (
	"context"
	"time"

	"github.com/evanlin/lifeboard/internal/domain/caffeine"
)

// EventSource supplies the raw brew log for a window. Order is irrelevant;
// the simulator sorts.
type EventSource interface {
	EventsBetween(ctx context.Context, from, to time.Time) ([]caffeine.BrewEvent, error)
}

// ProfileSource supplies the physiology snapshot.
type ProfileSource interface {
	Snapshot(ctx context.Context) (caffeine.BodyProfile, error)
}

// SeriesStore caches computed series keyed by their resolved window.
type SeriesStore interface {
	Get(ctx context.Context, key string) (SeriesResponse, bool, error)
	Save(ctx context.Context, key string, response SeriesResponse, ttl time.Duration) error
}
