package dashboard

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/evanlin/lifeboard/internal/domain/caffeine"
	apperrors "github.com/evanlin/lifeboard/pkg/errors"
)

func TestService_SeriesComputesAndCaches(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	events := &stubEvents{events: []caffeine.BrewEvent{
		brewAt(now.Add(-2*time.Hour), 80),
	}}
	store := newStubStore()
	svc := newServiceAt(t, Config{CacheTTL: time.Minute}, events, &stubProfiles{}, store, now)

	resp, err := svc.Series(context.Background(), SeriesRequest{})
	require.NoError(t, err)
	require.False(t, resp.Cached)
	require.NotEmpty(t, resp.Points)
	require.Equal(t, now.Add(-24*time.Hour).UnixMilli(), resp.StartMS)
	require.Equal(t, now.UnixMilli(), resp.EndMS)
	require.Equal(t, int64(15*60*1000), resp.StepMS)
	// 80 mg scaled by the default 0.99 bioavailability, rounded per point
	require.Equal(t, 79.0, resp.Stats.TotalIntakeMG)
	require.Positive(t, resp.Stats.EndingBodyMG)

	// events before the window still decay into it
	require.True(t, events.from.Before(now.Add(-24*time.Hour)))

	again, err := svc.Series(context.Background(), SeriesRequest{})
	require.NoError(t, err)
	require.True(t, again.Cached)
	require.Equal(t, resp.Points, again.Points)
}

func TestService_SeriesRejectsOversizedWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	svc := newServiceAt(t, Config{MaxWindow: 24 * time.Hour}, &stubEvents{}, &stubProfiles{}, newStubStore(), now)

	_, err := svc.Series(context.Background(), SeriesRequest{
		StartMS: now.Add(-48 * time.Hour).UnixMilli(),
		EndMS:   now.UnixMilli(),
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestService_SeriesRejectsInvertedWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	svc := newServiceAt(t, Config{}, &stubEvents{}, &stubProfiles{}, newStubStore(), now)

	_, err := svc.Series(context.Background(), SeriesRequest{
		StartMS: now.UnixMilli(),
		EndMS:   now.Add(-time.Hour).UnixMilli(),
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestService_Current(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	events := &stubEvents{events: []caffeine.BrewEvent{
		brewAt(now.Add(-30*time.Minute), 100),
	}}
	svc := newServiceAt(t, Config{}, events, &stubProfiles{}, newStubStore(), now)

	resp, err := svc.Current(context.Background())
	require.NoError(t, err)
	require.Equal(t, now, resp.At)
	require.Positive(t, resp.BodyMG)
	require.Positive(t, resp.BloodMGPerL)
}

func TestService_SeriesSurvivesCacheFailure(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	store := newStubStore()
	store.fail = true
	svc := newServiceAt(t, Config{CacheTTL: time.Minute}, &stubEvents{}, &stubProfiles{}, store, now)

	resp, err := svc.Series(context.Background(), SeriesRequest{})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Points)
}

func newServiceAt(t *testing.T, cfg Config, events EventSource, profiles ProfileSource, store SeriesStore, now time.Time) Service {
	t.Helper()
	svc := NewService(cfg, events, profiles, store, newTestLogger()).(*service)
	svc.now = func() time.Time { return now }
	return svc
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

func brewAt(ts time.Time, mg float64) caffeine.BrewEvent {
	return caffeine.BrewEvent{ID: ts.Format(time.RFC3339), Timestamp: ts, Type: "espresso", MG: &mg}
}

type stubEvents struct {
	events []caffeine.BrewEvent
	from   time.Time
	to     time.Time
}

func (s *stubEvents) EventsBetween(_ context.Context, from, to time.Time) ([]caffeine.BrewEvent, error) {
	s.from, s.to = from, to
	var out []caffeine.BrewEvent
	for _, event := range s.events {
		if event.Timestamp.Before(from) || !event.Timestamp.Before(to) {
			continue
		}
		out = append(out, event)
	}
	return out, nil
}

type stubProfiles struct{}

func (s *stubProfiles) Snapshot(_ context.Context) (caffeine.BodyProfile, error) {
	return caffeine.BodyProfile{}, nil
}

type stubStore struct {
	entries map[string]SeriesResponse
	fail    bool
}

func newStubStore() *stubStore {
	return &stubStore{entries: make(map[string]SeriesResponse)}
}

func (s *stubStore) Get(_ context.Context, key string) (SeriesResponse, bool, error) {
	if s.fail {
		return SeriesResponse{}, false, context.DeadlineExceeded
	}
	resp, ok := s.entries[key]
	return resp, ok, nil
}

func (s *stubStore) Save(_ context.Context, key string, response SeriesResponse, _ time.Duration) error {
	if s.fail {
		return context.DeadlineExceeded
	}
	s.entries[key] = response
	return nil
}
