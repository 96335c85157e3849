package habits

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/evanlin/lifeboard/internal/domain/caffeine"
	apperrors "github.com/evanlin/lifeboard/pkg/errors"
)

func TestService_RecordAndList(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, newTestLogger())

	ts := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	amount := 38.0
	event, err := svc.Record(context.Background(), RecordRequest{
		Timestamp: ts,
		Type:      "Espresso",
		AmountML:  &amount,
	})
	require.NoError(t, err)
	require.NotEmpty(t, event.ID)
	require.Equal(t, "espresso", event.Type)
	require.Equal(t, ts, event.Timestamp)

	resp, err := svc.List(context.Background(), ListRequest{
		From: ts.Add(-time.Hour),
		To:   ts.Add(time.Hour),
	})
	require.NoError(t, err)
	require.Len(t, resp.Events, 1)
	require.Equal(t, event.ID, resp.Events[0].ID)
}

func TestService_RecordRejectsFutureTimestamp(t *testing.T) {
	svc := NewService(newStubRepo(), newTestLogger())

	_, err := svc.Record(context.Background(), RecordRequest{
		Timestamp: time.Now().Add(time.Hour),
		Type:      "v60",
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestService_RecordRejectsZeroTimestamp(t *testing.T) {
	svc := NewService(newStubRepo(), newTestLogger())

	_, err := svc.Record(context.Background(), RecordRequest{Type: "v60"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestService_RecordBlankTypeFallsBack(t *testing.T) {
	svc := NewService(newStubRepo(), newTestLogger())

	event, err := svc.Record(context.Background(), RecordRequest{
		Timestamp: time.Now().Add(-time.Hour),
		Type:      "  ",
	})
	require.NoError(t, err)
	require.Equal(t, string(caffeine.BrewOther), event.Type)
}

func TestService_ListDefaultsToLastWeek(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, newTestLogger())

	resp, err := svc.List(context.Background(), ListRequest{})
	require.NoError(t, err)
	require.WithinDuration(t, time.Now(), resp.To, time.Minute)
	require.Equal(t, 7*24*time.Hour, resp.To.Sub(resp.From))
}

func TestService_ListRejectsInvertedRange(t *testing.T) {
	svc := NewService(newStubRepo(), newTestLogger())

	now := time.Now()
	_, err := svc.List(context.Background(), ListRequest{From: now, To: now.Add(-time.Hour)})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestService_DeleteNotFound(t *testing.T) {
	svc := NewService(newStubRepo(), newTestLogger())

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "not_found"))
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubRepo struct {
	events map[string]caffeine.BrewEvent
}

func newStubRepo() *stubRepo {
	return &stubRepo{events: make(map[string]caffeine.BrewEvent)}
}

func (s *stubRepo) Insert(_ context.Context, event caffeine.BrewEvent) (caffeine.BrewEvent, error) {
	s.events[event.ID] = event
	return event, nil
}

func (s *stubRepo) ListRange(_ context.Context, from, to time.Time) ([]caffeine.BrewEvent, error) {
	var out []caffeine.BrewEvent
	for _, event := range s.events {
		if event.Timestamp.Before(from) || !event.Timestamp.Before(to) {
			continue
		}
		out = append(out, event)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (s *stubRepo) Delete(_ context.Context, id string) error {
	if _, ok := s.events[id]; !ok {
		return ErrNotFound
	}
	delete(s.events, id)
	return nil
}
