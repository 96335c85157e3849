package profile

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evanlin/lifeboard/internal/domain/caffeine"
	apperrors "github.com/evanlin/lifeboard/pkg/errors"
)

func TestService_UpdateAndGet(t *testing.T) {
	svc := NewService(&stubRepo{}, newTestLogger())

	weight := 70.0
	halfLife := 4.5
	record, err := svc.Update(context.Background(), UpdateRequest{
		BodyProfile: caffeine.BodyProfile{WeightKG: &weight, HalfLifeHours: &halfLife},
	})
	require.NoError(t, err)
	require.NotZero(t, record.UpdatedAt)
	require.Equal(t, 70.0, *record.WeightKG)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, record.UpdatedAt, got.UpdatedAt)
	require.Equal(t, 4.5, *got.HalfLifeHours)
}

func TestService_GetBeforeAnyUpdate(t *testing.T) {
	svc := NewService(&stubRepo{}, newTestLogger())

	_, err := svc.Get(context.Background())
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "not_found"))
}

func TestService_UpdateValidation(t *testing.T) {
	svc := NewService(&stubRepo{}, newTestLogger())

	cases := []struct {
		name  string
		tweak func(*caffeine.BodyProfile)
	}{
		{"negative weight", func(p *caffeine.BodyProfile) { v := -1.0; p.WeightKG = &v }},
		{"zero weight", func(p *caffeine.BodyProfile) { v := 0.0; p.WeightKG = &v }},
		{"excessive half-life", func(p *caffeine.BodyProfile) { v := 72.0; p.HalfLifeHours = &v }},
		{"bioavailability above one", func(p *caffeine.BodyProfile) { v := 1.5; p.Bioavailability = &v }},
		{"fat over 100", func(p *caffeine.BodyProfile) { v := 120.0; p.BodyFatPercentage = &v }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p caffeine.BodyProfile
			tc.tweak(&p)
			_, err := svc.Update(context.Background(), UpdateRequest{BodyProfile: p})
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, "invalid_input"))
		})
	}
}

func TestService_SnapshotEmptyWhenUnset(t *testing.T) {
	svc := NewService(&stubRepo{}, newTestLogger())

	snapshot, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Nil(t, snapshot.WeightKG)
	require.Nil(t, snapshot.HalfLifeHours)
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubRepo struct {
	record Record
	stored bool
}

func (s *stubRepo) Load(_ context.Context) (Record, bool, error) {
	return s.record, s.stored, nil
}

func (s *stubRepo) Save(_ context.Context, record Record) (Record, error) {
	s.record = record
	s.stored = true
	return record, nil
}
