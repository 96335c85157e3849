package profile

import (
	"context"
	"log/slog"
	"time"

	"github.com/evanlin/lifeboard/internal/domain/caffeine"
	apperrors "github.com/evanlin/lifeboard/pkg/errors"
	"github.com/evanlin/lifeboard/pkg/util"
)

// Service exposes the body profile workflows.
type Service interface {
	Get(ctx context.Context) (Record, error)
	Update(ctx context.Context, req UpdateRequest) (Record, error)
	// Snapshot returns the simulator-facing view, an empty profile when
	// nothing was stored yet.
	Snapshot(ctx context.Context) (caffeine.BodyProfile, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs the profile service.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "profile.service"),
		now:    util.NowUTC,
	}
}

func (s *service) Get(ctx context.Context) (Record, error) {
	record, found, err := s.repo.Load(ctx)
	if err != nil {
		return Record{}, apperrors.Wrap("storage_error", "failed to load profile", err)
	}
	if !found {
		return Record{}, apperrors.Wrap("not_found", "no profile stored yet", nil)
	}
	return record, nil
}

func (s *service) Update(ctx context.Context, req UpdateRequest) (Record, error) {
	if err := validate(req.BodyProfile); err != nil {
		return Record{}, err
	}
	record, err := s.repo.Save(ctx, Record{BodyProfile: req.BodyProfile, UpdatedAt: s.now().UTC()})
	if err != nil {
		return Record{}, apperrors.Wrap("storage_error", "failed to save profile", err)
	}
	s.logger.Info("profile updated")
	return record, nil
}

func (s *service) Snapshot(ctx context.Context) (caffeine.BodyProfile, error) {
	record, found, err := s.repo.Load(ctx)
	if err != nil {
		return caffeine.BodyProfile{}, apperrors.Wrap("storage_error", "failed to load profile", err)
	}
	if !found {
		return caffeine.BodyProfile{}, nil
	}
	return record.BodyProfile, nil
}

// validate rejects values the simulator would silently clamp anyway, so the
// owner notices a typo at write time instead of wondering about flat charts.
func validate(p caffeine.BodyProfile) error {
	checks := []struct {
		value   *float64
		min     float64
		max     float64
		message string
	}{
		{p.WeightKG, 0, 500, "weightKg must be between 0 and 500"},
		{p.HeightCM, 0, 300, "heightCm must be between 0 and 300"},
		{p.VdLPerKG, 0, 5, "vdLPerKg must be between 0 and 5"},
		{p.HalfLifeHours, 0, 48, "halfLifeHours must be between 0 and 48"},
		{p.CaffeineSensitivity, 0, 10, "caffeineSensitivity must be between 0 and 10"},
		{p.Bioavailability, 0, 1, "bioavailability must be between 0 and 1"},
		{p.BodyFatPercentage, 0, 100, "bodyFatPercentage must be between 0 and 100"},
		{p.MusclePercentage, 0, 100, "musclePercentage must be between 0 and 100"},
	}
	for _, c := range checks {
		if c.value == nil {
			continue
		}
		if *c.value <= c.min || *c.value > c.max {
			return apperrors.Wrap("invalid_input", c.message, nil)
		}
	}
	return nil
}
