package habits

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/evanlin/lifeboard/internal/domain/caffeine"
	apperrors "github.com/evanlin/lifeboard/pkg/errors"
	"github.com/evanlin/lifeboard/pkg/util"
)

// Service exposes the brew log workflows.
type Service interface {
	Record(ctx context.Context, req RecordRequest) (caffeine.BrewEvent, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	Delete(ctx context.Context, id string) error
	// EventsBetween feeds the dashboard aggregation without the list
	// request defaulting; bounds are taken as given.
	EventsBetween(ctx context.Context, from, to time.Time) ([]caffeine.BrewEvent, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs the habits service.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "habits.service"),
		now:    util.NowUTC,
	}
}

func (s *service) Record(ctx context.Context, req RecordRequest) (caffeine.BrewEvent, error) {
	if req.Timestamp.IsZero() {
		return caffeine.BrewEvent{}, apperrors.Wrap("invalid_input", "timestamp is required", nil)
	}
	if req.Timestamp.After(s.now().Add(time.Minute)) {
		return caffeine.BrewEvent{}, apperrors.Wrap("invalid_input", "timestamp cannot be in the future", nil)
	}

	// Unknown brew types are allowed; the simulator degrades them to its
	// generic profile. Only an entirely blank type is normalized here.
	brewType := strings.ToLower(strings.TrimSpace(req.Type))
	if brewType == "" {
		brewType = string(caffeine.BrewOther)
	}

	event := caffeine.BrewEvent{
		ID:        uuid.NewString(),
		Timestamp: req.Timestamp.UTC(),
		Type:      brewType,
		AmountML:  req.AmountML,
		MG:        req.MG,
	}
	stored, err := s.repo.Insert(ctx, event)
	if err != nil {
		return caffeine.BrewEvent{}, apperrors.Wrap("storage_error", "failed to record brew", err)
	}
	s.logger.Info("brew recorded", "id", stored.ID, "type", stored.Type)
	return stored, nil
}

func (s *service) List(ctx context.Context, req ListRequest) (ListResponse, error) {
	to := req.To
	if to.IsZero() {
		to = s.now().UTC()
	}
	from := req.From
	if from.IsZero() {
		from = to.Add(-7 * 24 * time.Hour)
	}
	if from.After(to) {
		return ListResponse{}, apperrors.Wrap("invalid_input", "from must precede to", nil)
	}

	events, err := s.repo.ListRange(ctx, from, to)
	if err != nil {
		return ListResponse{}, apperrors.Wrap("storage_error", "failed to list brews", err)
	}
	return ListResponse{Events: events, From: from, To: to}, nil
}

func (s *service) EventsBetween(ctx context.Context, from, to time.Time) ([]caffeine.BrewEvent, error) {
	return s.repo.ListRange(ctx, from, to)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.Wrap("invalid_input", "id is required", nil)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperrors.Wrap("not_found", "brew event not found", err)
		}
		return apperrors.Wrap("storage_error", "failed to delete brew", err)
	}
	return nil
}
