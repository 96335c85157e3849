package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/evanlin/lifeboard/internal/domain/caffeine"
	apperrors "github.com/evanlin/lifeboard/pkg/errors"
	"github.com/evanlin/lifeboard/pkg/metrics"
	"github.com/evanlin/lifeboard/pkg/util"
)

// carryOverLookback is how far before the window start events are still
// loaded. At the default five hour half-life, 48 hours is more than nine
// half-lives, so anything older rounds to zero milligrams anyway.
const carryOverLookback = 48 * time.Hour

// Service aggregates the brew log and profile into chart-ready series. The
// simulator underneath is pure; this layer owns loading and caching.
type Service interface {
	Series(ctx context.Context, req SeriesRequest) (SeriesResponse, error)
	Current(ctx context.Context) (CurrentResponse, error)
}

type service struct {
	cfg      Config
	events   EventSource
	profiles ProfileSource
	store    SeriesStore
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs the dashboard service.
func NewService(cfg Config, events EventSource, profiles ProfileSource, store SeriesStore, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		events:   events,
		profiles: profiles,
		store:    store,
		logger:   logger.With("component", "dashboard.service"),
		now:      util.NowUTC,
	}
}

func (s *service) Series(ctx context.Context, req SeriesRequest) (SeriesResponse, error) {
	opts, err := s.resolveOptions(req)
	if err != nil {
		return SeriesResponse{}, err
	}

	key := cacheKey(opts)
	if cached, found, cacheErr := s.store.Get(ctx, key); cacheErr != nil {
		s.logger.Warn("series cache read failed", "error", cacheErr)
	} else if found {
		cached.Cached = true
		return cached, nil
	}

	response, err := s.compute(ctx, opts)
	if err != nil {
		return SeriesResponse{}, err
	}
	if err := s.store.Save(ctx, key, response, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("series cache write failed", "error", err)
	}
	return response, nil
}

func (s *service) Current(ctx context.Context) (CurrentResponse, error) {
	now := s.now().UTC().Truncate(time.Minute)
	opts, err := s.resolveOptions(SeriesRequest{
		StartMS:     now.Add(-time.Hour).UnixMilli(),
		EndMS:       now.Add(time.Minute).UnixMilli(),
		GridMinutes: 1,
	})
	if err != nil {
		return CurrentResponse{}, err
	}
	response, err := s.compute(ctx, opts)
	if err != nil {
		return CurrentResponse{}, err
	}
	last := response.Points[len(response.Points)-1]
	return CurrentResponse{At: last.Timestamp, BodyMG: last.BodyMG, BloodMGPerL: last.BloodMGPerL}, nil
}

// resolveOptions pins the window to concrete bounds so cache keys stay
// stable for a minute at a time.
func (s *service) resolveOptions(req SeriesRequest) (caffeine.SimulationOptions, error) {
	endMS := req.EndMS
	if endMS == 0 {
		endMS = s.now().UTC().Truncate(time.Minute).UnixMilli()
	}
	startMS := req.StartMS
	if startMS == 0 {
		startMS = endMS - 24*time.Hour.Milliseconds()
	}
	if endMS < startMS {
		return caffeine.SimulationOptions{}, apperrors.Wrap("invalid_input", "window end precedes start", nil)
	}
	if s.cfg.MaxWindow > 0 && endMS-startMS > s.cfg.MaxWindow.Milliseconds() {
		return caffeine.SimulationOptions{}, apperrors.Wrap("invalid_input", "requested window exceeds the history limit", nil)
	}
	if req.GridMinutes < 0 {
		return caffeine.SimulationOptions{}, apperrors.Wrap("invalid_input", "gridMinutes cannot be negative", nil)
	}
	return caffeine.SimulationOptions{
		StartMS:     startMS,
		EndMS:       endMS,
		GridMinutes: req.GridMinutes,
		AlignToHour: req.AlignToHour,
	}, nil
}

func (s *service) compute(ctx context.Context, opts caffeine.SimulationOptions) (SeriesResponse, error) {
	from := time.UnixMilli(opts.StartMS).Add(-carryOverLookback)
	to := time.UnixMilli(opts.EndMS)
	events, err := s.events.EventsBetween(ctx, from, to)
	if err != nil {
		return SeriesResponse{}, apperrors.Wrap("storage_error", "failed to load brew events", err)
	}
	snapshot, err := s.profiles.Snapshot(ctx)
	if err != nil {
		return SeriesResponse{}, apperrors.Wrap("storage_error", "failed to load profile", err)
	}

	points := caffeine.Simulate(events, snapshot, opts)
	grid := caffeine.BuildGrid(opts, time.UnixMilli(opts.EndMS))
	return SeriesResponse{
		Points:  points,
		Stats:   summarize(points),
		StartMS: grid.StartMS,
		EndMS:   grid.EndMS,
		StepMS:  grid.StepMS,
	}, nil
}

func summarize(points []caffeine.Point) metrics.SeriesStats {
	var stats metrics.SeriesStats
	for _, p := range points {
		stats.TotalIntakeMG += p.IntakeMG
		if p.BodyMG > stats.PeakBodyMG {
			stats.PeakBodyMG = p.BodyMG
			stats.PeakAt = p.Timestamp
		}
	}
	if len(points) > 0 {
		stats.EndingBodyMG = points[len(points)-1].BodyMG
	}
	return stats
}

func cacheKey(opts caffeine.SimulationOptions) string {
	return fmt.Sprintf("series:%d:%d:%d:%t", opts.StartMS, opts.EndMS, opts.GridMinutes, opts.AlignToHour)
}
