package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/warehouse-weeks/internal/core/domain"
	"github.com/comitanigiacomo/warehouse-weeks/internal/core/isoweek"
)

type SeasonService struct {
	seasons  domain.SeasonRepository
	windows  domain.WindowRepository
	events   domain.EventPublisher
	metrics  MetricsRecorder
	location *time.Location
	logger   *zap.Logger
}

func NewSeasonService(
	seasons domain.SeasonRepository,
	windows domain.WindowRepository,
	events domain.EventPublisher,
	metrics MetricsRecorder,
	location *time.Location,
	logger *zap.Logger,
) *SeasonService {
	if events == nil {
		events = nopPublisher{}
	}
	if metrics == nil {
		metrics = nopRecorder{}
	}
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeasonService{
		seasons:  seasons,
		windows:  windows,
		events:   events,
		metrics:  metrics,
		location: location,
		logger:   logger,
	}
}

func (s *SeasonService) IsFinalized(ctx context.Context, seasonID string) (bool, error) {
	return s.seasons.IsFinalized(ctx, seasonID)
}

func (s *SeasonService) Get(ctx context.Context, seasonID string) (*domain.Season, error) {
	if strings.TrimSpace(seasonID) == "" {
		return nil, domain.ErrMissingScope
	}
	return s.seasons.Get(ctx, seasonID)
}

// Finalize closes every open week of the season and marks it read-only in one atomic
// store operation. Finalizing twice is a no-op.
func (s *SeasonService) Finalize(ctx context.Context, seasonID string) (*domain.Season, error) {
	season, err := s.finalize(ctx, seasonID)
	s.metrics.RecordTransition(transitionFinalizeSeason, outcome(err))
	if err != nil {
		s.logger.Warn("finalize season failed", zap.String("season_id", seasonID), zap.Error(err))
		return nil, err
	}
	return season, nil
}

func (s *SeasonService) finalize(ctx context.Context, seasonID string) (*domain.Season, error) {
	if strings.TrimSpace(seasonID) == "" {
		return nil, domain.ErrMissingScope
	}

	current, err := s.seasons.Get(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	if current.Finalized {
		return current, nil
	}

	now := time.Now().UTC()
	closed, err := s.windows.FinalizeSeason(ctx, seasonID, isoweek.Today(s.location), now)
	if err != nil {
		return nil, err
	}
	// The flag is already stored; this lets season decorators such as the cache see it.
	if err := s.seasons.Finalize(ctx, seasonID, now); err != nil {
		return nil, err
	}

	for _, w := range closed {
		s.logger.Info("week closed by season finalization",
			zap.String("window_id", w.ID),
			zap.String("warehouse_id", w.WarehouseID),
			zap.String("season_id", w.SeasonID),
		)
		s.events.Publish(domain.NewWindowEvent(domain.EventWeekClosed, w))
	}

	s.logger.Info("season finalized", zap.String("season_id", seasonID), zap.Int("closed_weeks", len(closed)))
	s.events.Publish(domain.LifecycleEvent{
		Type:       domain.EventSeasonFinalized,
		SeasonID:   seasonID,
		OccurredAt: now,
	})

	return s.seasons.Get(ctx, seasonID)
}
