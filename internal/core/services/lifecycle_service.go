package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/warehouse-weeks/internal/core/domain"
	"github.com/comitanigiacomo/warehouse-weeks/internal/core/isoweek"
)

// LifecycleService is the only place weeks are opened and closed.
type LifecycleService struct {
	windows domain.WindowRepository
	seasons domain.SeasonRepository
	events  domain.EventPublisher
	metrics MetricsRecorder
	logger  *zap.Logger
}

func NewLifecycleService(
	windows domain.WindowRepository,
	seasons domain.SeasonRepository,
	events domain.EventPublisher,
	metrics MetricsRecorder,
	logger *zap.Logger,
) *LifecycleService {
	if events == nil {
		events = nopPublisher{}
	}
	if metrics == nil {
		metrics = nopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LifecycleService{
		windows: windows,
		seasons: seasons,
		events:  events,
		metrics: metrics,
		logger:  logger,
	}
}

// OperatorID identifies who asked for the transition. It is carried on the emitted event
// for auditing and may be empty for internal callers.
type StartWeekInput struct {
	WarehouseID string
	SeasonID    string
	StartDate   time.Time
	OperatorID  string
}

type FinishWeekInput struct {
	WindowID   string
	EndDate    time.Time
	OperatorID string
}

func (s *LifecycleService) StartWeek(ctx context.Context, input StartWeekInput) (*domain.Window, error) {
	window, err := s.startWeek(ctx, input)
	s.metrics.RecordTransition(transitionStartWeek, outcome(err))
	if err != nil {
		s.logger.Info("start week rejected",
			zap.String("warehouse_id", input.WarehouseID),
			zap.String("season_id", input.SeasonID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("week opened",
		zap.String("window_id", window.ID),
		zap.String("warehouse_id", window.WarehouseID),
		zap.String("season_id", window.SeasonID),
		zap.String("iso_week", window.ISOWeekKey),
		zap.String("operator_id", input.OperatorID),
	)
	event := domain.NewWindowEvent(domain.EventWeekOpened, window)
	event.OperatorID = input.OperatorID
	s.events.Publish(event)
	return window, nil
}

func (s *LifecycleService) startWeek(ctx context.Context, input StartWeekInput) (*domain.Window, error) {
	if strings.TrimSpace(input.WarehouseID) == "" || strings.TrimSpace(input.SeasonID) == "" {
		return nil, domain.ErrMissingScope
	}
	if input.StartDate.IsZero() {
		return nil, domain.ErrInvalidDate
	}

	if err := s.ensureWritable(ctx, input.SeasonID); err != nil {
		return nil, err
	}

	// Create re-checks the flag atomically with the insert, so a concurrent finalization
	// cannot leave an open window behind.
	return s.windows.Create(ctx, input.WarehouseID, input.SeasonID, isoweek.Date(input.StartDate))
}

func (s *LifecycleService) FinishWeek(ctx context.Context, input FinishWeekInput) (*domain.Window, error) {
	window, err := s.finishWeek(ctx, input)
	s.metrics.RecordTransition(transitionFinishWeek, outcome(err))
	if err != nil {
		s.logger.Info("finish week rejected", zap.String("window_id", input.WindowID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("week closed",
		zap.String("window_id", window.ID),
		zap.String("warehouse_id", window.WarehouseID),
		zap.String("season_id", window.SeasonID),
		zap.Time("end_date", *window.EndDate),
		zap.String("operator_id", input.OperatorID),
	)
	event := domain.NewWindowEvent(domain.EventWeekClosed, window)
	event.OperatorID = input.OperatorID
	s.events.Publish(event)
	return window, nil
}

func (s *LifecycleService) finishWeek(ctx context.Context, input FinishWeekInput) (*domain.Window, error) {
	if input.EndDate.IsZero() {
		return nil, domain.ErrInvalidDate
	}

	current, err := s.windows.GetByID(ctx, input.WindowID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureWritable(ctx, current.SeasonID); err != nil {
		return nil, err
	}
	if !current.IsOpen() {
		return nil, domain.ErrWindowNotFound
	}

	return s.windows.Close(ctx, current.ID, isoweek.Date(input.EndDate))
}

func (s *LifecycleService) ensureWritable(ctx context.Context, seasonID string) error {
	finalized, err := s.seasons.IsFinalized(ctx, seasonID)
	if err != nil {
		return err
	}
	if finalized {
		return fmt.Errorf("%w: season %s is read-only", domain.ErrSeasonFinalized, seasonID)
	}
	return nil
}

// CurrentWindow returns the open window, else the most recent closed one, else nil.
func (s *LifecycleService) CurrentWindow(ctx context.Context, warehouseID, seasonID string) (*domain.Window, error) {
	if strings.TrimSpace(warehouseID) == "" || strings.TrimSpace(seasonID) == "" {
		return nil, domain.ErrMissingScope
	}

	open, err := s.windows.GetOpen(ctx, warehouseID, seasonID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return open, nil
	}

	windows, err := s.windows.List(ctx, warehouseID, seasonID)
	if err != nil {
		return nil, err
	}

	var latest *domain.Window
	for _, w := range windows {
		if latest == nil || w.StartDate.After(latest.StartDate) {
			latest = w
		}
	}
	return latest, nil
}

func (s *LifecycleService) ListWindows(ctx context.Context, warehouseID, seasonID string) ([]*domain.Window, error) {
	if strings.TrimSpace(warehouseID) == "" || strings.TrimSpace(seasonID) == "" {
		return nil, domain.ErrMissingScope
	}
	return s.windows.List(ctx, warehouseID, seasonID)
}

func (s *LifecycleService) GetWindow(ctx context.Context, id string) (*domain.Window, error) {
	return s.windows.GetByID(ctx, id)
}
