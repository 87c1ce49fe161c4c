package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/warehouse-weeks/internal/core/domain"
)

// GateService answers whether a mutating feature may write right now. It never returns
// an error: failing reads become a denial with a reason.
type GateService struct {
	windows domain.WindowRepository
	seasons domain.SeasonRepository
	metrics MetricsRecorder
	logger  *zap.Logger
}

func NewGateService(windows domain.WindowRepository, seasons domain.SeasonRepository, metrics MetricsRecorder, logger *zap.Logger) *GateService {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GateService{
		windows: windows,
		seasons: seasons,
		metrics: metrics,
		logger:  logger,
	}
}

// Decide evaluates the rules in order; the first match wins.
func (s *GateService) Decide(ctx context.Context, opCtx domain.OperationContext) domain.Decision {
	d := s.decide(ctx, opCtx.WarehouseID, opCtx.SeasonID, func() (*domain.Window, *domain.Decision) {
		return opCtx.SelectedWindow, nil
	})
	s.metrics.RecordDecision(d)
	return d
}

// DecideForWindowID is Decide for callers that only hold the selected window's id.
// An empty id means no selection.
func (s *GateService) DecideForWindowID(ctx context.Context, warehouseID, seasonID, windowID string) domain.Decision {
	d := s.decide(ctx, warehouseID, seasonID, func() (*domain.Window, *domain.Decision) {
		if windowID == "" {
			return nil, nil
		}
		w, err := s.windows.GetByID(ctx, windowID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				deny := domain.Deny(domain.ReasonUnknownWeek)
				return nil, &deny
			}
			deny := s.unavailable("read selected window", err)
			return nil, &deny
		}
		if w.WarehouseID != warehouseID || w.SeasonID != seasonID {
			deny := domain.Deny(domain.ReasonUnknownWeek)
			return nil, &deny
		}
		return w, nil
	})
	s.metrics.RecordDecision(d)
	return d
}

func (s *GateService) decide(ctx context.Context, warehouseID, seasonID string, selected func() (*domain.Window, *domain.Decision)) domain.Decision {
	if strings.TrimSpace(warehouseID) == "" || strings.TrimSpace(seasonID) == "" {
		return domain.Deny(domain.ReasonMissingContext)
	}

	finalized, err := s.seasons.IsFinalized(ctx, seasonID)
	if err != nil {
		return s.unavailable("read season flag", err)
	}
	if finalized {
		return domain.Deny(domain.ReasonSeasonFinalized)
	}

	window, early := selected()
	if early != nil {
		return *early
	}

	open, err := s.windows.GetOpen(ctx, warehouseID, seasonID)
	if err != nil {
		return s.unavailable("read open window", err)
	}

	if window == nil {
		if open == nil {
			return domain.Deny(domain.ReasonNoActiveWeek)
		}
		return domain.Allow()
	}

	if !window.IsOpen() || open == nil || window.ID != open.ID {
		return domain.Deny(domain.ReasonWeekClosed)
	}
	return domain.Allow()
}

func (s *GateService) unavailable(op string, err error) domain.Decision {
	s.logger.Warn("operation gate could not read state", zap.String("op", op), zap.Error(err))
	return domain.Deny(domain.ReasonUnavailable)
}
