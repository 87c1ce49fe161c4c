package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/warehouse-weeks/internal/core/domain"
)

var _ domain.WindowRepository = (*BreakerWindowRepository)(nil)

type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "week-windows",
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// BreakerWindowRepository trips after repeated store failures and then answers with
// domain.ErrUnavailable without touching the store. Rule violations (conflict, not found,
// validation) count as successful calls.
type BreakerWindowRepository struct {
	next   domain.WindowRepository
	cb     *gobreaker.CircuitBreaker
	logger *zap.Logger
}

func NewBreakerWindowRepository(next domain.WindowRepository, cfg BreakerConfig, logger *zap.Logger) *BreakerWindowRepository {
	if logger == nil {
		logger = zap.NewNop()
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &BreakerWindowRepository{
		next:   next,
		cb:     gobreaker.NewCircuitBreaker(settings),
		logger: logger,
	}
}

func (r *BreakerWindowRepository) state() gobreaker.State {
	return r.cb.State()
}

// execute runs fn through the breaker. Domain errors, and failures of a request whose
// context is already done, are handed back to the caller but reported to the breaker as
// success: neither says anything about the store's health.
func (r *BreakerWindowRepository) execute(ctx context.Context, op string, fn func() (interface{}, error)) (interface{}, error) {
	var passErr error

	result, err := r.cb.Execute(func() (interface{}, error) {
		res, err := fn()
		if err != nil && (domain.IsDomainError(err) || ctx.Err() != nil) {
			passErr = err
			return nil, nil
		}
		return res, err
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, domain.Unavailable(op, err)
	}
	if err == nil && passErr != nil {
		err = passErr
	}
	if err != nil {
		if domain.IsDomainError(err) || errors.Is(err, domain.ErrUnavailable) {
			return nil, err
		}
		return nil, domain.Unavailable(op, err)
	}
	return result, nil
}

func asWindow(v interface{}, err error) (*domain.Window, error) {
	if err != nil {
		return nil, err
	}
	w, _ := v.(*domain.Window)
	return w, nil
}

func asWindows(v interface{}, err error) ([]*domain.Window, error) {
	if err != nil {
		return nil, err
	}
	windows, _ := v.([]*domain.Window)
	return windows, nil
}

func (r *BreakerWindowRepository) List(ctx context.Context, warehouseID, seasonID string) ([]*domain.Window, error) {
	return asWindows(r.execute(ctx, "list windows", func() (interface{}, error) {
		return r.next.List(ctx, warehouseID, seasonID)
	}))
}

func (r *BreakerWindowRepository) GetOpen(ctx context.Context, warehouseID, seasonID string) (*domain.Window, error) {
	return asWindow(r.execute(ctx, "get open window", func() (interface{}, error) {
		return r.next.GetOpen(ctx, warehouseID, seasonID)
	}))
}

func (r *BreakerWindowRepository) GetByID(ctx context.Context, id string) (*domain.Window, error) {
	return asWindow(r.execute(ctx, "get window", func() (interface{}, error) {
		return r.next.GetByID(ctx, id)
	}))
}

func (r *BreakerWindowRepository) Create(ctx context.Context, warehouseID, seasonID string, startDate time.Time) (*domain.Window, error) {
	return asWindow(r.execute(ctx, "create window", func() (interface{}, error) {
		return r.next.Create(ctx, warehouseID, seasonID, startDate)
	}))
}

func (r *BreakerWindowRepository) Close(ctx context.Context, windowID string, endDate time.Time) (*domain.Window, error) {
	return asWindow(r.execute(ctx, "close window", func() (interface{}, error) {
		return r.next.Close(ctx, windowID, endDate)
	}))
}

func (r *BreakerWindowRepository) FinalizeSeason(ctx context.Context, seasonID string, asOf, at time.Time) ([]*domain.Window, error) {
	return asWindows(r.execute(ctx, "finalize season", func() (interface{}, error) {
		return r.next.FinalizeSeason(ctx, seasonID, asOf, at)
	}))
}
