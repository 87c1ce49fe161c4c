package services

import (
	"errors"

	"github.com/comitanigiacomo/warehouse-weeks/internal/core/domain"
)

// MetricsRecorder is implemented by the prometheus adapter.
type MetricsRecorder interface {
	RecordTransition(transition, outcome string)
	RecordDecision(d domain.Decision)
}

type nopRecorder struct{}

func (nopRecorder) RecordTransition(string, string) {}
func (nopRecorder) RecordDecision(domain.Decision)  {}

type nopPublisher struct{}

func (nopPublisher) Publish(domain.LifecycleEvent) {}

const (
	transitionStartWeek      = "start_week"
	transitionFinishWeek     = "finish_week"
	transitionFinalizeSeason = "finalize_season"
)

// outcome labels an operation result by error class.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrSeasonFinalized):
		return "season_finalized"
	case errors.Is(err, domain.ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
