package domain

import (
	"errors"
	"fmt"

	"github.com/comitanigiacomo/warehouse-weeks/internal/core/isoweek"
)

// Error classes. Every error returned by the core matches exactly one of these with errors.Is.
var (
	ErrInvalidDate     = isoweek.ErrInvalidDate
	ErrValidation      = errors.New("validation error")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
	ErrSeasonFinalized = errors.New("season finalized")
	ErrUnavailable     = errors.New("week store unavailable")
)

var (
	ErrWindowAlreadyOpen = fmt.Errorf("%w: window already open", ErrConflict)
	ErrWindowOverlaps    = fmt.Errorf("%w: overlaps existing window", ErrValidation)
	ErrEndBeforeStart    = fmt.Errorf("%w: end date before start date", ErrValidation)
	ErrWindowTooLong     = fmt.Errorf("%w: window exceeds 7 days", ErrValidation)
	ErrMissingScope      = fmt.Errorf("%w: warehouse and season are required", ErrValidation)
	ErrWindowNotFound    = fmt.Errorf("%w: open window not found", ErrNotFound)
)

// Unavailable wraps a persistence or transport failure so callers can tell it apart
// from "no window".
func Unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
}

// IsDomainError reports whether err is an expected outcome of a lifecycle rule rather
// than an infrastructure failure.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSeasonFinalized)
}
