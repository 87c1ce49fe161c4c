package domain

import (
	"context"
	"time"
)

type WindowRepository interface {
	// List returns the windows of a scope ordered by start date, read from durable state.
	List(ctx context.Context, warehouseID, seasonID string) ([]*Window, error)

	// GetOpen returns the open window of a scope, or nil when none is open.
	GetOpen(ctx context.Context, warehouseID, seasonID string) (*Window, error)

	// GetByID retrieves a window, open or closed.
	GetByID(ctx context.Context, id string) (*Window, error)

	// Create opens a new window. The season flag check, the open-window check, the overlap
	// check and the insert must happen atomically for the scope.
	Create(ctx context.Context, warehouseID, seasonID string, startDate time.Time) (*Window, error)

	// Close sets the end date of an open window. A closed window is never reopened.
	// Fails with ErrSeasonFinalized when the window's season is finalized.
	Close(ctx context.Context, windowID string, endDate time.Time) (*Window, error)

	// FinalizeSeason closes every open window of a season with Window.AutoEnd(asOf) and
	// sets the season's finalization flag in the same atomic step, so no Create or Close
	// can slip in between. Returns the windows it closed; a finalized season yields none.
	FinalizeSeason(ctx context.Context, seasonID string, asOf, at time.Time) ([]*Window, error)
}

type SeasonRepository interface {
	// IsFinalized reports the season's finalization flag. Unknown seasons are not finalized.
	IsFinalized(ctx context.Context, seasonID string) (bool, error)

	// Get returns the season record, or a non-finalized record for an unknown season.
	Get(ctx context.Context, seasonID string) (*Season, error)

	// Finalize sets the flag. It is idempotent and one-way.
	Finalize(ctx context.Context, seasonID string, at time.Time) error
}

// EventPublisher receives lifecycle events after a transition has been persisted.
type EventPublisher interface {
	Publish(event LifecycleEvent)
}
