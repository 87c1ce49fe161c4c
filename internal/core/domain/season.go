package domain

import "time"

// Season carries the finalization flag of an externally managed season.
// Once Finalized is true this service never clears it.
type Season struct {
	ID          string     `json:"id" db:"id"`
	Finalized   bool       `json:"finalized" db:"finalized"`
	FinalizedAt *time.Time `json:"finalized_at,omitempty" db:"finalized_at"`
}
