package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/warehouse-weeks/internal/core/isoweek"
)

// MaxWindowSpanDays is the largest allowed distance between a window's start and end date.
const MaxWindowSpanDays = isoweek.DaysPerWeek - 1

// Window is one operating week of a warehouse within a season. It is open while EndDate is nil.
type Window struct {
	ID          string     `json:"id" db:"id"`
	WarehouseID string     `json:"warehouse_id" db:"warehouse_id"`
	SeasonID    string     `json:"season_id" db:"season_id"`
	StartDate   time.Time  `json:"start_date" db:"start_date"`
	EndDate     *time.Time `json:"end_date" db:"end_date"`
	ISOWeekKey  string     `json:"iso_week_key" db:"iso_week_key"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// NewWindow builds an open window starting on startDate.
func NewWindow(warehouseID, seasonID string, startDate time.Time) (*Window, error) {
	warehouseID = strings.TrimSpace(warehouseID)
	seasonID = strings.TrimSpace(seasonID)
	if warehouseID == "" || seasonID == "" {
		return nil, ErrMissingScope
	}
	if startDate.IsZero() {
		return nil, ErrInvalidDate
	}

	start := isoweek.Date(startDate)

	return &Window{
		ID:          uuid.NewString(),
		WarehouseID: warehouseID,
		SeasonID:    seasonID,
		StartDate:   start,
		ISOWeekKey:  isoweek.ToKey(start).String(),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func (w *Window) IsOpen() bool {
	return w.EndDate == nil
}

// LastDay is the end date, or the latest day the window may still cover while open.
func (w *Window) LastDay() time.Time {
	if w.EndDate != nil {
		return *w.EndDate
	}
	return w.StartDate.AddDate(0, 0, MaxWindowSpanDays)
}

// ValidateEnd checks a candidate end date against the window's start date.
func (w *Window) ValidateEnd(endDate time.Time) error {
	if endDate.IsZero() {
		return ErrInvalidDate
	}
	span := isoweek.DaysBetween(w.StartDate, endDate)
	if span < 0 {
		return ErrEndBeforeStart
	}
	if span > MaxWindowSpanDays {
		return ErrWindowTooLong
	}
	return nil
}

// Close sets the end date. Closing is terminal.
func (w *Window) Close(endDate time.Time) error {
	if !w.IsOpen() {
		return ErrWindowNotFound
	}
	if err := w.ValidateEnd(endDate); err != nil {
		return err
	}
	end := isoweek.Date(endDate)
	w.EndDate = &end
	return nil
}

// AutoEnd picks the end date used when the window is closed on the operator's behalf:
// asOf, but never before the start, past the seventh day, or into the next closed
// window of the scope (nextClosedStart, nil when there is none).
func (w *Window) AutoEnd(asOf time.Time, nextClosedStart *time.Time) time.Time {
	end := isoweek.Date(asOf)
	if last := w.StartDate.AddDate(0, 0, MaxWindowSpanDays); end.After(last) {
		end = last
	}
	if nextClosedStart != nil {
		if limit := isoweek.Date(*nextClosedStart).AddDate(0, 0, -1); end.After(limit) {
			end = limit
		}
	}
	if end.Before(w.StartDate) {
		return w.StartDate
	}
	return end
}

// Covers reports whether d lies inside the closed range [StartDate, EndDate].
// Open windows cover nothing for overlap purposes.
func (w *Window) Covers(d time.Time) bool {
	if w.EndDate == nil {
		return false
	}
	d = isoweek.Date(d)
	return !d.Before(w.StartDate) && !d.After(*w.EndDate)
}

// OverlapsRange reports whether the closed window shares a day with [start, end].
func (w *Window) OverlapsRange(start, end time.Time) bool {
	if w.EndDate == nil {
		return false
	}
	return !isoweek.Date(start).After(*w.EndDate) && !isoweek.Date(end).Before(w.StartDate)
}

// Overdue reports an open window that has run past its seventh day. It is a display
// label only; an overdue window stays open until an operator closes it.
func (w *Window) Overdue(today time.Time) bool {
	return w.IsOpen() && isoweek.DaysBetween(w.StartDate, today) > MaxWindowSpanDays
}

// Week returns the ISO week the window starts in.
func (w *Window) Week() isoweek.Week {
	return isoweek.WeekOf(w.StartDate)
}

// Clone returns a copy that shares no pointers with w.
func (w *Window) Clone() *Window {
	c := *w
	if w.EndDate != nil {
		end := *w.EndDate
		c.EndDate = &end
	}
	return &c
}
