package domain

import "time"

const (
	EventWeekOpened      = "week.opened"
	EventWeekClosed      = "week.closed"
	EventSeasonFinalized = "season.finalized"
)

type LifecycleEvent struct {
	Type        string    `json:"type"`
	WarehouseID string    `json:"warehouse_id,omitempty"`
	SeasonID    string    `json:"season_id"`
	Window      *Window   `json:"window,omitempty"`
	OperatorID  string    `json:"operator_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewWindowEvent(eventType string, w *Window) LifecycleEvent {
	return LifecycleEvent{
		Type:        eventType,
		WarehouseID: w.WarehouseID,
		SeasonID:    w.SeasonID,
		Window:      w.Clone(),
		OccurredAt:  time.Now().UTC(),
	}
}
