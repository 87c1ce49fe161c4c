package domain

// Gate reasons, shown to operators as-is.
const (
	ReasonMissingContext  = "missing context"
	ReasonSeasonFinalized = "season finalized"
	ReasonNoActiveWeek    = "no active week"
	ReasonWeekClosed      = "week closed"
	ReasonUnknownWeek     = "unknown week"
	ReasonUnavailable     = "week state unavailable"
)

// Decision is recomputed on every request; it is never stored.
type Decision struct {
	CanOperate bool    `json:"can_operate"`
	Reason     *string `json:"reason"`
}

func Allow() Decision {
	return Decision{CanOperate: true}
}

func Deny(reason string) Decision {
	return Decision{CanOperate: false, Reason: &reason}
}

// ReasonText returns the reason, or "" for an allowed decision.
func (d Decision) ReasonText() string {
	if d.Reason == nil {
		return ""
	}
	return *d.Reason
}

// OperationContext is what a mutating feature knows when it asks the gate.
type OperationContext struct {
	WarehouseID    string
	SeasonID       string
	SelectedWindow *Window
}
