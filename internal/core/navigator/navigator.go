// Package navigator orders and selects weeks for display. Nothing here decides whether a
// write is allowed; that is the operation gate's job.
package navigator

import (
	"sort"
	"time"

	"github.com/comitanigiacomo/warehouse-weeks/internal/core/domain"
	"github.com/comitanigiacomo/warehouse-weeks/internal/core/isoweek"
)

// View is the navigation state of a season's week selector.
type View struct {
	Windows    []*domain.Window `json:"windows"`
	Selected   *domain.Window   `json:"selected"`
	Index      int              `json:"index"`
	Position   int              `json:"position"`
	Total      int              `json:"total"`
	PreviousID string           `json:"previous_id,omitempty"`
	NextID     string           `json:"next_id,omitempty"`
}

// Sort orders windows by start date, oldest first, without touching the input slice.
func Sort(windows []*domain.Window) []*domain.Window {
	out := make([]*domain.Window, len(windows))
	copy(out, windows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out
}

func IndexOf(windows []*domain.Window, windowID string) int {
	if windowID == "" {
		return -1
	}
	for i, w := range windows {
		if w.ID == windowID {
			return i
		}
	}
	return -1
}

// Position is the 1-based place of the window within the season, 0 when absent.
func Position(windows []*domain.Window, windowID string) int {
	return IndexOf(windows, windowID) + 1
}

func HasPrevious(windows []*domain.Window, index int) bool {
	return index > 0 && index < len(windows)
}

func HasNext(windows []*domain.Window, index int) bool {
	return index >= 0 && index < len(windows)-1
}

func openIndex(windows []*domain.Window) int {
	for i, w := range windows {
		if w.IsOpen() {
			return i
		}
	}
	return -1
}

// ResolveSelected picks the window to show: the requested one, else the open one, else the
// one at defaultIndex. An out of range defaultIndex falls back to the latest window.
func ResolveSelected(windows []*domain.Window, requestedID string, defaultIndex int) *domain.Window {
	if len(windows) == 0 {
		return nil
	}
	if i := IndexOf(windows, requestedID); i >= 0 {
		return windows[i]
	}
	if i := openIndex(windows); i >= 0 {
		return windows[i]
	}
	if defaultIndex >= 0 && defaultIndex < len(windows) {
		return windows[defaultIndex]
	}
	return windows[len(windows)-1]
}

// JumpToDate finds the window whose [start, end] range touches the ISO week of date.
// Open windows extend to today. A window holding date itself wins over one that only
// shares the week.
func JumpToDate(windows []*domain.Window, date, today time.Time) *domain.Window {
	week := isoweek.WeekOf(date)
	day := isoweek.Date(date)

	var match *domain.Window
	for _, w := range windows {
		end := isoweek.Date(today)
		if w.EndDate != nil {
			end = *w.EndDate
		}
		if end.Before(w.StartDate) {
			end = w.StartDate
		}

		if w.StartDate.After(week.End) || end.Before(week.Start) {
			continue
		}
		if !day.Before(w.StartDate) && !day.After(end) {
			return w
		}
		if match == nil {
			match = w
		}
	}
	return match
}

// Build assembles the view for a sorted slice of windows.
func Build(windows []*domain.Window, selected *domain.Window) View {
	v := View{
		Windows: windows,
		Index:   -1,
		Total:   len(windows),
	}
	if v.Windows == nil {
		v.Windows = []*domain.Window{}
	}
	if selected == nil {
		return v
	}

	v.Selected = selected
	v.Index = IndexOf(windows, selected.ID)
	v.Position = Position(windows, selected.ID)
	if HasPrevious(windows, v.Index) {
		v.PreviousID = windows[v.Index-1].ID
	}
	if HasNext(windows, v.Index) {
		v.NextID = windows[v.Index+1].ID
	}
	return v
}
