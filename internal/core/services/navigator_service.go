package services

import (
	"context"
	"strings"
	"time"

	"github.com/comitanigiacomo/warehouse-weeks/internal/core/domain"
	"github.com/comitanigiacomo/warehouse-weeks/internal/core/isoweek"
	"github.com/comitanigiacomo/warehouse-weeks/internal/core/navigator"
)

// NavigatorService builds the week selector for the UI. It is read-only.
type NavigatorService struct {
	windows  domain.WindowRepository
	location *time.Location
}

func NewNavigatorService(windows domain.WindowRepository, location *time.Location) *NavigatorService {
	if location == nil {
		location = time.UTC
	}
	return &NavigatorService{windows: windows, location: location}
}

type NavigateInput struct {
	WarehouseID string
	SeasonID    string
	RequestedID string
	// DefaultIndex is the last known selection; nil selects the latest week.
	DefaultIndex *int
	// Date, when set, jumps to the week covering it. No match leaves nothing selected.
	Date *time.Time
}

func (s *NavigatorService) Navigate(ctx context.Context, input NavigateInput) (navigator.View, error) {
	if strings.TrimSpace(input.WarehouseID) == "" || strings.TrimSpace(input.SeasonID) == "" {
		return navigator.View{}, domain.ErrMissingScope
	}

	windows, err := s.windows.List(ctx, input.WarehouseID, input.SeasonID)
	if err != nil {
		return navigator.View{}, err
	}
	windows = navigator.Sort(windows)

	if input.Date != nil {
		selected := navigator.JumpToDate(windows, *input.Date, isoweek.Today(s.location))
		return navigator.Build(windows, selected), nil
	}

	defaultIndex := -1
	if input.DefaultIndex != nil {
		defaultIndex = *input.DefaultIndex
	}
	return navigator.Build(windows, navigator.ResolveSelected(windows, input.RequestedID, defaultIndex)), nil
}
