package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/comitanigiacomo/warehouse-weeks/internal/core/domain"
)

var _ domain.WindowRepository = (*InMemoryWindowRepository)(nil)

// InMemoryWindowRepository keeps windows in process memory. It locks the season store's
// mutex for every operation, so season finalization and window writes are serialized and
// each check-and-write is atomic.
type InMemoryWindowRepository struct {
	store   map[string]*domain.Window
	seasons *InMemorySeasonRepository
}

// NewInMemoryWindowRepository builds a window store over seasons. A nil seasons gets a
// private season store.
func NewInMemoryWindowRepository(seasons *InMemorySeasonRepository) *InMemoryWindowRepository {
	if seasons == nil {
		seasons = NewInMemorySeasonRepository()
	}
	return &InMemoryWindowRepository{
		store:   make(map[string]*domain.Window),
		seasons: seasons,
	}
}

func (r *InMemoryWindowRepository) scope(warehouseID, seasonID string) []*domain.Window {
	var out []*domain.Window
	for _, w := range r.store {
		if w.WarehouseID == warehouseID && w.SeasonID == seasonID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out
}

func (r *InMemoryWindowRepository) List(ctx context.Context, warehouseID, seasonID string) ([]*domain.Window, error) {
	r.seasons.mu.RLock()
	defer r.seasons.mu.RUnlock()

	scoped := r.scope(warehouseID, seasonID)
	out := make([]*domain.Window, 0, len(scoped))
	for _, w := range scoped {
		out = append(out, w.Clone())
	}
	return out, nil
}

func (r *InMemoryWindowRepository) GetOpen(ctx context.Context, warehouseID, seasonID string) (*domain.Window, error) {
	r.seasons.mu.RLock()
	defer r.seasons.mu.RUnlock()

	for _, w := range r.scope(warehouseID, seasonID) {
		if w.IsOpen() {
			return w.Clone(), nil
		}
	}
	return nil, nil
}

func (r *InMemoryWindowRepository) GetByID(ctx context.Context, id string) (*domain.Window, error) {
	r.seasons.mu.RLock()
	defer r.seasons.mu.RUnlock()

	w, ok := r.store[id]
	if !ok {
		return nil, domain.ErrWindowNotFound
	}
	return w.Clone(), nil
}

func (r *InMemoryWindowRepository) Create(ctx context.Context, warehouseID, seasonID string, startDate time.Time) (*domain.Window, error) {
	window, err := domain.NewWindow(warehouseID, seasonID, startDate)
	if err != nil {
		return nil, err
	}

	r.seasons.mu.Lock()
	defer r.seasons.mu.Unlock()

	if r.seasons.finalizedLocked(window.SeasonID) {
		return nil, domain.ErrSeasonFinalized
	}

	scoped := r.scope(window.WarehouseID, window.SeasonID)
	for _, w := range scoped {
		if w.IsOpen() {
			return nil, domain.ErrWindowAlreadyOpen
		}
	}
	for _, w := range scoped {
		if w.Covers(window.StartDate) {
			return nil, domain.ErrWindowOverlaps
		}
	}

	r.store[window.ID] = window
	return window.Clone(), nil
}

func (r *InMemoryWindowRepository) Close(ctx context.Context, windowID string, endDate time.Time) (*domain.Window, error) {
	r.seasons.mu.Lock()
	defer r.seasons.mu.Unlock()

	w, ok := r.store[windowID]
	if !ok {
		return nil, domain.ErrWindowNotFound
	}
	if r.seasons.finalizedLocked(w.SeasonID) {
		return nil, domain.ErrSeasonFinalized
	}
	if !w.IsOpen() {
		return nil, domain.ErrWindowNotFound
	}
	if err := w.ValidateEnd(endDate); err != nil {
		return nil, err
	}
	for _, other := range r.scope(w.WarehouseID, w.SeasonID) {
		if other.ID != w.ID && other.OverlapsRange(w.StartDate, endDate) {
			return nil, domain.ErrWindowOverlaps
		}
	}

	if err := w.Close(endDate); err != nil {
		return nil, err
	}
	return w.Clone(), nil
}

func (r *InMemoryWindowRepository) FinalizeSeason(ctx context.Context, seasonID string, asOf, at time.Time) ([]*domain.Window, error) {
	r.seasons.mu.Lock()
	defer r.seasons.mu.Unlock()

	if r.seasons.finalizedLocked(seasonID) {
		return nil, nil
	}

	var open []*domain.Window
	for _, w := range r.store {
		if w.SeasonID == seasonID && w.IsOpen() {
			open = append(open, w)
		}
	}

	// Validate every end date before mutating anything so a failure leaves the season untouched.
	ends := make([]time.Time, len(open))
	for i, w := range open {
		ends[i] = w.AutoEnd(asOf, r.nextClosedStart(w))
		if err := w.ValidateEnd(ends[i]); err != nil {
			return nil, err
		}
	}

	closed := make([]*domain.Window, 0, len(open))
	for i, w := range open {
		if err := w.Close(ends[i]); err != nil {
			return nil, err
		}
		closed = append(closed, w.Clone())
	}
	r.seasons.finalizeLocked(seasonID, at)

	sort.Slice(closed, func(i, j int) bool {
		return strings.Compare(closed[i].WarehouseID, closed[j].WarehouseID) < 0
	})
	return closed, nil
}

// nextClosedStart returns the start of the earliest closed window of w's scope that begins
// after w, or nil.
func (r *InMemoryWindowRepository) nextClosedStart(w *domain.Window) *time.Time {
	for _, other := range r.scope(w.WarehouseID, w.SeasonID) {
		if !other.IsOpen() && other.StartDate.After(w.StartDate) {
			start := other.StartDate
			return &start
		}
	}
	return nil
}
