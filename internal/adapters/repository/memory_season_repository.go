package repository

import (
	"context"
	"sync"
	"time"

	"github.com/comitanigiacomo/warehouse-weeks/internal/core/domain"
)

var _ domain.SeasonRepository = (*InMemorySeasonRepository)(nil)

// InMemorySeasonRepository also owns the lock of every InMemoryWindowRepository built on
// top of it.
type InMemorySeasonRepository struct {
	store map[string]*domain.Season

	mu sync.RWMutex
}

func NewInMemorySeasonRepository() *InMemorySeasonRepository {
	return &InMemorySeasonRepository{
		store: make(map[string]*domain.Season),
	}
}

func (r *InMemorySeasonRepository) IsFinalized(ctx context.Context, seasonID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.finalizedLocked(seasonID), nil
}

func (r *InMemorySeasonRepository) Get(ctx context.Context, seasonID string) (*domain.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.store[seasonID]
	if !ok {
		return &domain.Season{ID: seasonID}, nil
	}
	clone := *s
	return &clone, nil
}

func (r *InMemorySeasonRepository) Finalize(ctx context.Context, seasonID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.finalizeLocked(seasonID, at)
	return nil
}

// finalizedLocked and finalizeLocked expect r.mu to be held.
func (r *InMemorySeasonRepository) finalizedLocked(seasonID string) bool {
	s, ok := r.store[seasonID]
	return ok && s.Finalized
}

func (r *InMemorySeasonRepository) finalizeLocked(seasonID string, at time.Time) {
	s, ok := r.store[seasonID]
	if !ok {
		s = &domain.Season{ID: seasonID}
		r.store[seasonID] = s
	}
	if s.Finalized {
		return
	}

	at = at.UTC()
	s.Finalized = true
	s.FinalizedAt = &at
}
