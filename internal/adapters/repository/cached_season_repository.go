package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/warehouse-weeks/internal/core/domain"
)

var _ domain.SeasonRepository = (*CachedSeasonRepository)(nil)

// CachedSeasonRepository caches only the finalized flag. Finalization is one-way, so a
// cached "1" can never go stale; a season that is still open is always read from the store
// because it may be finalized at any moment by another writer.
type CachedSeasonRepository struct {
	next   domain.SeasonRepository
	cache  *redis.Client
	logger *zap.Logger
}

func NewCachedSeasonRepository(next domain.SeasonRepository, cache *redis.Client, logger *zap.Logger) *CachedSeasonRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedSeasonRepository{
		next:   next,
		cache:  cache,
		logger: logger,
	}
}

func (r *CachedSeasonRepository) cacheKey(seasonID string) string {
	return fmt.Sprintf("season:%s:finalized", seasonID)
}

func (r *CachedSeasonRepository) IsFinalized(ctx context.Context, seasonID string) (bool, error) {
	key := r.cacheKey(seasonID)

	val, err := r.cache.Get(ctx, key).Result()
	switch {
	case err == nil && val == "1":
		return true, nil
	case err == nil:
		r.logger.Warn("corrupted season flag in cache, cleaning up", zap.String("season_id", seasonID))
		r.cache.Del(ctx, key)
	case err != redis.Nil:
		r.logger.Warn("redis read error", zap.String("season_id", seasonID), zap.Error(err))
	}

	finalized, err := r.next.IsFinalized(ctx, seasonID)
	if err != nil {
		return false, err
	}

	if !finalized {
		return false, nil
	}
	if setErr := r.cache.Set(ctx, key, "1", 0).Err(); setErr != nil {
		r.logger.Warn("redis set error", zap.String("season_id", seasonID), zap.Error(setErr))
	}
	return true, nil
}

func (r *CachedSeasonRepository) Get(ctx context.Context, seasonID string) (*domain.Season, error) {
	return r.next.Get(ctx, seasonID)
}

func (r *CachedSeasonRepository) Finalize(ctx context.Context, seasonID string, at time.Time) error {
	if err := r.next.Finalize(ctx, seasonID, at); err != nil {
		return err
	}
	if err := r.cache.Set(ctx, r.cacheKey(seasonID), "1", 0).Err(); err != nil {
		r.logger.Warn("failed to cache finalized flag, invalidating", zap.String("season_id", seasonID), zap.Error(err))
		r.cache.Del(ctx, r.cacheKey(seasonID))
	}
	return nil
}
