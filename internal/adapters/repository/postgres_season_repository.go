package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/warehouse-weeks/internal/core/domain"
)

var _ domain.SeasonRepository = (*PostgresSeasonRepository)(nil)

type PostgresSeasonRepository struct {
	db *sqlx.DB
}

func NewPostgresSeasonRepository(db *sqlx.DB) *PostgresSeasonRepository {
	return &PostgresSeasonRepository{db: db}
}

func (r *PostgresSeasonRepository) IsFinalized(ctx context.Context, seasonID string) (bool, error) {
	var finalized bool

	err := r.db.GetContext(ctx, &finalized, `SELECT finalized FROM seasons WHERE id = $1`, seasonID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, domain.Unavailable("read season flag", err)
	}
	return finalized, nil
}

func (r *PostgresSeasonRepository) Get(ctx context.Context, seasonID string) (*domain.Season, error) {
	var s domain.Season

	err := r.db.GetContext(ctx, &s, `SELECT id, finalized, finalized_at FROM seasons WHERE id = $1`, seasonID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.Season{ID: seasonID}, nil
		}
		return nil, domain.Unavailable("read season", err)
	}
	return &s, nil
}

// Finalize upserts the season. An earlier finalized_at is never overwritten.
func (r *PostgresSeasonRepository) Finalize(ctx context.Context, seasonID string, at time.Time) error {
	query := `
		INSERT INTO seasons (id, finalized, finalized_at)
		VALUES ($1, TRUE, $2)
		ON CONFLICT (id) DO UPDATE
		SET finalized = TRUE,
		    finalized_at = COALESCE(seasons.finalized_at, EXCLUDED.finalized_at)`

	if _, err := r.db.ExecContext(ctx, query, seasonID, at.UTC()); err != nil {
		return domain.Unavailable("finalize season", err)
	}
	return nil
}
