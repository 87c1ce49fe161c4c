package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/warehouse-weeks/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var _ domain.WindowRepository = (*PostgresWindowRepository)(nil)

// PostgresWindowRepository stores windows in week_windows. The partial unique index
// ux_week_windows_one_open backs the open-window check so concurrent creates cannot both win.
type PostgresWindowRepository struct {
	db *sqlx.DB
}

func NewPostgresWindowRepository(db *sqlx.DB) *PostgresWindowRepository {
	return &PostgresWindowRepository{db: db}
}

const windowColumns = `id, warehouse_id, season_id, start_date, end_date, iso_week_key, created_at`

func normalizeDates(w *domain.Window) *domain.Window {
	w.StartDate = w.StartDate.UTC()
	if w.EndDate != nil {
		end := w.EndDate.UTC()
		w.EndDate = &end
	}
	w.CreatedAt = w.CreatedAt.UTC()
	return w
}

func (r *PostgresWindowRepository) List(ctx context.Context, warehouseID, seasonID string) ([]*domain.Window, error) {
	windows := []*domain.Window{}

	query := `
		SELECT ` + windowColumns + `
		FROM week_windows
		WHERE warehouse_id = $1 AND season_id = $2
		ORDER BY start_date ASC`

	if err := r.db.SelectContext(ctx, &windows, query, warehouseID, seasonID); err != nil {
		return nil, domain.Unavailable("list windows", err)
	}

	for _, w := range windows {
		normalizeDates(w)
	}
	return windows, nil
}

func (r *PostgresWindowRepository) GetOpen(ctx context.Context, warehouseID, seasonID string) (*domain.Window, error) {
	var w domain.Window

	query := `
		SELECT ` + windowColumns + `
		FROM week_windows
		WHERE warehouse_id = $1 AND season_id = $2 AND end_date IS NULL`

	err := r.db.GetContext(ctx, &w, query, warehouseID, seasonID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Unavailable("get open window", err)
	}
	return normalizeDates(&w), nil
}

func (r *PostgresWindowRepository) GetByID(ctx context.Context, id string) (*domain.Window, error) {
	var w domain.Window

	query := `SELECT ` + windowColumns + ` FROM week_windows WHERE id = $1`

	err := r.db.GetContext(ctx, &w, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrWindowNotFound
		}
		return nil, domain.Unavailable("get window", err)
	}
	return normalizeDates(&w), nil
}

// lockSeason makes sure the season row exists and locks it. Writers take it FOR SHARE so
// they run concurrently with each other but never interleave with FinalizeSeason, which
// takes it FOR UPDATE. It returns the season's finalization flag.
func lockSeason(ctx context.Context, tx *sqlx.Tx, seasonID string, forUpdate bool) (bool, error) {
	if _, err := tx.ExecContext(ctx, `INSERT INTO seasons (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, seasonID); err != nil {
		return false, domain.Unavailable("ensure season", err)
	}

	mode := "FOR SHARE"
	if forUpdate {
		mode = "FOR UPDATE"
	}

	var finalized bool
	if err := tx.GetContext(ctx, &finalized, `SELECT finalized FROM seasons WHERE id = $1 `+mode, seasonID); err != nil {
		return false, domain.Unavailable("lock season", err)
	}
	return finalized, nil
}

func (r *PostgresWindowRepository) Create(ctx context.Context, warehouseID, seasonID string, startDate time.Time) (*domain.Window, error) {
	window, err := domain.NewWindow(warehouseID, seasonID, startDate)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, domain.Unavailable("begin create window", err)
	}
	defer tx.Rollback()

	finalized, err := lockSeason(ctx, tx, window.SeasonID, false)
	if err != nil {
		return nil, err
	}
	if finalized {
		return nil, domain.ErrSeasonFinalized
	}

	var openID string
	err = tx.GetContext(ctx, &openID, `
		SELECT id FROM week_windows
		WHERE warehouse_id = $1 AND season_id = $2 AND end_date IS NULL`,
		window.WarehouseID, window.SeasonID)
	switch {
	case err == nil:
		return nil, domain.ErrWindowAlreadyOpen
	case !errors.Is(err, sql.ErrNoRows):
		return nil, domain.Unavailable("check open window", err)
	}

	var overlaps bool
	err = tx.GetContext(ctx, &overlaps, `
		SELECT EXISTS (
			SELECT 1 FROM week_windows
			WHERE warehouse_id = $1 AND season_id = $2
			  AND end_date IS NOT NULL
			  AND $3::date BETWEEN start_date AND end_date
		)`,
		window.WarehouseID, window.SeasonID, window.StartDate)
	if err != nil {
		return nil, domain.Unavailable("check overlap", err)
	}
	if overlaps {
		return nil, domain.ErrWindowOverlaps
	}

	query := `
		INSERT INTO week_windows (
			id, warehouse_id, season_id, start_date, end_date, iso_week_key, created_at
		) VALUES (
			:id, :warehouse_id, :season_id, :start_date, :end_date, :iso_week_key, :created_at
		)`

	if _, err := tx.NamedExecContext(ctx, query, window); err != nil {
		if pgCode(err) == pgUniqueViolation {
			return nil, domain.ErrWindowAlreadyOpen
		}
		return nil, domain.Unavailable("insert window", err)
	}

	if err := tx.Commit(); err != nil {
		if pgCode(err) == pgUniqueViolation {
			return nil, domain.ErrWindowAlreadyOpen
		}
		return nil, domain.Unavailable("commit create window", err)
	}

	return window, nil
}

func (r *PostgresWindowRepository) Close(ctx context.Context, windowID string, endDate time.Time) (*domain.Window, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, domain.Unavailable("begin close window", err)
	}
	defer tx.Rollback()

	var seasonID string
	err = tx.GetContext(ctx, &seasonID, `SELECT season_id FROM week_windows WHERE id = $1`, windowID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrWindowNotFound
		}
		return nil, domain.Unavailable("load window season", err)
	}

	finalized, err := lockSeason(ctx, tx, seasonID, false)
	if err != nil {
		return nil, err
	}
	if finalized {
		return nil, domain.ErrSeasonFinalized
	}

	var w domain.Window
	err = tx.GetContext(ctx, &w, `
		SELECT `+windowColumns+`
		FROM week_windows
		WHERE id = $1 AND end_date IS NULL
		FOR UPDATE`, windowID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrWindowNotFound
		}
		return nil, domain.Unavailable("load open window", err)
	}
	normalizeDates(&w)

	if err := w.Close(endDate); err != nil {
		return nil, err
	}

	var overlaps bool
	err = tx.GetContext(ctx, &overlaps, `
		SELECT EXISTS (
			SELECT 1 FROM week_windows
			WHERE warehouse_id = $1 AND season_id = $2 AND id <> $3
			  AND end_date IS NOT NULL
			  AND start_date <= $5::date AND end_date >= $4::date
		)`,
		w.WarehouseID, w.SeasonID, w.ID, w.StartDate, *w.EndDate)
	if err != nil {
		return nil, domain.Unavailable("check overlap", err)
	}
	if overlaps {
		return nil, domain.ErrWindowOverlaps
	}

	if _, err := tx.ExecContext(ctx, `UPDATE week_windows SET end_date = $1 WHERE id = $2`, *w.EndDate, w.ID); err != nil {
		if pgCode(err) == pgCheckViolation {
			return nil, domain.ErrWindowTooLong
		}
		return nil, domain.Unavailable("close window", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, domain.Unavailable("commit close window", err)
	}
	return &w, nil
}

func (r *PostgresWindowRepository) FinalizeSeason(ctx context.Context, seasonID string, asOf, at time.Time) ([]*domain.Window, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, domain.Unavailable("begin finalize season", err)
	}
	defer tx.Rollback()

	finalized, err := lockSeason(ctx, tx, seasonID, true)
	if err != nil {
		return nil, err
	}
	if finalized {
		return nil, nil
	}

	open := []*domain.Window{}
	err = tx.SelectContext(ctx, &open, `
		SELECT `+windowColumns+`
		FROM week_windows
		WHERE season_id = $1 AND end_date IS NULL
		ORDER BY warehouse_id ASC
		FOR UPDATE`, seasonID)
	if err != nil {
		return nil, domain.Unavailable("load season open windows", err)
	}

	for _, w := range open {
		normalizeDates(w)

		var next sql.NullTime
		err := tx.GetContext(ctx, &next, `
			SELECT MIN(start_date) FROM week_windows
			WHERE warehouse_id = $1 AND season_id = $2
			  AND end_date IS NOT NULL AND start_date > $3::date`,
			w.WarehouseID, w.SeasonID, w.StartDate)
		if err != nil {
			return nil, domain.Unavailable("load next closed window", err)
		}
		var nextStart *time.Time
		if next.Valid {
			start := next.Time.UTC()
			nextStart = &start
		}

		if err := w.Close(w.AutoEnd(asOf, nextStart)); err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, `UPDATE week_windows SET end_date = $1 WHERE id = $2`, *w.EndDate, w.ID); err != nil {
			return nil, domain.Unavailable("close season window", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE seasons SET finalized = TRUE, finalized_at = $2 WHERE id = $1`,
		seasonID, at.UTC()); err != nil {
		return nil, domain.Unavailable("finalize season", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, domain.Unavailable("commit finalize season", err)
	}
	return open, nil
}
