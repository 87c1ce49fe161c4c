package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/warehouse-weeks/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func Connect(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}
