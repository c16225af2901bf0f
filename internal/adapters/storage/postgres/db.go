package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS food_catalog (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	type          TEXT NOT NULL DEFAULT '',
	species       TEXT NOT NULL CHECK (species IN ('dog', 'cat', 'both')),
	kcal_per_100g DOUBLE PRECISION,
	price_per_kg  DOUBLE PRECISION
);

CREATE TABLE IF NOT EXISTS breed_catalog (
	id            TEXT PRIMARY KEY,
	species       TEXT NOT NULL,
	name          TEXT NOT NULL DEFAULT '',
	common_name   TEXT NOT NULL DEFAULT '',
	official_name TEXT NOT NULL DEFAULT '',
	min_kg        DOUBLE PRECISION NOT NULL,
	max_kg        DOUBLE PRECISION NOT NULL
);

CREATE TABLE IF NOT EXISTS diet_proposals (
	id             TEXT PRIMARY KEY,
	animal_id      TEXT NOT NULL,
	name           TEXT NOT NULL,
	food_type      TEXT NOT NULL,
	goal           TEXT NOT NULL,
	start_date     DATE NOT NULL,
	end_date       DATE,
	status         TEXT NOT NULL,
	meals_per_day  INTEGER NOT NULL CHECK (meals_per_day >= 1),
	daily_calories INTEGER,
	monthly_cost   DOUBLE PRECISION,
	food_id        TEXT,
	portion_grams  INTEGER,
	schedule       TEXT,
	justification  TEXT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_diet_proposals_animal ON diet_proposals (animal_id, created_at DESC);
`

// Migrate crea las tablas si no existen (idempotente).
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	return nil
}
