package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open abre (o crea) la base SQLite en path y asegura el esquema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// un solo writer; evita SQLITE_BUSY con la conexión compartida
	db.SetMaxOpenConns(1)

	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS food_catalog (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		type          TEXT NOT NULL DEFAULT '',
		species       TEXT NOT NULL,
		kcal_per_100g REAL,
		price_per_kg  REAL,
		position      INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS breed_catalog (
		id            TEXT PRIMARY KEY,
		species       TEXT NOT NULL,
		name          TEXT NOT NULL DEFAULT '',
		common_name   TEXT NOT NULL DEFAULT '',
		official_name TEXT NOT NULL DEFAULT '',
		min_kg        REAL NOT NULL,
		max_kg        REAL NOT NULL,
		position      INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS diet_proposals (
		id             TEXT PRIMARY KEY,
		animal_id      TEXT NOT NULL,
		name           TEXT NOT NULL,
		food_type      TEXT NOT NULL,
		goal           TEXT NOT NULL,
		start_date     TEXT NOT NULL,
		end_date       TEXT,
		status         TEXT NOT NULL,
		meals_per_day  INTEGER NOT NULL,
		daily_calories INTEGER,
		monthly_cost   REAL,
		food_id        TEXT,
		portion_grams  INTEGER,
		schedule       TEXT,
		justification  TEXT NOT NULL,
		created_at     TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_diet_proposals_animal ON diet_proposals(animal_id);
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("sqlite: create schema: %w", err)
	}
	return nil
}
