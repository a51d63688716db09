// Package storage opens the local SQLite database that holds the persisted
// session and applies its embedded migrations.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ecopoints/ecopoints/internal/client/migrations"
	"github.com/pressly/goose/v3"
)

// Open opens (creating if needed) the session database at dsn and brings it
// up to the latest schema.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate session db: %w", err)
	}

	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
