// Package db opens the local sqlite database and brings its schema up to date.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"

	"github.com/garrettladley/healthmesh/internal/migrations"
	"github.com/garrettladley/healthmesh/internal/xslog"
)

const driver = "sqlite3"

// Open opens path (":memory:" works for tests) and applies pending migrations.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	sqlDB, err := sql.Open(driver, path+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// sqlite allows one writer; a single connection also keeps :memory: databases shared.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	applied, err := migrations.Apply(ctx, sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("applying migrations: %w", err)
	}
	if len(applied) > 0 {
		xslog.FromContext(ctx).DebugContext(ctx, "applied migrations", slog.Any("names", applied))
	}

	return sqlDB, nil
}
