package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the audit database connection
type DB struct {
	*sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS import_runs (
    id          UUID PRIMARY KEY,
    filename    TEXT        NOT NULL,
    succeeded   BOOLEAN     NOT NULL,
    imported    INTEGER     NOT NULL DEFAULT 0,
    row_errors  TEXT        NOT NULL DEFAULT '[]',
    message     TEXT        NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Open connects to PostgreSQL and creates the audit table when missing
func Open(ctx context.Context, connStr string) (*DB, error) {
	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Test connection
	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	// Set connection pool settings
	conn.SetMaxOpenConns(5)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(5 * time.Minute)

	if _, err = conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("error creating import_runs table: %w", err)
	}
	return &DB{DB: conn}, nil
}

// Close closes database connection
func (d *DB) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close()
}
