package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ImportRun is the outcome of one bulk import, kept for diagnostics
type ImportRun struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	Succeeded bool      `json:"succeeded"`
	Imported  int       `json:"imported"`
	RowErrors []string  `json:"row_errors"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ImportLog records import outcomes
type ImportLog interface {
	Record(ctx context.Context, run ImportRun) error
	Recent(ctx context.Context, limit int) ([]ImportRun, error)
}

// NopImportLog is used when no audit database is configured
type NopImportLog struct{}

func (NopImportLog) Record(context.Context, ImportRun) error { return nil }

func (NopImportLog) Recent(context.Context, int) ([]ImportRun, error) { return nil, nil }

// importLogRepository implements ImportLog on PostgreSQL
type importLogRepository struct {
	db *DB
}

// NewImportLog creates a PostgreSQL backed import log
func NewImportLog(db *DB) ImportLog {
	return &importLogRepository{db: db}
}

// Record inserts a run; a zero ID or CreatedAt is filled in
func (r *importLogRepository) Record(ctx context.Context, run ImportRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	if run.RowErrors == nil {
		run.RowErrors = []string{}
	}

	rowErrors, err := json.Marshal(run.RowErrors)
	if err != nil {
		return fmt.Errorf("failed to encode row errors: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO import_runs (id, filename, succeeded, imported, row_errors, message, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, run.ID, run.Filename, run.Succeeded, run.Imported, string(rowErrors), run.Message, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert import run: %w", err)
	}
	return nil
}

// Recent returns the latest runs, newest first
func (r *importLogRepository) Recent(ctx context.Context, limit int) ([]ImportRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
        SELECT id, filename, succeeded, imported, row_errors, message, created_at
        FROM import_runs
        ORDER BY created_at DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query import runs: %w", err)
	}
	defer rows.Close()

	var runs []ImportRun
	for rows.Next() {
		var run ImportRun
		var rowErrors string
		if err := rows.Scan(&run.ID, &run.Filename, &run.Succeeded, &run.Imported, &rowErrors, &run.Message, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import run: %w", err)
		}
		if err := json.Unmarshal([]byte(rowErrors), &run.RowErrors); err != nil {
			return nil, fmt.Errorf("failed to decode row errors of %s: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
