package db

import (
	"context"
	"log"
	"os"
	"testing"
)

// SetupTestDB connects to TEST_DATABASE_URL, skipping the test when it is unset
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	connStr := os.Getenv("TEST_DATABASE_URL")
	if connStr == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database test")
	}

	db, err := Open(context.Background(), connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	return db
}

// CleanupTestDB cleans up test data
func CleanupTestDB(t *testing.T, db *DB) {
	if _, err := db.Exec("DELETE FROM import_runs"); err != nil {
		log.Printf("Warning: Failed to cleanup table import_runs: %v", err)
	}
}
