package db

import (
	"database/sql"
	"path/filepath"
	"testing"
)

// NewTestDB returns an in-memory database with the schema applied.
// It is closed when the test ends.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()
	return openTestDB(t, ":memory:")
}

// NewTestFileDB is like NewTestDB but backed by a file in a temporary
// directory. The path is returned so tests can reopen it.
func NewTestFileDB(t testing.TB) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zaloga.sqlite3")
	return openTestDB(t, path), path
}

func openTestDB(t testing.TB, path string) *sql.DB {
	t.Helper()

	database, err := Open(path)
	if err != nil {
		t.Fatalf("opening test database %s: %v", path, err)
	}
	if err := EnsureSchema(database); err != nil {
		database.Close()
		t.Fatalf("creating test database schema: %v", err)
	}

	t.Cleanup(func() { database.Close() })
	return database
}
