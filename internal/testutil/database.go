// Package testutil provides database and fixture helpers for tests.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	_ "modernc.org/sqlite" // SQLite driver
)

// TestDB wraps a test database connection.
type TestDB struct {
	*sql.DB
}

// NewTestDB opens an in-memory SQLite database, applies every migration
// and closes it when the test ends.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	tdb := &TestDB{DB: db}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	tdb.RunMigrations(t, MigrationsDir())
	return tdb
}

// MigrationsDir returns the absolute path of the SQL migrations.
func MigrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "database", "migrations")
}

// RunMigrations executes the Up section of each .sql file in dir, in
// filename order.
func (tdb *TestDB) RunMigrations(t *testing.T, dir string) {
	t.Helper()

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read migrations directory: %v", err)
	}

	ctx := context.Background()
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".sql" {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, file.Name()))
		if err != nil {
			t.Fatalf("failed to read migration %s: %v", file.Name(), err)
		}

		up := string(raw)
		if idx := strings.Index(up, "-- +migrate Down"); idx >= 0 {
			up = up[:idx]
		}
		up = strings.Replace(up, "-- +migrate Up", "", 1)

		if _, err := tdb.ExecContext(ctx, up); err != nil {
			t.Fatalf("failed to execute migration %s: %v", file.Name(), err)
		}
	}
}

// AssertRowCount asserts the row count for a table.
func (tdb *TestDB) AssertRowCount(t *testing.T, table string, expected int) {
	t.Helper()

	var count int
	if err := tdb.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
		t.Fatalf("failed to count rows in %s: %v", table, err)
	}
	if count != expected {
		t.Errorf("expected %d rows in %s, got %d", expected, table, count)
	}
}

// ExecSQL executes arbitrary SQL for test setup.
func (tdb *TestDB) ExecSQL(t *testing.T, query string, args ...any) {
	t.Helper()

	if _, err := tdb.Exec(query, args...); err != nil {
		t.Fatalf("failed to execute SQL: %v\nSQL: %s", err, query)
	}
}
