// Package repository provides SQLite data access for inventory entries, the
// product catalog and application settings.
package repository

import (
	"context"
	"database/sql"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// getExecer returns tx when non-nil so writes can join a caller's transaction.
func getExecer(db *sql.DB, tx *sql.Tx) execer {
	if tx != nil {
		return tx
	}
	return db
}
