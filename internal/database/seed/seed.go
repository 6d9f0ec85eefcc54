// Package seed loads the demo catalog and inventory into a SQLite database.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/sheetsync/sheetsync/internal/repository"
	"github.com/sheetsync/sheetsync/internal/repository/memory"
	"github.com/sheetsync/sheetsync/internal/util"
)

// Result reports what Run inserted.
type Result struct {
	Products int
	Entries  int
	Skipped  bool
}

// Run inserts the demo products and entries dated relative to ref. A
// database that already holds entries is left alone.
func Run(ctx context.Context, db *sql.DB, ref time.Time) (*Result, error) {
	entries := repository.NewEntryRepository(db)
	products := repository.NewProductRepository(db)

	n, err := entries.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		slog.Info("inventory already populated, skipping seed", "entries", n)
		return &Result{Skipped: true}, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	result := &Result{}
	for _, p := range memory.DemoCatalog() {
		if err := products.Upsert(ctx, tx, &p); err != nil {
			return nil, err
		}
		result.Products++
	}

	for _, e := range memory.DemoEntries(ref) {
		e.ID = util.NewID()
		if err := entries.Create(ctx, tx, &e); err != nil {
			return nil, err
		}
		result.Entries++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("seeded demo inventory", "products", result.Products, "entries", result.Entries)
	return result, nil
}
