package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sheetsync/sheetsync/internal/models"
	"github.com/sheetsync/sheetsync/internal/util"
)

// EntryRepository handles inventory entry data access.
type EntryRepository struct {
	db *sql.DB
}

// NewEntryRepository creates a new entry repository.
func NewEntryRepository(db *sql.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Create inserts a new entry. Dates are stored as YYYY-MM-DD.
func (r *EntryRepository) Create(ctx context.Context, tx *sql.Tx, e *models.InventoryEntry) error {
	query := `
		INSERT INTO inventory_entries (
			id, name, barcode, expiry_date, added_date, quantity
		) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := getExecer(r.db, tx).ExecContext(ctx, query,
		e.ID,
		e.Name,
		e.Barcode,
		util.FormatDate(e.ExpiryDate),
		util.FormatDate(e.AddedDate),
		e.Quantity,
	)
	if err != nil {
		return fmt.Errorf("inserting entry: %w", err)
	}
	return nil
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*models.InventoryEntry, error) {
	query := `
		SELECT id, name, barcode, expiry_date, added_date, quantity
		FROM inventory_entries
		WHERE id = ?`

	e, err := scanEntry(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	return e, err
}

// List returns every entry, most recently added first.
func (r *EntryRepository) List(ctx context.Context) ([]models.InventoryEntry, error) {
	query := `
		SELECT id, name, barcode, expiry_date, added_date, quantity
		FROM inventory_entries
		ORDER BY added_date DESC, rowid DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	entries := []models.InventoryEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return entries, nil
}

// Delete removes an entry.
func (r *EntryRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	res, err := getExecer(r.db, tx).ExecContext(ctx, "DELETE FROM inventory_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Count returns the number of stored entries.
func (r *EntryRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM inventory_entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.InventoryEntry, error) {
	var e models.InventoryEntry
	var expiry, added string

	if err := row.Scan(&e.ID, &e.Name, &e.Barcode, &expiry, &added, &e.Quantity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning entry: %w", err)
	}

	var err error
	if e.ExpiryDate, err = util.ParseDate(expiry); err != nil {
		return nil, fmt.Errorf("entry %s: parsing expiry date: %w", e.ID, err)
	}
	if e.AddedDate, err = util.ParseDate(added); err != nil {
		return nil, fmt.Errorf("entry %s: parsing added date: %w", e.ID, err)
	}
	return &e, nil
}
