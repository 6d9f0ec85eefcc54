package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sheetsync/sheetsync/internal/models"
	"github.com/sheetsync/sheetsync/internal/util"
)

// SQLStore is the SQLite inventory backend.
type SQLStore struct {
	Entries  *EntryRepository
	Products *ProductRepository
	now      func() time.Time
}

// NewSQLStore creates a store over db.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{
		Entries:  NewEntryRepository(db),
		Products: NewProductRepository(db),
		now:      time.Now,
	}
}

// List returns every entry.
func (s *SQLStore) List(ctx context.Context) ([]models.InventoryEntry, error) {
	return s.Entries.List(ctx)
}

// Add validates and inserts entry, filling ID and AddedDate when empty.
func (s *SQLStore) Add(ctx context.Context, entry *models.InventoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if entry.ID == "" {
		entry.ID = util.NewID()
	}
	if entry.AddedDate.IsZero() {
		entry.AddedDate = util.StartOfDay(s.now())
	}
	return s.Entries.Create(ctx, nil, entry)
}

// Delete removes the entry with id.
func (s *SQLStore) Delete(ctx context.Context, id string) error {
	return s.Entries.Delete(ctx, nil, id)
}

// FindProduct looks up a catalog row.
func (s *SQLStore) FindProduct(ctx context.Context, barcode string) (*models.Product, error) {
	return s.Products.GetByBarcode(ctx, barcode)
}

// AddProduct inserts or renames a catalog row.
func (s *SQLStore) AddProduct(ctx context.Context, product *models.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	return s.Products.Upsert(ctx, nil, product)
}
