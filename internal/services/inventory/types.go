package inventory

import (
	"context"

	"github.com/sheetsync/sheetsync/internal/models"
)

// Store is the persistence capability the inventory service needs. The
// SQLite, memory and Google Sheets backends all satisfy it.
type Store interface {
	// List returns every entry in storage order.
	List(ctx context.Context) ([]models.InventoryEntry, error)
	// Add persists entry, filling ID and AddedDate when empty.
	Add(ctx context.Context, entry *models.InventoryEntry) error
	// Delete removes the entry with id or returns models.ErrNotFound.
	Delete(ctx context.Context, id string) error
	// FindProduct returns the catalog row for barcode or models.ErrProductNotFound.
	FindProduct(ctx context.Context, barcode string) (*models.Product, error)
	// AddProduct records a catalog row.
	AddProduct(ctx context.Context, product *models.Product) error
}

// AddEntryInput contains the raw form fields for a new entry.
type AddEntryInput struct {
	Name       string
	Barcode    string
	ExpiryDate string // YYYY-MM-DD
	Quantity   string
}
