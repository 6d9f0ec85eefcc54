package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sheetsync/sheetsync/internal/models"
)

// ProductRepository handles the barcode catalog.
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Upsert inserts a product or renames an existing barcode.
func (r *ProductRepository) Upsert(ctx context.Context, tx *sql.Tx, p *models.Product) error {
	query := `
		INSERT INTO products (barcode, name) VALUES (?, ?)
		ON CONFLICT(barcode) DO UPDATE SET
			name = excluded.name,
			updated_at = datetime('now')`

	if _, err := getExecer(r.db, tx).ExecContext(ctx, query, p.Barcode, p.Name); err != nil {
		return fmt.Errorf("upserting product: %w", err)
	}
	return nil
}

// GetByBarcode looks up a product by exact barcode.
func (r *ProductRepository) GetByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	var p models.Product
	err := r.db.QueryRowContext(ctx,
		"SELECT barcode, name FROM products WHERE barcode = ?", barcode,
	).Scan(&p.Barcode, &p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying product: %w", err)
	}
	return &p, nil
}

// List returns the catalog ordered by name.
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT barcode, name FROM products ORDER BY name, barcode")
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.Barcode, &p.Name); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
