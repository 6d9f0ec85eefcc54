package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sheetsync/sheetsync/internal/models"
	"github.com/sheetsync/sheetsync/internal/testutil"
	"github.com/sheetsync/sheetsync/internal/util"
)

func TestProductRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewProductRepository(db.DB)
	ctx := context.Background()

	t.Run("Unknown barcode", func(t *testing.T) {
		if _, err := repo.GetByBarcode(ctx, "000"); !errors.Is(err, models.ErrProductNotFound) {
			t.Errorf("expected ErrProductNotFound, got %v", err)
		}
	})

	t.Run("Upsert inserts then renames", func(t *testing.T) {
		p := testutil.FixtureProduct()
		if err := repo.Upsert(ctx, nil, p); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}

		renamed := testutil.FixtureProduct(func(p *models.Product) { p.Name = "Brown Eggs" })
		if err := repo.Upsert(ctx, nil, renamed); err != nil {
			t.Fatalf("second Upsert failed: %v", err)
		}

		got, err := repo.GetByBarcode(ctx, p.Barcode)
		if err != nil {
			t.Fatalf("GetByBarcode failed: %v", err)
		}
		if got.Name != "Brown Eggs" {
			t.Errorf("expected renamed product, got %s", got.Name)
		}
		db.AssertRowCount(t, "products", 1)
	})

	t.Run("Barcodes are case-sensitive", func(t *testing.T) {
		if err := repo.Upsert(ctx, nil, &models.Product{Barcode: "abc", Name: "Lower"}); err != nil {
			t.Fatal(err)
		}
		if _, err := repo.GetByBarcode(ctx, "ABC"); !errors.Is(err, models.ErrProductNotFound) {
			t.Errorf("expected case-sensitive lookup, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		products, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(products) != 2 || products[0].Name != "Brown Eggs" {
			t.Errorf("unexpected products %+v", products)
		}
	})
}

func TestSettingsRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSettingsRepository(db.DB)
	ctx := context.Background()

	if _, ok, err := repo.Get(ctx, "missing"); err != nil || ok {
		t.Errorf("Get(missing) = ok %v, err %v", ok, err)
	}

	if err := repo.Set(ctx, "viewed_notifications", `["a"]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := repo.Set(ctx, "viewed_notifications", `["a","b"]`); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	v, ok, err := repo.Get(ctx, "viewed_notifications")
	if err != nil || !ok || v != `["a","b"]` {
		t.Errorf("Get = %q, %v, %v", v, ok, err)
	}
	db.AssertRowCount(t, "settings", 1)
}

func TestSQLStore(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := NewSQLStore(db.DB)
	ctx := context.Background()

	t.Run("Add fills ID and added date", func(t *testing.T) {
		e := testutil.FixtureEntry(func(e *models.InventoryEntry) {
			e.ID = ""
			e.AddedDate = time.Time{}
		})
		if err := store.Add(ctx, e); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if !util.IsValidID(e.ID) {
			t.Errorf("expected a generated UUID, got %q", e.ID)
		}
		if !util.IsSameDay(e.AddedDate, time.Now()) {
			t.Errorf("expected added today, got %v", e.AddedDate)
		}
	})

	t.Run("Add rejects invalid entries", func(t *testing.T) {
		err := store.Add(ctx, &models.InventoryEntry{Name: "Milk"})
		if len(models.InvalidFields(err)) == 0 {
			t.Errorf("expected validation error, got %v", err)
		}
		db.AssertRowCount(t, "inventory_entries", 1)
	})

	t.Run("Products round trip", func(t *testing.T) {
		if err := store.AddProduct(ctx, &models.Product{Barcode: "42", Name: "Oat Milk"}); err != nil {
			t.Fatalf("AddProduct failed: %v", err)
		}
		p, err := store.FindProduct(ctx, "42")
		if err != nil || p.Name != "Oat Milk" {
			t.Errorf("FindProduct = %v, %v", p, err)
		}
		if err := store.AddProduct(ctx, &models.Product{Barcode: "43"}); err == nil {
			t.Error("expected validation error for missing name")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		entries, err := store.List(ctx)
		if err != nil || len(entries) != 1 {
			t.Fatalf("List = %d entries, %v", len(entries), err)
		}
		if err := store.Delete(ctx, entries[0].ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := store.Delete(ctx, entries[0].ID); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
