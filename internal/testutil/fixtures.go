package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/sheetsync/sheetsync/internal/models"
)

// Today is the fixed reference date used by fixtures.
var Today = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

// FixtureEntry creates an inventory entry expiring a week after Today.
func FixtureEntry(overrides ...func(*models.InventoryEntry)) *models.InventoryEntry {
	e := &models.InventoryEntry{
		ID:         uuid.New().String(),
		Name:       "Organic Milk",
		Barcode:    "123456789012",
		ExpiryDate: Today.AddDate(0, 0, 7),
		AddedDate:  Today.AddDate(0, 0, -1),
		Quantity:   1,
	}

	for _, override := range overrides {
		override(e)
	}
	return e
}

// FixtureEntryExpiringIn creates an entry expiring days after Today.
func FixtureEntryExpiringIn(days int, overrides ...func(*models.InventoryEntry)) *models.InventoryEntry {
	return FixtureEntry(append([]func(*models.InventoryEntry){
		func(e *models.InventoryEntry) {
			e.ExpiryDate = Today.AddDate(0, 0, days)
		},
	}, overrides...)...)
}

// FixtureProduct creates a catalog row.
func FixtureProduct(overrides ...func(*models.Product)) *models.Product {
	p := &models.Product{
		Barcode: "567890123456",
		Name:    "Free-Range Eggs",
	}

	for _, override := range overrides {
		override(p)
	}
	return p
}
