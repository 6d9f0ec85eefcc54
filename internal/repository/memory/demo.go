package memory

import (
	"time"

	"github.com/sheetsync/sheetsync/internal/models"
	"github.com/sheetsync/sheetsync/internal/util"
)

// DemoCatalog returns the barcode catalog used by the demo backend.
func DemoCatalog() []models.Product {
	return []models.Product{
		{Barcode: "123456789012", Name: "Organic Milk"},
		{Barcode: "234567890123", Name: "Sourdough Bread"},
		{Barcode: "345678901234", Name: "Cheddar Cheese"},
		{Barcode: "456789012345", Name: "Greek Yogurt"},
		{Barcode: "567890123456", Name: "Free-Range Eggs"},
		{Barcode: "678901234567", Name: "Apple Juice"},
	}
}

// DemoEntries returns the demo entries with expiry dates offset from ref.
func DemoEntries(ref time.Time) []models.InventoryEntry {
	today := util.StartOfDay(ref)
	at := func(days int) time.Time { return today.AddDate(0, 0, days) }

	return []models.InventoryEntry{
		{ID: "1", Name: "Organic Milk", Barcode: "123456789012", ExpiryDate: at(5), AddedDate: at(-2), Quantity: 1},
		{ID: "2", Name: "Sourdough Bread", Barcode: "234567890123", ExpiryDate: at(-2), AddedDate: at(-5), Quantity: 1},
		{ID: "3", Name: "Cheddar Cheese", Barcode: "345678901234", ExpiryDate: at(25), AddedDate: at(-10), Quantity: 1},
		{ID: "4", Name: "Greek Yogurt", Barcode: "456789012345", ExpiryDate: at(1), AddedDate: at(-1), Quantity: 1},
	}
}
