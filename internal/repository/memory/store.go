// Package memory provides an in-process inventory store seeded with demo
// data. It backs the demo backend and most tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sheetsync/sheetsync/internal/models"
	"github.com/sheetsync/sheetsync/internal/util"
)

// Store is a mutex-guarded inventory and product catalog.
type Store struct {
	mu       sync.RWMutex
	entries  []models.InventoryEntry
	products map[string]models.Product
	now      func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		products: make(map[string]models.Product),
		now:      time.Now,
	}
}

// NewSeeded returns a store holding the demo catalog and entries dated
// relative to ref.
func NewSeeded(ref time.Time) *Store {
	s := New()
	s.now = func() time.Time { return ref }
	for _, p := range DemoCatalog() {
		s.products[p.Barcode] = p
	}
	s.entries = DemoEntries(ref)
	return s
}

// List returns a copy of every entry, newest first.
func (s *Store) List(_ context.Context) ([]models.InventoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.InventoryEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Add validates and prepends entry.
func (s *Store) Add(_ context.Context, entry *models.InventoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = util.NewID()
	}
	if entry.AddedDate.IsZero() {
		entry.AddedDate = util.StartOfDay(s.now())
	}

	s.entries = append([]models.InventoryEntry{*entry}, s.entries...)
	return nil
}

// Delete removes the entry with id.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

// FindProduct returns the catalog row for barcode.
func (s *Store) FindProduct(_ context.Context, barcode string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[barcode]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	return &p, nil
}

// AddProduct inserts or renames a catalog row.
func (s *Store) AddProduct(_ context.Context, product *models.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.Barcode] = *product
	return nil
}

// KV is an in-memory key/value store for settings.
type KV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewKV returns an empty key/value store.
func NewKV() *KV {
	return &KV{values: make(map[string]string)}
}

// Get returns the value for key and whether it was set.
func (k *KV) Get(_ context.Context, key string) (string, bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	v, ok := k.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (k *KV) Set(_ context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.values[key] = value
	return nil
}
