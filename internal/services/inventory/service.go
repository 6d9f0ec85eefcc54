// Package inventory provides the add, delete and lookup commands over an
// inventory store.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sheetsync/sheetsync/internal/models"
	"github.com/sheetsync/sheetsync/internal/util"
)

// Service provides inventory operations.
type Service struct {
	store Store
	clock *util.Clock
}

// NewService creates a new inventory service.
func NewService(store Store, clock *util.Clock) *Service {
	return &Service{store: store, clock: clock}
}

// Clock returns the clock used for added dates and past-date checks.
func (s *Service) Clock() *util.Clock {
	return s.clock
}

// List returns all entries ordered by expiry date.
func (s *Service) List(ctx context.Context) ([]models.InventoryEntry, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing inventory: %w", err)
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return util.CivilDay(entries[a].ExpiryDate).Before(util.CivilDay(entries[b].ExpiryDate))
	})
	return entries, nil
}

// AddEntry validates the form input and records one lot.
func (s *Service) AddEntry(ctx context.Context, input AddEntryInput) (*models.InventoryEntry, error) {
	entry := &models.InventoryEntry{
		Name:    strings.TrimSpace(input.Name),
		Barcode: strings.TrimSpace(input.Barcode),
	}

	var errs []error

	if raw := strings.TrimSpace(input.ExpiryDate); raw != "" {
		expiry, err := util.ParseDate(raw)
		if err != nil {
			errs = append(errs, &models.ValidationError{Field: models.FieldExpiryDate, Message: "must be a date (YYYY-MM-DD)"})
		} else {
			entry.ExpiryDate = expiry
		}
	} else {
		errs = append(errs, &models.ValidationError{Field: models.FieldExpiryDate, Message: "is required"})
	}

	qty, err := strconv.Atoi(strings.TrimSpace(input.Quantity))
	if err != nil {
		errs = append(errs, &models.ValidationError{Field: models.FieldQuantity, Message: "must be a whole number"})
	} else {
		entry.Quantity = qty
	}

	if err := entry.Validate(); err != nil {
		for _, ve := range models.ValidationErrors(err) {
			if alreadyReported(errs, ve.Field) {
				continue
			}
			errs = append(errs, ve)
		}
	}

	if !entry.ExpiryDate.IsZero() && util.DaysBetween(s.clock.Now(), entry.ExpiryDate) < 0 {
		errs = append(errs, &models.ValidationError{Field: models.FieldExpiryDate, Message: "cannot be in the past"})
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	entry.ID = util.NewID()
	entry.AddedDate = util.StartOfDay(s.clock.Now())

	if err := s.store.Add(ctx, entry); err != nil {
		return nil, fmt.Errorf("adding entry: %w", err)
	}

	slog.Info("inventory entry added",
		"id", entry.ID,
		"barcode", entry.Barcode,
		"expiry", util.FormatDate(entry.ExpiryDate),
		"quantity", entry.Quantity,
	)
	return entry, nil
}

// DeleteEntry removes one entry.
func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return &models.ValidationError{Field: "id", Message: "is required"}
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting entry %s: %w", id, err)
	}

	slog.Info("inventory entry deleted", "id", id)
	return nil
}

// LookupBarcode finds the catalog product for barcode.
func (s *Service) LookupBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, &models.ValidationError{Field: models.FieldBarcode, Message: "is required"}
	}

	p, err := s.store.FindProduct(ctx, barcode)
	if err != nil {
		return nil, fmt.Errorf("looking up barcode %s: %w", barcode, err)
	}
	return p, nil
}

// CreateProduct adds a catalog row for an unknown barcode.
func (s *Service) CreateProduct(ctx context.Context, barcode, name string) (*models.Product, error) {
	p := &models.Product{
		Barcode: strings.TrimSpace(barcode),
		Name:    strings.TrimSpace(name),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.AddProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}

	slog.Info("product created", "barcode", p.Barcode, "name", p.Name)
	return p, nil
}

// Today returns the reference day from the service clock.
func (s *Service) Today() time.Time {
	return s.clock.Today()
}

func alreadyReported(errs []error, field string) bool {
	for _, err := range errs {
		var ve *models.ValidationError
		if errors.As(err, &ve) && ve.Field == field {
			return true
		}
	}
	return false
}
