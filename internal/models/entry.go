// Package models defines the inventory records shared by the stores and services.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors shared by every inventory store.
var (
	ErrNotFound        = errors.New("inventory entry not found")
	ErrProductNotFound = errors.New("product not found")
)

// InventoryEntry is one recorded lot of a product with its own expiry date.
type InventoryEntry struct {
	ID         string
	Name       string
	Barcode    string
	ExpiryDate time.Time
	AddedDate  time.Time
	Quantity   int
}

// Validate checks the fields every store requires before persisting.
// Each failure is a *ValidationError naming its field.
func (e *InventoryEntry) Validate() error {
	var errs []error

	if strings.TrimSpace(e.Name) == "" {
		errs = append(errs, &ValidationError{Field: FieldName, Message: "is required"})
	}
	if strings.TrimSpace(e.Barcode) == "" {
		errs = append(errs, &ValidationError{Field: FieldBarcode, Message: "is required"})
	}
	if e.ExpiryDate.IsZero() {
		errs = append(errs, &ValidationError{Field: FieldExpiryDate, Message: "is required"})
	}
	if e.Quantity < 1 {
		errs = append(errs, &ValidationError{Field: FieldQuantity, Message: "must be at least 1"})
	}

	return errors.Join(errs...)
}

// Product is a barcode catalog row.
type Product struct {
	Barcode string
	Name    string
}

// Validate checks that both product fields are present.
func (p *Product) Validate() error {
	var errs []error

	if strings.TrimSpace(p.Barcode) == "" {
		errs = append(errs, &ValidationError{Field: FieldBarcode, Message: "is required"})
	}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, &ValidationError{Field: FieldName, Message: "is required"})
	}

	return errors.Join(errs...)
}

// Field names reported by ValidationError.
const (
	FieldName       = "name"
	FieldBarcode    = "barcode"
	FieldExpiryDate = "expiry_date"
	FieldQuantity   = "quantity"
)

// ValidationError reports an invalid input field at the data boundary.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// ValidationErrors flattens err (including errors.Join trees and wrapped
// errors) into its field errors, in order.
func ValidationErrors(err error) []*ValidationError {
	if err == nil {
		return nil
	}

	if ve, ok := err.(*ValidationError); ok {
		return []*ValidationError{ve}
	}

	var out []*ValidationError
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range u.Unwrap() {
			out = append(out, ValidationErrors(inner)...)
		}
	case interface{ Unwrap() error }:
		out = append(out, ValidationErrors(u.Unwrap())...)
	}

	return out
}

// InvalidFields returns the field names named by err's validation errors.
func InvalidFields(err error) []string {
	var fields []string
	for _, ve := range ValidationErrors(err) {
		fields = append(fields, ve.Field)
	}
	return fields
}
