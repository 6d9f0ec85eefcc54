// Package util provides identifier and calendar helpers for SheetSync.
package util

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID generates a new UUIDv7 identifier.
// UUIDv7 is time-ordered, which keeps SQLite primary key inserts local.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// ParseID validates and normalizes a UUID string.
func ParseID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid ID format: %w", err)
	}
	return id.String(), nil
}

// IsValidID checks if a string is a valid UUID format.
func IsValidID(s string) bool {
	return uuid.Validate(s) == nil
}
