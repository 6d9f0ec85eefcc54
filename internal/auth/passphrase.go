// Package auth implements the local passphrase gate shown before the
// inventory is unlocked.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinPassphraseLength is the shortest passphrase Hash accepts.
const MinPassphraseLength = 8

var (
	ErrInvalidPassphrase = errors.New("invalid passphrase")
	ErrWeakPassphrase    = fmt.Errorf("passphrase must be at least %d characters", MinPassphraseLength)
)

// Gate verifies passphrases against a bcrypt hash. The zero value, and a
// Gate built from an empty hash, is open.
type Gate struct {
	hash []byte
}

// NewGate creates a gate for the given bcrypt hash.
func NewGate(hash string) *Gate {
	return &Gate{hash: []byte(hash)}
}

// Enabled reports whether a passphrase is required.
func (g *Gate) Enabled() bool {
	return g != nil && len(g.hash) > 0
}

// Verify checks passphrase against the gate's hash.
func (g *Gate) Verify(passphrase string) error {
	if !g.Enabled() {
		return nil
	}
	return Verify(string(g.hash), passphrase)
}

// Hash returns a bcrypt hash of passphrase suitable for auth.passphrase_hash.
func Hash(passphrase string) (string, error) {
	if len(passphrase) < MinPassphraseLength {
		return "", ErrWeakPassphrase
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing passphrase: %w", err)
	}
	return string(hashed), nil
}

// Verify compares passphrase with hash. Any mismatch, including a malformed
// hash, is reported as ErrInvalidPassphrase.
func Verify(hash, passphrase string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(passphrase)); err != nil {
		return ErrInvalidPassphrase
	}
	return nil
}
