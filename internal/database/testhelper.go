package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sheetsync/sheetsync/internal/config"

	_ "modernc.org/sqlite"
)

// NewInMemory returns an in-memory database with the schema applied. It is
// meant for tests and has no backups or WAL.
func NewInMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}

	// A second connection would see a different, empty database.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	db := &DB{
		DB:     sqlDB,
		path:   ":memory:",
		config: &config.DatabaseConfig{},
	}

	m, err := NewMigrator(db)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	if _, err := m.MigrateUp(context.Background()); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrating in-memory database: %w", err)
	}

	return db, nil
}
