// Package database manages the local SQLite file that holds the inventory
// tables and the settings store: connection pragmas, schema migrations,
// scheduled backups and recovery from a damaged file.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sheetsync/sheetsync/internal/config"

	_ "modernc.org/sqlite"
)

// ErrClosed is returned for operations on a closed database.
var ErrClosed = errors.New("database is closed")

// backupPrefix names every backup file written by Backup.
const backupPrefix = "sheetsync-"

// DB wraps a sql.DB with backup scheduling and safe shutdown.
type DB struct {
	*sql.DB
	path      string
	config    *config.DatabaseConfig
	backupDir string

	mu     sync.RWMutex
	closed bool

	backupTicker *time.Ticker
	backupDone   chan struct{}
	backupWG     sync.WaitGroup
}

// Open connects to the database at dbPath with WAL enabled. Backups go to
// backupDir when it is non-empty and the interval is positive.
func Open(dbPath string, cfg *config.DatabaseConfig, backupDir string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	connStr := fmt.Sprintf("file:%s?_txlock=immediate&_timeout=5000", dbPath)

	sqlDB, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite allows one writer.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	db := &DB{
		DB:        sqlDB,
		path:      dbPath,
		config:    cfg,
		backupDir: backupDir,
	}

	if err := db.initPragmas(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("initializing pragmas: %w", err)
	}

	if err := db.CheckIntegrity(context.Background()); err != nil {
		// The caller runs AttemptRecovery before Open, so this is only logged.
		slog.Warn("database integrity check failed", "error", err)
	}

	if cfg.BackupIntervalHours > 0 && backupDir != "" {
		db.startBackupScheduler(time.Duration(cfg.BackupIntervalHours) * time.Hour)
	}

	return db, nil
}

func (db *DB) initPragmas() error {
	pragmas := []struct {
		name   string
		pragma string
	}{
		{"journal_mode", "PRAGMA journal_mode=WAL"},
		{"synchronous", "PRAGMA synchronous=NORMAL"},
		{"busy_timeout", "PRAGMA busy_timeout=5000"},
		{"foreign_keys", "PRAGMA foreign_keys=ON"},
		{"cache_size", "PRAGMA cache_size=-4000"},
	}

	for _, p := range pragmas {
		if _, err := db.Exec(p.pragma); err != nil {
			return fmt.Errorf("setting %s: %w", p.name, err)
		}
	}
	return nil
}

// CheckIntegrity runs PRAGMA integrity_check and fails unless it reports ok.
func (db *DB) CheckIntegrity(ctx context.Context) error {
	results, err := integrityResults(ctx, db.DB)
	if err != nil {
		return err
	}
	if len(results) == 1 && results[0] == "ok" {
		return nil
	}
	return fmt.Errorf("integrity check failed: %s", strings.Join(results, "; "))
}

func integrityResults(ctx context.Context, q *sql.DB) ([]string, error) {
	rows, err := q.QueryContext(ctx, "PRAGMA integrity_check")
	if err != nil {
		return nil, fmt.Errorf("running integrity check: %w", err)
	}
	defer rows.Close()

	var results []string
	for rows.Next() {
		var result string
		if err := rows.Scan(&result); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating results: %w", err)
	}
	return results, nil
}

// Checkpoint flushes the WAL into the main database file.
func (db *DB) Checkpoint(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("WAL checkpoint: %w", err)
	}
	return nil
}

// Backup writes a consistent copy of the database into the backup directory
// and prunes backups older than the retention period.
func (db *DB) Backup(ctx context.Context) (string, error) {
	if db.backupDir == "" {
		return "", errors.New("backup directory not configured")
	}
	if db.IsClosed() {
		return "", ErrClosed
	}

	name := backupPrefix + time.Now().Format("20060102-150405.000") + ".db"
	backupPath := filepath.Join(db.backupDir, name)

	if err := db.Checkpoint(ctx); err != nil {
		slog.Warn("checkpoint before backup failed", "error", err)
	}

	quoted := strings.ReplaceAll(backupPath, "'", "''")
	if _, err := db.ExecContext(ctx, fmt.Sprintf("VACUUM INTO '%s'", quoted)); err != nil {
		return "", fmt.Errorf("creating backup: %w", err)
	}
	slog.Info("database backup created", "path", backupPath)

	if db.config.BackupRetentionDays > 0 {
		db.pruneBackups(time.Now().AddDate(0, 0, -db.config.BackupRetentionDays))
	}

	return backupPath, nil
}

// pruneBackups removes backup files last modified before cutoff.
func (db *DB) pruneBackups(cutoff time.Time) {
	entries, err := os.ReadDir(db.backupDir)
	if err != nil {
		slog.Warn("reading backup directory", "error", err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), backupPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}

		path := filepath.Join(db.backupDir, entry.Name())
		if err := os.Remove(path); err != nil {
			slog.Warn("removing old backup", "path", path, "error", err)
		} else {
			slog.Debug("removed old backup", "path", path)
		}
	}
}

func (db *DB) startBackupScheduler(interval time.Duration) {
	db.backupTicker = time.NewTicker(interval)
	db.backupDone = make(chan struct{})

	db.backupWG.Add(1)
	go func() {
		defer db.backupWG.Done()
		for {
			select {
			case <-db.backupTicker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
				if _, err := db.Backup(ctx); err != nil {
					slog.Error("scheduled backup failed", "error", err)
				}
				cancel()
			case <-db.backupDone:
				return
			}
		}
	}()
}

// Close stops the backup scheduler, checkpoints the WAL and closes the
// connection. Closing twice is a no-op.
func (db *DB) Close() error {
	db.mu.Lock()
	if db.closed {
		db.mu.Unlock()
		return nil
	}
	db.closed = true
	db.mu.Unlock()

	if db.backupTicker != nil {
		db.backupTicker.Stop()
		close(db.backupDone)
		db.backupWG.Wait()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if db.path != ":memory:" {
		if err := db.Checkpoint(ctx); err != nil {
			slog.Warn("final checkpoint failed", "error", err)
		}
	}

	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}

	slog.Debug("database closed", "path", db.path)
	return nil
}

// IsClosed returns true if the database has been closed.
func (db *DB) IsClosed() bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.closed
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// WithTransaction runs fn in a transaction, committing when it returns nil.
func (db *DB) WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if db.IsClosed() {
		return ErrClosed
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rolling back after error %v: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
