package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

var migrationName = regexp.MustCompile(`^(\d{3})_(.+)\.sql$`)

// Migration is one versioned schema change.
type Migration struct {
	Version     int
	Description string
	UpSQL       string
	DownSQL     string
	Applied     bool
	AppliedAt   time.Time
}

// MigrationResult describes a MigrateUp or MigrateDown run.
type MigrationResult struct {
	Applied        []Migration
	CurrentVersion int
	TargetVersion  int
}

// Migrator applies the embedded migrations in version order.
type Migrator struct {
	db         *DB
	migrations []Migration
}

// NewMigrator loads the embedded migrations and creates the version table.
func NewMigrator(db *DB) (*Migrator, error) {
	migrations, err := loadMigrations(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("loading migrations: %w", err)
	}

	m := &Migrator{db: db, migrations: migrations}
	if err := m.ensureMigrationsTable(); err != nil {
		return nil, fmt.Errorf("creating migrations table: %w", err)
	}
	return m, nil
}

func loadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	var out []Migration
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		matches := migrationName.FindStringSubmatch(entry.Name())
		if matches == nil {
			slog.Warn("skipping invalid migration filename", "name", entry.Name())
			continue
		}

		version, _ := strconv.Atoi(matches[1])
		content, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}

		up, down := parseMigration(string(content))
		out = append(out, Migration{
			Version:     version,
			Description: strings.ReplaceAll(matches[2], "_", " "),
			UpSQL:       up,
			DownSQL:     down,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// parseMigration splits a migration file into its Up and Down sections.
// A file without markers is all Up.
//
//	-- +migrate Up
//	CREATE TABLE ...;
//	-- +migrate Down
//	DROP TABLE ...;
func parseMigration(content string) (up, down string) {
	upIdx := strings.Index(content, upMarker)
	downIdx := strings.Index(content, downMarker)

	switch {
	case upIdx == -1:
		return strings.TrimSpace(content), ""
	case downIdx == -1:
		return strings.TrimSpace(content[upIdx+len(upMarker):]), ""
	case upIdx < downIdx:
		return strings.TrimSpace(content[upIdx+len(upMarker) : downIdx]),
			strings.TrimSpace(content[downIdx+len(downMarker):])
	default:
		return strings.TrimSpace(content[upIdx+len(upMarker):]),
			strings.TrimSpace(content[downIdx+len(downMarker) : upIdx])
	}
}

func (m *Migrator) ensureMigrationsTable() error {
	_, err := m.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`)
	return err
}

// CurrentVersion returns the highest applied version, or 0.
func (m *Migrator) CurrentVersion(ctx context.Context) (int, error) {
	var version int
	err := m.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(version), 0) FROM schema_migrations",
	).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("querying current version: %w", err)
	}
	return version, nil
}

// PendingMigrations returns migrations newer than the current version.
func (m *Migrator) PendingMigrations(ctx context.Context) ([]Migration, error) {
	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}

	var pending []Migration
	for _, mig := range m.migrations {
		if mig.Version > current {
			pending = append(pending, mig)
		}
	}
	return pending, nil
}

// MigrateUp applies every pending migration, each in its own transaction.
func (m *Migrator) MigrateUp(ctx context.Context) (*MigrationResult, error) {
	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}
	result := &MigrationResult{CurrentVersion: current, TargetVersion: current}

	pending, err := m.PendingMigrations(ctx)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		slog.Debug("database schema is up to date", "version", current)
		return result, nil
	}
	result.TargetVersion = pending[len(pending)-1].Version

	for _, mig := range pending {
		slog.Info("applying migration", "version", mig.Version, "description", mig.Description)

		if err := m.exec(ctx, mig.UpSQL, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO schema_migrations (version, description) VALUES (?, ?)",
				mig.Version, mig.Description,
			)
			return err
		}); err != nil {
			return result, fmt.Errorf("migration %d failed: %w", mig.Version, err)
		}

		mig.Applied = true
		mig.AppliedAt = time.Now()
		result.Applied = append(result.Applied, mig)
	}

	slog.Info("migrations complete", "from", current, "to", result.TargetVersion)
	return result, nil
}

// MigrateDown rolls back the most recent migration.
func (m *Migrator) MigrateDown(ctx context.Context) (*MigrationResult, error) {
	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}
	result := &MigrationResult{CurrentVersion: current, TargetVersion: current}

	if current == 0 {
		return result, errors.New("no migrations to roll back")
	}

	var mig *Migration
	for i := range m.migrations {
		if m.migrations[i].Version == current {
			mig = &m.migrations[i]
			break
		}
	}
	if mig == nil {
		return result, fmt.Errorf("migration %d not found", current)
	}
	if mig.DownSQL == "" {
		return result, fmt.Errorf("migration %d has no rollback SQL", current)
	}

	slog.Info("rolling back migration", "version", mig.Version, "description", mig.Description)

	if err := m.exec(ctx, mig.DownSQL, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations WHERE version = ?", mig.Version)
		return err
	}); err != nil {
		return result, fmt.Errorf("rollback %d failed: %w", mig.Version, err)
	}

	result.Applied = append(result.Applied, *mig)
	result.TargetVersion = 0
	for _, prev := range m.migrations {
		if prev.Version < current {
			result.TargetVersion = prev.Version
		}
	}
	return result, nil
}

// exec runs the statements of script and then record in a single transaction.
func (m *Migrator) exec(ctx context.Context, script string, record func(tx *sql.Tx) error) error {
	return m.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range splitStatements(script) {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("executing statement: %w\nSQL: %s", err, stmt)
			}
		}
		if err := record(tx); err != nil {
			return fmt.Errorf("recording migration: %w", err)
		}
		return nil
	})
}

// Status reports every known migration with its applied time.
func (m *Migrator) Status(ctx context.Context) ([]Migration, error) {
	rows, err := m.db.QueryContext(ctx,
		"SELECT version, applied_at FROM schema_migrations ORDER BY version",
	)
	if err != nil {
		return nil, fmt.Errorf("querying applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]time.Time)
	for rows.Next() {
		var version int
		var appliedAt string
		if err := rows.Scan(&version, &appliedAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		t, _ := time.Parse("2006-01-02 15:04:05", appliedAt)
		applied[version] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	out := make([]Migration, len(m.migrations))
	for i, mig := range m.migrations {
		out[i] = mig
		if t, ok := applied[mig.Version]; ok {
			out[i].Applied = true
			out[i].AppliedAt = t
		}
	}
	return out, nil
}

// splitStatements splits a script on semicolons outside quoted strings.
func splitStatements(script string) []string {
	var statements []string
	var current strings.Builder
	var quote rune

	flush := func() {
		if stmt := strings.TrimSpace(current.String()); stmt != "" {
			statements = append(statements, stmt)
		}
		current.Reset()
	}

	for _, ch := range script {
		switch {
		case quote != 0:
			current.WriteRune(ch)
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"':
			quote = ch
			current.WriteRune(ch)
		case ch == ';':
			flush()
		default:
			current.WriteRune(ch)
		}
	}
	flush()

	return statements
}
