package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/sheetsync/sheetsync/internal/config"
)

func TestParseMigration(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantUp   string
		wantDown string
	}{
		{"no markers", "CREATE TABLE a (x);", "CREATE TABLE a (x);", ""},
		{"up only", "-- +migrate Up\nCREATE TABLE a (x);", "CREATE TABLE a (x);", ""},
		{"up then down", "-- +migrate Up\nCREATE TABLE a (x);\n-- +migrate Down\nDROP TABLE a;", "CREATE TABLE a (x);", "DROP TABLE a;"},
		{"down then up", "-- +migrate Down\nDROP TABLE a;\n-- +migrate Up\nCREATE TABLE a (x);", "CREATE TABLE a (x);", "DROP TABLE a;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up, down := parseMigration(tt.content)
			if up != tt.wantUp || down != tt.wantDown {
				t.Errorf("got (%q, %q), want (%q, %q)", up, down, tt.wantUp, tt.wantDown)
			}
		})
	}
}

func TestSplitStatements(t *testing.T) {
	got := splitStatements("INSERT INTO t VALUES ('a;b'); ; CREATE TABLE x (y)\n")
	if len(got) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(got), got)
	}
	if got[0] != "INSERT INTO t VALUES ('a;b')" {
		t.Errorf("quoted semicolon split: %q", got[0])
	}
}

func TestLoadMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"m/002_second.sql": {Data: []byte("-- +migrate Up\nSELECT 2;")},
		"m/001_first.sql":  {Data: []byte("-- +migrate Up\nSELECT 1;")},
		"m/notes.txt":      {Data: []byte("ignored")},
	}

	migrations, err := loadMigrations(fsys, "m")
	if err != nil {
		t.Fatalf("loadMigrations failed: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Description != "first" {
		t.Errorf("unexpected first migration %+v", migrations[0])
	}
}

func TestMigrator_UpAndDown(t *testing.T) {
	db, err := NewInMemory()
	if err != nil {
		t.Fatalf("NewInMemory failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()

	m, err := NewMigrator(db)
	if err != nil {
		t.Fatalf("NewMigrator failed: %v", err)
	}

	version, err := m.CurrentVersion(ctx)
	if err != nil || version != 2 {
		t.Fatalf("CurrentVersion = %d, %v; want 2", version, err)
	}

	// Already applied by NewInMemory.
	result, err := m.MigrateUp(ctx)
	if err != nil || len(result.Applied) != 0 {
		t.Errorf("second MigrateUp applied %d, err %v", len(result.Applied), err)
	}

	result, err = m.MigrateDown(ctx)
	if err != nil {
		t.Fatalf("MigrateDown failed: %v", err)
	}
	if result.TargetVersion != 1 {
		t.Errorf("TargetVersion = %d, want 1", result.TargetVersion)
	}
	if _, err := db.ExecContext(ctx, "SELECT 1 FROM settings"); err == nil {
		t.Error("settings table should be dropped after rollback")
	}

	status, err := m.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if !status[0].Applied || status[1].Applied {
		t.Errorf("unexpected status %+v", status)
	}

	if _, err := m.MigrateUp(ctx); err != nil {
		t.Fatalf("re-applying failed: %v", err)
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO settings (key, value) VALUES ('k', 'v')"); err != nil {
		t.Errorf("settings table missing after MigrateUp: %v", err)
	}
}

func TestOpen_BackupAndRecovery(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sheetsync.db")
	backupDir := filepath.Join(dir, "backups")
	if err := os.MkdirAll(backupDir, 0750); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	report, err := AttemptRecovery(dbPath, backupDir)
	if err != nil || report.Result != RecoveryHealthy {
		t.Fatalf("first-run recovery = %v, %v", report.Result, err)
	}

	cfg := &config.DatabaseConfig{Path: dbPath, BackupRetentionDays: 14}
	db, err := Open(dbPath, cfg, backupDir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	m, err := NewMigrator(db)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.MigrateUp(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO settings (key, value) VALUES ('k', 'v')"); err != nil {
		t.Fatal(err)
	}

	backupPath, err := db.Backup(ctx)
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(backupPath), "sheetsync-") {
		t.Errorf("unexpected backup name %s", backupPath)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("second Close should be a no-op: %v", err)
	}
	if _, err := db.Backup(ctx); err != ErrClosed {
		t.Errorf("Backup after Close = %v, want ErrClosed", err)
	}

	report, err = AttemptRecovery(dbPath, backupDir)
	if err != nil || report.Result != RecoveryHealthy {
		t.Fatalf("healthy recovery = %v, %v", report.Result, err)
	}

	// Overwrite the header so the file is no longer a database.
	if err := os.WriteFile(dbPath, []byte(strings.Repeat("garbage!", 512)), 0600); err != nil {
		t.Fatal(err)
	}
	os.Remove(dbPath + "-wal")
	os.Remove(dbPath + "-shm")

	report, err = AttemptRecovery(dbPath, backupDir)
	if err != nil {
		t.Fatalf("recovery failed: %v (steps %+v)", err, report.Steps)
	}
	if report.Result != RecoveryFromBackup || report.BackupUsed != backupPath {
		t.Errorf("report = %+v", report)
	}

	restored, err := Open(dbPath, &config.DatabaseConfig{Path: dbPath}, "")
	if err != nil {
		t.Fatal(err)
	}
	defer restored.Close()

	var v string
	if err := restored.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = 'k'").Scan(&v); err != nil || v != "v" {
		t.Errorf("restored value = %q, %v", v, err)
	}
}

func TestRecoveryResult_String(t *testing.T) {
	for r, want := range map[RecoveryResult]string{
		RecoveryHealthy:    "healthy",
		RecoveryFromBackup: "restored_from_backup",
		RecoveryFailed:     "failed",
		RecoveryResult(9):  "unknown",
	} {
		if got := r.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", r, got, want)
		}
	}
}
