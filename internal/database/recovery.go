package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// RecoveryResult is the outcome of AttemptRecovery.
type RecoveryResult int

const (
	// RecoveryHealthy means the file was missing (first run) or passed the
	// integrity check, possibly after a WAL checkpoint.
	RecoveryHealthy RecoveryResult = iota
	// RecoveryFromBackup means the file was replaced by the newest good backup.
	RecoveryFromBackup
	// RecoveryFailed means no step produced a healthy file.
	RecoveryFailed
)

func (r RecoveryResult) String() string {
	switch r {
	case RecoveryHealthy:
		return "healthy"
	case RecoveryFromBackup:
		return "restored_from_backup"
	case RecoveryFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RecoveryReport lists the steps AttemptRecovery ran.
type RecoveryReport struct {
	Result       RecoveryResult
	DatabasePath string
	BackupUsed   string
	WALRecovered bool
	Steps        []RecoveryStep
}

// RecoveryStep is one recovery phase.
type RecoveryStep struct {
	Name      string
	Succeeded bool
	Message   string
	Duration  time.Duration
}

// AttemptRecovery checks the database file before it is opened. A damaged
// file gets a WAL checkpoint and, failing that, is replaced by the newest
// backup that passes its own integrity check. The damaged file is kept
// alongside with a .corrupted suffix.
func AttemptRecovery(dbPath, backupDir string) (*RecoveryReport, error) {
	report := &RecoveryReport{DatabasePath: dbPath}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		report.Result = RecoveryHealthy
		report.Steps = append(report.Steps, RecoveryStep{
			Name:      "check_exists",
			Succeeded: true,
			Message:   "database does not exist (first run)",
		})
		return report, nil
	}

	check := report.run("integrity_check", func() (string, error) {
		return checkFileIntegrity(dbPath)
	})
	if check.Succeeded {
		report.Result = RecoveryHealthy
		return report, nil
	}
	slog.Warn("database integrity check failed", "path", dbPath, "error", check.Message)

	if _, err := os.Stat(dbPath + "-wal"); err == nil {
		wal := report.run("wal_recovery", func() (string, error) {
			return checkpointFile(dbPath)
		})
		if wal.Succeeded {
			recheck := report.run("post_wal_integrity", func() (string, error) {
				return checkFileIntegrity(dbPath)
			})
			if recheck.Succeeded {
				report.Result = RecoveryHealthy
				report.WALRecovered = true
				slog.Info("database recovered via WAL checkpoint", "path", dbPath)
				return report, nil
			}
		}
	}

	if backupDir != "" {
		restore := report.run("backup_restoration", func() (string, error) {
			return restoreFromBackup(dbPath, backupDir)
		})
		if restore.Succeeded {
			report.Result = RecoveryFromBackup
			report.BackupUsed = restore.Message
			slog.Info("database restored from backup", "path", dbPath, "backup", restore.Message)
			return report, nil
		}
	}

	report.Result = RecoveryFailed
	slog.Error("database recovery failed", "path", dbPath, "steps", len(report.Steps))
	return report, errors.New("all recovery attempts failed")
}

func (r *RecoveryReport) run(name string, fn func() (string, error)) RecoveryStep {
	start := time.Now()
	msg, err := fn()

	step := RecoveryStep{Name: name, Duration: time.Since(start), Succeeded: err == nil, Message: msg}
	if err != nil {
		step.Message = err.Error()
	}
	r.Steps = append(r.Steps, step)
	return step
}

func checkFileIntegrity(dbPath string) (string, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", dbPath))
	if err != nil {
		return "", fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results, err := integrityResults(ctx, db)
	if err != nil {
		return "", err
	}
	if len(results) == 1 && results[0] == "ok" {
		return "ok", nil
	}
	return "", fmt.Errorf("integrity check failed: %s", strings.Join(results, "; "))
}

func checkpointFile(dbPath string) (string, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_txlock=immediate", dbPath))
	if err != nil {
		return "", fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA wal_checkpoint(RESTART)"); err != nil {
		return "", fmt.Errorf("WAL checkpoint: %w", err)
	}
	return "WAL checkpoint complete", nil
}

// restoreFromBackup copies the newest healthy backup over dbPath and returns
// the backup path.
func restoreFromBackup(dbPath, backupDir string) (string, error) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return "", fmt.Errorf("reading backup directory: %w", err)
	}

	type candidate struct {
		path    string
		modTime time.Time
	}
	var backups []candidate
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".db") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, candidate{filepath.Join(backupDir, entry.Name()), info.ModTime()})
	}
	if len(backups) == 0 {
		return "", errors.New("no backup files found")
	}

	sort.Slice(backups, func(i, j int) bool { return backups[i].modTime.After(backups[j].modTime) })

	for _, b := range backups {
		if _, err := checkFileIntegrity(b.path); err != nil {
			slog.Debug("backup failed integrity check", "path", b.path, "error", err)
			continue
		}

		corrupted := dbPath + ".corrupted." + time.Now().Format("20060102-150405")
		if err := os.Rename(dbPath, corrupted); err != nil {
			slog.Warn("failed to preserve corrupted database", "path", dbPath, "error", err)
		}
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")

		if err := copyFile(b.path, dbPath); err != nil {
			return "", fmt.Errorf("copying backup: %w", err)
		}
		return b.path, nil
	}

	return "", errors.New("no valid backup found")
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return out.Sync()
}
