// SheetSync: a terminal tracker for perishable groceries.
//
// Entries live in SQLite, an in-memory demo store, or a Google spreadsheet,
// and are grouped by product and sorted by how soon they expire.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sheetsync/sheetsync/internal/auth"
	"github.com/sheetsync/sheetsync/internal/config"
	"github.com/sheetsync/sheetsync/internal/database"
	"github.com/sheetsync/sheetsync/internal/database/seed"
	"github.com/sheetsync/sheetsync/internal/logging"
	"github.com/sheetsync/sheetsync/internal/repository"
	"github.com/sheetsync/sheetsync/internal/repository/memory"
	"github.com/sheetsync/sheetsync/internal/repository/sheets"
	"github.com/sheetsync/sheetsync/internal/services/expiry"
	"github.com/sheetsync/sheetsync/internal/services/inventory"
	"github.com/sheetsync/sheetsync/internal/services/notifications"
	"github.com/sheetsync/sheetsync/internal/tui"
	"github.com/sheetsync/sheetsync/internal/util"
)

// Build information (set via ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

type options struct {
	configPath  string
	migrateOnly bool
	seedData    bool
	debugMode   bool
}

func main() {
	var (
		opts           options
		showVersion    bool
		hashPassphrase string
	)
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.BoolVar(&opts.migrateOnly, "migrate-only", false, "Run migrations and exit")
	flag.BoolVar(&opts.seedData, "seed", false, "Load the demo inventory into the database and exit")
	flag.BoolVar(&opts.debugMode, "debug", false, "Enable debug logging")
	flag.BoolVar(&showVersion, "version", false, "Show version and exit")
	flag.StringVar(&hashPassphrase, "hash-passphrase", "", "Print the bcrypt hash of a passphrase for auth.passphrase_hash and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("SheetSync version %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	if hashPassphrase != "" {
		hash, err := auth.Hash(hashPassphrase)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		slog.Info("received shutdown signal", "signal", sig)
		cancel()

		// Force exit after timeout
		time.AfterFunc(10*time.Second, func() {
			slog.Error("forced shutdown after timeout")
			os.Exit(1)
		})
	}()

	if err := run(ctx, opts); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	if err := config.LoadEnv(); err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}

	cfg, cfgPath, err := config.Load(opts.configPath, true)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	closeLog, err := logging.Setup(cfg, opts.debugMode)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer closeLog()

	slog.Info("SheetSync starting",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cfgPath,
		"store", cfg.Store.Backend,
	)

	dbPath, err := config.EnsureDataDir(cfg)
	if err != nil {
		return fmt.Errorf("ensuring data directory: %w", err)
	}

	backupDir, err := config.BackupDir(dbPath)
	if err != nil {
		slog.Warn("failed to create backup directory", "error", err)
		backupDir = ""
	}

	if _, err := os.Stat(dbPath); err == nil {
		report, err := database.AttemptRecovery(dbPath, backupDir)
		if err != nil {
			slog.Error("database recovery failed",
				"path", dbPath,
				"steps", len(report.Steps),
			)
			return fmt.Errorf("database recovery failed: %w", err)
		}

		switch report.Result {
		case database.RecoveryFromBackup:
			slog.Warn("database restored from backup",
				"backup", report.BackupUsed,
			)
		case database.RecoveryHealthy:
			slog.Debug("database integrity verified")
		}
	}

	// The database is opened for every store: it also holds the settings.
	db, err := database.Open(dbPath, &cfg.Database, backupDir)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		slog.Info("closing database")
		if err := db.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()

	slog.Debug("database opened", "path", db.Path())

	migrator, err := database.NewMigrator(db)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}

	result, err := migrator.MigrateUp(ctx)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	if len(result.Applied) > 0 {
		slog.Info("applied migrations",
			"count", len(result.Applied),
			"to_version", result.TargetVersion,
		)
	}

	if opts.migrateOnly {
		slog.Info("migrations complete, exiting")
		return nil
	}

	clock := util.NewClock()
	if ref, ok := cfg.Expiry.ReferenceTime(); ok {
		clock = util.NewFixedClock(ref)
	}

	if opts.seedData {
		res, err := seed.Run(ctx, db.DB, clock.Today())
		if err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
		if !res.Skipped {
			slog.Info("seed data loaded", "products", res.Products, "entries", res.Entries)
		}
		return nil
	}

	store, err := openStore(ctx, cfg, db, clock)
	if err != nil {
		return err
	}

	settings := repository.NewSettingsRepository(db.DB)
	classifier := expiry.NewClassifier(cfg.Expiry.ExpiringSoonWindowDays)

	deps := tui.Deps{
		Inventory: inventory.NewService(store, clock),
		Notifications: notifications.NewService(
			notifications.NewViewedSet(settings),
			expiry.NewFeedSelector(classifier, cfg.Expiry.NotificationWindowDays),
		),
		Changelog: notifications.NewChangelogTracker(settings),
		Gate:      auth.NewGate(cfg.Auth.PassphraseHash),
		Config:    cfg,
	}

	tui.Version = Version
	tui.BuildTime = BuildTime

	slog.Info("starting TUI", "locked", deps.Gate.Enabled())

	if err := tui.Run(ctx, deps); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	slog.Info("SheetSync shutdown complete")
	return nil
}

// openStore returns the inventory store selected by the configuration.
func openStore(ctx context.Context, cfg *config.Config, db *database.DB, clock *util.Clock) (inventory.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		slog.Info("using in-memory demo inventory")
		return memory.NewSeeded(clock.Today()), nil
	case config.StoreBackendSheets:
		store, err := sheets.New(ctx, cfg.Store.Sheets)
		if err != nil {
			return nil, fmt.Errorf("connecting to spreadsheet: %w", err)
		}
		slog.Info("using Google Sheets inventory", "spreadsheet", cfg.Store.Sheets.SpreadsheetID)
		return store, nil
	default:
		return repository.NewSQLStore(db.DB), nil
	}
}
