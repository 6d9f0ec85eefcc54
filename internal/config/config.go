// Package config provides configuration management for SheetSync.
// Configurations are loaded from TOML files with XDG-compliant paths.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Store    StoreConfig    `toml:"store"`
	Expiry   ExpiryConfig   `toml:"expiry"`
	Display  DisplayConfig  `toml:"display"`
	Logging  LoggingConfig  `toml:"logging"`
	Database DatabaseConfig `toml:"database"`
	Auth     AuthConfig     `toml:"auth"`
}

// StoreBackend selects where inventory entries live.
type StoreBackend string

const (
	StoreBackendSQLite StoreBackend = "sqlite"
	StoreBackendMemory StoreBackend = "memory"
	StoreBackendSheets StoreBackend = "sheets"
)

// StoreConfig selects and configures the inventory store.
type StoreConfig struct {
	Backend StoreBackend `toml:"backend"`
	Sheets  SheetsConfig `toml:"sheets"`
}

// SheetsConfig configures the Google Sheets backed store.
type SheetsConfig struct {
	SpreadsheetID   string `toml:"spreadsheet_id"`
	CredentialsFile string `toml:"credentials_file"`
	InventorySheet  string `toml:"inventory_sheet"`
	ProductSheet    string `toml:"product_sheet"`
	// Endpoint overrides the API base URL. Empty uses Google's.
	Endpoint string `toml:"endpoint"`
}

// ExpiryConfig holds the thresholds shared by every expiry view.
type ExpiryConfig struct {
	ExpiringSoonWindowDays int `toml:"expiring_soon_window_days"`
	NotificationWindowDays int `toml:"notification_window_days"`
	AttentionLimit         int `toml:"attention_limit"`
	// ReferenceDate pins "today" (YYYY-MM-DD). Empty follows the wall clock.
	ReferenceDate string `toml:"reference_date"`
}

// DisplayConfig controls TUI appearance.
type DisplayConfig struct {
	ColorScheme ColorScheme `toml:"color_scheme"`
	DateFormat  string      `toml:"date_format"`
}

// ColorScheme defines the terminal color palette.
type ColorScheme string

const (
	ColorSchemeFresh ColorScheme = "fresh"
	ColorSchemeAmber ColorScheme = "amber"
	ColorSchemeMono  ColorScheme = "mono"
)

// LoggingConfig controls application logging.
type LoggingConfig struct {
	Level LogLevel `toml:"level"`
	File  string   `toml:"file"`
}

// LogLevel defines logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// DatabaseConfig controls SQLite database settings.
type DatabaseConfig struct {
	Path                string `toml:"path"`
	BackupIntervalHours int    `toml:"backup_interval_hours"`
	BackupRetentionDays int    `toml:"backup_retention_days"`
}

// AuthConfig holds the optional unlock passphrase.
type AuthConfig struct {
	// PassphraseHash is a bcrypt hash. Empty disables the unlock screen.
	PassphraseHash string `toml:"passphrase_hash"`
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Store.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}

	if err := c.Expiry.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("expiry: %w", err))
	}

	if err := c.Display.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the store configuration is valid.
func (s *StoreConfig) Validate() error {
	var errs []error

	switch s.Backend {
	case StoreBackendSQLite, StoreBackendMemory:
	case StoreBackendSheets:
		if s.Sheets.SpreadsheetID == "" {
			errs = append(errs, errors.New("sheets.spreadsheet_id is required for the sheets backend"))
		}
		if s.Sheets.InventorySheet == "" {
			errs = append(errs, errors.New("sheets.inventory_sheet is required"))
		}
		if s.Sheets.ProductSheet == "" {
			errs = append(errs, errors.New("sheets.product_sheet is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid backend: %s", s.Backend))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the expiry thresholds are usable.
func (e *ExpiryConfig) Validate() error {
	var errs []error

	if e.ExpiringSoonWindowDays < 0 {
		errs = append(errs, errors.New("expiring_soon_window_days must be non-negative"))
	}

	if e.NotificationWindowDays < 0 {
		errs = append(errs, errors.New("notification_window_days must be non-negative"))
	}

	if e.AttentionLimit < 1 {
		errs = append(errs, errors.New("attention_limit must be positive"))
	}

	if e.ReferenceDate != "" {
		if _, err := time.Parse("2006-01-02", e.ReferenceDate); err != nil {
			errs = append(errs, fmt.Errorf("invalid reference_date format (expected YYYY-MM-DD): %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the display configuration is valid.
func (d *DisplayConfig) Validate() error {
	validSchemes := map[ColorScheme]bool{
		ColorSchemeFresh: true,
		ColorSchemeAmber: true,
		ColorSchemeMono:  true,
	}

	if !validSchemes[d.ColorScheme] && d.ColorScheme != "" {
		return fmt.Errorf("invalid color_scheme: %s", d.ColorScheme)
	}

	return nil
}

// Validate checks that the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	validLevels := map[LogLevel]bool{
		LogLevelDebug: true,
		LogLevelInfo:  true,
		LogLevelWarn:  true,
		LogLevelError: true,
	}

	if !validLevels[l.Level] && l.Level != "" {
		return fmt.Errorf("invalid log level: %s", l.Level)
	}

	return nil
}

// Validate checks that the database configuration is valid.
func (d *DatabaseConfig) Validate() error {
	var errs []error

	if d.Path == "" {
		errs = append(errs, errors.New("path is required"))
	}

	if d.BackupIntervalHours < 0 {
		errs = append(errs, errors.New("backup_interval_hours must be non-negative"))
	}

	if d.BackupRetentionDays < 0 {
		errs = append(errs, errors.New("backup_retention_days must be non-negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: StoreBackendSQLite,
			Sheets: SheetsConfig{
				InventorySheet: "Inventory",
				ProductSheet:   "database",
			},
		},
		Expiry: ExpiryConfig{
			ExpiringSoonWindowDays: 7,
			NotificationWindowDays: 10,
			AttentionLimit:         5,
		},
		Display: DisplayConfig{
			ColorScheme: ColorSchemeFresh,
			DateFormat:  "Jan 2, 2006",
		},
		Logging: LoggingConfig{
			Level: LogLevelInfo,
			File:  "logs/sheetsync.log",
		},
		Database: DatabaseConfig{
			Path:                "sheetsync.db",
			BackupIntervalHours: 24,
			BackupRetentionDays: 14,
		},
	}
}

// Environment variables that override file configuration.
const (
	EnvSheetID     = "SHEET_ID"
	EnvCredentials = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvStore       = "SHEETSYNC_STORE"
)

// ApplyEnv overlays environment variables onto the configuration.
// Call Validate afterwards.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvStore); v != "" {
		c.Store.Backend = StoreBackend(v)
	}
	if v := os.Getenv(EnvSheetID); v != "" {
		c.Store.Sheets.SpreadsheetID = v
	}
	if v := os.Getenv(EnvCredentials); v != "" {
		c.Store.Sheets.CredentialsFile = v
	}
}

// ReferenceTime returns the pinned reference date, if one is configured.
func (e *ExpiryConfig) ReferenceTime() (time.Time, bool) {
	if e.ReferenceDate == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02", e.ReferenceDate, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
