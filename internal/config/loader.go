package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	// DefaultConfigFileName is the standard configuration file name.
	DefaultConfigFileName = "sheetsync.toml"

	// XDGSubdir is the subdirectory under the XDG config and data homes.
	XDGSubdir = "sheetsync"
)

// LoadError represents an error that occurred while loading configuration.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading config from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load resolves the configuration file in order of precedence:
//  1. explicitPath, if provided
//  2. $XDG_CONFIG_HOME/sheetsync/sheetsync.toml (or ~/.config/...)
//  3. ./sheetsync.toml
//  4. defaults, written to the first writable location when createDefault is set
//
// Environment overrides are applied on top of whatever was found.
// Returns the configuration and the path it was loaded from ("" when in-memory).
func Load(explicitPath string, createDefault bool) (*Config, string, error) {
	if explicitPath != "" {
		cfg, err := loadFromFile(explicitPath)
		if err != nil {
			return nil, "", &LoadError{Path: explicitPath, Err: err}
		}
		return cfg, explicitPath, nil
	}

	xdgPath := xdgConfigPath()
	cwdPath := filepath.Join(".", DefaultConfigFileName)

	for _, candidate := range []string{xdgPath, cwdPath} {
		if candidate == "" || !fileExists(candidate) {
			continue
		}
		cfg, err := loadFromFile(candidate)
		if err != nil {
			return nil, "", &LoadError{Path: candidate, Err: err}
		}
		return cfg, candidate, nil
	}

	if !createDefault {
		return nil, "", errors.New("no configuration file found; searched: " + xdgPath + ", " + cwdPath)
	}

	cfg := Default()
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("validating default config: %w", err)
	}

	target := cwdPath
	if xdgPath != "" {
		if err := os.MkdirAll(filepath.Dir(xdgPath), 0750); err == nil {
			target = xdgPath
		}
	}

	if err := Save(Default(), target); err != nil {
		// Keep running on the in-memory defaults.
		return cfg, "", nil
	}

	return cfg, target, nil
}

// LoadEnv reads KEY=value pairs from the given dotenv files into the process
// environment. Missing files are ignored; variables already set win.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, p := range paths {
		if !fileExists(p) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}

	return nil
}

// loadFromFile reads, parses and validates a TOML configuration file.
func loadFromFile(path string) (*Config, error) {
	// Start with defaults so missing values get sensible defaults
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Save writes a configuration to a TOML file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0640)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	header := `# SheetSync configuration
#
# backend: sqlite (local file), memory (demo data, nothing persisted)
# or sheets (Google Sheets; set SHEET_ID and GOOGLE_APPLICATION_CREDENTIALS).

`
	if _, err := f.WriteString(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encoding TOML: %w", err)
	}

	return nil
}

// xdgConfigPath returns the XDG-compliant config file path, or "" when no
// home directory can be determined.
func xdgConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, XDGSubdir, DefaultConfigFileName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", XDGSubdir, DefaultConfigFileName)
}

// xdgDataDir returns $XDG_DATA_HOME/sheetsync (or ~/.local/share/sheetsync).
func xdgDataDir() string {
	xdgData := os.Getenv("XDG_DATA_HOME")
	if xdgData == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		xdgData = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(xdgData, XDGSubdir)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// EnsureDataDir creates the data directory for the database if needed and
// returns the database file path. Relative paths live under the XDG data home.
func EnsureDataDir(cfg *Config) (string, error) {
	dbPath := cfg.Database.Path

	if filepath.IsAbs(dbPath) {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return "", fmt.Errorf("creating database directory: %w", err)
		}
		return dbPath, nil
	}

	dataDir := xdgDataDir()
	if dataDir == "" {
		return dbPath, nil
	}
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		// Fall back to current directory
		return dbPath, nil
	}

	return filepath.Join(dataDir, dbPath), nil
}

// EnsureLogDir creates the log directory if needed and returns the log file
// path. An empty path disables file logging.
func EnsureLogDir(cfg *Config) (string, error) {
	logPath := cfg.Logging.File
	if logPath == "" {
		return "", nil
	}

	dir := filepath.Dir(logPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil && !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("creating log directory: %w", err)
		}
	}

	return logPath, nil
}

// BackupDir returns the directory for database backups, next to the database.
func BackupDir(dbPath string) (string, error) {
	backupDir := filepath.Join(filepath.Dir(dbPath), "backups")

	if err := os.MkdirAll(backupDir, 0750); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	return backupDir, nil
}
