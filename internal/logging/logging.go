// Package logging configures the process-wide slog logger.
//
// A TUI owns the terminal, so log records go to a JSON file when one is
// configured. Without a file they go to stderr through tint.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/sheetsync/sheetsync/internal/config"
)

// Level maps a configured level to slog. debug forces slog.LevelDebug.
func Level(level config.LogLevel, debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewHandler returns a JSON handler when file is true and a tint handler
// otherwise.
func NewHandler(w io.Writer, level slog.Level, file bool) slog.Handler {
	if file {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})
}

// Setup installs the default logger described by cfg. The returned close
// function releases the log file, if any.
func Setup(cfg *config.Config, debug bool) (func() error, error) {
	level := Level(cfg.Logging.Level, debug)

	logPath, err := config.EnsureLogDir(cfg)
	if err != nil {
		return nil, err
	}

	if logPath == "" {
		slog.SetDefault(slog.New(NewHandler(os.Stderr, level, false)))
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	slog.SetDefault(slog.New(NewHandler(f, level, true)))
	return f.Close, nil
}
