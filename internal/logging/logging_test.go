package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sheetsync/sheetsync/internal/config"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		level config.LogLevel
		debug bool
		want  slog.Level
	}{
		{config.LogLevelDebug, false, slog.LevelDebug},
		{config.LogLevelInfo, false, slog.LevelInfo},
		{config.LogLevelWarn, false, slog.LevelWarn},
		{config.LogLevelError, false, slog.LevelError},
		{"", false, slog.LevelInfo},
		{config.LogLevelError, true, slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			if got := Level(tt.level, tt.debug); got != tt.want {
				t.Errorf("Level(%q, %v) = %v, want %v", tt.level, tt.debug, got, tt.want)
			}
		})
	}
}

func TestNewHandler(t *testing.T) {
	var buf bytes.Buffer
	slog.New(NewHandler(&buf, slog.LevelInfo, true)).Info("entry added", "quantity", 2)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("file handler should write JSON: %v (%s)", err, buf.String())
	}
	if record["msg"] != "entry added" || record["quantity"] != float64(2) {
		t.Errorf("unexpected record %v", record)
	}

	buf.Reset()
	logger := slog.New(NewHandler(&buf, slog.LevelWarn, false))
	logger.Info("hidden")
	logger.Warn("shown")
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("level filtering failed: %q", out)
	}
}

func TestSetup_File(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg := config.Default()
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "sheetsync.log")

	closeLog, err := Setup(cfg, false)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	slog.Info("hello from test")
	if err := closeLog(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"msg":"hello from test"`) {
		t.Errorf("log file missing record: %s", data)
	}
}
