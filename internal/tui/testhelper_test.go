package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sheetsync/sheetsync/internal/auth"
	"github.com/sheetsync/sheetsync/internal/config"
	"github.com/sheetsync/sheetsync/internal/repository/memory"
	"github.com/sheetsync/sheetsync/internal/services/expiry"
	"github.com/sheetsync/sheetsync/internal/services/inventory"
	"github.com/sheetsync/sheetsync/internal/services/notifications"
	"github.com/sheetsync/sheetsync/internal/util"
)

var testNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.Local)

// testEnv holds the collaborators behind an App under test.
type testEnv struct {
	store *memory.Store
	kv    *memory.KV
	deps  Deps
}

// newTestEnv builds deps over the seeded demo store with a fixed clock. The
// changelog is marked seen so it does not cover the screen.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewSeeded(testNow)
	kv := memory.NewKV()
	clock := util.NewFixedClock(testNow)
	cfg := config.Default()

	tracker := notifications.NewChangelogTracker(kv)
	if err := tracker.MarkSeen(context.Background()); err != nil {
		t.Fatalf("marking changelog seen: %v", err)
	}

	selector := expiry.NewFeedSelector(
		expiry.NewClassifier(cfg.Expiry.ExpiringSoonWindowDays),
		cfg.Expiry.NotificationWindowDays,
	)

	return &testEnv{
		store: store,
		kv:    kv,
		deps: Deps{
			Inventory:     inventory.NewService(store, clock),
			Notifications: notifications.NewService(notifications.NewViewedSet(kv), selector),
			Changelog:     tracker,
			Config:        cfg,
		},
	}
}

// withGate enables the unlock screen with passphrase.
func (e *testEnv) withGate(t *testing.T, passphrase string) *testEnv {
	t.Helper()
	hash, err := auth.Hash(passphrase)
	if err != nil {
		t.Fatalf("hashing passphrase: %v", err)
	}
	e.deps.Gate = auth.NewGate(hash)
	return e
}

// newTestApp creates an App sized 120x40 with its first refresh applied.
func newTestApp(t *testing.T) *App {
	t.Helper()
	return newTestAppWith(t, newTestEnv(t))
}

func newTestAppWith(t *testing.T, env *testEnv) *App {
	t.Helper()

	app := New(env.deps)
	app.width = 120
	app.height = 40
	app.ready = true
	app.updateViewDimensions()

	runCmd(t, app, app.refresh())
	return app
}

// runCmd executes cmd synchronously and feeds its message back into the app.
func runCmd(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			runCmd(t, app, c)
		}
		return
	}
	_, next := app.Update(msg)
	if _, isTick := msg.(tickMsg); !isTick {
		runCmd(t, app, next)
	}
}

// press sends a key and runs any resulting command.
func press(t *testing.T, app *App, msg tea.KeyMsg) {
	t.Helper()
	_, cmd := app.Update(msg)
	runCmd(t, app, cmd)
}

// typeText presses each rune of s.
func typeText(t *testing.T, app *App, s string) {
	t.Helper()
	for _, r := range s {
		press(t, app, keyMsg(string(r)))
	}
}

// keyMsg creates a tea.KeyMsg for a regular character key.
func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// specialKeyMsg creates a tea.KeyMsg for a special key type.
func specialKeyMsg(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}
