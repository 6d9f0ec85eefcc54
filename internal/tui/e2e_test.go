package tui

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/sheetsync/sheetsync/internal/services/notifications"
)

// newE2EApp creates an App for end-to-end testing via teatest.
// Unlike newTestApp, this does NOT pre-configure width/height/ready
// since teatest sends WindowSizeMsg via WithInitialTermSize.
func newE2EApp(t *testing.T, env *testEnv) *App {
	t.Helper()
	return New(env.deps)
}

func startE2E(t *testing.T, env *testEnv) *teatest.TestModel {
	t.Helper()
	return teatest.NewTestModel(t, newE2EApp(t, env),
		teatest.WithInitialTermSize(120, 40))
}

// waitFor is a convenience wrapper around teatest.WaitFor with a standard timeout.
func waitFor(t *testing.T, tm *teatest.TestModel, text string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte(text))
	}, teatest.WithDuration(5*time.Second))
}

// --- End-to-end tests ---
// These launch the real Bubble Tea program in a headless virtual terminal,
// send actual keystrokes, and assert on the rendered screen output.

func TestE2E_DashboardOnStartup(t *testing.T) {
	tm := startE2E(t, newTestEnv(t))
	t.Cleanup(func() { tm.Quit() })

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("NEEDS ATTENTION")) &&
			bytes.Contains(bts, []byte("Sourdough Bread"))
	}, teatest.WithDuration(5*time.Second))
}

func TestE2E_NavigateToInventory(t *testing.T) {
	tm := startE2E(t, newTestEnv(t))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "NEEDS ATTENTION")

	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "FULL INVENTORY")
}

func TestE2E_NavigateToAlerts(t *testing.T) {
	tm := startE2E(t, newTestEnv(t))
	t.Cleanup(func() { tm.Quit() })

	tm.Send(tea.KeyMsg{Type: tea.KeyF4})
	waitFor(t, tm, "EXPIRY ALERTS")
	waitFor(t, tm, "Expires tomorrow on Jun 16")
}

func TestE2E_HelpScreenAndBack(t *testing.T) {
	tm := startE2E(t, newTestEnv(t))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "NEEDS ATTENTION")

	// F1 → Help
	tm.Send(tea.KeyMsg{Type: tea.KeyF1})
	waitFor(t, tm, "HELP")

	// Esc → Back to dashboard
	tm.Send(tea.KeyMsg{Type: tea.KeyEscape})
	waitFor(t, tm, "DASHBOARD")
}

func TestE2E_QuitFlow(t *testing.T) {
	tm := startE2E(t, newTestEnv(t))

	waitFor(t, tm, "NEEDS ATTENTION")

	// Press q → confirm dialog
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	waitFor(t, tm, "CONFIRM EXIT")

	// Press y → quit
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})

	// Program should terminate; verify final model state
	m := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
	app, ok := m.(*App)
	if !ok {
		t.Fatal("expected *App final model")
	}
	if !app.quitting {
		t.Error("expected app to be quitting")
	}
}

func TestE2E_QuitCancel(t *testing.T) {
	tm := startE2E(t, newTestEnv(t))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "NEEDS ATTENTION")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	waitFor(t, tm, "CONFIRM EXIT")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})

	// Verify app is still responsive by navigating to another screen
	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "FULL INVENTORY")
}

func TestE2E_SearchFlow(t *testing.T) {
	tm := startE2E(t, newTestEnv(t))
	t.Cleanup(func() { tm.Quit() })

	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "FULL INVENTORY")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	waitFor(t, tm, "SEARCH")

	tm.Type("yogurt")
	waitFor(t, tm, "(1 of 4 products)")

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	tm.Send(tea.KeyMsg{Type: tea.KeyF2})
	waitFor(t, tm, "DASHBOARD")
}

func TestE2E_AddItemFlow(t *testing.T) {
	tm := startE2E(t, newTestEnv(t))
	t.Cleanup(func() { tm.Quit() })

	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "FULL INVENTORY")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	waitFor(t, tm, "ADD NEW ITEM")

	tm.Type("567890123456")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, tm, "Free-Range Eggs")

	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Type("2024-06-30")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	waitFor(t, tm, "1 item(s) added successfully.")
}

func TestE2E_DeleteFlow(t *testing.T) {
	tm := startE2E(t, newTestEnv(t))
	t.Cleanup(func() { tm.Quit() })

	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "FULL INVENTORY")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	waitFor(t, tm, "Are you sure?")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	waitFor(t, tm, "has been deleted.")
}

func TestE2E_ChangelogOnce(t *testing.T) {
	env := newTestEnv(t)
	env.kv.Set(context.Background(), notifications.ChangelogSeenKey, "")
	tm := startE2E(t, env)
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "What's New in SheetSync?")

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, tm, "NEEDS ATTENTION")
}

func TestE2E_LoginFlow(t *testing.T) {
	tm := startE2E(t, newTestEnv(t).withGate(t, "let me in"))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "Welcome Back")

	tm.Type("nope")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, tm, "Incorrect passphrase.")

	tm.Type("let me in")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, tm, "NEEDS ATTENTION")
}
