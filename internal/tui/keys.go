package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	// Navigation
	Up       Key
	Down     Key
	PageUp   Key
	PageDown Key
	Home     Key
	End      Key

	// Actions
	Select Key
	Back   Key
	Quit   Key
	Search Key

	// Function keys for screen navigation
	F1  Key
	F2  Key
	F3  Key
	F4  Key
	F10 Key
}

// Key represents a key binding.
type Key struct {
	Keys    []string
	Help    string
	Enabled bool
}

func newKey(help string, keys ...string) Key {
	return Key{Keys: keys, Help: help, Enabled: true}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       newKey("up", "up", "k"),
		Down:     newKey("down", "down", "j"),
		PageUp:   newKey("page up", "pgup"),
		PageDown: newKey("page down", "pgdown"),
		Home:     newKey("home", "home", "g"),
		End:      newKey("end", "end", "G"),

		Select: newKey("select", "enter"),
		Back:   newKey("back", "esc"),
		Quit:   newKey("quit", "q", "ctrl+c"),
		Search: newKey("search", "/"),

		F1:  newKey("Help", "f1", "?"),
		F2:  newKey("Dashboard", "f2"),
		F3:  newKey("Inventory", "f3"),
		F4:  newKey("Alerts", "f4"),
		F10: newKey("Quit", "f10"),
	}
}

// Matches checks if a key message matches this key binding.
func (k Key) Matches(msg tea.KeyMsg) bool {
	if !k.Enabled {
		return false
	}

	keyStr := msg.String()
	for _, key := range k.Keys {
		if keyStr == key {
			return true
		}
	}
	return false
}

// MatchesAny checks if a key message matches any of the provided key bindings.
func MatchesAny(msg tea.KeyMsg, keys ...Key) bool {
	for _, k := range keys {
		if k.Matches(msg) {
			return true
		}
	}
	return false
}

// IsQuit checks if the key message is a quit command.
func (km KeyMap) IsQuit(msg tea.KeyMsg) bool {
	return km.Quit.Matches(msg) || km.F10.Matches(msg)
}

// IsFunctionKey checks if the key message is a screen switch.
func (km KeyMap) IsFunctionKey(msg tea.KeyMsg) bool {
	return MatchesAny(msg, km.F1, km.F2, km.F3, km.F4)
}

// FunctionKeyScreen returns the screen for a function key, or "" if msg is
// not one.
func (km KeyMap) FunctionKeyScreen(msg tea.KeyMsg) Screen {
	switch {
	case km.F1.Matches(msg):
		return ScreenHelp
	case km.F2.Matches(msg):
		return ScreenDashboard
	case km.F3.Matches(msg):
		return ScreenInventory
	case km.F4.Matches(msg):
		return ScreenNotifications
	default:
		return ""
	}
}

// StatusBarHelp returns the help text for the status bar.
func (km KeyMap) StatusBarHelp(width int) string {
	if width > 0 && width < 60 {
		return "F1 F2 F3 F4 F10"
	}
	return "[F1]Help [F2]Dashboard [F3]Inventory [F4]Alerts [F10]Quit"
}
