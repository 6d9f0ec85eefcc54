// Package tui provides the terminal user interface for SheetSync.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sheetsync/sheetsync/internal/config"
	"github.com/sheetsync/sheetsync/internal/services/expiry"
	"github.com/sheetsync/sheetsync/internal/tui/components"
)

// Theme contains all style definitions for the TUI.
type Theme struct {
	// Colors (raw values for reference)
	PrimaryColor    lipgloss.Color
	SecondaryColor  lipgloss.Color
	AccentColor     lipgloss.Color
	BackgroundColor lipgloss.Color
	ErrorColor      lipgloss.Color
	WarningColor    lipgloss.Color
	SuccessColor    lipgloss.Color
	MutedColor      lipgloss.Color

	// Base styles
	Base lipgloss.Style
	Bold lipgloss.Style

	// Color styles (for direct use)
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Accent    lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Success   lipgloss.Style
	Muted     lipgloss.Style

	// Component styles
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Box      lipgloss.Style
	Selected lipgloss.Style

	// Alerts
	Alert     lipgloss.Style
	AlertWarn lipgloss.Style
	AlertCrit lipgloss.Style

	// Status bar
	StatusKey     lipgloss.Style
	StatusDivider lipgloss.Style
}

// NewTheme creates a new theme based on the color scheme configuration.
func NewTheme(scheme config.ColorScheme) *Theme {
	switch scheme {
	case config.ColorSchemeAmber:
		return newAmberTheme()
	case config.ColorSchemeMono:
		return newMonoTheme()
	default:
		return newFreshTheme()
	}
}

// newFreshTheme is the default green produce-aisle palette.
func newFreshTheme() *Theme {
	return buildTheme(
		lipgloss.Color("#A8E6CF"), // primary
		lipgloss.Color("#5FAF8A"), // secondary
		lipgloss.Color("#DCEDC1"), // accent
		lipgloss.Color("#000000"), // background
		lipgloss.Color("#4E6E5D"), // muted
		lipgloss.Color("#FF6B6B"), // error
		lipgloss.Color("#FFD166"), // warning
		lipgloss.Color("#06D6A0"), // success
	)
}

func newAmberTheme() *Theme {
	return buildTheme(
		lipgloss.Color("#FFAA00"),
		lipgloss.Color("#AA7700"),
		lipgloss.Color("#FFCC66"),
		lipgloss.Color("#000000"),
		lipgloss.Color("#664400"),
		lipgloss.Color("#FF4444"),
		lipgloss.Color("#FFFF00"),
		lipgloss.Color("#FFAA00"),
	)
}

// newMonoTheme keeps status colors so expired items still stand out.
func newMonoTheme() *Theme {
	return buildTheme(
		lipgloss.Color("#FFFFFF"),
		lipgloss.Color("#AAAAAA"),
		lipgloss.Color("#FFFFFF"),
		lipgloss.Color("#000000"),
		lipgloss.Color("#666666"),
		lipgloss.Color("#FF4444"),
		lipgloss.Color("#FFAA00"),
		lipgloss.Color("#FFFFFF"),
	)
}

func buildTheme(primary, secondary, accent, background, muted, errorColor, warningColor, successColor lipgloss.Color) *Theme {
	t := &Theme{
		PrimaryColor:    primary,
		SecondaryColor:  secondary,
		AccentColor:     accent,
		BackgroundColor: background,
		MutedColor:      muted,
		ErrorColor:      errorColor,
		WarningColor:    warningColor,
		SuccessColor:    successColor,
	}

	t.Base = lipgloss.NewStyle().Foreground(primary)
	t.Bold = t.Base.Bold(true)

	t.Primary = lipgloss.NewStyle().Foreground(primary)
	t.Secondary = lipgloss.NewStyle().Foreground(secondary)
	t.Accent = lipgloss.NewStyle().Foreground(accent)
	t.Error = lipgloss.NewStyle().Foreground(errorColor)
	t.Warning = lipgloss.NewStyle().Foreground(warningColor)
	t.Success = lipgloss.NewStyle().Foreground(successColor)
	t.Muted = lipgloss.NewStyle().Foreground(muted)

	t.Header = lipgloss.NewStyle().
		Foreground(primary).
		Bold(true).
		Padding(0, 1)

	t.Footer = lipgloss.NewStyle().
		Foreground(secondary).
		Padding(0, 1)

	t.Title = lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(primary).
		Bold(true)

	t.Label = lipgloss.NewStyle().
		Foreground(secondary)

	t.Value = lipgloss.NewStyle().
		Foreground(primary)

	t.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(secondary).
		Padding(1, 2)

	t.Selected = lipgloss.NewStyle().
		Foreground(background).
		Background(primary).
		Bold(true)

	t.Alert = lipgloss.NewStyle().
		Foreground(primary).
		Bold(true)

	t.AlertWarn = lipgloss.NewStyle().
		Foreground(warningColor).
		Bold(true)

	t.AlertCrit = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)

	t.StatusKey = lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)

	t.StatusDivider = lipgloss.NewStyle().
		Foreground(muted).
		SetString(" │ ")

	return t
}

// Styles returns the view styles for this theme.
func (t *Theme) Styles() components.Styles {
	return components.Styles{
		Title:    t.Title,
		Subtitle: t.Subtitle,
		Label:    t.Label,
		Value:    t.Value,
		Accent:   t.Accent,
		Muted:    t.Muted,
		Error:    t.Error,
		Help:     t.Secondary,
		Selected: t.Selected,
		Border:   t.SecondaryColor,
		Status: map[expiry.StyleTag]lipgloss.Style{
			expiry.StyleOK:       t.Success,
			expiry.StyleWarning:  t.Warning.Bold(true),
			expiry.StyleCritical: t.Error.Bold(true),
		},
	}
}

// DrawHorizontalLine draws a horizontal line.
func (t *Theme) DrawHorizontalLine(width int) string {
	if width < 0 {
		width = 0
	}
	return t.Secondary.Render(strings.Repeat("─", width))
}

// DrawDoubleLine draws a double horizontal line.
func (t *Theme) DrawDoubleLine(width int) string {
	if width < 0 {
		width = 0
	}
	return t.Primary.Render(strings.Repeat("═", width))
}
