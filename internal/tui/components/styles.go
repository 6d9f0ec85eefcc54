package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sheetsync/sheetsync/internal/services/expiry"
)

// Styles is the subset of the application theme that views render with.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Accent   lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	Selected lipgloss.Style
	Border   lipgloss.Color

	// Status maps an expiry style tag to the style its label renders in.
	Status map[expiry.StyleTag]lipgloss.Style
}

// DefaultStyles returns the fresh color scheme, used when a view is built
// without a theme.
func DefaultStyles() Styles {
	return NewStyles(
		lipgloss.Color("#A8E6CF"),
		lipgloss.Color("#5FAF8A"),
		lipgloss.Color("#DCEDC1"),
		lipgloss.Color("#4E6E5D"),
		lipgloss.Color("#FF6B6B"),
		lipgloss.Color("#FFD166"),
		lipgloss.Color("#06D6A0"),
	)
}

// NewStyles builds view styles from a palette.
func NewStyles(primary, secondary, accent, muted, errorColor, warningColor, successColor lipgloss.Color) Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(primary).Bold(true),
		Label:    lipgloss.NewStyle().Foreground(secondary),
		Value:    lipgloss.NewStyle().Foreground(primary),
		Accent:   lipgloss.NewStyle().Foreground(accent),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Error:    lipgloss.NewStyle().Foreground(errorColor),
		Help:     lipgloss.NewStyle().Foreground(secondary),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(primary).Bold(true),
		Border:   secondary,
		Status: map[expiry.StyleTag]lipgloss.Style{
			expiry.StyleOK:       lipgloss.NewStyle().Foreground(successColor),
			expiry.StyleWarning:  lipgloss.NewStyle().Foreground(warningColor).Bold(true),
			expiry.StyleCritical: lipgloss.NewStyle().Foreground(errorColor).Bold(true),
		},
	}
}

// ForStatus returns the style for tag, falling back to Value.
func (s Styles) ForStatus(tag expiry.StyleTag) lipgloss.Style {
	if st, ok := s.Status[tag]; ok {
		return st
	}
	return s.Value
}
