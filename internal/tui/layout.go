package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// LayoutBreakpoint defines terminal width thresholds for responsive layout.
type LayoutBreakpoint int

const (
	// BreakpointNarrow is for terminals under 60 columns.
	BreakpointNarrow LayoutBreakpoint = 60
	// BreakpointMedium is for terminals between 60-100 columns.
	BreakpointMedium LayoutBreakpoint = 100
	// BreakpointWide is for terminals over 100 columns.
	BreakpointWide LayoutBreakpoint = 140
)

// MaxContentWidth is the maximum width for content display.
const MaxContentWidth = 120

// chromeLines is the height taken by the header, alert bar and footer.
const chromeLines = 6

// GetBreakpoint returns the current layout breakpoint for the given width.
func GetBreakpoint(width int) LayoutBreakpoint {
	switch {
	case width < int(BreakpointNarrow):
		return BreakpointNarrow
	case width < int(BreakpointMedium):
		return BreakpointMedium
	default:
		return BreakpointWide
	}
}

// ContentWidth returns the usable content width, capped between min and max.
func ContentWidth(termWidth, minWidth, maxWidth int) int {
	w := termWidth
	if w < minWidth {
		w = minWidth
	}
	if maxWidth > 0 && w > maxWidth {
		w = maxWidth
	}
	return w
}

// ContentHeight returns the usable content height after subtracting chrome.
func ContentHeight(termHeight, chromeLines int) int {
	h := termHeight - chromeLines
	if h < 5 {
		h = 5
	}
	return h
}

// centered places block in the middle of a width x height area.
func centered(block string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}

// dialogWidth is the width of modal dialogs for a terminal width.
func dialogWidth(termWidth int) int {
	w := termWidth - 8
	if w > 64 {
		w = 64
	}
	if w < 30 {
		w = 30
	}
	return w
}

// updateViewDimensions resizes the views to the current terminal.
func (a *App) updateViewDimensions() {
	width := ContentWidth(a.width, 40, MaxContentWidth)
	height := ContentHeight(a.height, chromeLines)
	a.inventoryView.SetSize(width, height)
}
