package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestGetBreakpoint(t *testing.T) {
	tests := []struct {
		width    int
		expected LayoutBreakpoint
	}{
		{40, BreakpointNarrow},
		{59, BreakpointNarrow},
		{60, BreakpointMedium},
		{80, BreakpointMedium},
		{99, BreakpointMedium},
		{100, BreakpointWide},
		{140, BreakpointWide},
		{200, BreakpointWide},
	}

	for _, tt := range tests {
		result := GetBreakpoint(tt.width)
		if result != tt.expected {
			t.Errorf("GetBreakpoint(%d) = %d, want %d", tt.width, result, tt.expected)
		}
	}
}

func TestContentWidth(t *testing.T) {
	tests := []struct {
		name     string
		term     int
		minW     int
		maxW     int
		expected int
	}{
		{"within range", 100, 40, 120, 100},
		{"below minimum", 30, 40, 120, 40},
		{"above maximum", 200, 40, 120, 120},
		{"no maximum", 200, 40, 0, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContentWidth(tt.term, tt.minW, tt.maxW); got != tt.expected {
				t.Errorf("ContentWidth = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestContentHeight(t *testing.T) {
	if got := ContentHeight(40, chromeLines); got != 34 {
		t.Errorf("ContentHeight(40) = %d, want 34", got)
	}
	if got := ContentHeight(8, chromeLines); got != 5 {
		t.Errorf("ContentHeight should floor at 5, got %d", got)
	}
}

func TestDialogWidth(t *testing.T) {
	tests := []struct {
		term, expected int
	}{
		{120, 64},
		{60, 52},
		{20, 30},
	}
	for _, tt := range tests {
		if got := dialogWidth(tt.term); got != tt.expected {
			t.Errorf("dialogWidth(%d) = %d, want %d", tt.term, got, tt.expected)
		}
	}
}

func TestCentered(t *testing.T) {
	out := centered("box", 21, 5)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[2], "box") {
		t.Errorf("expected block on the middle line, got %q", lines[2])
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w != 21 {
			t.Errorf("line %d width = %d, want 21", i, w)
		}
	}
}
