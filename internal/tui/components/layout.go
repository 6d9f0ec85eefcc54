package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ColumnSpec defines a column with proportional or fixed width.
type ColumnSpec struct {
	// MinWidth is the absolute minimum width.
	MinWidth int
	// Weight is the proportional share of remaining width.
	Weight float64
	// Fixed is a fixed width (overrides Weight if > 0).
	Fixed int
	// Priority determines drop order when the terminal is narrow (lower = dropped first).
	Priority int
}

// CalculateColumnWidths distributes availableWidth among columns by weight.
// When the fixed widths do not fit, the lowest-priority columns are hidden
// (returned as width 0). separator is the width of each column gap.
func CalculateColumnWidths(specs []ColumnSpec, availableWidth int, separator int) []int {
	widths := make([]int, len(specs))
	visible := make([]bool, len(specs))

	totalFixed := 0
	totalWeight := 0.0
	visibleCount := 0
	for i, spec := range specs {
		visible[i] = true
		visibleCount++
		if spec.Fixed > 0 {
			totalFixed += spec.Fixed
		} else {
			totalWeight += spec.Weight
			totalFixed += spec.MinWidth
		}
	}

	remaining := func() int {
		gaps := 0
		if visibleCount > 1 {
			gaps = (visibleCount - 1) * separator
		}
		return availableWidth - totalFixed - gaps - 2 // row padding
	}

	for remaining() < 0 && visibleCount > 1 {
		lowest := -1
		for i, spec := range specs {
			if visible[i] && (lowest < 0 || spec.Priority < specs[lowest].Priority) {
				lowest = i
			}
		}
		visible[lowest] = false
		visibleCount--
		if specs[lowest].Fixed > 0 {
			totalFixed -= specs[lowest].Fixed
		} else {
			totalWeight -= specs[lowest].Weight
			totalFixed -= specs[lowest].MinWidth
		}
	}

	extra := remaining()
	if extra < 0 {
		extra = 0
	}

	for i, spec := range specs {
		switch {
		case !visible[i]:
			widths[i] = 0
		case spec.Fixed > 0:
			widths[i] = spec.Fixed
		case totalWeight > 0:
			widths[i] = spec.MinWidth + int(float64(extra)*spec.Weight/totalWeight)
		default:
			widths[i] = spec.MinWidth
		}
	}

	return widths
}

// Panel renders content in a rounded border with title set into the top edge.
func (s Styles) Panel(title, content string, width int) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Border).
		Width(width-2). // border chars
		Padding(0, 1)

	rendered := style.Render(content)
	if title == "" {
		return rendered
	}

	lines := strings.Split(rendered, "\n")
	label := " " + title + " "
	border := lipgloss.RoundedBorder()
	fill := width - 2 - lipgloss.Width(label) - 1
	if fill < 0 {
		return rendered
	}
	edge := lipgloss.NewStyle().Foreground(s.Border)
	lines[0] = edge.Render(border.TopLeft+border.Top) +
		s.Subtitle.Render(label) +
		edge.Render(strings.Repeat(border.Top, fill)+border.TopRight)

	return strings.Join(lines, "\n")
}

// SideBySide renders two blocks next to each other, stacking them when they
// do not fit in totalWidth.
func SideBySide(left, right string, totalWidth, gap int) string {
	if lipgloss.Width(left)+lipgloss.Width(right)+gap > totalWidth {
		return left + "\n" + right
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), right)
}

// ProgressBar renders a text bar filled to value/max.
func (s Styles) ProgressBar(value, max float64, width int) string {
	if max <= 0 {
		max = 1
	}
	ratio := value / max
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}

	barWidth := width - 2 // for [ and ]
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(ratio * float64(barWidth))
	bar := "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"

	switch {
	case ratio > 0.6:
		return s.Value.Render(bar)
	case ratio > 0.3:
		return s.Accent.Render(bar)
	default:
		return s.Error.Render(bar)
	}
}

// Truncate shortens s to fit within maxWidth cells, adding an ellipsis.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	if maxWidth == 1 {
		return string(runes[:1])
	}
	if len(runes) > maxWidth-1 {
		runes = runes[:maxWidth-1]
	}
	return string(runes) + "…"
}

// PadRight pads s with spaces to width cells.
func PadRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// PadLeft pads s with leading spaces to width cells.
func PadLeft(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}

// Wrap soft-wraps s on spaces at width cells.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
