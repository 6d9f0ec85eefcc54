// Package components provides reusable TUI components.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines a table column.
type Column struct {
	Title string
	Width int
	Align lipgloss.Position
}

// Table is a scrolling, single-selection table. Cells are plain text; a row
// can be given its own style with SetRowStyle.
type Table struct {
	columns     []Column
	rows        [][]string
	rowStyles   map[int]lipgloss.Style
	selected    int
	offset      int
	visibleRows int
	focused     bool

	headerStyle   lipgloss.Style
	rowStyle      lipgloss.Style
	selectedStyle lipgloss.Style
	borderStyle   lipgloss.Style
}

// NewTable creates a new table with the given columns.
func NewTable(columns []Column) *Table {
	t := &Table{
		columns:     columns,
		rows:        [][]string{},
		rowStyles:   map[int]lipgloss.Style{},
		visibleRows: 10,
	}
	t.SetStyles(DefaultStyles())
	return t
}

// SetStyles applies view styles to the table.
func (t *Table) SetStyles(s Styles) {
	t.headerStyle = s.Title
	t.rowStyle = s.Value
	t.selectedStyle = s.Selected
	t.borderStyle = lipgloss.NewStyle().Foreground(s.Border)
}

// SetColumns replaces the column definitions, e.g. after a resize.
func (t *Table) SetColumns(columns []Column) {
	t.columns = columns
}

// SetRows sets the table data and clears per-row styles. The selection is
// kept when still in range.
func (t *Table) SetRows(rows [][]string) {
	t.rows = rows
	t.rowStyles = map[int]lipgloss.Style{}
	if t.selected >= len(rows) {
		t.selected = len(rows) - 1
	}
	if t.selected < 0 {
		t.selected = 0
	}
	t.clampOffset()
}

// SetRowStyle overrides the style of row i.
func (t *Table) SetRowStyle(i int, style lipgloss.Style) {
	t.rowStyles[i] = style
}

// SetVisibleRows sets the number of visible rows.
func (t *Table) SetVisibleRows(n int) {
	if n < 1 {
		n = 1
	}
	t.visibleRows = n
	t.clampOffset()
}

// Focus sets the table focus state.
func (t *Table) Focus(focused bool) {
	t.focused = focused
}

// Selected returns the currently selected row index.
func (t *Table) Selected() int {
	return t.selected
}

// SetSelected moves the selection to row i and scrolls it into view.
func (t *Table) SetSelected(i int) {
	if i < 0 || i >= len(t.rows) {
		return
	}
	t.selected = i
	t.clampOffset()
}

// SelectedRow returns the currently selected row data.
func (t *Table) SelectedRow() []string {
	if t.selected >= 0 && t.selected < len(t.rows) {
		return t.rows[t.selected]
	}
	return nil
}

// MoveUp moves the selection up.
func (t *Table) MoveUp() {
	if t.selected > 0 {
		t.selected--
		t.clampOffset()
	}
}

// MoveDown moves the selection down.
func (t *Table) MoveDown() {
	if t.selected < len(t.rows)-1 {
		t.selected++
		t.clampOffset()
	}
}

// PageUp moves up one page.
func (t *Table) PageUp() {
	t.selected -= t.visibleRows
	if t.selected < 0 {
		t.selected = 0
	}
	t.clampOffset()
}

// PageDown moves down one page.
func (t *Table) PageDown() {
	t.selected += t.visibleRows
	if t.selected >= len(t.rows) {
		t.selected = len(t.rows) - 1
	}
	if t.selected < 0 {
		t.selected = 0
	}
	t.clampOffset()
}

// GoToTop goes to the first row.
func (t *Table) GoToTop() {
	t.selected = 0
	t.offset = 0
}

// GoToBottom goes to the last row.
func (t *Table) GoToBottom() {
	if len(t.rows) > 0 {
		t.selected = len(t.rows) - 1
		t.clampOffset()
	}
}

// clampOffset keeps the selected row inside the visible window.
func (t *Table) clampOffset() {
	if t.selected < t.offset {
		t.offset = t.selected
	}
	if t.selected >= t.offset+t.visibleRows {
		t.offset = t.selected - t.visibleRows + 1
	}
	if t.offset < 0 {
		t.offset = 0
	}
}

// Render renders the table.
func (t *Table) Render() string {
	var b strings.Builder

	totalWidth := 0
	for _, col := range t.columns {
		if col.Width > 0 {
			totalWidth += col.Width + 3 // padding and separator
		}
	}

	b.WriteString(t.renderRow(t.headers(), t.headerStyle))
	b.WriteString("\n")
	b.WriteString(t.borderStyle.Render(strings.Repeat("─", totalWidth)))
	b.WriteString("\n")

	end := t.offset + t.visibleRows
	if end > len(t.rows) {
		end = len(t.rows)
	}

	for i := t.offset; i < end; i++ {
		style := t.rowStyle
		if s, ok := t.rowStyles[i]; ok {
			style = s
		}
		if i == t.selected && t.focused {
			style = t.selectedStyle
		}

		b.WriteString(t.renderRow(t.rows[i], style))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if hidden := len(t.rows) - end; hidden > 0 || t.offset > 0 {
		b.WriteString("\n")
		b.WriteString(t.borderStyle.Render(scrollHint(t.offset, hidden)))
	}

	return b.String()
}

func scrollHint(above, below int) string {
	var parts []string
	if above > 0 {
		parts = append(parts, "↑ more")
	}
	if below > 0 {
		parts = append(parts, "↓ more")
	}
	return strings.Join(parts, "  ")
}

func (t *Table) headers() []string {
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.Title
	}
	return headers
}

func (t *Table) renderRow(cells []string, style lipgloss.Style) string {
	var parts []string

	for i, col := range t.columns {
		if col.Width <= 0 {
			continue
		}
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		cell = Truncate(cell, col.Width)

		switch col.Align {
		case lipgloss.Right:
			cell = PadLeft(cell, col.Width)
		case lipgloss.Center:
			pad := col.Width - lipgloss.Width(cell)
			cell = strings.Repeat(" ", pad/2) + cell + strings.Repeat(" ", pad-pad/2)
		default:
			cell = PadRight(cell, col.Width)
		}

		parts = append(parts, style.Render(cell))
	}

	return " " + strings.Join(parts, " │ ") + " "
}

// Empty returns true if the table has no rows.
func (t *Table) Empty() bool {
	return len(t.rows) == 0
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}
