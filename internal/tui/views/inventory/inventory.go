// Package inventory provides the grouped inventory table and the add-item
// form.
package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sheetsync/sheetsync/internal/models"
	"github.com/sheetsync/sheetsync/internal/services/expiry"
	"github.com/sheetsync/sheetsync/internal/tui/components"
)

// rowRef locates a table row: a group header (entry == -1) or one of the
// group's entries.
type rowRef struct {
	group int
	entry int
}

var columnSpecs = []components.ColumnSpec{
	{Fixed: 1, Priority: 9},                // expander
	{MinWidth: 14, Weight: 3, Priority: 8}, // product
	{Fixed: 13, Priority: 2},               // barcode
	{Fixed: 8, Priority: 6},                // quantity
	{Fixed: 13, Priority: 4},               // soonest expiry
	{MinWidth: 16, Weight: 2, Priority: 7}, // status
}

// View is the grouped inventory table.
type View struct {
	styles     components.Styles
	table      *components.Table
	classifier expiry.Classifier
	dateFormat string
	ref        time.Time

	groups    []expiry.ProductGroup
	filtered  []expiry.ProductGroup
	expanded  map[string]bool
	rows      []rowRef
	query     string
	highlight string
	loaded    bool
	err       error
}

// New creates an inventory view. classifier labels the individual batches
// of an expanded group.
func New(classifier expiry.Classifier, dateFormat string) *View {
	table := components.NewTable(columns([]int{1, 25, 13, 8, 13, 20}))
	table.SetVisibleRows(15)
	table.Focus(true)

	return &View{
		styles:     components.DefaultStyles(),
		table:      table,
		classifier: classifier,
		dateFormat: dateFormat,
		expanded:   map[string]bool{},
	}
}

func columns(widths []int) []components.Column {
	return []components.Column{
		{Title: "", Width: widths[0]},
		{Title: "Product Name", Width: widths[1]},
		{Title: "Barcode", Width: widths[2]},
		{Title: "Quantity", Width: widths[3], Align: lipgloss.Right},
		{Title: "Soonest Expiry", Width: widths[4]},
		{Title: "Status", Width: widths[5]},
	}
}

// SetStyles sets the view styles.
func (v *View) SetStyles(s components.Styles) {
	v.styles = s
	v.table.SetStyles(s)
	v.rebuild()
}

// SetSize fits the columns and visible rows to the content area.
func (v *View) SetSize(width, height int) {
	v.table.SetColumns(columns(components.CalculateColumnWidths(columnSpecs, width, 3)))
	v.table.SetVisibleRows(height - 8) // title, search, header, help
}

// SetGroups replaces the displayed groups, classified as of ref. Expansion
// state is kept per barcode.
func (v *View) SetGroups(groups []expiry.ProductGroup, ref time.Time) {
	v.loaded = true
	v.err = nil
	v.groups = groups
	v.ref = ref
	v.rebuild()
}

// SetError records a load failure.
func (v *View) SetError(err error) {
	v.err = err
}

// Groups returns the groups matching the current query.
func (v *View) Groups() []expiry.ProductGroup {
	return v.filtered
}

// SetQuery filters the table by product name or barcode.
func (v *View) SetQuery(q string) {
	v.query = q
	v.table.GoToTop()
	v.rebuild()
}

// Query returns the active search.
func (v *View) Query() string {
	return v.query
}

// Toggle expands or collapses the selected group. On an entry row it
// collapses the entry's group.
func (v *View) Toggle() {
	ref, ok := v.selectedRef()
	if !ok {
		return
	}
	barcode := v.filtered[ref.group].Barcode
	v.expanded[barcode] = !v.expanded[barcode]
	v.rebuild()

	// Keep the cursor on the group header.
	for i, r := range v.rows {
		if r.group == ref.group && r.entry == -1 {
			v.table.SetSelected(i)
			break
		}
	}
}

// IsExpanded reports whether the group for barcode is expanded.
func (v *View) IsExpanded(barcode string) bool {
	return v.expanded[barcode]
}

// FocusEntry selects the row for entry id, expanding its group and clearing
// a search that hides it. It reports whether the entry was found.
func (v *View) FocusEntry(id string) bool {
	find := func() (int, bool) {
		for gi, g := range v.filtered {
			for _, e := range g.Entries {
				if e.ID == id {
					return gi, true
				}
			}
		}
		return 0, false
	}

	gi, ok := find()
	if !ok && v.query != "" {
		v.query = ""
		v.rebuild()
		gi, ok = find()
	}
	if !ok {
		return false
	}

	v.expanded[v.filtered[gi].Barcode] = true
	v.highlight = id
	v.rebuild()

	for i, r := range v.rows {
		if r.entry >= 0 && v.filtered[r.group].Entries[r.entry].ID == id {
			v.table.SetSelected(i)
			break
		}
	}
	return true
}

// SelectedGroup returns the group under the cursor.
func (v *View) SelectedGroup() *expiry.ProductGroup {
	ref, ok := v.selectedRef()
	if !ok {
		return nil
	}
	return &v.filtered[ref.group]
}

// SelectedEntry returns the entry under the cursor. A collapsed group with a
// single batch resolves to that batch.
func (v *View) SelectedEntry() *models.InventoryEntry {
	ref, ok := v.selectedRef()
	if !ok {
		return nil
	}
	g := &v.filtered[ref.group]
	if ref.entry >= 0 {
		return &g.Entries[ref.entry]
	}
	if len(g.Entries) == 1 {
		return &g.Entries[0]
	}
	return nil
}

func (v *View) selectedRef() (rowRef, bool) {
	i := v.table.Selected()
	if i < 0 || i >= len(v.rows) {
		return rowRef{}, false
	}
	return v.rows[i], true
}

// MoveUp moves the selection up.
func (v *View) MoveUp() { v.table.MoveUp() }

// MoveDown moves the selection down.
func (v *View) MoveDown() { v.table.MoveDown() }

// PageUp moves the selection up one page.
func (v *View) PageUp() { v.table.PageUp() }

// PageDown moves the selection down one page.
func (v *View) PageDown() { v.table.PageDown() }

// GoToTop selects the first row.
func (v *View) GoToTop() { v.table.GoToTop() }

// GoToBottom selects the last row.
func (v *View) GoToBottom() { v.table.GoToBottom() }

// rebuild recomputes the filtered groups and table rows.
func (v *View) rebuild() {
	v.filtered = expiry.FilterGroups(v.groups, v.query)
	v.rows = v.rows[:0]

	var data [][]string
	styles := map[int]lipgloss.Style{}

	for gi, g := range v.filtered {
		marker := "▸"
		if v.expanded[g.Barcode] {
			marker = "▾"
		}
		if len(g.Entries) == 1 && !v.expanded[g.Barcode] {
			marker = " "
		}

		styles[len(data)] = v.styles.ForStatus(g.Status.StyleTag)
		v.rows = append(v.rows, rowRef{group: gi, entry: -1})
		data = append(data, []string{
			marker,
			g.Name,
			g.Barcode,
			fmt.Sprintf("%d", g.TotalQuantity),
			g.SoonestExpiry.Format(v.dateFormat),
			g.Status.Label,
		})

		if !v.expanded[g.Barcode] {
			continue
		}
		for ei, e := range g.Entries {
			st := v.classifier.Classify(e.ExpiryDate, v.ref)
			style := v.styles.ForStatus(st.StyleTag)
			if e.ID == v.highlight {
				style = v.styles.Accent.Bold(true)
			}
			styles[len(data)] = style
			v.rows = append(v.rows, rowRef{group: gi, entry: ei})
			data = append(data, []string{
				"",
				fmt.Sprintf("  └ batch %d", ei+1),
				"",
				fmt.Sprintf("%d", e.Quantity),
				e.ExpiryDate.Format(v.dateFormat),
				st.Label,
			})
		}
	}

	v.table.SetRows(data)
	for i, st := range styles {
		v.table.SetRowStyle(i, st)
	}
}

// Render renders the inventory view.
func (v *View) Render(width, height int) string {
	s := v.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("═══ FULL INVENTORY ═══"))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("Manage and view all your products."))
	b.WriteString("\n\n")

	if v.query != "" {
		b.WriteString(s.Label.Render("Search: "))
		b.WriteString(s.Value.Render(v.query))
		b.WriteString(s.Muted.Render(fmt.Sprintf("  (%d of %d products)", len(v.filtered), len(v.groups))))
		b.WriteString("\n\n")
	}

	if v.err != nil {
		b.WriteString(s.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	switch {
	case !v.loaded:
		b.WriteString(s.Label.Render("Loading..."))
	case len(v.groups) == 0:
		b.WriteString(s.Label.Render("Your inventory is empty. Press a to add an item."))
	case len(v.filtered) == 0:
		b.WriteString(s.Label.Render("No products match your search."))
	default:
		b.WriteString(v.table.Render())
	}

	b.WriteString("\n\n")
	if width > 0 && width < 80 {
		b.WriteString(s.Help.Render("↑↓ Enter:Expand /:Find a:Add d:Del"))
	} else {
		b.WriteString(s.Help.Render("Up/Down:Select  Enter:Expand  /:Search  a:Add Item  d:Delete  r:Refresh"))
	}

	return b.String()
}
