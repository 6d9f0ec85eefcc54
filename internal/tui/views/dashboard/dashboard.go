// Package dashboard renders the inventory overview screen.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sheetsync/sheetsync/internal/models"
	"github.com/sheetsync/sheetsync/internal/services/expiry"
	"github.com/sheetsync/sheetsync/internal/tui/components"
)

// RecentLimit is how many recently added entries the dashboard lists.
const RecentLimit = 5

// View is the dashboard: counters, the needs-attention list and the most
// recently added entries.
type View struct {
	styles     components.Styles
	classifier expiry.Classifier
	limit      int
	dateFormat string

	loaded      bool
	stats       expiry.Stats
	attention   []expiry.ProductGroup
	recent      []models.InventoryEntry
	totalGroups int
}

// New creates a dashboard using classifier for the counters and showing up
// to limit groups in the needs-attention list.
func New(classifier expiry.Classifier, limit int, dateFormat string) *View {
	if limit <= 0 {
		limit = expiry.DefaultAttentionLimit
	}
	return &View{
		styles:     components.DefaultStyles(),
		classifier: classifier,
		limit:      limit,
		dateFormat: dateFormat,
	}
}

// SetStyles sets the view styles.
func (v *View) SetStyles(s components.Styles) {
	v.styles = s
}

// SetData recomputes everything from entries and their groups as of ref.
func (v *View) SetData(entries []models.InventoryEntry, groups []expiry.ProductGroup, ref time.Time) {
	v.loaded = true
	v.stats = v.classifier.Summarize(entries, ref)
	v.attention = expiry.NeedsAttention(groups, v.limit)
	v.recent = expiry.RecentlyAdded(entries, RecentLimit)
	v.totalGroups = len(groups)
}

// Stats returns the current counters.
func (v *View) Stats() expiry.Stats {
	return v.stats
}

// Attention returns the groups in the needs-attention list.
func (v *View) Attention() []expiry.ProductGroup {
	return v.attention
}

// Render renders the dashboard.
func (v *View) Render(width, height int) string {
	s := v.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("═══ DASHBOARD ═══"))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("A quick overview of your inventory."))
	b.WriteString("\n\n")

	if !v.loaded {
		b.WriteString(s.Label.Render("Loading..."))
		return b.String()
	}

	b.WriteString(v.renderStats(width))
	b.WriteString("\n\n")

	panelWidth := width
	if width >= 100 {
		panelWidth = width/2 - 1
	}
	attention := s.Panel("NEEDS ATTENTION", v.renderAttention(panelWidth-4), panelWidth)
	recent := s.Panel("RECENTLY ADDED", v.renderRecent(panelWidth-4), panelWidth)
	b.WriteString(components.SideBySide(attention, recent, width, 2))

	if v.totalGroups > v.limit {
		b.WriteString("\n")
		b.WriteString(s.Help.Render("View All Inventory → F3"))
	}

	return b.String()
}

func (v *View) renderStats(width int) string {
	s := v.styles
	st := v.stats

	cards := []struct {
		title string
		value string
		desc  string
		tag   expiry.StyleTag
	}{
		{"Total Items", humanize.Comma(int64(st.Entries)), fmt.Sprintf("%s units of %d products", humanize.Comma(int64(st.Units)), st.Products), ""},
		{"Expiring Soon", humanize.Comma(int64(st.ExpiringSoon)), fmt.Sprintf("Items expiring in the next %d days", v.classifier.SoonWindowDays), expiry.StyleWarning},
		{"Expired", humanize.Comma(int64(st.Expired)), "Items that have already expired", expiry.StyleCritical},
	}

	cardWidth := (width - 4) / 3
	if cardWidth > 40 {
		cardWidth = 40
	}
	if cardWidth < 30 {
		cardWidth = width
	}

	rendered := make([]string, len(cards))
	for i, c := range cards {
		valueStyle := s.Value.Bold(true)
		if c.tag != "" {
			valueStyle = s.ForStatus(c.tag)
		}
		body := s.Label.Render(c.title) + "\n" +
			valueStyle.Render(c.value) + "\n" +
			s.Muted.Render(components.Truncate(c.desc, cardWidth-4))
		rendered[i] = s.Panel("", body, cardWidth)
	}

	if cardWidth == width {
		return strings.Join(rendered, "\n")
	}
	row := components.SideBySide(rendered[0], rendered[1], 2*cardWidth+2, 2)
	return components.SideBySide(row, rendered[2], width, 2)
}

func (v *View) renderAttention(width int) string {
	s := v.styles
	if len(v.attention) == 0 {
		return s.Muted.Render("No items are expiring soon. Great job!")
	}

	var b strings.Builder
	b.WriteString(s.Muted.Render(components.Truncate("These items are expiring soon or have already expired.", width)))
	b.WriteString("\n\n")

	nameWidth := width - 2 - 14 - 20
	if nameWidth < 8 {
		nameWidth = 8
	}
	for i, g := range v.attention {
		if i > 0 {
			b.WriteString("\n")
		}
		name := components.PadRight(components.Truncate(g.Name, nameWidth), nameWidth)
		date := components.PadRight(g.SoonestExpiry.Format(v.dateFormat), 14)
		b.WriteString(s.Value.Render(name) + " " + s.Label.Render(date) + " " +
			s.ForStatus(g.Status.StyleTag).Render(components.Truncate(g.Status.Label, 20)))
	}
	return b.String()
}

func (v *View) renderRecent(width int) string {
	s := v.styles
	if len(v.recent) == 0 {
		return s.Muted.Render("Nothing added yet. Press F3 then a to add an item.")
	}

	var b strings.Builder
	for i, e := range v.recent {
		if i > 0 {
			b.WriteString("\n")
		}
		line := fmt.Sprintf("%s ×%d", e.Name, e.Quantity)
		added := "added " + e.AddedDate.Format(v.dateFormat)
		nameWidth := width - len(added) - 1
		if nameWidth < 8 {
			nameWidth = 8
		}
		b.WriteString(s.Value.Render(components.PadRight(components.Truncate(line, nameWidth), nameWidth)) +
			" " + s.Muted.Render(added))
	}
	return b.String()
}
