// Package notifications renders the expiry alert feed.
package notifications

import (
	"fmt"
	"strings"

	"github.com/sheetsync/sheetsync/internal/services/expiry"
	"github.com/sheetsync/sheetsync/internal/tui/components"
)

// alertDateFormat is the short date shown after each alert label.
const alertDateFormat = "Jan 2"

// View lists unacknowledged expiry alerts, soonest first.
type View struct {
	styles   components.Styles
	items    []expiry.Notification
	selected int
	offset   int
	loaded   bool
}

// New creates an empty alert list.
func New() *View {
	return &View{styles: components.DefaultStyles()}
}

// SetStyles sets the view styles.
func (v *View) SetStyles(s components.Styles) {
	v.styles = s
}

// SetItems replaces the feed, keeping the cursor in range.
func (v *View) SetItems(items []expiry.Notification) {
	v.loaded = true
	v.items = items
	if v.selected >= len(items) {
		v.selected = len(items) - 1
	}
	if v.selected < 0 {
		v.selected = 0
	}
}

// Items returns the current feed.
func (v *View) Items() []expiry.Notification {
	return v.items
}

// Len returns the number of alerts.
func (v *View) Len() int {
	return len(v.items)
}

// MoveUp moves the cursor up.
func (v *View) MoveUp() {
	if v.selected > 0 {
		v.selected--
	}
}

// MoveDown moves the cursor down.
func (v *View) MoveDown() {
	if v.selected < len(v.items)-1 {
		v.selected++
	}
}

// Selected returns the alert under the cursor, or nil for an empty feed.
func (v *View) Selected() *expiry.Notification {
	if v.selected < 0 || v.selected >= len(v.items) {
		return nil
	}
	return &v.items[v.selected]
}

// Render renders the alert list.
func (v *View) Render(width, height int) string {
	s := v.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("═══ EXPIRY ALERTS ═══"))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("Items that need your attention."))
	b.WriteString("\n\n")

	switch {
	case !v.loaded:
		b.WriteString(s.Label.Render("Loading..."))
	case len(v.items) == 0:
		b.WriteString(s.Label.Render("No expiry alerts. Good job!"))
	default:
		b.WriteString(v.renderItems(width, height))
	}

	b.WriteString("\n\n")
	if width > 0 && width < 80 {
		b.WriteString(s.Help.Render("↑↓ Enter:Show x:Dismiss X:All Esc:Back"))
	} else {
		b.WriteString(s.Help.Render("Up/Down:Select  Enter:Show in Inventory  x:Dismiss  X:Dismiss All  Esc:Back"))
	}

	return b.String()
}

func (v *View) renderItems(width, height int) string {
	s := v.styles

	// Two lines per alert.
	visible := (height - 6) / 2
	if visible < 1 {
		visible = 1
	}
	if v.selected < v.offset {
		v.offset = v.selected
	}
	if v.selected >= v.offset+visible {
		v.offset = v.selected - visible + 1
	}

	end := v.offset + visible
	if end > len(v.items) {
		end = len(v.items)
	}

	var lines []string
	for i := v.offset; i < end; i++ {
		n := v.items[i]

		marker := "  "
		nameStyle := s.Value.Bold(true)
		if i == v.selected {
			marker = s.Accent.Render("> ")
			nameStyle = s.Selected
		}

		name := components.Truncate(fmt.Sprintf("%s ×%d", n.Entry.Name, n.Entry.Quantity), width-4)
		lines = append(lines, marker+nameStyle.Render(name))

		detail := fmt.Sprintf("%s on %s", n.Status.Label, n.Entry.ExpiryDate.Format(alertDateFormat))
		lines = append(lines, "    "+s.ForStatus(n.Status.StyleTag).Render(components.Truncate(detail, width-6)))
	}

	if end < len(v.items) || v.offset > 0 {
		lines = append(lines, s.Muted.Render(fmt.Sprintf("%d of %d alerts", v.selected+1, len(v.items))))
	}

	return strings.Join(lines, "\n")
}
