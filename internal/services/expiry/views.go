package expiry

import (
	"sort"
	"strings"
	"time"

	"github.com/sheetsync/sheetsync/internal/models"
)

const (
	// DefaultAttentionLimit is the size of the dashboard needs-attention list.
	DefaultAttentionLimit = 5

	// DefaultNotificationWindowDays is how far ahead the notification feed
	// looks. It is deliberately separate from the expiring-soon window.
	DefaultNotificationWindowDays = 10
)

// NeedsAttention returns the non-fresh groups, most overdue first, capped at
// limit. A limit of zero or less means DefaultAttentionLimit.
func NeedsAttention(groups []ProductGroup, limit int) []ProductGroup {
	if limit <= 0 {
		limit = DefaultAttentionLimit
	}

	out := make([]ProductGroup, 0, limit)
	for _, g := range groups {
		if g.Status.NeedsAttention() {
			out = append(out, g)
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Status.DaysUntilExpiry < out[b].Status.DaysUntilExpiry
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FilterGroups keeps the groups whose name or barcode contains query,
// ignoring case. A blank query keeps everything.
func FilterGroups(groups []ProductGroup, query string) []ProductGroup {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return groups
	}

	out := make([]ProductGroup, 0, len(groups))
	for _, g := range groups {
		if strings.Contains(strings.ToLower(g.Name), q) || strings.Contains(strings.ToLower(g.Barcode), q) {
			out = append(out, g)
		}
	}
	return out
}

// ViewedSet reports which entry ids were already acknowledged.
type ViewedSet interface {
	Has(id string) bool
}

// Notification is one entry due for an expiry alert.
type Notification struct {
	Entry  models.InventoryEntry
	Status Status
}

// FeedSelector picks entries for the notification feed.
type FeedSelector struct {
	Classifier Classifier
	WindowDays int
}

// NewFeedSelector returns a selector with the given classifier and window.
func NewFeedSelector(c Classifier, windowDays int) FeedSelector {
	if windowDays < 0 {
		windowDays = 0
	}
	return FeedSelector{Classifier: c, WindowDays: windowDays}
}

// Feed returns the entries expiring within the window (or already expired)
// that are not in viewed, soonest first. A nil viewed set hides nothing.
func (f FeedSelector) Feed(entries []models.InventoryEntry, ref time.Time, viewed ViewedSet) []Notification {
	out := []Notification{}
	for _, e := range entries {
		if viewed != nil && viewed.Has(e.ID) {
			continue
		}
		st := f.Classifier.Classify(e.ExpiryDate, ref)
		if st.DaysUntilExpiry > f.WindowDays {
			continue
		}
		out = append(out, Notification{Entry: e, Status: st})
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Status.DaysUntilExpiry < out[b].Status.DaysUntilExpiry
	})
	return out
}

// Stats are the dashboard counters, classified per entry.
type Stats struct {
	Entries      int
	Units        int
	Products     int
	ExpiringSoon int
	Expired      int
}

// Summarize counts entries by status using the classifier's window.
func (c Classifier) Summarize(entries []models.InventoryEntry, ref time.Time) Stats {
	var s Stats
	products := make(map[string]struct{})

	for _, e := range entries {
		s.Entries++
		s.Units += e.Quantity
		products[e.Barcode] = struct{}{}

		switch c.Classify(e.ExpiryDate, ref).Kind {
		case KindExpired:
			s.Expired++
		case KindExpiringSoon:
			s.ExpiringSoon++
		}
	}

	s.Products = len(products)
	return s
}

// RecentlyAdded returns up to n entries, newest added date first.
func RecentlyAdded(entries []models.InventoryEntry, n int) []models.InventoryEntry {
	out := make([]models.InventoryEntry, len(entries))
	copy(out, entries)

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].AddedDate.After(out[b].AddedDate)
	})

	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
