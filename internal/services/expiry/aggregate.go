package expiry

import (
	"sort"
	"time"

	"github.com/sheetsync/sheetsync/internal/models"
	"github.com/sheetsync/sheetsync/internal/util"
)

// ProductGroup aggregates every entry sharing a barcode.
type ProductGroup struct {
	Barcode       string
	Name          string
	TotalQuantity int
	// Entries are ordered by expiry date, ties in input order.
	Entries       []models.InventoryEntry
	SoonestExpiry time.Time
	// Status is the status of SoonestExpiry: a group is only as safe as its
	// most urgent lot.
	Status Status
}

// GroupByProduct partitions entries by exact barcode and orders the groups
// most urgent first. Every input entry lands in exactly one group.
func (c Classifier) GroupByProduct(entries []models.InventoryEntry, ref time.Time) []ProductGroup {
	if len(entries) == 0 {
		return []ProductGroup{}
	}

	index := make(map[string]int)
	var groups []ProductGroup

	for _, e := range entries {
		i, ok := index[e.Barcode]
		if !ok {
			i = len(groups)
			index[e.Barcode] = i
			groups = append(groups, ProductGroup{Barcode: e.Barcode})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}

	for i := range groups {
		g := &groups[i]

		sort.SliceStable(g.Entries, func(a, b int) bool {
			return expiresBefore(g.Entries[a].ExpiryDate, g.Entries[b].ExpiryDate)
		})

		for _, e := range g.Entries {
			g.TotalQuantity += e.Quantity
		}

		g.Name = g.Entries[0].Name
		g.SoonestExpiry = g.Entries[0].ExpiryDate
		g.Status = c.Classify(g.SoonestExpiry, ref)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return expiresBefore(groups[a].SoonestExpiry, groups[b].SoonestExpiry)
	})

	return groups
}

// GroupByProduct uses the default window.
func GroupByProduct(entries []models.InventoryEntry, ref time.Time) []ProductGroup {
	return Default().GroupByProduct(entries, ref)
}

// EntryCount returns the number of entries across all groups.
func EntryCount(groups []ProductGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.Entries)
	}
	return n
}

// expiresBefore orders by calendar day, so lots expiring on the same
// day keep their input order whatever their time-of-day.
func expiresBefore(a, b time.Time) bool {
	return util.CivilDay(a).Before(util.CivilDay(b))
}
