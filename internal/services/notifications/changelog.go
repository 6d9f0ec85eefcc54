package notifications

import (
	"context"
	"fmt"
)

// ChangelogSeenKey is the settings key holding the last acknowledged version.
const ChangelogSeenKey = "changelog_seen_version"

// Release is one changelog entry.
type Release struct {
	Version string
	Date    string
	Title   string
	Changes []Change
}

// Change is one bullet of a release; Headline renders emphasized.
type Change struct {
	Headline string
	Detail   string
}

// Changelog lists releases newest first.
var Changelog = []Release{
	{
		Version: "1.1.0",
		Date:    "July 26, 2024",
		Title:   "Smarter Inventory Management",
		Changes: []Change{
			{
				Headline: "Quantity-Based System",
				Detail:   "Instead of adding items one-by-one, you can now add a batch of items with a specific quantity and expiry date in a single action.",
			},
			{
				Headline: "Grouped Inventory View",
				Detail:   "The inventory table now groups products together. Expand each product to see its expiry batches and their quantities.",
			},
			{
				Headline: "Actionable Notifications",
				Detail:   "Selecting an expiry alert jumps to that item in the inventory list and highlights it.",
			},
		},
	},
}

// Latest returns the newest release.
func Latest() Release {
	return Changelog[0]
}

// ChangelogTracker remembers whether the newest release was acknowledged.
type ChangelogTracker struct {
	kv     KeyValueStore
	latest string
}

// NewChangelogTracker tracks the newest release in Changelog.
func NewChangelogTracker(kv KeyValueStore) *ChangelogTracker {
	return &ChangelogTracker{kv: kv, latest: Latest().Version}
}

// ShouldShow reports whether the seen version differs from the latest.
func (c *ChangelogTracker) ShouldShow(ctx context.Context) (bool, error) {
	seen, ok, err := c.kv.Get(ctx, ChangelogSeenKey)
	if err != nil {
		return false, fmt.Errorf("reading changelog version: %w", err)
	}
	return !ok || seen != c.latest, nil
}

// MarkSeen records the latest version as acknowledged.
func (c *ChangelogTracker) MarkSeen(ctx context.Context) error {
	if err := c.kv.Set(ctx, ChangelogSeenKey, c.latest); err != nil {
		return fmt.Errorf("saving changelog version: %w", err)
	}
	return nil
}
