// Package notifications tracks which expiry alerts the user has already
// acknowledged and which changelog version they last saw.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sheetsync/sheetsync/internal/models"
	"github.com/sheetsync/sheetsync/internal/services/expiry"
)

// ViewedKey is the settings key holding the acknowledged entry ids.
const ViewedKey = "viewed_notifications"

// KeyValueStore is the persistence capability the service needs.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// ViewedSet is the persisted set of acknowledged entry ids. It only grows.
type ViewedSet struct {
	mu  sync.RWMutex
	kv  KeyValueStore
	ids map[string]struct{}
}

// NewViewedSet returns an empty set backed by kv. Call Load to read the
// persisted ids.
func NewViewedSet(kv KeyValueStore) *ViewedSet {
	return &ViewedSet{kv: kv, ids: make(map[string]struct{})}
}

// Load replaces the in-memory set with the persisted one. A missing key is
// an empty set.
func (v *ViewedSet) Load(ctx context.Context) error {
	raw, ok, err := v.kv.Get(ctx, ViewedKey)
	if err != nil {
		return fmt.Errorf("reading viewed notifications: %w", err)
	}

	ids := make(map[string]struct{})
	if ok && raw != "" {
		var list []string
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return fmt.Errorf("decoding viewed notifications: %w", err)
		}
		for _, id := range list {
			ids[id] = struct{}{}
		}
	}

	v.mu.Lock()
	v.ids = ids
	v.mu.Unlock()
	return nil
}

// Has reports whether id was acknowledged.
func (v *ViewedSet) Has(id string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.ids[id]
	return ok
}

// Len returns the number of acknowledged ids.
func (v *ViewedSet) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.ids)
}

// MarkViewed adds id. Marking an id twice does not write again.
func (v *ViewedSet) MarkViewed(ctx context.Context, id string) error {
	return v.MarkAllViewed(ctx, []string{id})
}

// MarkAllViewed adds every id and persists once if anything changed.
func (v *ViewedSet) MarkAllViewed(ctx context.Context, ids []string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	var added []string
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := v.ids[id]; ok {
			continue
		}
		v.ids[id] = struct{}{}
		added = append(added, id)
	}
	if len(added) == 0 {
		return nil
	}

	if err := v.persistLocked(ctx); err != nil {
		for _, id := range added {
			delete(v.ids, id)
		}
		return err
	}
	return nil
}

func (v *ViewedSet) persistLocked(ctx context.Context) error {
	list := make([]string, 0, len(v.ids))
	for id := range v.ids {
		list = append(list, id)
	}
	sort.Strings(list)

	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encoding viewed notifications: %w", err)
	}
	if err := v.kv.Set(ctx, ViewedKey, string(raw)); err != nil {
		return fmt.Errorf("saving viewed notifications: %w", err)
	}
	return nil
}

// Service produces the notification feed and records dismissals.
type Service struct {
	viewed   *ViewedSet
	selector expiry.FeedSelector
}

// NewService creates a notification service.
func NewService(viewed *ViewedSet, selector expiry.FeedSelector) *Service {
	return &Service{viewed: viewed, selector: selector}
}

// Viewed returns the underlying viewed set.
func (s *Service) Viewed() *ViewedSet {
	return s.viewed
}

// Feed returns the unacknowledged alerts for entries as of ref.
func (s *Service) Feed(entries []models.InventoryEntry, ref time.Time) []expiry.Notification {
	return s.selector.Feed(entries, ref, s.viewed)
}

// Dismiss acknowledges one entry.
func (s *Service) Dismiss(ctx context.Context, id string) error {
	return s.viewed.MarkViewed(ctx, id)
}

// DismissAll acknowledges every entry currently in the feed.
func (s *Service) DismissAll(ctx context.Context, entries []models.InventoryEntry, ref time.Time) error {
	feed := s.Feed(entries, ref)
	ids := make([]string, len(feed))
	for i, n := range feed {
		ids[i] = n.Entry.ID
	}
	return s.viewed.MarkAllViewed(ctx, ids)
}
