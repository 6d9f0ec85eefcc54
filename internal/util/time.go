package util

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DateFormat is the storage format for calendar dates.
	DateFormat = "2006-01-02"

	// DisplayDateFormat is the short human format used in labels.
	DisplayDateFormat = "Jan 2, 2006"
)

// Clock supplies the reference date for expiry calculations. It follows the
// wall clock unless paused, in which case it reports a fixed instant that
// only moves through Advance or SetTime.
type Clock struct {
	mu       sync.RWMutex
	now      func() time.Time
	paused   bool
	pausedAt time.Time
}

// NewClock returns a clock that follows the wall clock.
func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// NewFixedClock returns a paused clock pinned at t.
func NewFixedClock(t time.Time) *Clock {
	return &Clock{now: time.Now, paused: true, pausedAt: t}
}

// Now returns the current reference instant.
func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.paused {
		return c.pausedAt
	}
	return c.now()
}

// Today returns midnight of the current reference day.
func (c *Clock) Today() time.Time {
	return StartOfDay(c.Now())
}

// Pause freezes the clock at the current instant.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.paused {
		c.pausedAt = c.now()
		c.paused = true
	}
}

// Resume returns the clock to wall-clock time.
func (c *Clock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = false
}

// IsPaused returns true if the clock is paused.
func (c *Clock) IsPaused() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.paused
}

// Advance moves a paused clock forward by d.
func (c *Clock) Advance(d time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.paused {
		return fmt.Errorf("cannot advance time while running; pause first")
	}
	c.pausedAt = c.pausedAt.Add(d)
	return nil
}

// AdvanceDays moves a paused clock forward by n calendar days.
func (c *Clock) AdvanceDays(n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.paused {
		return fmt.Errorf("cannot advance time while running; pause first")
	}
	c.pausedAt = c.pausedAt.AddDate(0, 0, n)
	return nil
}

// SetTime pins a paused clock at t.
func (c *Clock) SetTime(t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.paused {
		return fmt.Errorf("cannot set time while running; pause first")
	}
	c.pausedAt = t
	return nil
}

// FormatDate formats a time as a storage date string.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// ParseDate parses a YYYY-MM-DD date in the local time zone. Impossible
// dates such as 2024-02-30 are rejected.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, time.Local)
}

// StartOfDay returns midnight of the given day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CivilDay returns t's calendar day (in t's own location) as midnight UTC.
// Differences between civil days are always whole multiples of 24 hours.
func CivilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from `from` to `to`.
// Negative when `to` is earlier.
func DaysBetween(from, to time.Time) int {
	return int(CivilDay(to).Sub(CivilDay(from)).Hours() / 24)
}

// IsSameDay checks if two times are on the same calendar day.
func IsSameDay(t1, t2 time.Time) bool {
	y1, m1, d1 := t1.Date()
	y2, m2, d2 := t2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
