// Package expiry classifies inventory entries by how close they are to
// expiring and derives the grouped views the dashboard, inventory table and
// notification feed render. Everything here is pure: results depend only on
// the entries and the reference date passed in.
package expiry

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sheetsync/sheetsync/internal/util"
)

// DefaultSoonWindowDays is how many days ahead (inclusive) an entry counts as
// expiring soon.
const DefaultSoonWindowDays = 7

// Kind is the expiry bucket of an entry or group.
type Kind string

const (
	KindFresh        Kind = "FRESH"
	KindExpiringSoon Kind = "EXPIRING_SOON"
	KindExpired      Kind = "EXPIRED"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// StyleTag is a presentation hint derived from Kind. Renderers map it to
// concrete styles with a lookup table.
type StyleTag string

const (
	StyleOK       StyleTag = "ok"
	StyleWarning  StyleTag = "warning"
	StyleCritical StyleTag = "critical"
)

// StyleTag returns the presentation hint for k.
func (k Kind) StyleTag() StyleTag {
	switch k {
	case KindExpired:
		return StyleCritical
	case KindExpiringSoon:
		return StyleWarning
	default:
		return StyleOK
	}
}

// Status is the derived expiry state of one date against a reference date.
type Status struct {
	Kind            Kind
	DaysUntilExpiry int
	Label           string
	StyleTag        StyleTag
}

// NeedsAttention reports whether the status is anything other than fresh.
func (s Status) NeedsAttention() bool {
	return s.Kind != KindFresh
}

// Classifier buckets expiry dates. The zero value uses a window of 0 days;
// use NewClassifier or Default for the standard window.
type Classifier struct {
	SoonWindowDays int
}

// NewClassifier returns a classifier with the given expiring-soon window.
// Negative windows are treated as 0.
func NewClassifier(soonWindowDays int) Classifier {
	if soonWindowDays < 0 {
		soonWindowDays = 0
	}
	return Classifier{SoonWindowDays: soonWindowDays}
}

// Default returns a classifier using DefaultSoonWindowDays.
func Default() Classifier {
	return Classifier{SoonWindowDays: DefaultSoonWindowDays}
}

// Classify computes the status of expiry as seen on ref. Only the calendar
// day of each argument matters.
func (c Classifier) Classify(expiry, ref time.Time) Status {
	days := util.DaysBetween(ref, expiry)

	var kind Kind
	var label string

	switch {
	case days < 0:
		kind = KindExpired
		label = "Expired " + humanize.RelTime(util.CivilDay(expiry), util.CivilDay(ref), "ago", "from now")
	case days <= c.SoonWindowDays:
		kind = KindExpiringSoon
		label = soonLabel(days)
	default:
		kind = KindFresh
		label = "Expires on " + expiry.Format(util.DisplayDateFormat)
	}

	return Status{
		Kind:            kind,
		DaysUntilExpiry: days,
		Label:           label,
		StyleTag:        kind.StyleTag(),
	}
}

// Classify uses the default window.
func Classify(expiry, ref time.Time) Status {
	return Default().Classify(expiry, ref)
}

func soonLabel(days int) string {
	switch days {
	case 0:
		return "Expires today"
	case 1:
		return "Expires tomorrow"
	default:
		return fmt.Sprintf("Expires in %d days", days)
	}
}
