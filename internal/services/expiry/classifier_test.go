package expiry

import (
	"testing"
	"time"
)

var today = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return today.AddDate(0, 0, offset)
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		name      string
		offset    int
		wantKind  Kind
		wantDays  int
		wantLabel string
	}{
		{"today", 0, KindExpiringSoon, 0, "Expires today"},
		{"tomorrow", 1, KindExpiringSoon, 1, "Expires tomorrow"},
		{"two days", 2, KindExpiringSoon, 2, "Expires in 2 days"},
		{"window edge", 7, KindExpiringSoon, 7, "Expires in 7 days"},
		{"first fresh day", 8, KindFresh, 8, "Expires on Jun 23, 2024"},
		{"far future", 200, KindFresh, 200, "Expires on Jan 1, 2025"},
		{"yesterday", -1, KindExpired, -1, "Expired 1 day ago"},
		{"three days ago", -3, KindExpired, -3, "Expired 3 days ago"},
		{"two weeks ago", -14, KindExpired, -14, "Expired 2 weeks ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(day(tt.offset), today)

			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", got.Kind, tt.wantKind)
			}
			if got.DaysUntilExpiry != tt.wantDays {
				t.Errorf("DaysUntilExpiry = %d, want %d", got.DaysUntilExpiry, tt.wantDays)
			}
			if got.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", got.Label, tt.wantLabel)
			}
			if got.StyleTag != got.Kind.StyleTag() {
				t.Errorf("StyleTag = %s, want %s", got.StyleTag, got.Kind.StyleTag())
			}
		})
	}
}

func TestClassify_TimeOfDayInsensitive(t *testing.T) {
	plus9 := time.FixedZone("UTC+9", 9*3600)
	minus5 := time.FixedZone("UTC-5", -5*3600)

	expiries := []time.Time{
		time.Date(2024, 6, 18, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 18, 23, 59, 59, 0, time.UTC),
		time.Date(2024, 6, 18, 6, 30, 0, 0, plus9),
		time.Date(2024, 6, 18, 21, 0, 0, 0, minus5),
	}
	refs := []time.Time{
		time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 23, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 1, 0, 0, 0, plus9),
		time.Date(2024, 6, 15, 22, 45, 0, 0, minus5),
	}

	want := Classify(expiries[0], refs[0])
	if want.DaysUntilExpiry != 3 {
		t.Fatalf("baseline days = %d, want 3", want.DaysUntilExpiry)
	}

	for _, e := range expiries {
		for _, r := range refs {
			if got := Classify(e, r); got != want {
				t.Errorf("Classify(%v, %v) = %+v, want %+v", e, r, got, want)
			}
		}
	}
}

func TestClassify_AcrossDSTChange(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("time zone data unavailable: %v", err)
	}

	// Clocks go forward on 2024-03-10.
	ref := time.Date(2024, 3, 9, 12, 0, 0, 0, loc)
	exp := time.Date(2024, 3, 11, 0, 30, 0, 0, loc)

	got := Classify(exp, ref)
	if got.DaysUntilExpiry != 2 {
		t.Errorf("DaysUntilExpiry = %d, want 2", got.DaysUntilExpiry)
	}
	if got.Label != "Expires in 2 days" {
		t.Errorf("Label = %q", got.Label)
	}
}

func TestClassify_ExpiredLabelAnchoredToReference(t *testing.T) {
	ref := time.Date(1999, 1, 10, 0, 0, 0, 0, time.UTC)
	got := Classify(ref.AddDate(0, 0, -2), ref)

	if got.Label != "Expired 2 days ago" {
		t.Errorf("Label = %q, want relative to the reference date", got.Label)
	}
}

func TestClassifier_CustomWindow(t *testing.T) {
	c := NewClassifier(30)

	if got := c.Classify(day(30), today).Kind; got != KindExpiringSoon {
		t.Errorf("day 30 with 30-day window: got %s", got)
	}
	if got := c.Classify(day(31), today).Kind; got != KindFresh {
		t.Errorf("day 31 with 30-day window: got %s", got)
	}

	zero := NewClassifier(-5)
	if zero.SoonWindowDays != 0 {
		t.Errorf("negative window should clamp to 0, got %d", zero.SoonWindowDays)
	}
	if got := zero.Classify(day(0), today); got.Kind != KindExpiringSoon || got.Label != "Expires today" {
		t.Errorf("today with zero window: %+v", got)
	}
	if got := zero.Classify(day(1), today).Kind; got != KindFresh {
		t.Errorf("tomorrow with zero window: got %s", got)
	}
}

func TestKind_StyleTag(t *testing.T) {
	tests := []struct {
		kind Kind
		want StyleTag
	}{
		{KindFresh, StyleOK},
		{KindExpiringSoon, StyleWarning},
		{KindExpired, StyleCritical},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.StyleTag(); got != tt.want {
				t.Errorf("StyleTag() = %s, want %s", got, tt.want)
			}
		})
	}
}
