package opportunity

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOpportunity_IsPublishedAt(t *testing.T) {
	opp := Opportunity{
		PlannedPublish:  date(2026, 3, 10),
		PlannedDeadline: date(2026, 3, 20),
	}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{name: "before window", at: date(2026, 3, 9), want: false},
		{name: "publish day", at: date(2026, 3, 10), want: true},
		{name: "publish day, late evening", at: time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC), want: true},
		{name: "mid window", at: date(2026, 3, 15), want: true},
		{name: "deadline day", at: date(2026, 3, 20), want: true},
		{name: "after deadline", at: date(2026, 3, 21), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := opp.IsPublishedAt(tt.at); got != tt.want {
				t.Errorf("IsPublishedAt(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestOpportunity_IsPublishedAt_noPublishDate(t *testing.T) {
	opp := Opportunity{PlannedDeadline: date(2026, 3, 20)}
	if opp.IsPublishedAt(date(2026, 3, 15)) {
		t.Error("IsPublishedAt() = true for an opportunity without a publish date")
	}
}

func TestInput_NeedsDocument(t *testing.T) {
	in := Input{DocumentsNeeded: []uint{2, 5}}
	for id, want := range map[uint]bool{2: true, 5: true, 3: false} {
		if got := in.NeedsDocument(id); got != want {
			t.Errorf("NeedsDocument(%d) = %v, want %v", id, got, want)
		}
	}
}
