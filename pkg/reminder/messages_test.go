package reminder

import (
	"strings"
	"testing"
)

func TestMessageForThresholds(t *testing.T) {
	tests := []struct {
		name      string
		daysUntil int
		fires     bool
		contains  string
	}{
		{"one month", 30, true, "1 month"},
		{"three weeks", 21, true, "3 week(s)"},
		{"two weeks", 14, true, "2 week(s)"},
		{"one week", 7, true, "1 week(s)"},
		{"tomorrow", 1, true, "TOMORROW"},
		{"today", 0, true, "Today is the day"},
		{"off threshold", 10, false, ""},
		{"almost a month", 29, false, ""},
		{"far future", 200, false, ""},
		// 35 is a weekly multiple but outside the under-a-month window.
		{"five weeks", 35, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := messageFor("Birthday", tt.daysUntil)
			if ok != tt.fires {
				t.Fatalf("messageFor(%d) fired = %v, want %v", tt.daysUntil, ok, tt.fires)
			}
			if tt.fires && !strings.Contains(msg, tt.contains) {
				t.Errorf("messageFor(%d) = %q, want it to contain %q", tt.daysUntil, msg, tt.contains)
			}
		})
	}
}

func TestMessageForMonthBeatsWeeks(t *testing.T) {
	// 30 is not a multiple of 7, but the ordering still matters for the
	// wording: the month variant is selected, never a weeks computation.
	msg, ok := messageFor("X", 30)
	if !ok {
		t.Fatal("expected a message at 30 days")
	}
	if strings.Contains(msg, "week") {
		t.Errorf("message = %q, want the month wording", msg)
	}
}

func TestEscape(t *testing.T) {
	got := escape(`<i>amor</i> & "you"`)
	if strings.ContainsAny(got, "<>") {
		t.Errorf("escape left raw angle brackets: %q", got)
	}
	if !strings.Contains(got, "&lt;i&gt;") {
		t.Errorf("escape() = %q, want entity-encoded tags", got)
	}
}
