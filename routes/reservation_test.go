package routes

import (
	"testing"
	"time"
)

func TestRangesOverlap(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"partial overlap", 18 * 60, 19 * 60, 18*60 + 30, 19*60 + 30, true},
		{"contained", 18 * 60, 20 * 60, 18*60 + 30, 19 * 60, true},
		{"identical", 18 * 60, 19 * 60, 18 * 60, 19 * 60, true},
		{"back to back after", 18 * 60, 19 * 60, 19 * 60, 20 * 60, false},
		{"back to back before", 19 * 60, 20 * 60, 18 * 60, 19 * 60, false},
		{"disjoint", 10 * 60, 11 * 60, 15 * 60, 16 * 60, false},
	}
	for _, tc := range cases {
		if got := rangesOverlap(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
			t.Errorf("%s: rangesOverlap(%d,%d,%d,%d) = %v, want %v",
				tc.name, tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	for _, input := range []string{
		"2025-06-01",
		"2025-06-01T00:00:00.000Z",
		"2025-06-01T23:59:59+03:00",
		" 2025-06-01 ",
	} {
		date, err := normalizeDate(input)
		if err != nil {
			t.Fatalf("normalizeDate(%q): %v", input, err)
		}
		if got := date.Format("2006-01-02"); got != "2025-06-01" {
			t.Errorf("normalizeDate(%q) = %s, want 2025-06-01", input, got)
		}
	}

	for _, input := range []string{"", "01/06/2025", "2025-13-40", "not a date"} {
		if _, err := normalizeDate(input); err == nil {
			t.Errorf("normalizeDate(%q): expected error", input)
		}
	}
}

func TestParseClock(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"09:30": 9*60 + 30,
		"18:00": 18 * 60,
		"23:59": 23*60 + 59,
	}
	for input, want := range cases {
		got, err := parseClock(input)
		if err != nil {
			t.Fatalf("parseClock(%q): %v", input, err)
		}
		if got != want {
			t.Errorf("parseClock(%q) = %d, want %d", input, got, want)
		}
	}

	for _, input := range []string{"", "24:00", "18", "6pm", "18:60"} {
		if _, err := parseClock(input); err == nil {
			t.Errorf("parseClock(%q): expected error", input)
		}
	}
}

func TestCancellableStatus(t *testing.T) {
	cases := []struct {
		status   string
		ok       bool
		wantCode string
	}{
		{"pending", true, ""},
		{"confirmed", true, ""},
		{"cancelled", false, "already_cancelled"},
		{"completed", false, "not_cancellable"},
		{"no_show", false, "not_cancellable"},
	}
	for _, tc := range cases {
		ok, code := cancellableStatus(tc.status)
		if ok != tc.ok || code != tc.wantCode {
			t.Errorf("cancellableStatus(%q) = (%v, %q), want (%v, %q)",
				tc.status, ok, code, tc.ok, tc.wantCode)
		}
	}
}

func TestReservationEnded(t *testing.T) {
	now := time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC)

	yesterday := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	if !reservationEnded(yesterday, "19:00", now) {
		t.Error("reservation that ended yesterday should count as ended")
	}

	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if !reservationEnded(today, "19:00", now) {
		t.Error("reservation that ended an hour ago should count as ended")
	}
	if reservationEnded(today, "21:00", now) {
		t.Error("reservation ending later today should not count as ended")
	}

	tomorrow := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	if reservationEnded(tomorrow, "09:00", now) {
		t.Error("tomorrow's reservation should not count as ended")
	}

	if reservationEnded(today, "bad-time", now) {
		t.Error("unparseable end time should not count as ended")
	}
}
