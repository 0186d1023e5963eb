package reservations

import (
	"testing"
	"time"

	"solstice/apperr"
	"solstice/models"
)

func TestParseStayCountsNights(t *testing.T) {
	today := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	nights, err := parseStay("2026-10-10", "2026-10-13", today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"2026-10-10", "2026-10-11", "2026-10-12"}
	if len(nights) != len(want) {
		t.Fatalf("expected %d nights, got %d", len(want), len(nights))
	}
	for i := range want {
		if nights[i] != want[i] {
			t.Fatalf("night %d: expected %s, got %s", i, want[i], nights[i])
		}
	}
}

func TestParseStaySingleNight(t *testing.T) {
	today := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	nights, err := parseStay("2026-10-10", "2026-10-11", today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nights) != 1 || nights[0] != "2026-10-10" {
		t.Fatalf("expected single night 2026-10-10, got %v", nights)
	}
}

func TestParseStayAllowsSameDayCheckInAcrossZones(t *testing.T) {
	// Late evening in a western zone is already the next calendar day in
	// UTC; the past-date check must follow the server's calendar.
	zone := time.FixedZone("UTC-8", -8*60*60)
	today := time.Date(2026, 10, 9, 20, 0, 0, 0, zone)

	nights, err := parseStay("2026-10-09", "2026-10-10", today)
	if err != nil {
		t.Fatalf("same-day check-in rejected: %v", err)
	}
	if len(nights) != 1 || nights[0] != "2026-10-09" {
		t.Fatalf("unexpected nights: %v", nights)
	}
}

func TestParseStayRejectsBadInput(t *testing.T) {
	today := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		checkIn  string
		checkOut string
	}{
		{"missing check-in", "", "2026-10-11"},
		{"missing check-out", "2026-10-10", ""},
		{"bad check-in format", "10/10/2026", "2026-10-11"},
		{"bad check-out format", "2026-10-10", "11-10-2026"},
		{"past check-in", "2026-09-20", "2026-09-22"},
		{"check-out equals check-in", "2026-10-10", "2026-10-10"},
		{"check-out before check-in", "2026-10-12", "2026-10-10"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseStay(tc.checkIn, tc.checkOut, today)
			if err == nil {
				t.Fatalf("expected error for %s/%s", tc.checkIn, tc.checkOut)
			}
			if apperr.Status(err) != 400 {
				t.Fatalf("expected validation error, got status %d", apperr.Status(err))
			}
		})
	}
}

func TestStayNightsMatchesStoredRange(t *testing.T) {
	res := &models.Reservation{
		Kind:     models.KindAccommodation,
		CheckIn:  "2026-10-10",
		CheckOut: "2026-10-12",
	}

	nights, err := stayNights(res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nights) != 2 || nights[0] != "2026-10-10" || nights[1] != "2026-10-11" {
		t.Fatalf("unexpected nights: %v", nights)
	}
}
