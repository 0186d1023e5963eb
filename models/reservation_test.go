package models

import (
	"testing"
	"time"
)

func TestTerminal(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{StatusPending, false},
		{StatusUnderReview, false},
		{StatusConfirmed, true},
		{StatusRejected, true},
	}
	for _, tc := range cases {
		r := Reservation{Status: tc.status}
		if got := r.Terminal(); got != tc.want {
			t.Fatalf("Terminal() for %s = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestOnlyPendingCarriesExpiry(t *testing.T) {
	// The sweeper's eligibility query relies on expiresAt being present
	// only while a reservation is pending.
	expiry := time.Now().Add(ReservationTTL)
	r := Reservation{Status: StatusPending, ExpiresAt: &expiry}
	if r.ExpiresAt == nil {
		t.Fatal("pending reservation must carry an expiry")
	}
	if ReservationTTL != 5*time.Minute {
		t.Fatalf("grace window changed: %v", ReservationTTL)
	}
}
