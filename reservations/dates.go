package reservations

import (
	"time"

	"solstice/apperr"
)

const dayLayout = "2006-01-02"

// parseStay validates a check-in/check-out pair and returns the nights
// covered by the stay (check-out day excluded).
func parseStay(checkIn, checkOut string, today time.Time) ([]string, error) {
	if checkIn == "" || checkOut == "" {
		return nil, apperr.Validation("Please provide check-in date and check-out date")
	}

	in, err := time.Parse(dayLayout, checkIn)
	if err != nil {
		return nil, apperr.Validation("Check-in date must be in YYYY-MM-DD format")
	}
	out, err := time.Parse(dayLayout, checkOut)
	if err != nil {
		return nil, apperr.Validation("Check-out date must be in YYYY-MM-DD format")
	}

	// The server's calendar date, anchored UTC to match the parsed
	// inputs, so a same-day check-in late in the evening still counts
	// as today regardless of the server's zone.
	y, m, d := today.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if in.Before(day) {
		return nil, apperr.Validation("Check-in date cannot be in the past")
	}
	if !out.After(in) {
		return nil, apperr.Validation("Check-out date must be after check-in date")
	}

	var nights []string
	for d := in; d.Before(out); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d.Format(dayLayout))
	}
	return nights, nil
}
