package models

import "time"

// Availability is the per-date accommodation capacity unit. Mens and Womens
// are independent counters; both are only ever moved by atomic conditional
// updates, never by read-then-write.
type Availability struct {
	Date      string    `json:"date" bson:"date"` // YYYY-MM-DD
	Mens      int       `json:"mensAvailability" bson:"mens"`
	Womens    int       `json:"womensAvailability" bson:"womens"`
	CreatedAt time.Time `json:"createdAt" bson:"createdat"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedat"`
}
