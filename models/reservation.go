package models

import "time"

// Reservation lifecycle. A reservation only carries an expiry while it is
// pending; submitting a payment proof moves it to under_review and unsets
// the expiry, which is what keeps the sweeper away from it.
const (
	StatusPending     = "pending"
	StatusUnderReview = "under_review"
	StatusConfirmed   = "confirmed"
	StatusRejected    = "rejected"
)

const (
	KindMerch         = "merch"
	KindAccommodation = "accommodation"
)

// ReservationTTL is the grace window for submitting a payment proof.
const ReservationTTL = 5 * time.Minute

// PricePerNight is the flat accommodation rate.
const PricePerNight = 700.0

type LineItem struct {
	MerchID   string  `json:"merchId" bson:"merchid"`
	Name      string  `json:"name" bson:"name"`
	ItemType  string  `json:"itemType" bson:"itemtype"`
	Size      string  `json:"size,omitempty" bson:"size,omitempty"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	UnitPrice float64 `json:"unitPrice" bson:"unitprice"`
}

type Reservation struct {
	ReservationID string     `json:"reservationid" bson:"reservationid"`
	UserID        string     `json:"userid" bson:"userid"`
	UserName      string     `json:"username" bson:"username"`
	Kind          string     `json:"kind" bson:"kind"`
	Items         []LineItem `json:"items,omitempty" bson:"items,omitempty"`
	CheckIn       string     `json:"checkIn,omitempty" bson:"checkin,omitempty"`   // YYYY-MM-DD
	CheckOut      string     `json:"checkOut,omitempty" bson:"checkout,omitempty"` // YYYY-MM-DD
	Nights        int        `json:"nights,omitempty" bson:"nights,omitempty"`
	Gender        string     `json:"gender,omitempty" bson:"gender,omitempty"`
	Total         float64    `json:"total" bson:"total"`
	Status        string     `json:"status" bson:"status"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty" bson:"expiresat,omitempty"`
	CreatedAt     time.Time  `json:"createdAt" bson:"createdat"`
	UpdatedAt     time.Time  `json:"updatedAt" bson:"updatedat"`
}

// Terminal reports whether the reservation has reached a final decision.
func (r *Reservation) Terminal() bool {
	return r.Status == StatusConfirmed || r.Status == StatusRejected
}
