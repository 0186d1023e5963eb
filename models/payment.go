package models

import "time"

const (
	PaymentPending  = "pending"
	PaymentVerified = "verified"
	PaymentRejected = "rejected"
)

// Payment is an uploaded proof of a manual bank transfer, reviewed by an
// administrator. One per reservation; the UTR is globally unique.
type Payment struct {
	PaymentID     string     `json:"paymentid" bson:"paymentid"`
	ReservationID string     `json:"reservationid" bson:"reservationid"`
	UserID        string     `json:"userid" bson:"userid"`
	Name          string     `json:"name" bson:"name"`
	Email         string     `json:"email" bson:"email"`
	Contact       string     `json:"contact" bson:"contact"`
	Amount        float64    `json:"amount" bson:"amount"`
	UTR           string     `json:"utr" bson:"utr"`
	Screenshot    string     `json:"screenshot" bson:"screenshot"`
	Thumb         string     `json:"thumb,omitempty" bson:"thumb,omitempty"`
	Status        string     `json:"status" bson:"status"`
	VerifiedAt    *time.Time `json:"verifiedAt,omitempty" bson:"verifiedat,omitempty"`
	CreatedAt     time.Time  `json:"createdAt" bson:"createdat"`
}

type PaymentStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Verified int64 `json:"verified"`
	Rejected int64 `json:"rejected"`
}
