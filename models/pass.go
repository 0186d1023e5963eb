package models

import "time"

// Pass is an individually redeemable admission credential, minted when an
// event-pass payment is verified. Payload is the HMAC-signed string encoded
// into the QR; redemption flips Used exactly once.
type Pass struct {
	PassID        string     `json:"passid" bson:"passid"`
	ReservationID string     `json:"reservationid" bson:"reservationid"`
	UserID        string     `json:"userid" bson:"userid"`
	PassType      string     `json:"passType" bson:"passtype"`
	PassNumber    int        `json:"passNumber" bson:"passnumber"`
	TotalPasses   int        `json:"totalPasses" bson:"totalpasses"`
	HolderName    string     `json:"holderName" bson:"holdername"`
	HolderEmail   string     `json:"holderEmail" bson:"holderemail"`
	Payload       string     `json:"payload" bson:"payload"`
	Used          bool       `json:"used" bson:"used"`
	UsedAt        *time.Time `json:"usedAt,omitempty" bson:"usedat,omitempty"`
	CreatedAt     time.Time  `json:"createdAt" bson:"createdat"`
}
