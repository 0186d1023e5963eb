package models

import "time"

// Merch item types. Event passes are capped per user and mint admission
// passes once the payment behind them is verified.
const (
	MerchTypeWearable    = "wearable"
	MerchTypeNonWearable = "non-wearable"
	MerchTypeEventPass1  = "event-pass1"
	MerchTypeEventPass2  = "event-pass2"
)

// Per-user purchase caps across all non-rejected reservations.
const (
	EventPass1Limit = 3
	EventPass2Limit = 2
)

var WearableSizes = []string{"XS", "S", "M", "L", "XL", "XXL", "XXXL"}

type Merch struct {
	MerchID     string    `json:"merchid" bson:"merchid"`
	Type        string    `json:"type" bson:"type"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	Stock       int       `json:"stock" bson:"stock"`
	Sizes       []string  `json:"sizes,omitempty" bson:"sizes,omitempty"` // wearable only
	Photo       string    `json:"photo,omitempty" bson:"photo,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdat"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedat"`
}

func (m *Merch) IsEventPass() bool {
	return m.Type == MerchTypeEventPass1 || m.Type == MerchTypeEventPass2
}
