package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the uniqueness constraints the booking flow relies on.
// The unique index on payments.utr is what makes duplicate payment references
// a database-level conflict rather than a best-effort check.
func EnsureIndexes(ctx context.Context) error {
	if _, err := MerchCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"merchid": 1},
		Options: options.Index().SetUnique(true).SetName("unique_merchid"),
	}); err != nil {
		return err
	}

	if _, err := AvailabilityCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"date": 1},
		Options: options.Index().SetUnique(true).SetName("unique_date"),
	}); err != nil {
		return err
	}

	if _, err := ReservationsCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.M{"reservationid": 1},
			Options: options.Index().SetUnique(true).SetName("unique_reservationid"),
		},
		{
			Keys:    bson.M{"userid": 1, "createdat": -1},
			Options: options.Index().SetName("user_reservations"),
		},
		{
			Keys:    bson.M{"status": 1, "expiresat": 1},
			Options: options.Index().SetName("sweeper_scan"),
		},
	}); err != nil {
		return err
	}

	if _, err := PaymentsCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.M{"paymentid": 1},
			Options: options.Index().SetUnique(true).SetName("unique_paymentid"),
		},
		{
			Keys:    bson.M{"utr": 1},
			Options: options.Index().SetUnique(true).SetName("unique_utr"),
		},
		{
			Keys:    bson.M{"reservationid": 1},
			Options: options.Index().SetUnique(true).SetName("one_payment_per_reservation"),
		},
	}); err != nil {
		return err
	}

	if _, err := PassesCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.M{"passid": 1},
			Options: options.Index().SetUnique(true).SetName("unique_passid"),
		},
		{
			Keys:    bson.M{"reservationid": 1},
			Options: options.Index().SetName("passes_by_reservation"),
		},
	}); err != nil {
		return err
	}

	_, err := UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"username": 1},
		Options: options.Index().SetUnique(true).SetName("unique_username"),
	})
	return err
}
