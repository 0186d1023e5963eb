package inventory

import (
	"context"
	"errors"
	"time"

	"solstice/db"
	"solstice/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrInsufficient is returned when a conditional decrement finds less
// capacity than requested. Callers translate it into a message naming the
// offending item or date.
var ErrInsufficient = errors.New("insufficient capacity")

// DecrementStock atomically takes qty units off a merch item's stock. The
// $gte guard makes check and decrement a single operation, so two buyers
// racing for the last unit cannot both succeed. Returns the remaining stock.
func DecrementStock(ctx context.Context, merchID string, qty int) (int, error) {
	var updated models.Merch
	err := db.MerchCollection.FindOneAndUpdate(ctx,
		bson.M{"merchid": merchID, "stock": bson.M{"$gte": qty}},
		bson.M{
			"$inc": bson.M{"stock": -qty},
			"$set": bson.M{"updatedat": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrInsufficient
		}
		return 0, err
	}
	return updated.Stock, nil
}

// IncrementStock restores qty units. The caller owns at-most-once semantics;
// this is invoked only from the reject path and the expiry sweeper, both of
// which guard against double restoration.
func IncrementStock(ctx context.Context, merchID string, qty int) error {
	_, err := db.MerchCollection.UpdateOne(ctx,
		bson.M{"merchid": merchID},
		bson.M{
			"$inc": bson.M{"stock": qty},
			"$set": bson.M{"updatedat": time.Now()},
		},
	)
	return err
}

// FieldForGender maps a user's gender onto the availability counter it
// draws from.
func FieldForGender(gender string) string {
	if gender == "male" {
		return "mens"
	}
	return "womens"
}

// DecrementNight atomically takes one bed-night for the given date and
// gender category. A missing date document counts as no availability.
func DecrementNight(ctx context.Context, date, gender string) (int, error) {
	field := FieldForGender(gender)

	var updated models.Availability
	err := db.AvailabilityCollection.FindOneAndUpdate(ctx,
		bson.M{"date": date, field: bson.M{"$gte": 1}},
		bson.M{
			"$inc": bson.M{field: -1},
			"$set": bson.M{"updatedat": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrInsufficient
		}
		return 0, err
	}

	if field == "mens" {
		return updated.Mens, nil
	}
	return updated.Womens, nil
}

// IncrementNight restores one bed-night for the given date and gender.
func IncrementNight(ctx context.Context, date, gender string) error {
	field := FieldForGender(gender)
	_, err := db.AvailabilityCollection.UpdateOne(ctx,
		bson.M{"date": date},
		bson.M{
			"$inc": bson.M{field: 1},
			"$set": bson.M{"updatedat": time.Now()},
		},
	)
	return err
}
