package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"solstice/apperr"
	"solstice/db"
	"solstice/inventory"
	"solstice/models"
	"solstice/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const storeTimeout = 5 * time.Second

type requestedLine struct {
	MerchID  string `json:"merchId"`
	Size     string `json:"size,omitempty"`
	Quantity int    `json:"quantity"`
}

// createMerchReservation runs the whole claim as one transaction: cap
// recount, per-line conditional stock decrements and the reservation insert
// commit together or not at all. A failed line aborts everything, so a
// partial decrement can never leak.
func createMerchReservation(ctx context.Context, user *models.User, lines []requestedLine) (*models.Reservation, error) {
	for _, line := range lines {
		if line.MerchID == "" || line.Quantity <= 0 {
			return nil, apperr.Validation("Each item must have merchId and a positive quantity.")
		}
	}

	session, err := db.Client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		existing, err := passUnitsHeld(sc, user.UserID)
		if err != nil {
			return nil, err
		}

		var items []models.LineItem
		requested := map[string]int{}

		for _, line := range lines {
			var merch models.Merch
			err := db.MerchCollection.FindOne(sc, bson.M{"merchid": line.MerchID}).Decode(&merch)
			if err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					return nil, apperr.NotFound("Merchandise with ID %s not found.", line.MerchID)
				}
				return nil, err
			}

			if merch.Type == models.MerchTypeWearable {
				if line.Size == "" {
					return nil, apperr.Validation("Size is required for wearable item: %s", merch.Name)
				}
				if !containsSize(merch.Sizes, line.Size) {
					return nil, apperr.Validation("Size %s is not available for %s", line.Size, merch.Name)
				}
			}

			if merch.IsEventPass() {
				requested[merch.Type] += line.Quantity
			}

			if _, err := inventory.DecrementStock(sc, merch.MerchID, line.Quantity); err != nil {
				if errors.Is(err, inventory.ErrInsufficient) {
					return nil, apperr.Validation(
						"Insufficient stock for %s. Available: %d, Requested: %d",
						merch.Name, merch.Stock, line.Quantity)
				}
				return nil, err
			}

			items = append(items, models.LineItem{
				MerchID:   merch.MerchID,
				Name:      merch.Name,
				ItemType:  merch.Type,
				Size:      line.Size,
				Quantity:  line.Quantity,
				UnitPrice: merch.Price,
			})
		}

		if err := checkPassLimits(existing, requested); err != nil {
			return nil, err
		}

		now := time.Now()
		expiry := now.Add(models.ReservationTTL)
		reservation := models.Reservation{
			ReservationID: utils.GetUUID(),
			UserID:        user.UserID,
			UserName:      user.Name,
			Kind:          models.KindMerch,
			Items:         items,
			Total:         computeTotal(items),
			Status:        models.StatusPending,
			ExpiresAt:     &expiry,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if _, err := db.ReservationsCollection.InsertOne(sc, reservation); err != nil {
			return nil, err
		}
		return &reservation, nil
	})
	if err != nil {
		return nil, err
	}

	reservation := result.(*models.Reservation)
	for _, item := range reservation.Items {
		broadcastStock(ctx, item.MerchID)
	}
	return reservation, nil
}

// createStayReservation claims one bed-night per date in the stay range.
// The per-date conditional decrement runs inside the same transaction as
// the reservation insert, so a sold-out night rolls back the earlier dates.
func createStayReservation(ctx context.Context, user *models.User, checkIn, checkOut string) (*models.Reservation, error) {
	if user.Gender == "" {
		return nil, apperr.Validation("Please complete your onboarding profile first")
	}

	nights, err := parseStay(checkIn, checkOut, time.Now())
	if err != nil {
		return nil, err
	}

	session, err := db.Client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, night := range nights {
			if _, err := inventory.DecrementNight(sc, night, user.Gender); err != nil {
				if errors.Is(err, inventory.ErrInsufficient) {
					return nil, apperr.Validation("No availability for %s on %s", user.Gender, night)
				}
				return nil, err
			}
		}

		now := time.Now()
		expiry := now.Add(models.ReservationTTL)
		reservation := models.Reservation{
			ReservationID: utils.GetUUID(),
			UserID:        user.UserID,
			UserName:      user.Name,
			Kind:          models.KindAccommodation,
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			Nights:        len(nights),
			Gender:        user.Gender,
			Total:         float64(len(nights)) * models.PricePerNight,
			Status:        models.StatusPending,
			ExpiresAt:     &expiry,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if _, err := db.ReservationsCollection.InsertOne(sc, reservation); err != nil {
			return nil, err
		}
		return &reservation, nil
	})
	if err != nil {
		return nil, err
	}

	reservation := result.(*models.Reservation)
	for _, night := range nights {
		broadcastNight(ctx, night, user.Gender)
	}
	return reservation, nil
}

// passUnitsHeld recounts the user's event-pass units across all
// non-rejected reservations. Recomputed inside the claim transaction every
// time instead of keeping a counter that could go stale under concurrency.
func passUnitsHeld(ctx context.Context, userID string) (map[string]int, error) {
	cursor, err := db.ReservationsCollection.Find(ctx, bson.M{
		"userid": userID,
		"status": bson.M{"$ne": models.StatusRejected},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := map[string]int{}
	for cursor.Next(ctx) {
		var res models.Reservation
		if err := cursor.Decode(&res); err != nil {
			return nil, err
		}
		for _, item := range res.Items {
			if item.ItemType == models.MerchTypeEventPass1 || item.ItemType == models.MerchTypeEventPass2 {
				counts[item.ItemType] += item.Quantity
			}
		}
	}
	return counts, cursor.Err()
}

// checkPassLimits enforces the per-user purchase caps, reporting how many
// units the user already holds versus what this request adds.
func checkPassLimits(existing, requested map[string]int) error {
	limits := map[string]int{
		models.MerchTypeEventPass1: models.EventPass1Limit,
		models.MerchTypeEventPass2: models.EventPass2Limit,
	}
	labels := map[string]string{
		models.MerchTypeEventPass1: "Event Pass-1",
		models.MerchTypeEventPass2: "Event Pass-2",
	}

	for _, passType := range []string{models.MerchTypeEventPass1, models.MerchTypeEventPass2} {
		if requested[passType] == 0 {
			continue
		}
		if existing[passType]+requested[passType] > limits[passType] {
			return apperr.Validation(
				"You can only purchase up to %d %s. You have already purchased %d, and you're trying to purchase %d more.",
				limits[passType], labels[passType], existing[passType], requested[passType])
		}
	}
	return nil
}

func computeTotal(items []models.LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

func containsSize(sizes []string, size string) bool {
	for _, s := range sizes {
		if s == size {
			return true
		}
	}
	return false
}

// broadcastStock reads the committed stock level and pushes it to websocket
// subscribers. Best effort.
func broadcastStock(ctx context.Context, merchID string) {
	var merch models.Merch
	if err := db.MerchCollection.FindOne(ctx, bson.M{"merchid": merchID}).Decode(&merch); err != nil {
		return
	}
	inventory.BroadcastCapacity("merch", merch.MerchID, merch.Stock)
}

func broadcastNight(ctx context.Context, date, gender string) {
	var avail models.Availability
	if err := db.AvailabilityCollection.FindOne(ctx, bson.M{"date": date}).Decode(&avail); err != nil {
		return
	}
	remaining := avail.Womens
	if inventory.FieldForGender(gender) == "mens" {
		remaining = avail.Mens
	}
	inventory.BroadcastCapacity("availability", fmt.Sprintf("%s_%s", date, gender), remaining)
}
