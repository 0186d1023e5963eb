package passes

import (
	"context"
	"time"

	"solstice/db"
	"solstice/models"
	"solstice/utils"
)

// MintForReservation creates one redeemable pass per event-pass unit in a
// confirmed reservation. Runs inside the verify transaction so a crash can
// never leave a confirmed reservation without its credentials.
func MintForReservation(ctx context.Context, res *models.Reservation, user *models.User) ([]models.Pass, error) {
	var minted []models.Pass

	for _, item := range res.Items {
		if item.ItemType != models.MerchTypeEventPass1 && item.ItemType != models.MerchTypeEventPass2 {
			continue
		}

		for i := 1; i <= item.Quantity; i++ {
			passID := utils.GetUUID()
			pass := models.Pass{
				PassID:        passID,
				ReservationID: res.ReservationID,
				UserID:        res.UserID,
				PassType:      item.ItemType,
				PassNumber:    i,
				TotalPasses:   item.Quantity,
				HolderName:    user.Name,
				HolderEmail:   user.Email,
				Payload:       GeneratePassPayload(passID, res.ReservationID, item.ItemType),
				CreatedAt:     time.Now(),
			}

			if _, err := db.PassesCollection.InsertOne(ctx, pass); err != nil {
				return nil, err
			}
			minted = append(minted, pass)
		}
	}

	return minted, nil
}
