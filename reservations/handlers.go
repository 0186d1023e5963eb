package reservations

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"solstice/db"
	"solstice/identity"
	"solstice/models"
	"solstice/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type createRequest struct {
	Items    []requestedLine `json:"items,omitempty"`
	CheckIn  string          `json:"checkInDate,omitempty"`
	CheckOut string          `json:"checkOutDate,omitempty"`
}

// CreateReservation accepts either a merch order (items) or an
// accommodation stay (date range) and holds capacity for five minutes
// pending payment.
func CreateReservation(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	hasItems := len(req.Items) > 0
	hasStay := req.CheckIn != "" || req.CheckOut != ""
	if hasItems == hasStay {
		utils.RespondWithError(w, http.StatusBadRequest,
			"Provide either items or a check-in/check-out date range, not both.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	user, err := identity.CurrentUser(ctx, utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	var reservation *models.Reservation
	if hasItems {
		reservation, err = createMerchReservation(ctx, user, req.Items)
	} else {
		reservation, err = createStayReservation(ctx, user, req.CheckIn, req.CheckOut)
	}
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    reservation,
	})
}

// GetMyReservations lists the caller's reservations, newest first.
func GetMyReservations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	cursor, err := db.ReservationsCollection.Find(ctx,
		bson.M{"userid": userID},
		options.Find().SetSort(bson.M{"createdat": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch reservations")
		return
	}
	defer cursor.Close(ctx)

	var list []models.Reservation
	if err := cursor.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode reservations")
		return
	}
	if len(list) == 0 {
		list = []models.Reservation{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"results": len(list),
		"data":    list,
	})
}
