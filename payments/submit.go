package payments

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"solstice/apperr"
	"solstice/db"
	"solstice/identity"
	"solstice/models"
	"solstice/notify"
	"solstice/proofstore"
	"solstice/rdx"
	"solstice/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const storeTimeout = 5 * time.Second

// SubmitPayment records a proof of manual payment against a pending
// reservation. On success the reservation moves to under_review and its
// expiry is unset, which removes it from sweeper eligibility; the proof
// insert and the status flip commit in one transaction.
func SubmitPayment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form: "+err.Error())
		return
	}

	reservationID := r.FormValue("reservationId")
	utr := r.FormValue("utr")
	amount, err := strconv.ParseFloat(r.FormValue("amount"), 64)
	if reservationID == "" || utr == "" || err != nil || amount <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Reservation ID, amount and payment UTR are required.")
		return
	}

	file, header, err := r.FormFile("screenshot")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Payment screenshot is required. Please upload a valid image.")
		return
	}
	defer file.Close()
	if !utils.ValidateImageFileType(w, header) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	user, err := identity.CurrentUser(ctx, utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	// Per-user submit lock. A double-clicked form would otherwise race
	// itself to the screenshot write; the unique indexes stay the
	// authority if Redis is down.
	lockKey := "paylock:" + user.UserID
	if ok, err := rdx.RdxSetNX(lockKey, reservationID, 10*time.Second); err == nil && !ok {
		utils.RespondWithError(w, http.StatusConflict, "A payment submission is already in progress. Please wait.")
		return
	}
	defer rdx.RdxDel(lockKey)

	var reservation models.Reservation
	err = db.ReservationsCollection.FindOne(ctx, bson.M{
		"reservationid": reservationID,
		"userid":        user.UserID,
	}).Decode(&reservation)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Reservation not found or does not belong to you.")
		return
	}
	if reservation.Status != models.StatusPending {
		utils.RespondWithError(w, http.StatusConflict, "A payment has already been recorded for this reservation.")
		return
	}

	// Best-effort early check; the unique index is the authority under races.
	count, err := db.PaymentsCollection.CountDocuments(ctx, bson.M{"utr": utr})
	if err == nil && count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "This payment reference (UTR) has already been used.")
		return
	}

	screenshot, thumb, err := proofstore.Save(file)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	payment := models.Payment{
		PaymentID:     utils.GetUUID(),
		ReservationID: reservation.ReservationID,
		UserID:        user.UserID,
		Name:          user.Name,
		Email:         user.Email,
		Contact:       user.Contact,
		Amount:        amount,
		UTR:           utr,
		Screenshot:    screenshot,
		Thumb:         thumb,
		Status:        models.PaymentPending,
		CreatedAt:     time.Now(),
	}

	session, err := db.Client.StartSession()
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := db.PaymentsCollection.InsertOne(sc, payment); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, apperr.Conflict("Payment already recorded for this reservation, or the UTR is already in use.")
			}
			return nil, err
		}

		res, err := db.ReservationsCollection.UpdateOne(sc,
			bson.M{"reservationid": reservation.ReservationID, "status": models.StatusPending},
			bson.M{
				"$set":   bson.M{"status": models.StatusUnderReview, "updatedat": time.Now()},
				"$unset": bson.M{"expiresat": ""},
			},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			// Raced with the sweeper; the hold is gone.
			return nil, apperr.Conflict("Reservation has expired. Please create a new one.")
		}
		return nil, nil
	})
	if err != nil {
		proofstore.Remove(screenshot, thumb)
		utils.RespondWithAppError(w, err)
		return
	}

	notify.Emit(ctx, notify.Event{
		Recipient:     user.Email,
		Kind:          notify.KindPaymentUnderReview,
		ReservationID: reservation.ReservationID,
		Payload: map[string]any{
			"utr":    utr,
			"amount": amount,
		},
	})

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    payment,
	})
}

// GetMyPayments returns the caller's payment records.
func GetMyPayments(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	cursor, err := db.PaymentsCollection.Find(ctx, bson.M{"userid": utils.GetUserIDFromRequest(r)})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch payments")
		return
	}
	defer cursor.Close(ctx)

	var list []models.Payment
	if err := cursor.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode payments")
		return
	}
	if len(list) == 0 {
		list = []models.Payment{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    list,
	})
}
