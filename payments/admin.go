package payments

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"solstice/apperr"
	"solstice/db"
	"solstice/identity"
	"solstice/models"
	"solstice/notify"
	"solstice/passes"
	"solstice/reservations"
	"solstice/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VerifyPayment confirms a pending proof. The proof flip, the reservation
// confirmation and the pass minting commit in one transaction, so a
// reviewer crash can never leave a confirmed reservation without passes.
func VerifyPayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	paymentID := ps.ByName("paymentid")

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	session, err := db.Client.StartSession()
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	defer session.EndSession(ctx)

	type verifyResult struct {
		payment     models.Payment
		reservation models.Reservation
		minted      []models.Pass
	}

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		now := time.Now()

		var payment models.Payment
		err := db.PaymentsCollection.FindOneAndUpdate(sc,
			bson.M{"paymentid": paymentID, "status": models.PaymentPending},
			bson.M{"$set": bson.M{"status": models.PaymentVerified, "verifiedat": now}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&payment)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, reviewConflict(sc, paymentID)
			}
			return nil, err
		}

		var reservation models.Reservation
		err = db.ReservationsCollection.FindOneAndUpdate(sc,
			bson.M{"reservationid": payment.ReservationID, "status": models.StatusUnderReview},
			bson.M{"$set": bson.M{"status": models.StatusConfirmed, "updatedat": now}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&reservation)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, apperr.Conflict("Reservation is not under review.")
			}
			return nil, err
		}

		var minted []models.Pass
		if reservation.Kind == models.KindMerch {
			user, err := identity.CurrentUser(sc, reservation.UserID)
			if err != nil {
				return nil, err
			}
			minted, err = passes.MintForReservation(sc, &reservation, user)
			if err != nil {
				return nil, err
			}
		}

		return &verifyResult{payment: payment, reservation: reservation, minted: minted}, nil
	})
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	vr := result.(*verifyResult)

	notify.Emit(ctx, notify.Event{
		Recipient:     vr.payment.Email,
		Kind:          notify.KindPaymentVerified,
		ReservationID: vr.reservation.ReservationID,
	})
	if len(vr.minted) > 0 {
		notify.Emit(ctx, notify.Event{
			Recipient:     vr.payment.Email,
			Kind:          notify.KindPassesIssued,
			ReservationID: vr.reservation.ReservationID,
			Payload:       map[string]any{"count": len(vr.minted)},
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Payment verified",
		"data": map[string]any{
			"payment":      vr.payment,
			"reservation":  vr.reservation,
			"passesIssued": len(vr.minted),
		},
	})
}

// RejectPayment declines a pending proof and releases the reservation's
// hold back to the ledger, all in one transaction.
func RejectPayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	paymentID := ps.ByName("paymentid")

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	session, err := db.Client.StartSession()
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		now := time.Now()

		var payment models.Payment
		err := db.PaymentsCollection.FindOneAndUpdate(sc,
			bson.M{"paymentid": paymentID, "status": models.PaymentPending},
			bson.M{"$set": bson.M{"status": models.PaymentRejected, "verifiedat": now}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&payment)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, reviewConflict(sc, paymentID)
			}
			return nil, err
		}

		var reservation models.Reservation
		err = db.ReservationsCollection.FindOne(sc,
			bson.M{"reservationid": payment.ReservationID, "status": models.StatusUnderReview},
		).Decode(&reservation)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, apperr.Conflict("Reservation is not under review.")
			}
			return nil, err
		}

		// Give the units back before flipping the status so the guard
		// above stays the single gate against double restoration.
		if err := reservations.RestoreCapacity(sc, &reservation); err != nil {
			return nil, err
		}

		_, err = db.ReservationsCollection.UpdateOne(sc,
			bson.M{"reservationid": reservation.ReservationID},
			bson.M{"$set": bson.M{"status": models.StatusRejected, "updatedat": now}},
		)
		if err != nil {
			return nil, err
		}

		return &payment, nil
	})
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	payment := result.(*models.Payment)

	notify.Emit(ctx, notify.Event{
		Recipient:     payment.Email,
		Kind:          notify.KindPaymentRejected,
		ReservationID: payment.ReservationID,
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Payment rejected and capacity restored",
		"data":    payment,
	})
}

// reviewConflict explains why a review action found no pending proof.
func reviewConflict(ctx context.Context, paymentID string) error {
	var existing models.Payment
	if err := db.PaymentsCollection.FindOne(ctx, bson.M{"paymentid": paymentID}).Decode(&existing); err != nil {
		return apperr.NotFound("Payment not found.")
	}
	return apperr.Conflict("Payment has already been %s.", existing.Status)
}

// ListAllPayments returns payment proofs for review, newest first,
// optionally filtered by status.
func ListAllPayments(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	cursor, err := db.PaymentsCollection.Find(ctx, filter,
		options.Find().
			SetSort(bson.M{"createdat": -1}).
			SetSkip(int64((page-1)*limit)).
			SetLimit(int64(limit)))
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

	total, err := db.PaymentsCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count payments")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"page":    page,
		"limit":   limit,
		"total":   total,
		"data":    list,
	})
}

// GetAdminStats summarizes proof counts by review status.
func GetAdminStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	var stats models.PaymentStats
	var err error

	if stats.Total, err = db.PaymentsCollection.CountDocuments(ctx, bson.M{}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	if stats.Pending, err = db.PaymentsCollection.CountDocuments(ctx, bson.M{"status": models.PaymentPending}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	if stats.Verified, err = db.PaymentsCollection.CountDocuments(ctx, bson.M{"status": models.PaymentVerified}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	if stats.Rejected, err = db.PaymentsCollection.CountDocuments(ctx, bson.M{"status": models.PaymentRejected}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    stats,
	})
}
