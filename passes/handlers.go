package passes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"solstice/db"
	"solstice/models"
	"solstice/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const storeTimeout = 5 * time.Second

// RedeemPass marks a scanned pass as used. The used:false guard in the
// update filter makes first-scan-wins atomic; a second scan gets a
// conflict with the original redemption time.
func RedeemPass(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Payload string `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Payload == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "QR payload is required")
		return
	}

	passID, _, _, err := VerifyPassPayload(body.Payload)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid QR code")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	now := time.Now()
	var pass models.Pass
	err = db.PassesCollection.FindOneAndUpdate(ctx,
		bson.M{"passid": passID, "used": false},
		bson.M{"$set": bson.M{"used": true, "usedat": now}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&pass)

	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to redeem pass")
			return
		}

		// Either unknown or already used; look it up to say which.
		var existing models.Pass
		lookupErr := db.PassesCollection.FindOne(ctx, bson.M{"passid": passID}).Decode(&existing)
		if lookupErr != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Invalid QR code")
			return
		}
		utils.RespondWithJSON(w, http.StatusConflict, map[string]any{
			"success": false,
			"message": "QR code has already been used",
			"usedAt":  existing.UsedAt,
		})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Pass verified successfully",
		"data": map[string]any{
			"holderName":  pass.HolderName,
			"holderEmail": pass.HolderEmail,
			"passType":    pass.PassType,
			"passNumber":  pass.PassNumber,
			"verifiedAt":  pass.UsedAt,
		},
	})
}

// GetMyPasses lists the caller's admission passes.
func GetMyPasses(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	cursor, err := db.PassesCollection.Find(ctx,
		bson.M{"userid": userID},
		options.Find().SetSort(bson.M{"createdat": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch passes")
		return
	}
	defer cursor.Close(ctx)

	var list []models.Pass
	if err := cursor.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode passes")
		return
	}
	if len(list) == 0 {
		list = []models.Pass{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"results": len(list),
		"data":    list,
	})
}
