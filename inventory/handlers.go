package inventory

import (
	"context"
	"encoding/json"
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

type availabilityRequest struct {
	Date   string `json:"date"`
	Mens   *int   `json:"mensAvailability"`
	Womens *int   `json:"womensAvailability"`
}

// CreateAvailability opens a new date for accommodation. Admin only.
func CreateAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Date == "" || req.Mens == nil || req.Womens == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Date, mensAvailability, and womensAvailability are required.")
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Date must be in YYYY-MM-DD format.")
		return
	}
	if *req.Mens < 0 || *req.Womens < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Availability cannot be negative.")
		return
	}

	avail := models.Availability{
		Date:      req.Date,
		Mens:      *req.Mens,
		Womens:    *req.Womens,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.AvailabilityCollection.InsertOne(ctx, avail); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "Availability for this date already exists.")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create availability")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Accommodation availability created successfully",
		"data":    avail,
	})
}

// ModifyAvailability re-levels the counters for an existing date. Admin only.
func ModifyAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Date == "" || req.Mens == nil || req.Womens == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Date, mensAvailability, and womensAvailability are required.")
		return
	}
	if *req.Mens < 0 || *req.Womens < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Availability cannot be negative.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.AvailabilityCollection.UpdateOne(ctx,
		bson.M{"date": req.Date},
		bson.M{"$set": bson.M{
			"mens":      *req.Mens,
			"womens":    *req.Womens,
			"updatedat": time.Now(),
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to modify availability")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Accommodation availability not found for this date.")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Accommodation availability modified successfully",
	})
}

// GetAvailability lists all dates with their remaining counts, soonest first.
func GetAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.AvailabilityCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"date": 1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch availability")
		return
	}
	defer cursor.Close(ctx)

	var dates []models.Availability
	if err := cursor.All(ctx, &dates); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode availability")
		return
	}
	if len(dates) == 0 {
		dates = []models.Availability{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    dates,
	})
}
