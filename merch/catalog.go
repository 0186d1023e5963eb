package merch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"solstice/db"
	"solstice/models"
	"solstice/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const storeTimeout = 5 * time.Second

var merchUploadPath = "./static/merchpic"

func init() {
	if dir := os.Getenv("MERCH_DIR"); dir != "" {
		merchUploadPath = dir
	}
}

var validTypes = map[string]bool{
	models.MerchTypeWearable:    true,
	models.MerchTypeNonWearable: true,
	models.MerchTypeEventPass1:  true,
	models.MerchTypeEventPass2:  true,
}

// CreateMerch adds a catalog item. Wearables must declare at least one
// valid size; other types must not declare any.
func CreateMerch(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form: "+err.Error())
		return
	}

	item := models.Merch{
		MerchID:     utils.GenerateID(14),
		Type:        r.FormValue("type"),
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	var err error
	item.Price, err = strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || item.Price <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid price value. Must be a positive number.")
		return
	}
	item.Stock, err = strconv.Atoi(r.FormValue("stock"))
	if err != nil || item.Stock < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid stock value. Must be a non-negative integer.")
		return
	}
	if sizes := r.FormValue("sizes"); sizes != "" {
		for _, s := range strings.Split(sizes, ",") {
			item.Sizes = append(item.Sizes, strings.ToUpper(strings.TrimSpace(s)))
		}
	}

	if msg := validate(&item); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		if !utils.ValidateImageFileType(w, header) {
			return
		}
		if err := saveImage(item.MerchID, file); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error saving image: "+err.Error())
			return
		}
		item.Photo = item.MerchID + ".jpg"
	} else if err != http.ErrMissingFile {
		utils.RespondWithError(w, http.StatusBadRequest, "Error retrieving image file: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	if _, err := db.MerchCollection.InsertOne(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "A merch item with this ID already exists")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create merch item")
		return
	}

	invalidateCatalogCache()

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Merch item created successfully",
		"data":    item,
	})
}

// EditMerch updates name, description, price, stock or sizes of an item.
func EditMerch(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	merchID := ps.ByName("merchid")

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	var existing models.Merch
	if err := db.MerchCollection.FindOne(ctx, bson.M{"merchid": merchID}).Decode(&existing); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Merch item not found")
		return
	}

	var patch struct {
		Name        *string   `json:"name"`
		Description *string   `json:"description"`
		Price       *float64  `json:"price"`
		Stock       *int      `json:"stock"`
		Sizes       *[]string `json:"sizes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input data")
		return
	}

	updateFields := bson.M{"updatedat": time.Now()}
	if patch.Name != nil {
		existing.Name = *patch.Name
		updateFields["name"] = existing.Name
	}
	if patch.Description != nil {
		existing.Description = *patch.Description
		updateFields["description"] = existing.Description
	}
	if patch.Price != nil {
		existing.Price = *patch.Price
		updateFields["price"] = existing.Price
	}
	if patch.Stock != nil {
		existing.Stock = *patch.Stock
		updateFields["stock"] = existing.Stock
	}
	if patch.Sizes != nil {
		existing.Sizes = *patch.Sizes
		updateFields["sizes"] = existing.Sizes
	}

	if msg := validate(&existing); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	_, err := db.MerchCollection.UpdateOne(ctx,
		bson.M{"merchid": merchID},
		bson.M{"$set": updateFields})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update merch item")
		return
	}

	invalidateCatalogCache()

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Merch item updated successfully",
		"data":    existing,
	})
}

// DeleteMerch removes an item from the catalog. Existing reservations keep
// their line-item snapshots.
func DeleteMerch(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	merchID := ps.ByName("merchid")

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	res, err := db.MerchCollection.DeleteOne(ctx, bson.M{"merchid": merchID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete merch item")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Merch item not found")
		return
	}

	invalidateCatalogCache()

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Merch item deleted successfully",
	})
}

func validate(m *models.Merch) string {
	if len(m.Name) == 0 || len(m.Name) > 100 {
		return "Name must be between 1 and 100 characters."
	}
	if !validTypes[m.Type] {
		return "Invalid merch type."
	}
	if m.Price <= 0 {
		return "Price must be a positive number."
	}
	if m.Stock < 0 {
		return "Stock must be a non-negative integer."
	}
	if m.Type == models.MerchTypeWearable {
		if len(m.Sizes) == 0 {
			return "Wearable items must declare at least one size."
		}
		for _, s := range m.Sizes {
			if !validSize(s) {
				return "Invalid size: " + s
			}
		}
	} else if len(m.Sizes) > 0 {
		return "Only wearable items can declare sizes."
	}
	return ""
}

func validSize(size string) bool {
	for _, s := range models.WearableSizes {
		if s == size {
			return true
		}
	}
	return false
}

func saveImage(merchID string, file io.Reader) error {
	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(merchUploadPath); err != nil {
		return err
	}
	if err := imaging.Save(img, merchUploadPath+"/"+merchID+".jpg"); err != nil {
		return err
	}
	thumb := imaging.Resize(img, 150, 0, imaging.Lanczos)
	return imaging.Save(thumb, merchUploadPath+"/"+merchID+"_thumb.jpg")
}
