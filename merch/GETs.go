package merch

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"solstice/db"
	"solstice/models"
	"solstice/rdx"
	"solstice/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const catalogCacheKey = "merch:catalog"

// GetMerchList returns the full catalog, served from the Redis cache when
// warm. Stock values may lag live decrements by the cache TTL; the ledger
// is the authority at reservation time.
func GetMerchList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached, err := rdx.RdxGet(catalogCacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(cached))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	cursor, err := db.MerchCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"createdat": 1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch merch catalog")
		return
	}
	defer cursor.Close(ctx)

	var list []models.Merch
	if err := cursor.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode merch catalog")
		return
	}
	if len(list) == 0 {
		list = []models.Merch{}
	}

	body := map[string]any{
		"success": true,
		"results": len(list),
		"data":    list,
	}
	if raw, err := json.Marshal(body); err == nil {
		rdx.RdxSetWithTTL(catalogCacheKey, string(raw), 30*time.Second)
	}

	utils.RespondWithJSON(w, http.StatusOK, body)
}

// GetMerch returns a single catalog item.
func GetMerch(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	var item models.Merch
	err := db.MerchCollection.FindOne(ctx, bson.M{"merchid": ps.ByName("merchid")}).Decode(&item)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Merch item not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    item,
	})
}

func invalidateCatalogCache() {
	rdx.RdxDel(catalogCacheKey)
}
