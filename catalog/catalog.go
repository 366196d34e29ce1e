// Package catalog serves the public product listings: full collection,
// featured picks and offers, newest first, with an optional search term
// matched against name, category and code.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"time"

	"catashop/db"
	"catashop/models"
	"catashop/rdx"
	"catashop/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const listCacheTTL = 5 * time.Minute

// Modes for the product listing.
const (
	ModeAll      = "all"
	ModeFeatured = "featured"
	ModeOffers   = "offers"
)

// buildFilter translates a listing mode and search term into a Mongo filter.
func buildFilter(mode, q string) bson.M {
	filter := bson.M{}
	switch mode {
	case ModeFeatured:
		filter["is_featured"] = true
	case ModeOffers:
		filter["is_offer"] = true
	}

	if q != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"category": re},
			bson.M{"code": re},
		}
	}
	return filter
}

func cacheKey(mode string) string {
	return fmt.Sprintf("catalog:%s", mode)
}

// InvalidateCache drops the cached listings. Called after any product write.
func InvalidateCache() {
	for _, mode := range []string{ModeAll, ModeFeatured, ModeOffers} {
		if _, err := rdx.RdxDel(cacheKey(mode)); err != nil {
			log.Printf("catalog cache invalidation failed for %s: %v", mode, err)
		}
	}
}

// GetProducts lists products for ?mode=all|featured|offers (default all)
// with an optional ?q= search term. Unsearched listings are served from the
// Redis cache when possible.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !db.Configured {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Tienda no configurada")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = ModeAll
	}
	q := r.URL.Query().Get("q")

	if q == "" {
		if cached, err := rdx.RdxGet(cacheKey(mode)); err == nil && cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := db.ProductsCollection.Find(ctx, buildFilter(mode, q), opts)
	if err != nil {
		log.Println("catalog Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "No se pudieron cargar los productos")
		return
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		log.Println("catalog cursor.All error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "No se pudieron cargar los productos")
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	if q == "" {
		if data, err := json.Marshal(products); err == nil {
			if err := rdx.SetWithExpiry(cacheKey(mode), string(data), listCacheTTL); err != nil {
				log.Println("catalog cache write failed:", err)
			}
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, products)
}

// GetProduct returns a single product by id.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !db.Configured {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Tienda no configurada")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": ps.ByName("productid")}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Producto no encontrado")
		return
	}
	if err != nil {
		log.Println("catalog FindOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "No se pudo cargar el producto")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}
