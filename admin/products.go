// Package admin holds the shop owner's product management: create, update
// and delete, with optional image upload. Every endpoint sits behind the
// auth middleware.
package admin

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"catashop/catalog"
	"catashop/db"
	"catashop/filemgr"
	"catashop/models"
	"catashop/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// productForm reads the multipart fields shared by create and update.
func productForm(r *http.Request) (models.Product, error) {
	var p models.Product

	p.Name = strings.TrimSpace(r.FormValue("name"))
	p.Category = strings.TrimSpace(r.FormValue("category"))
	p.Detail = strings.TrimSpace(r.FormValue("detail"))
	p.Code = strings.TrimSpace(r.FormValue("code"))

	price, err := strconv.ParseInt(r.FormValue("price"), 10, 64)
	if err != nil || price < 0 {
		return p, errInvalid("price")
	}
	p.Price = price

	stock, err := strconv.Atoi(r.FormValue("stock"))
	if err != nil || stock < 0 {
		return p, errInvalid("stock")
	}
	p.Stock = stock

	p.IsFeatured = parseBool(r.FormValue("is_featured"))
	p.IsOffer = parseBool(r.FormValue("is_offer"))

	if p.Name == "" || len(p.Name) > 100 {
		return p, errInvalid("name")
	}
	if p.Category == "" {
		return p, errInvalid("category")
	}
	return p, nil
}

type fieldError string

func (e fieldError) Error() string { return "invalid or missing field: " + string(e) }

func errInvalid(field string) error { return fieldError(field) }

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "true", "1", "on", "yes":
		return true
	}
	return false
}

// attachImage stores an uploaded image, if any, and fills the URL fields.
func attachImage(r *http.Request, p *models.Product) error {
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return nil
	}
	if err != nil {
		return err
	}

	imageURL, thumbURL, err := filemgr.SaveProductImage(file, header)
	if err != nil {
		return err
	}
	p.ImageURL = imageURL
	p.ThumbURL = thumbURL
	return nil
}

// CreateProduct adds a catalog entry from a multipart form.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !db.Configured {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Tienda no configurada")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Unable to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	product, err := productForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	product.ProductID = "p" + utils.GenerateRandomString(13)
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	if err := attachImage(r, &product); err != nil {
		log.Println("product image upload failed:", err)
		http.Error(w, "No se pudo subir la imagen", http.StatusBadRequest)
		return
	}

	if _, err := db.ProductsCollection.InsertOne(ctx, product); err != nil {
		log.Println("CreateProduct InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "No se pudo guardar el producto")
		return
	}

	catalog.InvalidateCache()
	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"ok":   true,
		"data": product,
	})
}

// UpdateProduct edits an existing catalog entry; fields are replaced from
// the form, the image only when a new file is attached.
func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !db.Configured {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Tienda no configurada")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Unable to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	product, err := productForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	update := bson.M{
		"name":        product.Name,
		"category":    product.Category,
		"detail":      product.Detail,
		"code":        product.Code,
		"price":       product.Price,
		"stock":       product.Stock,
		"is_featured": product.IsFeatured,
		"is_offer":    product.IsOffer,
		"updated_at":  time.Now(),
	}

	if err := attachImage(r, &product); err != nil {
		log.Println("product image upload failed:", err)
		http.Error(w, "No se pudo subir la imagen", http.StatusBadRequest)
		return
	}
	if product.ImageURL != "" {
		update["imageurl"] = product.ImageURL
		update["thumburl"] = product.ThumbURL
	}

	res, err := db.ProductsCollection.UpdateOne(ctx, bson.M{"productid": productID}, bson.M{"$set": update})
	if err != nil {
		log.Println("UpdateProduct UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "No se pudo guardar el producto")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Producto no encontrado")
		return
	}

	catalog.InvalidateCache()
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// DeleteProduct removes a catalog entry. Orders keep their snapshots, so a
// deleted product leaves history intact.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !db.Configured {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Tienda no configurada")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.ProductsCollection.DeleteOne(ctx, bson.M{"productid": ps.ByName("productid")})
	if err != nil {
		log.Println("DeleteProduct error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "No se pudo eliminar el producto")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Producto no encontrado")
		return
	}

	catalog.InvalidateCache()
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true})
}
