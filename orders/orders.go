// Package orders manages the persisted order lifecycle for the admin panel:
// listing, marking as sold with per-item stock decrements, and deletion.
package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"catashop/catalog"
	"catashop/db"
	"catashop/models"
	"catashop/mq"
	"catashop/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetOrders lists all orders, newest first.
func GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !db.Configured {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Tienda no configurada")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := db.OrdersCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Println("GetOrders Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "No se pudieron cargar los pedidos")
		return
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		log.Println("GetOrders cursor.All error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "No se pudieron cargar los pedidos")
		return
	}
	if list == nil {
		list = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}

// decrementStock atomically lowers a product's stock by the ordered
// quantity, floored at zero, inside a single Mongo update. Returns the
// per-item outcome for the operator summary.
func decrementStock(ctx context.Context, item models.CartItem) models.StockResult {
	result := models.StockResult{
		ProductID: item.ProductID,
		Name:      item.Name,
		Quantity:  item.Quantity,
	}

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"stock": bson.M{"$max": bson.A{0, bson.M{"$subtract": bson.A{"$stock", item.Quantity}}}},
		}}},
	}

	res, err := db.ProductsCollection.UpdateOne(ctx, bson.M{"productid": item.ProductID}, update)
	switch {
	case err != nil:
		log.Printf("stock decrement for %s (%s) failed: %v", item.Name, item.ProductID, err)
		result.Outcome = "failed"
		result.Error = err.Error()
	case res.MatchedCount == 0:
		log.Printf("stock decrement skipped: product %s (%s) no longer exists", item.Name, item.ProductID)
		result.Outcome = "missing"
	default:
		result.Outcome = "decremented"
	}
	return result
}

// summarize counts outcomes for the response envelope.
func summarize(results []models.StockResult) map[string]int {
	counts := map[string]int{}
	for _, r := range results {
		counts[r.Outcome]++
	}
	return counts
}

// claimFilter matches an order that has not been sold yet, so the sold
// transition happens at most once even under concurrent requests.
func claimFilter(orderID string) bson.M {
	return bson.M{
		"orderid": orderID,
		"status":  bson.M{"$ne": models.OrderStatusSold},
	}
}

// MarkSold transitions an order to "sold". The status flip is a conditional
// update that claims the order exactly once; a repeat request gets 409 and
// no stock is touched twice. Each item's stock is then decremented
// atomically, items whose product vanished are skipped, and the full
// per-item result list goes back to the operator instead of being
// swallowed.
func MarkSold(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !db.Configured {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Tienda no configurada")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	orderID := ps.ByName("orderid")

	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Pedido no encontrado")
		return
	}
	if err != nil {
		log.Println("MarkSold FindOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "No se pudo cargar el pedido")
		return
	}

	claim, err := db.OrdersCollection.UpdateOne(ctx,
		claimFilter(orderID),
		bson.M{"$set": bson.M{"status": models.OrderStatusSold}},
	)
	if err != nil {
		log.Println("MarkSold status update error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "No se pudo actualizar el pedido")
		return
	}
	if claim.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusConflict, "El pedido ya fue marcado como vendido")
		return
	}

	results := make([]models.StockResult, 0, len(order.Items))
	for _, item := range order.Items {
		results = append(results, decrementStock(ctx, item))
	}

	catalog.InvalidateCache()
	mq.Emit(models.OrderEvent{
		Type:       "order-sold",
		OrderID:    order.OrderID,
		ReadableID: order.ReadableID,
		Total:      order.Total,
		Status:     models.OrderStatusSold,
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"status":  models.OrderStatusSold,
		"results": results,
		"summary": summarize(results),
	})
}

// DeleteOrder removes one order permanently.
func DeleteOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !db.Configured {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Tienda no configurada")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("orderid")
	res, err := db.OrdersCollection.DeleteOne(ctx, bson.M{"orderid": orderID})
	if err != nil {
		log.Println("DeleteOrder error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "No se pudo eliminar el pedido")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Pedido no encontrado")
		return
	}

	mq.Emit(models.OrderEvent{Type: "order-deleted", OrderID: orderID})
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func bulkFilter(ids []string) bson.M {
	return bson.M{"orderid": bson.M{"$in": ids}}
}

// DeleteOrders removes the given id set. The caller sends the ids it is
// looking at rather than a blanket wipe, so a stale view cannot delete more
// than it shows. Each removed order is announced on the live feed.
func DeleteOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !db.Configured {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Tienda no configurada")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		OrderIDs []string `json:"orderIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if len(payload.OrderIDs) == 0 {
		http.Error(w, "orderIds is required", http.StatusBadRequest)
		return
	}

	// resolve the ids that actually exist so the live feed gets one
	// event per removed order, not per requested id
	inFilter := bulkFilter(payload.OrderIDs)
	var existing []string
	cursor, err := db.OrdersCollection.Find(ctx, inFilter,
		options.Find().SetProjection(bson.M{"orderid": 1}))
	if err == nil {
		var docs []struct {
			OrderID string `bson:"orderid"`
		}
		if err := cursor.All(ctx, &docs); err == nil {
			for _, d := range docs {
				existing = append(existing, d.OrderID)
			}
		}
		cursor.Close(ctx)
	}

	res, err := db.OrdersCollection.DeleteMany(ctx, inFilter)
	if err != nil {
		log.Println("DeleteOrders error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "No se pudieron eliminar los pedidos")
		return
	}

	for _, id := range existing {
		mq.Emit(models.OrderEvent{Type: "order-deleted", OrderID: id})
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"deleted": res.DeletedCount,
	})
}
