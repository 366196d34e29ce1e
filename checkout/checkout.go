// Package checkout turns a non-empty cart plus shipping details into an
// order record and a pre-filled WhatsApp deep link. Order persistence is
// best-effort: a failed write never blocks the sale, it only changes the
// reported outcome.
package checkout

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"catashop/cart"
	"catashop/db"
	"catashop/format"
	"catashop/models"
	"catashop/mq"
	"catashop/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

// Persistence outcomes. "message_only" means the WhatsApp handoff went ahead
// without a stored order record, so telemetry can count lost orders.
const (
	OutcomePersisted   = "persisted"
	OutcomeMessageOnly = "message_only"
)

const readableIDLength = 6

// Handlers wires the checkout flow: the cart sessions to read from and the
// vendor phone the wa.me link points at.
type Handlers struct {
	Carts       *cart.Manager
	VendorPhone string
}

func NewHandlers(carts *cart.Manager, vendorPhone string) *Handlers {
	return &Handlers{Carts: carts, VendorPhone: vendorPhone}
}

type checkoutResponse struct {
	Order       models.Order `json:"order"`
	Outcome     string       `json:"outcome"`
	Message     string       `json:"message"`
	WhatsAppURL string       `json:"whatsappUrl"`
}

// GetAgencies lists the shipping carriers the form accepts.
func (h *Handlers) GetAgencies(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"agencies": Agencies})
}

// Submit handles the full checkout: validate the shipping form, snapshot the
// cart into an order, attempt the write, build the WhatsApp link, clear the
// cart.
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID, store := h.Carts.Get(r.Header.Get(cart.SessionHeader))
	w.Header().Set(cart.SessionHeader, sessionID)

	items := store.Items()
	if len(items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "El carrito está vacío")
		return
	}

	var form CustomerForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		log.Println("checkout decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if fieldErrs := form.Validate(); len(fieldErrs) > 0 {
		utils.RespondWithJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "Datos de envío incompletos",
			"fields": fieldErrs,
		})
		return
	}

	order := models.Order{
		OrderID:    uuid.New().String(),
		ReadableID: utils.GenerateReadableID(readableIDLength),
		Items:      items,
		Total:      store.Total(),
		Status:     models.OrderStatusNew,
		Customer:   form.Details(),
		CreatedAt:  time.Now(),
	}

	outcome := persistOrder(ctx, order)

	message := format.BuildWhatsAppMessage(order.Items, order.Total, order.Customer, order.ReadableID)
	link := format.WhatsAppLink(h.VendorPhone, message)

	store.Clear()

	utils.RespondWithJSON(w, http.StatusCreated, checkoutResponse{
		Order:       order,
		Outcome:     outcome,
		Message:     message,
		WhatsAppURL: link,
	})
}

// persistOrder writes the order and reports whether it stuck. Failures are
// logged, never surfaced: the sale proceeds to WhatsApp regardless.
func persistOrder(ctx context.Context, order models.Order) string {
	if !db.Configured {
		log.Printf("order %s (#%s) not persisted: database not configured", order.OrderID, order.ReadableID)
		return OutcomeMessageOnly
	}

	if _, err := db.OrdersCollection.InsertOne(ctx, order); err != nil {
		log.Printf("order %s (#%s) insert failed: %v", order.OrderID, order.ReadableID, err)
		return OutcomeMessageOnly
	}

	mq.Emit(models.OrderEvent{
		Type:       "order-created",
		OrderID:    order.OrderID,
		ReadableID: order.ReadableID,
		Total:      order.Total,
		Status:     order.Status,
	})
	return OutcomePersisted
}
