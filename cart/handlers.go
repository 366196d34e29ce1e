package cart

import (
	"encoding/json"
	"log"
	"net/http"

	"catashop/models"
	"catashop/utils"

	"github.com/julienschmidt/httprouter"
)

// SessionHeader carries the cart session id. The server mints one on first
// contact and echoes it on every cart response.
const SessionHeader = "X-Cart-Session"

// Handlers wires the cart HTTP surface around a session manager.
type Handlers struct {
	Manager *Manager
}

func NewHandlers(m *Manager) *Handlers {
	return &Handlers{Manager: m}
}

type cartView struct {
	Items []models.CartItem `json:"items"`
	Count int               `json:"count"`
	Total int64             `json:"total"`
}

func (h *Handlers) resolve(w http.ResponseWriter, r *http.Request) *Store {
	id, store := h.Manager.Get(r.Header.Get(SessionHeader))
	w.Header().Set(SessionHeader, id)
	return store
}

func view(s *Store) cartView {
	return cartView{Items: s.Items(), Count: s.Count(), Total: s.Total()}
}

// GetCart returns the current cart contents and derived totals.
func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	store := h.resolve(w, r)
	utils.RespondWithJSON(w, http.StatusOK, view(store))
}

// AddItem adds a product snapshot to the cart. Re-adding the same product
// bumps its quantity instead of duplicating the line; a product without
// stock is refused with 409.
func (h *Handlers) AddItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		log.Println("cart AddItem decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if product.ProductID == "" || product.Name == "" || product.Price < 0 {
		http.Error(w, "Missing or invalid product fields", http.StatusBadRequest)
		return
	}

	store := h.resolve(w, r)
	if !store.AddItem(product) {
		utils.RespondWithError(w, http.StatusConflict, "Producto sin stock disponible")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, view(store))
}

// UpdateQuantity sets the quantity of a line; the store clamps to [1, stock].
func (h *Handlers) UpdateQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("cart UpdateQuantity decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	store := h.resolve(w, r)
	store.UpdateQuantity(ps.ByName("productid"), payload.Quantity)
	utils.RespondWithJSON(w, http.StatusOK, view(store))
}

// RemoveItem drops a line from the cart.
func (h *Handlers) RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	store := h.resolve(w, r)
	store.RemoveItem(ps.ByName("productid"))
	utils.RespondWithJSON(w, http.StatusOK, view(store))
}

// Clear empties the cart.
func (h *Handlers) Clear(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	store := h.resolve(w, r)
	store.Clear()
	utils.RespondWithJSON(w, http.StatusOK, view(store))
}
