// Package cart holds the per-session shopping cart: an insertion-ordered
// collection of product snapshots with quantities, plus the HTTP surface
// that exposes it. Carts live in memory only and die with their session.
package cart

import (
	"sync"

	"catashop/models"
)

// Store is one session's cart. Items are keyed by product id and keep
// insertion order. All methods are safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	items map[string]*models.CartItem
	order []string
}

func NewStore() *Store {
	return &Store{items: make(map[string]*models.CartItem)}
}

// AddItem inserts the product with quantity 1, or bumps the quantity by one
// if it is already in the cart. The quantity never exceeds the stock the
// product snapshot reported at fetch time; an out-of-stock snapshot is
// rejected outright. Reports whether the cart changed.
func (s *Store) AddItem(p models.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.items[p.ProductID]; ok {
		if existing.Quantity < existing.Stock {
			existing.Quantity++
			return true
		}
		return false
	}

	if p.Stock < 1 {
		return false
	}

	s.items[p.ProductID] = &models.CartItem{
		ProductID: p.ProductID,
		Name:      p.Name,
		Category:  p.Category,
		ImageURL:  p.ImageURL,
		Price:     p.Price,
		Stock:     p.Stock,
		Quantity:  1,
	}
	s.order = append(s.order, p.ProductID)
	return true
}

// UpdateQuantity sets the quantity for a product already in the cart,
// clamped to [1, stock]. Unknown product ids are ignored.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[productID]
	if !ok {
		return
	}
	if quantity < 1 {
		quantity = 1
	}
	if quantity > item.Stock {
		quantity = item.Stock
	}
	item.Quantity = quantity
}

// RemoveItem deletes the product's line from the cart.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[productID]; !ok {
		return
	}
	delete(s.items, productID)
	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Clear empties the cart. Called after a successful checkout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]*models.CartItem)
	s.order = nil
}

// Items returns the cart lines in insertion order.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CartItem, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.items[id])
	}
	return out
}

// Count is the sum of quantities, shown as the cart badge.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// Total is the sum of price times quantity over current items.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, item := range s.items {
		total += item.LineTotal()
	}
	return total
}
