package models

import "time"

// Product is a catalog entry. Price is in Chilean pesos, whole units only.
type Product struct {
	ProductID  string    `json:"productId" bson:"productid"`
	Name       string    `json:"name" bson:"name"`
	Category   string    `json:"category" bson:"category"`
	Detail     string    `json:"detail,omitempty" bson:"detail,omitempty"`
	Code       string    `json:"code,omitempty" bson:"code,omitempty"`
	ImageURL   string    `json:"imageUrl,omitempty" bson:"imageurl,omitempty"`
	ThumbURL   string    `json:"thumbUrl,omitempty" bson:"thumburl,omitempty"`
	Price      int64     `json:"price" bson:"price"`
	Stock      int       `json:"stock" bson:"stock"`
	IsFeatured bool      `json:"isFeatured" bson:"is_featured"`
	IsOffer    bool      `json:"isOffer" bson:"is_offer"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updated_at"`
}

// CartItem is a product snapshot plus a quantity. The snapshot is denormalized
// on purpose: an order keeps the name and price as they were at add time.
type CartItem struct {
	ProductID string `json:"productId" bson:"productid"`
	Name      string `json:"name" bson:"name"`
	Category  string `json:"category" bson:"category"`
	ImageURL  string `json:"imageUrl,omitempty" bson:"imageurl,omitempty"`
	Price     int64  `json:"price" bson:"price"`
	Stock     int    `json:"stock" bson:"stock"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

// LineTotal is price times quantity for this line.
func (c CartItem) LineTotal() int64 {
	return c.Price * int64(c.Quantity)
}

// CustomerDetails is captured once per checkout and embedded in the order.
type CustomerDetails struct {
	Name    string `json:"name" bson:"name"`
	RUT     string `json:"rut" bson:"rut"`
	Address string `json:"address" bson:"address"`
	Email   string `json:"email" bson:"email"`
	Phone   string `json:"phone" bson:"phone"`
	Agency  string `json:"agency" bson:"agency"`
}

// Order statuses. Other values are possible in stored data and pass through
// unvalidated.
const (
	OrderStatusNew  = "new"
	OrderStatusSold = "sold"
)

// Order is a persisted cart snapshot plus customer details and a status.
type Order struct {
	OrderID    string           `json:"orderId" bson:"orderid"`
	ReadableID string           `json:"readableId,omitempty" bson:"readable_id,omitempty"`
	Items      []CartItem       `json:"items" bson:"items"`
	Total      int64            `json:"total" bson:"total"`
	Status     string           `json:"status" bson:"status"`
	Customer   *CustomerDetails `json:"customerDetails,omitempty" bson:"customer_details,omitempty"`
	CreatedAt  time.Time        `json:"createdAt" bson:"created_at"`
}

// StockResult reports what happened to one order line during mark-as-sold.
type StockResult struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Outcome   string `json:"outcome"` // "decremented", "missing" or "failed"
	Error     string `json:"error,omitempty"`
}

// User is an admin account for the shop owner.
type User struct {
	UserID    string    `json:"userid" bson:"userid"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"password,omitempty" bson:"password"`
	Role      []string  `json:"role" bson:"role"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	LastLogin time.Time `json:"lastLogin,omitempty" bson:"last_login,omitempty"`
}

// OrderEvent is published on the order events channel and relayed to the
// admin live feed.
type OrderEvent struct {
	Type       string `json:"type"` // "order-created", "order-sold", "order-deleted"
	OrderID    string `json:"orderId"`
	ReadableID string `json:"readableId,omitempty"`
	Total      int64  `json:"total,omitempty"`
	Status     string `json:"status,omitempty"`
}
