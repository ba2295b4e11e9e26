package model

import "time"

// CartItem is one product line in a user's cart, joined with the
// product's current name, price and stock.
type CartItem struct {
	UserID      int64     `json:"-" db:"user_id"`
	ProductID   string    `json:"product_id" db:"product_id"`
	ProductName string    `json:"product_name" db:"name"`
	Price       int64     `json:"price" db:"price"`
	Stock       int       `json:"stock" db:"stock"`
	Quantity    int       `json:"quantity" db:"quantity"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// LineTotal is quantity times the current unit price.
func (c CartItem) LineTotal() int64 {
	return int64(c.Quantity) * c.Price
}

// Cart is the response payload for a user's cart.
type Cart struct {
	Items    []CartItem `json:"items"`
	Subtotal int64      `json:"subtotal"`
}

// Subtotal sums the line totals of items.
func Subtotal(items []CartItem) int64 {
	var total int64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}

// CartItemRequest is the payload for adding or updating a cart line.
type CartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
