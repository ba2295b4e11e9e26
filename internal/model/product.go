package model

import "time"

// Product represents a book in the catalogue. Prices are whole VND.
type Product struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Author      string    `json:"author" db:"author"`
	Description string    `json:"description,omitempty" db:"description"`
	Price       int64     `json:"price" db:"price"`
	Category    string    `json:"category" db:"category"`
	Stock       int       `json:"stock" db:"stock"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// InStock reports whether quantity units can be sold.
func (p *Product) InStock(quantity int) bool {
	return p.Stock >= quantity
}

// ProductFilter narrows catalogue listings. Empty fields match everything.
type ProductFilter struct {
	Category    string
	Query       string // case-insensitive match on name or author
	InStockOnly bool
	Limit       int
	Offset      int
}
