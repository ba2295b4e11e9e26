package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

const maxReviewContent = 1000

// Review is a customer's rating of a book.
type Review struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	UserName  string    `json:"user_name,omitempty" db:"user_name"`
	ProductID string    `json:"product_id" db:"product_id"`
	Rating    int       `json:"rating" db:"rating"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateReviewRequest is the payload for reviewing a product.
type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

// Validate checks the rating range and content length.
func (r *CreateReviewRequest) Validate() error {
	v := &ValidationError{}
	if r.Rating < 1 || r.Rating > 5 {
		v.Add("rating", "The rating must be between 1 and 5.")
	}
	if strings.TrimSpace(r.Content) == "" {
		v.Add("content", "The content field is required.")
	} else if utf8.RuneCountInString(r.Content) > maxReviewContent {
		v.Add("content", "The content may not be longer than 1000 characters.")
	}
	return v.OrNil()
}
