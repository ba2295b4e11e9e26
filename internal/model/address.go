package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Address is a shipping address owned by a user.
type Address struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	FullName    string    `json:"full_name" db:"full_name"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"`
	Details     string    `json:"details" db:"details"`
	Ward        string    `json:"ward" db:"ward"`
	District    string    `json:"district" db:"district"`
	City        string    `json:"city" db:"city"`
	PostalCode  *string   `json:"postal_code,omitempty" db:"postal_code"`
	Country     string    `json:"country" db:"country"`
	IsDefault   bool      `json:"is_default" db:"is_default"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// FullAddress joins the non-empty address parts into a single line.
func (a *Address) FullAddress() string {
	parts := []string{a.Details, a.Ward, a.District, a.City, a.Country}
	if a.PostalCode != nil {
		parts = append(parts, *a.PostalCode)
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
