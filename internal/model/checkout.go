package model

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Address options accepted at checkout.
const (
	AddressOptionExisting = "existing"
	AddressOptionNew      = "new"
)

var phoneNumberPattern = regexp.MustCompile(`^(?:\+84|0)\d{9,10}$`)

// CheckoutRequest is the checkout form payload.
type CheckoutRequest struct {
	AddressOption string  `json:"address_option"`
	AddressID     string  `json:"address_id,omitempty"`
	FullName      string  `json:"full_name,omitempty"`
	PhoneNumber   string  `json:"phone_number,omitempty"`
	Details       string  `json:"details,omitempty"`
	Ward          string  `json:"ward,omitempty"`
	District      string  `json:"district,omitempty"`
	City          string  `json:"city,omitempty"`
	PostalCode    *string `json:"postal_code,omitempty"`
	Country       string  `json:"country,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// Validate checks the request the same way for both address options and
// returns a *ValidationError listing every failing field.
func (r *CheckoutRequest) Validate() error {
	v := &ValidationError{}

	switch r.AddressOption {
	case "":
		v.Add("address_option", "Please choose an address option.")
	case AddressOptionExisting:
		if strings.TrimSpace(r.AddressID) == "" {
			v.Add("address_id", "Please choose a saved address.")
		} else if _, err := uuid.Parse(r.AddressID); err != nil {
			v.Add("address_id", "The selected address is invalid.")
		}
	case AddressOptionNew:
		requireString(v, "full_name", r.FullName, 255, "Please enter your full name.")
		requireString(v, "details", r.Details, 255, "Please enter the street address.")
		requireString(v, "ward", r.Ward, 255, "Please enter the ward.")
		requireString(v, "district", r.District, 255, "Please enter the district.")
		requireString(v, "city", r.City, 255, "Please enter the city.")
		requireString(v, "country", r.Country, 255, "Please enter the country.")

		if strings.TrimSpace(r.PhoneNumber) == "" {
			v.Add("phone_number", "Please enter a phone number.")
		} else if !phoneNumberPattern.MatchString(r.PhoneNumber) {
			v.Add("phone_number", "Phone number must look like +84xxxxxxxxx or 0xxxxxxxxx.")
		}

		if r.PostalCode != nil && utf8.RuneCountInString(*r.PostalCode) > 20 {
			v.Add("postal_code", "Postal code may not be longer than 20 characters.")
		}
	default:
		v.Add("address_option", "Address option must be existing or new.")
	}

	return v.OrNil()
}

// ParsedAddressID returns the existing address ID. Call after Validate.
func (r *CheckoutRequest) ParsedAddressID() uuid.UUID {
	id, _ := uuid.Parse(r.AddressID)
	return id
}

// NewAddress builds the address to create for the "new" option.
func (r *CheckoutRequest) NewAddress(userID int64) *Address {
	return &Address{
		ID:          uuid.New(),
		UserID:      userID,
		FullName:    strings.TrimSpace(r.FullName),
		PhoneNumber: strings.TrimSpace(r.PhoneNumber),
		Details:     strings.TrimSpace(r.Details),
		Ward:        strings.TrimSpace(r.Ward),
		District:    strings.TrimSpace(r.District),
		City:        strings.TrimSpace(r.City),
		PostalCode:  r.PostalCode,
		Country:     strings.TrimSpace(r.Country),
		IsDefault:   true,
	}
}

func requireString(v *ValidationError, field, value string, max int, message string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, message)
		return
	}
	if utf8.RuneCountInString(value) > max {
		v.Add(field, "Value may not be longer than "+strconv.Itoa(max)+" characters.")
	}
}

// ShippingQuoteRequest asks for the shipping fee of an order amount to
// either a saved address or an ad-hoc destination.
type ShippingQuoteRequest struct {
	AddressID   *string              `json:"address_id,omitempty"`
	Address     *ShippingDestination `json:"address,omitempty"`
	OrderAmount float64              `json:"order_amount"`
}

// ShippingDestination is the subset of an address that affects shipping.
type ShippingDestination struct {
	Country *string `json:"country,omitempty"`
	City    string  `json:"city"`
}

// ShippingQuote is the response payload of a shipping calculation.
type ShippingQuote struct {
	Shipping int64 `json:"shipping"`
}
