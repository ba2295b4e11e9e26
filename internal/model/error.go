package model

import (
	"fmt"
	"sort"
	"strings"
)

// Response is the JSON envelope returned by every API endpoint.
type Response struct {
	Success bool                `json:"success"`
	Data    interface{}         `json:"data,omitempty"`
	Message string              `json:"message,omitempty"`
	Error   string              `json:"error,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON             = "INVALID_JSON"
	ErrCodeValidationFailed        = "VALIDATION_FAILED"
	ErrCodeProductNotFound         = "PRODUCT_NOT_FOUND"
	ErrCodeInvalidQuantity         = "INVALID_QUANTITY"
	ErrCodeCartEmpty               = "CART_EMPTY"
	ErrCodeCartItemNotFound        = "CART_ITEM_NOT_FOUND"
	ErrCodeAddressNotFound         = "ADDRESS_NOT_FOUND"
	ErrCodeInsufficientStock       = "INSUFFICIENT_STOCK"
	ErrCodeOrderNotFound           = "ORDER_NOT_FOUND"
	ErrCodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	ErrCodeOrderNotCancellable     = "ORDER_NOT_CANCELLABLE"
	ErrCodeUserNotFound            = "USER_NOT_FOUND"
	ErrCodeUserHasOrders           = "USER_HAS_ORDERS"
	ErrCodeEmailTaken              = "EMAIL_TAKEN"
	ErrCodeSelfModification        = "SELF_MODIFICATION"
	ErrCodeUnauthorised            = "UNAUTHORIZED"
	ErrCodeForbidden               = "FORBIDDEN"
	ErrCodeInternalError           = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so that
// errors.Is matches constructed instances against the sentinels below.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound         = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrInvalidQuantity         = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be at least 1")
	ErrCartEmpty               = NewDomainError(ErrCodeCartEmpty, "Your cart is empty")
	ErrCartItemNotFound        = NewDomainError(ErrCodeCartItemNotFound, "Cart item not found")
	ErrAddressNotFound         = NewDomainError(ErrCodeAddressNotFound, "Address not found")
	ErrInsufficientStock       = NewDomainError(ErrCodeInsufficientStock, "Insufficient stock")
	ErrOrderNotFound           = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrInvalidStatusTransition = NewDomainError(ErrCodeInvalidStatusTransition, "Order status transition is not allowed")
	ErrOrderNotCancellable     = NewDomainError(ErrCodeOrderNotCancellable, "Order can no longer be cancelled")
	ErrUserNotFound            = NewDomainError(ErrCodeUserNotFound, "User not found")
	ErrUserHasOrders           = NewDomainError(ErrCodeUserHasOrders, "User has orders and cannot be deleted")
	ErrEmailTaken              = NewDomainError(ErrCodeEmailTaken, "Email has already been taken")
	ErrSelfModification        = NewDomainError(ErrCodeSelfModification, "You cannot modify your own account")
)

// NewInsufficientStockError names the product that could not be fulfilled.
func NewInsufficientStockError(productName string) *DomainError {
	return NewDomainError(ErrCodeInsufficientStock, fmt.Sprintf("Product %s does not have enough stock", productName))
}

// NewTransitionError describes a rejected status change.
func NewTransitionError(from, to OrderStatus) *DomainError {
	return NewDomainError(ErrCodeInvalidStatusTransition,
		fmt.Sprintf("Order status cannot change from %s to %s", from, to))
}

// ValidationError carries per-field validation messages.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a message for field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// OrNil returns nil when no field failed, so callers can `return v.OrNil()`.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
