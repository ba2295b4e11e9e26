package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
	StatusReturn     OrderStatus = "return"
)

// PaymentMethodCOD is cash on delivery, the only supported payment method.
const PaymentMethodCOD = "COD"

// orderTransitions lists the statuses reachable from each non-terminal status.
var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusReturn, StatusCancelled},
}

// OrderStatuses returns every known status in lifecycle order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusProcessing, StatusCompleted, StatusCancelled, StatusReturn}
}

// ParseOrderStatus converts s into a known OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown order status %q", s)
	}
	return status, nil
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled, StatusReturn:
		return true
	}
	return false
}

// CanTransitionTo reports whether an order in status s may move to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// CanBeCancelled reports whether a customer may still cancel the order.
func (s OrderStatus) CanBeCancelled() bool {
	return s.CanTransitionTo(StatusCancelled)
}

// Order represents a placed customer order. Amounts are whole VND.
type Order struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	UserID        int64       `json:"user_id" db:"user_id"`
	AddressID     uuid.UUID   `json:"address_id" db:"address_id"`
	Subtotal      int64       `json:"subtotal" db:"subtotal"`
	ShippingFee   int64       `json:"shipping_fee" db:"shipping_fee"`
	TotalPrice    int64       `json:"total_price" db:"total_price"`
	Status        OrderStatus `json:"status" db:"status"`
	PaymentMethod string      `json:"payment_method" db:"payment_method"`
	Notes         *string     `json:"notes,omitempty" db:"notes"`
	ConfirmedAt   *time.Time  `json:"confirmed_at,omitempty" db:"confirmed_at"`
	ConfirmedBy   *int64      `json:"confirmed_by,omitempty" db:"confirmed_by"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`

	// Joined from users; empty when the order is loaded without them.
	CustomerName  string `json:"customer_name,omitempty" db:"-"`
	CustomerEmail string `json:"customer_email,omitempty" db:"-"`
}

// OrderItem is an immutable line of an order with the unit price at
// the time the order was placed.
type OrderItem struct {
	ID          uuid.UUID `json:"id" db:"id"`
	OrderID     uuid.UUID `json:"-" db:"order_id"`
	ProductID   string    `json:"product_id" db:"product_id"`
	ProductName string    `json:"product_name,omitempty" db:"-"`
	Quantity    int       `json:"quantity" db:"quantity"`
	Price       int64     `json:"price" db:"price"`
}

// Subtotal is quantity times the snapshotted unit price.
func (i OrderItem) Subtotal() int64 {
	return int64(i.Quantity) * i.Price
}

// ItemsTotal sums the snapshotted line totals of items.
func ItemsTotal(items []OrderItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

// OrderResponse represents the response payload for an order.
type OrderResponse struct {
	Order
	Items   []OrderItem `json:"items"`
	Address *Address    `json:"address,omitempty"`
}

// OrderFilter narrows order listings. Zero values mean "no constraint".
type OrderFilter struct {
	UserID *int64
	Status OrderStatus
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// OrderStatusRequest is the admin payload for changing an order's status.
type OrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderStats summarises all orders for the admin dashboard.
type OrderStats struct {
	TotalOrders  int                 `json:"total_orders"`
	TotalRevenue int64               `json:"total_revenue"`
	ByStatus     map[OrderStatus]int `json:"by_status"`
}

// OrderEvent is the payload broadcast to admins when an order is created.
type OrderEvent struct {
	ID         uuid.UUID   `json:"id"`
	TotalPrice int64       `json:"total_price"`
	Status     OrderStatus `json:"status"`
	CreatedAt  string      `json:"created_at"`
}

// NewOrderEvent builds the broadcast payload for order.
func NewOrderEvent(order *Order) OrderEvent {
	return OrderEvent{
		ID:         order.ID,
		TotalPrice: order.TotalPrice,
		Status:     order.Status,
		CreatedAt:  order.CreatedAt.Format(time.DateTime),
	}
}
