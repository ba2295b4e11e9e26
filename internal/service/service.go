package service

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for browsing the catalogue.
type ProductService interface {
	// List returns a page of products. The page size is clamped to 1..100
	// and defaults to 10.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product or fails with ErrProductNotFound.
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// CheckoutService turns a cart into an order.
type CheckoutService interface {
	// Checkout places a cash-on-delivery order for everything in the user's
	// cart. Either the whole order is persisted or nothing is.
	Checkout(ctx context.Context, userID int64, req *model.CheckoutRequest) (*model.OrderResponse, error)

	// QuoteShipping returns the shipping fee for an order amount to a saved
	// address or an ad-hoc destination.
	QuoteShipping(ctx context.Context, userID int64, req *model.ShippingQuoteRequest) (int64, error)
}

// CartService defines operations on a user's cart.
type CartService interface {
	Get(ctx context.Context, userID int64) (*model.Cart, error)
	Add(ctx context.Context, userID int64, productID string, quantity int) (*model.Cart, error)
	UpdateQuantity(ctx context.Context, userID int64, productID string, quantity int) (*model.Cart, error)
	Remove(ctx context.Context, userID int64, productID string) (*model.Cart, error)

	// ListAddresses returns the saved addresses offered at checkout.
	ListAddresses(ctx context.Context, userID int64) ([]model.Address, error)
}

// OrderService defines customer and admin operations on placed orders.
type OrderService interface {
	ListForUser(ctx context.Context, userID int64, filter model.OrderFilter) ([]model.Order, error)
	GetForUser(ctx context.Context, userID int64, id uuid.UUID) (*model.OrderResponse, error)

	// Cancel cancels the user's own order while it is still pending or processing.
	Cancel(ctx context.Context, userID int64, id uuid.UUID) (*model.OrderResponse, error)

	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)

	// UpdateStatus applies an admin status change if the lifecycle allows it.
	UpdateStatus(ctx context.Context, adminID int64, id uuid.UUID, status string) (*model.OrderResponse, error)

	// Confirm moves a pending order to processing and emails the customer.
	Confirm(ctx context.Context, adminID int64, id uuid.UUID) (*model.OrderResponse, error)

	Statistics(ctx context.Context) (*model.OrderStats, error)
}

// UserService defines admin user management.
type UserService interface {
	List(ctx context.Context, filter model.UserFilter) ([]model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)

	// Update replaces the user's details and, when given, the password.
	// actorID may not demote or deactivate their own account.
	Update(ctx context.Context, actorID, id int64, req *model.UpdateUserRequest) (*model.User, error)

	// UpdateStatus refuses to deactivate actorID's own account.
	UpdateStatus(ctx context.Context, actorID, id int64, status string) (*model.User, error)

	// Delete refuses to remove actorID's own account.
	Delete(ctx context.Context, actorID, id int64) error

	Statistics(ctx context.Context) (*model.UserStatistics, error)
}

// ReviewService manages product reviews.
type ReviewService interface {
	// Create records userID's review of productID, which must exist.
	Create(ctx context.Context, userID int64, productID string, req *model.CreateReviewRequest) (*model.Review, error)
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]model.Review, error)
}

// OrderNotifier is told about order events once they are committed. It must
// not block the caller.
type OrderNotifier interface {
	OrderPlaced(order model.Order)
	OrderConfirmed(order model.Order)
}
