package repository

import (
	"context"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List returns products matching filter, ordered by name.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. It returns nil, nil when
	// the product does not exist.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// DecrementStock removes quantity units from stock only if that many are
	// available. It reports false, without error, when stock is insufficient.
	DecrementStock(ctx context.Context, tx pgx.Tx, id string, quantity int) (bool, error)
}

// AddressRepository defines data access for user shipping addresses.
type AddressRepository interface {
	// ListByUser returns the user's addresses, default first.
	ListByUser(ctx context.Context, userID int64) ([]model.Address, error)

	// GetByID retrieves an address regardless of owner.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Address, error)

	// GetForUser retrieves an address only if userID owns it.
	GetForUser(ctx context.Context, userID int64, id uuid.UUID) (*model.Address, error)

	// GetForUserTx is GetForUser within the provided transaction.
	GetForUserTx(ctx context.Context, tx pgx.Tx, userID int64, id uuid.UUID) (*model.Address, error)

	// ClearDefault unsets the default flag on all of the user's addresses.
	ClearDefault(ctx context.Context, tx pgx.Tx, userID int64) error

	// Create inserts an address within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, address *model.Address) error
}

// CartRepository defines data access for cart lines.
type CartRepository interface {
	// ListByUser returns the user's cart lines joined with their products.
	ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error)

	// ListForCheckout is ListByUser within tx, locking the cart rows.
	ListForCheckout(ctx context.Context, tx pgx.Tx, userID int64) ([]model.CartItem, error)

	// Upsert adds quantity to the line for productID, creating it if needed.
	Upsert(ctx context.Context, userID int64, productID string, quantity int) error

	// SetQuantity replaces the quantity of an existing line. It reports
	// false when the line does not exist.
	SetQuantity(ctx context.Context, userID int64, productID string, quantity int) (bool, error)

	// Remove deletes a line. It reports false when the line does not exist.
	Remove(ctx context.Context, userID int64, productID string) (bool, error)

	// ClearForUser deletes every line of the user's cart within tx.
	ClearForUser(ctx context.Context, tx pgx.Tx, userID int64) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// List returns orders matching filter, newest first.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// UpdateStatus moves an order from one status to another. It reports
	// false when the order is no longer in status from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.OrderStatus) (bool, error)

	// Confirm moves a pending order to processing and records who confirmed
	// it. It reports false when the order is no longer pending.
	Confirm(ctx context.Context, id uuid.UUID, adminID int64, at time.Time) (bool, error)

	// Stats aggregates order counts per status and non-cancelled revenue.
	Stats(ctx context.Context) (*model.OrderStats, error)

	// ListCreatedBetween returns non-cancelled orders created in [start, end].
	ListCreatedBetween(ctx context.Context, start, end time.Time) ([]model.Order, error)
}

// UserRepository defines data access for user accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context, filter model.UserFilter) ([]model.User, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)

	// Create inserts user and fills its ID and timestamps. A duplicate
	// email yields model.ErrEmailTaken.
	Create(ctx context.Context, user *model.User) error

	// Update replaces name, email, role and status of user.ID. An empty
	// PasswordHash keeps the stored hash; on return user carries the stored
	// hash and timestamps. It reports false when the user does not exist and
	// yields model.ErrEmailTaken for a duplicate email.
	Update(ctx context.Context, user *model.User) (bool, error)

	// UpdateStatus reports false when the user does not exist.
	UpdateStatus(ctx context.Context, id int64, status model.UserStatus) (bool, error)

	// Delete reports false when the user does not exist.
	Delete(ctx context.Context, id int64) (bool, error)

	// CountOrders returns how many orders the user has placed.
	CountOrders(ctx context.Context, id int64) (int, error)

	// Statistics counts users by status and role, and those created at or
	// after since.
	Statistics(ctx context.Context, since time.Time) (*model.UserStatistics, error)
}

// ReviewRepository defines data access for product reviews.
type ReviewRepository interface {
	// Create inserts review and fills its ID and creation time. A missing
	// product yields model.ErrProductNotFound.
	Create(ctx context.Context, review *model.Review) error

	// ListByProduct returns reviews newest first with the reviewer's name.
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]model.Review, error)
}
