package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

const cartQuery = `
	SELECT c.user_id, c.product_id, p.name, p.price, p.stock, c.quantity, c.updated_at
	FROM cart_items c
	JOIN products p ON p.id = c.product_id
	WHERE c.user_id = $1
	ORDER BY c.updated_at, c.product_id
`

func (r *cartRepository) ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error) {
	return r.list(ctx, r.pool, cartQuery, userID)
}

// ListForCheckout locks the user's cart rows until tx ends so a concurrent
// cart edit cannot change what is being ordered.
func (r *cartRepository) ListForCheckout(ctx context.Context, tx pgx.Tx, userID int64) ([]model.CartItem, error) {
	return r.list(ctx, tx, cartQuery+" FOR UPDATE OF c", userID)
}

func (r *cartRepository) list(ctx context.Context, q Querier, query string, userID int64) ([]model.CartItem, error) {
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var item model.CartItem
		err := rows.Scan(&item.UserID, &item.ProductID, &item.ProductName, &item.Price,
			&item.Stock, &item.Quantity, &item.UpdatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

func (r *cartRepository) Upsert(ctx context.Context, userID int64, productID string, quantity int) error {
	query := `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
	`

	if _, err := r.pool.Exec(ctx, query, userID, productID, quantity); err != nil {
		if isForeignKeyViolation(err) {
			return model.ErrProductNotFound
		}
		r.logger.Error().Err(err).
			Int64("user_id", userID).
			Str("product_id", productID).
			Msg("failed to upsert cart item")
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}
	return nil
}

func (r *cartRepository) SetQuantity(ctx context.Context, userID int64, productID string, quantity int) (bool, error) {
	query := `
		UPDATE cart_items
		SET quantity = $3, updated_at = NOW()
		WHERE user_id = $1 AND product_id = $2
	`

	tag, err := r.pool.Exec(ctx, query, userID, productID, quantity)
	if err != nil {
		r.logger.Error().Err(err).
			Int64("user_id", userID).
			Str("product_id", productID).
			Msg("failed to update cart item")
		return false, fmt.Errorf("failed to update cart item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *cartRepository) Remove(ctx context.Context, userID int64, productID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		r.logger.Error().Err(err).
			Int64("user_id", userID).
			Str("product_id", productID).
			Msg("failed to remove cart item")
		return false, fmt.Errorf("failed to remove cart item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *cartRepository) ClearForUser(ctx context.Context, tx pgx.Tx, userID int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
