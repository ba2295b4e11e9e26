package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type reviewRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReviewRepository {
	return &reviewRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "review").Logger(),
	}
}

func (r *reviewRepository) Create(ctx context.Context, rv *model.Review) error {
	query := `
		INSERT INTO reviews (user_id, product_id, rating, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, rv.UserID, rv.ProductID, rv.Rating, rv.Content).
		Scan(&rv.ID, &rv.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.ErrProductNotFound
		}
		r.logger.Error().Err(err).Str("product_id", rv.ProductID).Msg("failed to create review")
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]model.Review, error) {
	limit, offset = clampPage(limit, offset)

	query := `
		SELECT r.id, r.user_id, u.name AS user_name, r.product_id, r.rating, r.content, r.created_at
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, productID, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}

	reviews, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Review])
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to collect review rows")
		return nil, fmt.Errorf("failed to scan reviews: %w", err)
	}
	return reviews, nil
}
