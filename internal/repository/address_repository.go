package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const addressColumns = `id, user_id, full_name, phone_number, details, ward, district, city,
	postal_code, country, is_default, created_at, updated_at`

type addressRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAddressRepository creates a new PostgreSQL-backed address repository.
func NewAddressRepository(pool *pgxpool.Pool, logger zerolog.Logger) AddressRepository {
	return &addressRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "address").Logger(),
	}
}

func scanAddress(row pgx.Row, a *model.Address) error {
	return row.Scan(
		&a.ID, &a.UserID, &a.FullName, &a.PhoneNumber, &a.Details, &a.Ward, &a.District, &a.City,
		&a.PostalCode, &a.Country, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt,
	)
}

func (r *addressRepository) ListByUser(ctx context.Context, userID int64) ([]model.Address, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to query addresses")
		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}
	defer rows.Close()

	var addresses []model.Address
	for rows.Next() {
		var a model.Address
		if err := scanAddress(rows, &a); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan address row")
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, a)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating address rows")
		return nil, fmt.Errorf("error iterating addresses: %w", err)
	}

	return addresses, nil
}

func (r *addressRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`
	return r.get(ctx, r.pool, query, id)
}

func (r *addressRepository) GetForUser(ctx context.Context, userID int64, id uuid.UUID) (*model.Address, error) {
	return r.getForUser(ctx, r.pool, userID, id)
}

func (r *addressRepository) GetForUserTx(ctx context.Context, tx pgx.Tx, userID int64, id uuid.UUID) (*model.Address, error) {
	return r.getForUser(ctx, tx, userID, id)
}

func (r *addressRepository) getForUser(ctx context.Context, q Querier, userID int64, id uuid.UUID) (*model.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1 AND user_id = $2`
	return r.get(ctx, q, query, id, userID)
}

func (r *addressRepository) get(ctx context.Context, q Querier, query string, id uuid.UUID, args ...any) (*model.Address, error) {
	var a model.Address
	if err := scanAddress(q.QueryRow(ctx, query, append([]any{id}, args...)...), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("address_id", id.String()).Msg("address not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("address_id", id.String()).Msg("failed to query address")
		return nil, fmt.Errorf("failed to query address: %w", err)
	}
	return &a, nil
}

func (r *addressRepository) ClearDefault(ctx context.Context, tx pgx.Tx, userID int64) error {
	query := `
		UPDATE addresses
		SET is_default = FALSE, updated_at = NOW()
		WHERE user_id = $1 AND is_default
	`

	if _, err := tx.Exec(ctx, query, userID); err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to clear default address")
		return fmt.Errorf("failed to clear default address: %w", err)
	}
	return nil
}

func (r *addressRepository) Create(ctx context.Context, tx pgx.Tx, a *model.Address) error {
	query := `
		INSERT INTO addresses (id, user_id, full_name, phone_number, details, ward, district, city,
			postal_code, country, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		a.ID, a.UserID, a.FullName, a.PhoneNumber, a.Details, a.Ward, a.District, a.City,
		a.PostalCode, a.Country, a.IsDefault,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).
			Str("address_id", a.ID.String()).
			Int64("user_id", a.UserID).
			Msg("failed to create address")
		return fmt.Errorf("failed to create address: %w", err)
	}

	r.logger.Debug().Str("address_id", a.ID.String()).Msg("address created successfully")
	return nil
}
