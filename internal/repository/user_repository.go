package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const userColumns = `id, name, email, password_hash, role, status, created_at, updated_at`

type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id), &u)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("user_id", id).Msg("user not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("user_id", id).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}

func (r *userRepository) List(ctx context.Context, filter model.UserFilter) ([]model.User, error) {
	var (
		where []string
		args  []any
	)
	if filter.Role != "" {
		args = append(args, filter.Role)
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+s+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", len(args), len(args)))
	}

	limit, offset := clampPage(filter.Limit, filter.Offset)

	var sb strings.Builder
	sb.WriteString(`SELECT ` + userColumns + ` FROM users`)
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	args = append(args, limit, offset)
	fmt.Fprintf(&sb, " ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return r.queryUsers(ctx, sb.String(), args...)
}

func (r *userRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	return r.queryUsers(ctx, `SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY id`, role)
}

func (r *userRepository) queryUsers(ctx context.Context, query string, args ...any) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query users")
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan user row")
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating user rows")
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, role, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, u.Name, u.Email, u.PasswordHash, u.Role, u.Status).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrEmailTaken
		}
		r.logger.Error().Err(err).Str("email", u.Email).Msg("failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Debug().Int64("user_id", u.ID).Msg("user created successfully")
	return nil
}

func (r *userRepository) Update(ctx context.Context, u *model.User) (bool, error) {
	query := `
		UPDATE users
		SET name = $2, email = $3, role = $4, status = $5,
		    password_hash = COALESCE(NULLIF($6, ''), password_hash),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING password_hash, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, u.ID, u.Name, u.Email, u.Role, u.Status, u.PasswordHash).
		Scan(&u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		if isUniqueViolation(err) {
			return false, model.ErrEmailTaken
		}
		r.logger.Error().Err(err).Int64("user_id", u.ID).Msg("failed to update user")
		return false, fmt.Errorf("failed to update user: %w", err)
	}
	return true, nil
}

func (r *userRepository) UpdateStatus(ctx context.Context, id int64, status model.UserStatus) (bool, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", id).Msg("failed to update user status")
		return false, fmt.Errorf("failed to update user status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, model.ErrUserHasOrders
		}
		r.logger.Error().Err(err).Int64("user_id", id).Msg("failed to delete user")
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *userRepository) CountOrders(ctx context.Context, id int64) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, id).Scan(&count); err != nil {
		r.logger.Error().Err(err).Int64("user_id", id).Msg("failed to count user orders")
		return 0, fmt.Errorf("failed to count user orders: %w", err)
	}
	return count, nil
}

func (r *userRepository) Statistics(ctx context.Context, since time.Time) (*model.UserStatistics, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'active'),
			COUNT(*) FILTER (WHERE status = 'inactive'),
			COUNT(*) FILTER (WHERE role = 'admin'),
			COUNT(*) FILTER (WHERE role = 'customer'),
			COUNT(*) FILTER (WHERE created_at >= $1)
		FROM users
	`

	var s model.UserStatistics
	err := r.pool.QueryRow(ctx, query, since).Scan(
		&s.TotalUsers, &s.ActiveUsers, &s.InactiveUsers, &s.AdminUsers, &s.CustomerUsers, &s.RecentUsers,
	)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query user statistics")
		return nil, fmt.Errorf("failed to query user statistics: %w", err)
	}
	return &s, nil
}
