package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	userRepo repository.UserRepository
	cost     int
	now      func() time.Time
	logger   zerolog.Logger
}

// recentUserWindow is how far back Statistics counts new sign-ups.
const recentUserWindow = 30 * 24 * time.Hour

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

func (s *userService) List(ctx context.Context, filter model.UserFilter) ([]model.User, error) {
	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         model.Role(req.Role),
		Status:       model.UserStatus(req.Status),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("user created")
	return user, nil
}

func (s *userService) Update(ctx context.Context, actorID, id int64, req *model.UpdateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// An admin editing their own account must stay an active admin.
	if actorID == id && (model.Role(req.Role) != model.RoleAdmin || model.UserStatus(req.Status) != model.UserStatusActive) {
		return nil, model.ErrSelfModification
	}

	user := &model.User{
		ID:     id,
		Name:   strings.TrimSpace(req.Name),
		Email:  strings.ToLower(strings.TrimSpace(req.Email)),
		Role:   model.Role(req.Role),
		Status: model.UserStatus(req.Status),
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to hash password")
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	ok, err := s.userRepo.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrUserNotFound
	}

	s.logger.Info().
		Int64("user_id", id).
		Int64("actor_id", actorID).
		Bool("password_changed", req.Password != "").
		Msg("user updated")
	return user, nil
}

func (s *userService) Statistics(ctx context.Context) (*model.UserStatistics, error) {
	stats, err := s.userRepo.Statistics(ctx, s.now().Add(-recentUserWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to get user statistics: %w", err)
	}
	return stats, nil
}

func (s *userService) UpdateStatus(ctx context.Context, actorID, id int64, status string) (*model.User, error) {
	target := model.UserStatus(status)
	if !target.Valid() {
		v := &model.ValidationError{}
		v.Add("status", "The status must be active or inactive.")
		return nil, v
	}

	if actorID == id && target == model.UserStatusInactive {
		return nil, model.ErrSelfModification
	}

	ok, err := s.userRepo.UpdateStatus(ctx, id, target)
	if err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}
	if !ok {
		return nil, model.ErrUserNotFound
	}

	s.logger.Info().Int64("user_id", id).Int64("actor_id", actorID).Str("status", status).Msg("user status updated")
	return s.Get(ctx, id)
}

func (s *userService) Delete(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return model.ErrSelfModification
	}

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.userRepo.CountOrders(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check user orders: %w", err)
	}
	if count > 0 {
		return model.ErrUserHasOrders
	}

	ok, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrUserNotFound
	}

	s.logger.Info().Int64("user_id", id).Int64("actor_id", actorID).Msg("user deleted")
	return nil
}
