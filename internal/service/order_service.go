package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	addressRepo repository.AddressRepository
	notifier    OrderNotifier
	now         func() time.Time
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	addressRepo repository.AddressRepository,
	notifier OrderNotifier,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		addressRepo: addressRepo,
		notifier:    notifier,
		now:         time.Now,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

func (s *orderService) ListForUser(ctx context.Context, userID int64, filter model.OrderFilter) ([]model.Order, error) {
	filter.UserID = &userID
	return s.List(ctx, filter)
}

func (s *orderService) GetForUser(ctx context.Context, userID int64, id uuid.UUID) (*model.OrderResponse, error) {
	resp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if resp.UserID != userID {
		s.logger.Warn().
			Int64("user_id", userID).
			Str("order_id", id.String()).
			Msg("order requested by non-owner")
		return nil, model.ErrOrderNotFound
	}
	return resp, nil
}

func (s *orderService) Cancel(ctx context.Context, userID int64, id uuid.UUID) (*model.OrderResponse, error) {
	resp, err := s.GetForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if !resp.Status.CanBeCancelled() {
		return nil, model.ErrOrderNotCancellable
	}

	ok, err := s.orderRepo.UpdateStatus(ctx, id, resp.Status, model.StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}
	if !ok {
		// The status changed between the read and the update.
		return nil, model.ErrOrderNotCancellable
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Int64("user_id", userID).
		Str("from", string(resp.Status)).
		Msg("order cancelled by customer")

	return s.Get(ctx, id)
}

func (s *orderService) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		v := &model.ValidationError{}
		v.Add("status", "Unknown order status.")
		return nil, v
	}

	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// Get retrieves an order with its items and shipping address.
func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	address, err := s.addressRepo.GetByID(ctx, order.AddressID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order address: %w", err)
	}

	if items == nil {
		items = []model.OrderItem{}
	}

	return &model.OrderResponse{
		Order:   *order,
		Items:   items,
		Address: address,
	}, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, adminID int64, id uuid.UUID, status string) (*model.OrderResponse, error) {
	target, err := model.ParseOrderStatus(status)
	if err != nil {
		v := &model.ValidationError{}
		v.Add("status", "Status must be one of pending, processing, completed, cancelled, return.")
		return nil, v
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status == model.StatusPending && target == model.StatusProcessing {
		return s.Confirm(ctx, adminID, id)
	}

	if !current.Status.CanTransitionTo(target) {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("from", string(current.Status)).
			Str("to", string(target)).
			Msg("rejected status transition")
		return nil, model.NewTransitionError(current.Status, target)
	}

	ok, err := s.orderRepo.UpdateStatus(ctx, id, current.Status, target)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if !ok {
		return nil, s.staleTransition(ctx, id, target)
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Int64("admin_id", adminID).
		Str("from", string(current.Status)).
		Str("to", string(target)).
		Msg("order status updated")

	return s.Get(ctx, id)
}

func (s *orderService) Confirm(ctx context.Context, adminID int64, id uuid.UUID) (*model.OrderResponse, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status != model.StatusPending {
		return nil, model.NewTransitionError(current.Status, model.StatusProcessing)
	}

	ok, err := s.orderRepo.Confirm(ctx, id, adminID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to confirm order: %w", err)
	}
	if !ok {
		return nil, s.staleTransition(ctx, id, model.StatusProcessing)
	}

	resp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Int64("admin_id", adminID).
		Msg("order confirmed")

	s.notifier.OrderConfirmed(resp.Order)

	return resp, nil
}

// staleTransition reports a lost compare-and-swap using the order's
// current status.
func (s *orderService) staleTransition(ctx context.Context, id uuid.UUID, target model.OrderStatus) error {
	latest, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return model.NewTransitionError(latest.Status, target)
}

func (s *orderService) Statistics(ctx context.Context) (*model.OrderStats, error) {
	stats, err := s.orderRepo.Stats(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get order statistics")
		return nil, fmt.Errorf("failed to get order statistics: %w", err)
	}
	return stats, nil
}
