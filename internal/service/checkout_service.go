package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/shipping"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// defaultQuoteCountry is assumed when an ad-hoc destination omits its country.
const defaultQuoteCountry = "Vietnam"

type checkoutService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	addressRepo repository.AddressRepository
	productRepo repository.ProductRepository
	shipping    shipping.Calculator
	notifier    OrderNotifier
	logger      zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	addressRepo repository.AddressRepository,
	productRepo repository.ProductRepository,
	calculator shipping.Calculator,
	notifier OrderNotifier,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		addressRepo: addressRepo,
		productRepo: productRepo,
		shipping:    calculator,
		notifier:    notifier,
		logger:      logger.With().Str("service", "checkout").Logger(),
	}
}

func (s *checkoutService) Checkout(ctx context.Context, userID int64, req *model.CheckoutRequest) (resp *model.OrderResponse, err error) {
	if req == nil {
		return nil, fmt.Errorf("checkout request is nil")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	items, err := s.cartRepo.ListForCheckout(ctx, tx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(items) == 0 {
		s.logger.Debug().Int64("user_id", userID).Msg("checkout with empty cart")
		return nil, model.ErrCartEmpty
	}

	var address *model.Address
	switch req.AddressOption {
	case model.AddressOptionExisting:
		address, err = s.addressRepo.GetForUserTx(ctx, tx, userID, req.ParsedAddressID())
		if err != nil {
			return nil, fmt.Errorf("failed to load address: %w", err)
		}
		if address == nil {
			s.logger.Warn().
				Int64("user_id", userID).
				Str("address_id", req.AddressID).
				Msg("checkout address not found for user")
			return nil, model.ErrAddressNotFound
		}
	case model.AddressOptionNew:
		address = req.NewAddress(userID)
		if err = s.addressRepo.ClearDefault(ctx, tx, userID); err != nil {
			return nil, fmt.Errorf("failed to save address: %w", err)
		}
		if err = s.addressRepo.Create(ctx, tx, address); err != nil {
			return nil, fmt.Errorf("failed to save address: %w", err)
		}
	}

	subtotal := model.Subtotal(items)
	fee := s.shipping.Calculate(subtotal, shipping.Destination{Country: address.Country, City: address.City})

	now := time.Now()
	order := &model.Order{
		ID:            uuid.New(),
		UserID:        userID,
		AddressID:     address.ID,
		Subtotal:      subtotal,
		ShippingFee:   fee,
		TotalPrice:    subtotal + fee,
		Status:        model.StatusPending,
		PaymentMethod: model.PaymentMethodCOD,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	orderItems := make([]model.OrderItem, len(items))
	for i, item := range items {
		var ok bool
		ok, err = s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to reserve stock: %w", err)
		}
		if !ok {
			s.logger.Warn().
				Str("order_id", order.ID.String()).
				Str("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("insufficient stock at checkout")
			return nil, model.NewInsufficientStockError(item.ProductName)
		}

		orderItems[i] = model.OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(orderItems)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = s.cartRepo.ClearForUser(ctx, tx, userID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int64("user_id", userID).
		Int64("total_price", order.TotalPrice).
		Int("item_count", len(orderItems)).
		Msg("order placed")

	s.notifier.OrderPlaced(*order)

	return &model.OrderResponse{
		Order:   *order,
		Items:   orderItems,
		Address: address,
	}, nil
}

func (s *checkoutService) QuoteShipping(ctx context.Context, userID int64, req *model.ShippingQuoteRequest) (int64, error) {
	if req == nil {
		return 0, fmt.Errorf("shipping quote request is nil")
	}
	if req.OrderAmount < 0 || math.IsNaN(req.OrderAmount) || math.IsInf(req.OrderAmount, 0) {
		v := &model.ValidationError{}
		v.Add("order_amount", "Order amount must be a non-negative number.")
		return 0, v
	}

	amount := quoteAmount(req.OrderAmount)

	var dest shipping.Destination
	switch {
	case req.AddressID != nil:
		id, err := uuid.Parse(*req.AddressID)
		if err != nil {
			return 0, model.ErrAddressNotFound
		}
		address, err := s.addressRepo.GetForUser(ctx, userID, id)
		if err != nil {
			return 0, fmt.Errorf("failed to load address: %w", err)
		}
		if address == nil {
			return 0, model.ErrAddressNotFound
		}
		dest = shipping.Destination{Country: address.Country, City: address.City}
	case req.Address != nil:
		dest = shipping.Destination{Country: defaultQuoteCountry, City: req.Address.City}
		if req.Address.Country != nil {
			dest.Country = *req.Address.Country
		}
	default:
		return 0, nil
	}

	return s.shipping.Calculate(amount, dest), nil
}

// quoteAmount converts a non-negative quote amount to whole VND. Rounding up
// keeps "more than 1,000,000" exact for fractional amounts; amounts beyond the
// int64 range saturate so they stay above every threshold.
func quoteAmount(v float64) int64 {
	if v >= float64(math.MaxInt64) {
		return math.MaxInt64
	}
	return int64(math.Ceil(v))
}
