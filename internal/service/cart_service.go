package service

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	addressRepo repository.AddressRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	addressRepo repository.AddressRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		addressRepo: addressRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

func (s *cartService) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if items == nil {
		items = []model.CartItem{}
	}
	return &model.Cart{Items: items, Subtotal: model.Subtotal(items)}, nil
}

func (s *cartService) Add(ctx context.Context, userID int64, productID string, quantity int) (*model.Cart, error) {
	if quantity < 1 {
		return nil, model.ErrInvalidQuantity
	}
	productID = strings.TrimSpace(productID)

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		s.logger.Debug().Str("product_id", productID).Msg("add to cart: product not found")
		return nil, model.ErrProductNotFound
	}

	if err := s.cartRepo.Upsert(ctx, userID, productID, quantity); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int64("user_id", userID).
		Str("product_id", productID).
		Int("quantity", quantity).
		Msg("added to cart")

	return s.Get(ctx, userID)
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID int64, productID string, quantity int) (*model.Cart, error) {
	if quantity < 1 {
		return nil, model.ErrInvalidQuantity
	}

	ok, err := s.cartRepo.SetQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart: %w", err)
	}
	if !ok {
		return nil, model.ErrCartItemNotFound
	}

	return s.Get(ctx, userID)
}

func (s *cartService) Remove(ctx context.Context, userID int64, productID string) (*model.Cart, error) {
	ok, err := s.cartRepo.Remove(ctx, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart: %w", err)
	}
	if !ok {
		return nil, model.ErrCartItemNotFound
	}

	return s.Get(ctx, userID)
}

func (s *cartService) ListAddresses(ctx context.Context, userID int64) ([]model.Address, error) {
	list, err := s.addressRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	if list == nil {
		list = []model.Address{}
	}
	return list, nil
}
