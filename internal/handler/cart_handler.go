package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles the caller's cart and saved addresses.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	cart, err := h.service.Get(r.Context(), p.UserID)
	if err != nil {
		writeServiceError(w, err, "failed to load cart", h.logger)
		return
	}

	respond(w, http.StatusOK, cart, "")
}

// Add handles POST /api/cart/items.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CartItemRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	cart, err := h.service.Add(r.Context(), p.UserID, req.ProductID, req.Quantity)
	if err != nil {
		writeServiceError(w, err, "failed to add to cart", h.logger)
		return
	}

	respond(w, http.StatusOK, cart, "Product added to cart")
}

// Update handles PUT /api/cart/items/{productID}.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CartItemRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	cart, err := h.service.UpdateQuantity(r.Context(), p.UserID, r.PathValue("productID"), req.Quantity)
	if err != nil {
		writeServiceError(w, err, "failed to update cart", h.logger)
		return
	}

	respond(w, http.StatusOK, cart, "Cart updated")
}

// Remove handles DELETE /api/cart/items/{productID}.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	cart, err := h.service.Remove(r.Context(), p.UserID, r.PathValue("productID"))
	if err != nil {
		writeServiceError(w, err, "failed to remove from cart", h.logger)
		return
	}

	respond(w, http.StatusOK, cart, "Product removed from cart")
}

// Addresses handles GET /api/addresses.
func (h *CartHandler) Addresses(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	addresses, err := h.service.ListAddresses(r.Context(), p.UserID)
	if err != nil {
		writeServiceError(w, err, "failed to load addresses", h.logger)
		return
	}

	respond(w, http.StatusOK, addresses, "")
}
