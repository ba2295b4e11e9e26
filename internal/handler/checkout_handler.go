package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// CheckoutHandler serves the checkout page data, order placement and
// shipping quotes.
type CheckoutHandler struct {
	checkout service.CheckoutService
	cart     service.CartService
	logger   zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(checkout service.CheckoutService, cart service.CartService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		cart:     cart,
		logger:   logger.With().Str("handler", "checkout").Logger(),
	}
}

// CheckoutSummary is what the checkout page shows before ordering.
type CheckoutSummary struct {
	Cart      *model.Cart     `json:"cart"`
	Addresses []model.Address `json:"addresses"`
}

// Summary handles GET /api/checkout.
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	cart, err := h.cart.Get(r.Context(), p.UserID)
	if err != nil {
		writeServiceError(w, err, "failed to load cart", h.logger)
		return
	}
	if len(cart.Items) == 0 {
		writeServiceError(w, model.ErrCartEmpty, "", h.logger)
		return
	}

	addresses, err := h.cart.ListAddresses(r.Context(), p.UserID)
	if err != nil {
		writeServiceError(w, err, "failed to load addresses", h.logger)
		return
	}

	respond(w, http.StatusOK, CheckoutSummary{Cart: cart, Addresses: addresses}, "")
}

// Checkout handles POST /api/checkout.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CheckoutRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	order, err := h.checkout.Checkout(r.Context(), p.UserID, &req)
	if err != nil {
		writeServiceError(w, err, "failed to place order", h.logger)
		return
	}

	respond(w, http.StatusCreated, order, "Order placed successfully")
}

// CalculateShipping handles POST /api/shipping/calculate.
func (h *CheckoutHandler) CalculateShipping(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	var req model.ShippingQuoteRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	fee, err := h.checkout.QuoteShipping(r.Context(), p.UserID, &req)
	if err != nil {
		writeServiceError(w, err, "failed to calculate shipping", h.logger)
		return
	}

	respond(w, http.StatusOK, model.ShippingQuote{Shipping: fee}, "")
}
