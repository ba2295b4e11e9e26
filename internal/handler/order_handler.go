package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles a customer's own orders.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// List handles GET /api/orders, the order tracking page.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	filter, err := parseOrderFilter(r)
	if err != nil {
		writeServiceError(w, err, "", h.logger)
		return
	}

	orders, err := h.service.ListForUser(r.Context(), p.UserID, filter)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve orders", h.logger)
		return
	}

	respond(w, http.StatusOK, orders, "")
}

// GetByID handles GET /api/orders/{id}.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id", model.ErrOrderNotFound, h.logger)
	if !ok {
		return
	}

	order, err := h.service.GetForUser(r.Context(), p.UserID, id)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve order", h.logger)
		return
	}

	respond(w, http.StatusOK, order, "")
}

// Cancel handles POST /api/orders/{id}/cancel.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id", model.ErrOrderNotFound, h.logger)
	if !ok {
		return
	}

	order, err := h.service.Cancel(r.Context(), p.UserID, id)
	if err != nil {
		writeServiceError(w, err, "failed to cancel order", h.logger)
		return
	}

	respond(w, http.StatusOK, order, "Order cancelled")
}
