package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// AdminOrderHandler handles order management for admins.
type AdminOrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewAdminOrderHandler creates a new admin order handler.
func NewAdminOrderHandler(service service.OrderService, logger zerolog.Logger) *AdminOrderHandler {
	return &AdminOrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "admin_order").Logger(),
	}
}

// List handles GET /api/admin/orders.
func (h *AdminOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseOrderFilter(r)
	if err != nil {
		writeServiceError(w, err, "", h.logger)
		return
	}

	orders, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve orders", h.logger)
		return
	}

	respond(w, http.StatusOK, orders, "")
}

// GetByID handles GET /api/admin/orders/{id}.
func (h *AdminOrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", model.ErrOrderNotFound, h.logger)
	if !ok {
		return
	}

	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve order", h.logger)
		return
	}

	respond(w, http.StatusOK, order, "")
}

// UpdateStatus handles PATCH /api/admin/orders/{id}/status.
func (h *AdminOrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id", model.ErrOrderNotFound, h.logger)
	if !ok {
		return
	}

	var req model.OrderStatusRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), p.UserID, id, req.Status)
	if err != nil {
		writeServiceError(w, err, "failed to update order status", h.logger)
		return
	}

	respond(w, http.StatusOK, order, "Order status updated")
}

// Confirm handles POST /api/admin/orders/{id}/confirm.
func (h *AdminOrderHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id", model.ErrOrderNotFound, h.logger)
	if !ok {
		return
	}

	order, err := h.service.Confirm(r.Context(), p.UserID, id)
	if err != nil {
		writeServiceError(w, err, "failed to confirm order", h.logger)
		return
	}

	respond(w, http.StatusOK, order, "Order confirmed")
}

// Statistics handles GET /api/admin/orders/statistics.
func (h *AdminOrderHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistics(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to compute order statistics", h.logger)
		return
	}

	respond(w, http.StatusOK, stats, "")
}
