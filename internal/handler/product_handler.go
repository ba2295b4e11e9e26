package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles catalogue requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products. Optional query parameters: category, q,
// in_stock, limit and offset.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.ProductFilter{
		Category: q.Get("category"),
		Query:    q.Get("q"),
	}

	var err error
	if filter.Limit, err = queryInt(r, "limit", 0); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, err.Error(), h.logger)
		return
	}
	if filter.Offset, err = queryInt(r, "offset", 0); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, err.Error(), h.logger)
		return
	}
	if raw := q.Get("in_stock"); raw != "" {
		if filter.InStockOnly, err = strconv.ParseBool(raw); err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid in_stock parameter", h.logger)
			return
		}
	}

	products, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve products", h.logger)
		return
	}

	respond(w, http.StatusOK, products, "")
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "failed to retrieve product", h.logger)
		return
	}

	respond(w, http.StatusOK, product, "")
}
