package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// ReviewHandler handles product reviews.
type ReviewHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("handler", "review").Logger(),
	}
}

// List handles GET /api/products/{id}/reviews?limit=&offset=.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	v := &model.ValidationError{}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		v.Add("limit", err.Error())
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		v.Add("offset", err.Error())
	}
	if err := v.OrNil(); err != nil {
		writeServiceError(w, err, "", h.logger)
		return
	}

	reviews, err := h.service.ListByProduct(r.Context(), r.PathValue("id"), limit, offset)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve reviews", h.logger)
		return
	}

	respond(w, http.StatusOK, reviews, "")
}

// Create handles POST /api/products/{id}/reviews for the signed-in user.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CreateReviewRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	review, err := h.service.Create(r.Context(), p.UserID, r.PathValue("id"), &req)
	if err != nil {
		writeServiceError(w, err, "failed to create review", h.logger)
		return
	}

	respond(w, http.StatusCreated, review, "Review created")
}
