package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// AdminUserHandler handles user management for admins.
type AdminUserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewAdminUserHandler creates a new admin user handler.
func NewAdminUserHandler(service service.UserService, logger zerolog.Logger) *AdminUserHandler {
	return &AdminUserHandler{
		service: service,
		logger:  logger.With().Str("handler", "admin_user").Logger(),
	}
}

// List handles GET /api/admin/users?role=&status=&search=&limit=&offset=.
func (h *AdminUserHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v := &model.ValidationError{}

	filter := model.UserFilter{
		Role:   model.Role(q.Get("role")),
		Status: model.UserStatus(q.Get("status")),
		Search: q.Get("search"),
	}
	if filter.Role != "" && filter.Role != model.RoleAdmin && filter.Role != model.RoleCustomer {
		v.Add("role", "The selected role is invalid.")
	}
	if filter.Status != "" && !filter.Status.Valid() {
		v.Add("status", "The selected status is invalid.")
	}

	var err error
	if filter.Limit, err = queryInt(r, "limit", 0); err != nil {
		v.Add("limit", err.Error())
	}
	if filter.Offset, err = queryInt(r, "offset", 0); err != nil {
		v.Add("offset", err.Error())
	}
	if err := v.OrNil(); err != nil {
		writeServiceError(w, err, "", h.logger)
		return
	}

	users, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve users", h.logger)
		return
	}

	respond(w, http.StatusOK, users, "")
}

// GetByID handles GET /api/admin/users/{id}.
func (h *AdminUserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "id", model.ErrUserNotFound, h.logger)
	if !ok {
		return
	}

	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve user", h.logger)
		return
	}

	respond(w, http.StatusOK, user, "")
}

// Create handles POST /api/admin/users.
func (h *AdminUserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	user, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, "failed to create user", h.logger)
		return
	}

	respond(w, http.StatusCreated, user, "User created")
}

// Update handles PUT /api/admin/users/{id}.
func (h *AdminUserHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	id, ok := pathInt64(w, r, "id", model.ErrUserNotFound, h.logger)
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	user, err := h.service.Update(r.Context(), p.UserID, id, &req)
	if err != nil {
		writeServiceError(w, err, "failed to update user", h.logger)
		return
	}

	respond(w, http.StatusOK, user, "User updated")
}

// Statistics handles GET /api/admin/users/statistics.
func (h *AdminUserHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistics(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to retrieve user statistics", h.logger)
		return
	}

	respond(w, http.StatusOK, stats, "")
}

// UpdateStatus handles PATCH /api/admin/users/{id}/status.
func (h *AdminUserHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	id, ok := pathInt64(w, r, "id", model.ErrUserNotFound, h.logger)
	if !ok {
		return
	}

	var req model.UserStatusRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	user, err := h.service.UpdateStatus(r.Context(), p.UserID, id, req.Status)
	if err != nil {
		writeServiceError(w, err, "failed to update user status", h.logger)
		return
	}

	respond(w, http.StatusOK, user, "User status updated")
}

// Delete handles DELETE /api/admin/users/{id}.
func (h *AdminUserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	id, ok := pathInt64(w, r, "id", model.ErrUserNotFound, h.logger)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), p.UserID, id); err != nil {
		writeServiceError(w, err, "failed to delete user", h.logger)
		return
	}

	respond(w, http.StatusOK, nil, "User deleted")
}
