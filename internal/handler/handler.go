package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/auth"
	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// statusByCode maps domain error codes to HTTP status codes.
var statusByCode = map[string]int{
	model.ErrCodeInvalidJSON:             http.StatusBadRequest,
	model.ErrCodeValidationFailed:        http.StatusUnprocessableEntity,
	model.ErrCodeProductNotFound:         http.StatusNotFound,
	model.ErrCodeInvalidQuantity:         http.StatusBadRequest,
	model.ErrCodeCartEmpty:               http.StatusBadRequest,
	model.ErrCodeCartItemNotFound:        http.StatusNotFound,
	model.ErrCodeAddressNotFound:         http.StatusNotFound,
	model.ErrCodeInsufficientStock:       http.StatusConflict,
	model.ErrCodeOrderNotFound:           http.StatusNotFound,
	model.ErrCodeInvalidStatusTransition: http.StatusConflict,
	model.ErrCodeOrderNotCancellable:     http.StatusConflict,
	model.ErrCodeUserNotFound:            http.StatusNotFound,
	model.ErrCodeUserHasOrders:           http.StatusBadRequest,
	model.ErrCodeEmailTaken:              http.StatusUnprocessableEntity,
	model.ErrCodeSelfModification:        http.StatusForbidden,
	model.ErrCodeUnauthorised:            http.StatusUnauthorized,
	model.ErrCodeForbidden:               http.StatusForbidden,
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// respond writes a successful envelope.
func respond(w http.ResponseWriter, status int, data interface{}, message string) {
	writeJSON(w, status, model.Response{Success: true, Data: data, Message: message})
}

// writeError writes a failed envelope with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Warn().Str("error", code).Str("message", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.Response{Success: false, Message: message, Error: code})
}

// writeServiceError maps err to a response. Domain and validation errors are
// shown to the client; anything else becomes a 500 with fallback as message.
func writeServiceError(w http.ResponseWriter, err error, fallback string, logger zerolog.Logger) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		logger.Debug().Interface("fields", verr.Fields).Msg("validation failed")
		writeJSON(w, http.StatusUnprocessableEntity, model.Response{
			Success: false,
			Message: "The given data was invalid.",
			Error:   model.ErrCodeValidationFailed,
			Errors:  verr.Fields,
		})
		return
	}

	var derr *model.DomainError
	if errors.As(err, &derr) {
		status, ok := statusByCode[derr.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		resp := model.Response{Success: false, Message: derr.Message, Error: derr.Code}
		if derr.Code == model.ErrCodeEmailTaken {
			resp.Errors = map[string][]string{"email": {derr.Message}}
		}
		logger.Warn().Str("error", derr.Code).Int("status", status).Msg("request rejected")
		writeJSON(w, status, resp)
		return
	}

	logger.Error().Err(err).Msg(fallback)
	writeJSON(w, http.StatusInternalServerError, model.Response{
		Success: false,
		Message: fallback,
		Error:   model.ErrCodeInternalError,
	})
}

// decodeJSON reads the request body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, logger zerolog.Logger) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
		return false
	}
	return true
}

// principal returns the authenticated caller, writing a 401 when absent.
func principal(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (auth.Principal, bool) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "unauthorised", logger)
		return auth.Principal{}, false
	}
	return p, true
}

// pathUUID parses the named path value as a UUID. A malformed ID cannot
// match any row, so it is reported with notFound.
func pathUUID(w http.ResponseWriter, r *http.Request, name string, notFound *model.DomainError, logger zerolog.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusNotFound, notFound.Code, notFound.Message, logger)
		return uuid.Nil, false
	}
	return id, true
}

// pathInt64 parses the named path value as a positive integer ID.
func pathInt64(w http.ResponseWriter, r *http.Request, name string, notFound *model.DomainError, logger zerolog.Logger) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, notFound.Code, notFound.Message, logger)
		return 0, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return v, nil
}

// parseOrderFilter reads status, from, to, limit and offset. Dates are
// YYYY-MM-DD and to covers its whole day.
func parseOrderFilter(r *http.Request) (model.OrderFilter, error) {
	var f model.OrderFilter
	q := r.URL.Query()
	v := &model.ValidationError{}

	if s := q.Get("status"); s != "" {
		status, err := model.ParseOrderStatus(s)
		if err != nil {
			v.Add("status", "The selected status is invalid.")
		}
		f.Status = status
	}

	if s := q.Get("from"); s != "" {
		from, err := time.Parse(time.DateOnly, s)
		if err != nil {
			v.Add("from", "The from date must be a date in YYYY-MM-DD format.")
		} else {
			f.From = &from
		}
	}

	if s := q.Get("to"); s != "" {
		to, err := time.Parse(time.DateOnly, s)
		if err != nil {
			v.Add("to", "The to date must be a date in YYYY-MM-DD format.")
		} else {
			end := to.AddDate(0, 0, 1).Add(-time.Microsecond)
			f.To = &end
		}
	}

	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		v.Add("to", "The to date must be a date after or equal to from.")
	}

	var err error
	if f.Limit, err = queryInt(r, "limit", 0); err != nil {
		v.Add("limit", err.Error())
	}
	if f.Offset, err = queryInt(r, "offset", 0); err != nil {
		v.Add("offset", err.Error())
	}

	return f, v.OrNil()
}
