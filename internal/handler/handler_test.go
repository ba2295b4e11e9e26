package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteServiceError(t *testing.T) {
	validation := &model.ValidationError{}
	validation.Add("city", "Please enter the city.")

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"validation", validation, http.StatusUnprocessableEntity, model.ErrCodeValidationFailed},
		{"cart empty", model.ErrCartEmpty, http.StatusBadRequest, model.ErrCodeCartEmpty},
		{"invalid quantity", model.ErrInvalidQuantity, http.StatusBadRequest, model.ErrCodeInvalidQuantity},
		{"address not found", model.ErrAddressNotFound, http.StatusNotFound, model.ErrCodeAddressNotFound},
		{"order not found", model.ErrOrderNotFound, http.StatusNotFound, model.ErrCodeOrderNotFound},
		{"user not found", model.ErrUserNotFound, http.StatusNotFound, model.ErrCodeUserNotFound},
		{"cart item not found", model.ErrCartItemNotFound, http.StatusNotFound, model.ErrCodeCartItemNotFound},
		{"insufficient stock", model.NewInsufficientStockError("Số Đỏ"), http.StatusConflict, model.ErrCodeInsufficientStock},
		{"transition", model.NewTransitionError(model.StatusCompleted, model.StatusPending), http.StatusConflict, model.ErrCodeInvalidStatusTransition},
		{"not cancellable", model.ErrOrderNotCancellable, http.StatusConflict, model.ErrCodeOrderNotCancellable},
		{"user has orders", model.ErrUserHasOrders, http.StatusBadRequest, model.ErrCodeUserHasOrders},
		{"self modification", model.ErrSelfModification, http.StatusForbidden, model.ErrCodeSelfModification},
		{"email taken", model.ErrEmailTaken, http.StatusUnprocessableEntity, model.ErrCodeEmailTaken},
		{"wrapped domain error", fmt.Errorf("checkout: %w", model.ErrCartEmpty), http.StatusBadRequest, model.ErrCodeCartEmpty},
		{"unknown error", errors.New("connection reset"), http.StatusInternalServerError, model.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			writeServiceError(w, tt.err, "something failed", zerolog.Nop())

			assert.Equal(t, tt.expectedStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.expectedCode, resp.Error)
		})
	}
}

func TestWriteServiceError_Details(t *testing.T) {
	validation := &model.ValidationError{}
	validation.Add("city", "Please enter the city.")

	w := httptest.NewRecorder()
	writeServiceError(w, validation, "", zerolog.Nop())
	resp := decodeResponse(t, w)
	assert.Equal(t, []string{"Please enter the city."}, resp.Errors["city"])

	w = httptest.NewRecorder()
	writeServiceError(w, model.NewInsufficientStockError("Số Đỏ"), "", zerolog.Nop())
	assert.Contains(t, decodeResponse(t, w).Message, "Số Đỏ")

	w = httptest.NewRecorder()
	writeServiceError(w, model.ErrEmailTaken, "", zerolog.Nop())
	assert.Contains(t, decodeResponse(t, w).Errors, "email")

	w = httptest.NewRecorder()
	writeServiceError(w, errors.New("pq: secret detail"), "failed to place order", zerolog.Nop())
	resp = decodeResponse(t, w)
	assert.Equal(t, "failed to place order", resp.Message)
	assert.NotContains(t, w.Body.String(), "secret detail")
}

func TestParseOrderFilter(t *testing.T) {
	t.Run("all parameters", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/orders?status=pending&from=2026-03-01&to=2026-03-14&limit=5&offset=10", nil)

		f, err := parseOrderFilter(req)

		require.NoError(t, err)
		assert.Equal(t, model.StatusPending, f.Status)
		require.NotNil(t, f.From)
		require.NotNil(t, f.To)
		assert.True(t, f.From.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
		assert.True(t, f.To.Equal(time.Date(2026, 3, 14, 23, 59, 59, 999999000, time.UTC)))
		assert.Equal(t, 5, f.Limit)
		assert.Equal(t, 10, f.Offset)
	})

	t.Run("empty", func(t *testing.T) {
		f, err := parseOrderFilter(httptest.NewRequest(http.MethodGet, "/api/orders", nil))

		require.NoError(t, err)
		assert.Empty(t, f.Status)
		assert.Nil(t, f.From)
		assert.Nil(t, f.To)
	})

	t.Run("invalid values", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/orders?status=shipped&from=yesterday&limit=x", nil)

		_, err := parseOrderFilter(req)

		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "status")
		assert.Contains(t, verr.Fields, "from")
		assert.Contains(t, verr.Fields, "limit")
	})

	t.Run("to before from", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/orders?from=2026-03-14&to=2026-03-01", nil)

		_, err := parseOrderFilter(req)

		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "to")
	})
}

func TestDecodeJSON_Invalid(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
	req.Body = http.NoBody

	var dst model.CheckoutRequest
	ok := decodeJSON(w, req, &dst, zerolog.Nop())

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, model.ErrCodeInvalidJSON, decodeResponse(t, w).Error)
}

func TestPrincipalMissing(t *testing.T) {
	w := httptest.NewRecorder()

	_, ok := principal(w, httptest.NewRequest(http.MethodGet, "/api/cart", nil), zerolog.Nop())

	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
