package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleCart() *model.Cart {
	items := []model.CartItem{
		{ProductID: "B001", ProductName: "Số Đỏ", Price: 150000, Quantity: 2},
		{ProductID: "B002", ProductName: "Tắt Đèn", Price: 200000, Quantity: 1},
	}
	return &model.Cart{Items: items, Subtotal: model.Subtotal(items)}
}

func TestCartHandler_Get(t *testing.T) {
	carts := new(MockCartService)
	h := NewCartHandler(carts, zerolog.Nop())
	carts.On("Get", mock.Anything, int64(7)).Return(sampleCart(), nil)

	w := httptest.NewRecorder()
	h.Get(w, newRequest(t, http.MethodGet, "/api/cart", nil, 7, model.RoleCustomer))

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, float64(500000), data["subtotal"])
	assert.Len(t, data["items"], 2)
}

func TestCartHandler_Add(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		serviceErr     error
		expectService  bool
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Added",
			body:           model.CartItemRequest{ProductID: "B001", Quantity: 2},
			expectService:  true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Unknown product",
			body:           model.CartItemRequest{ProductID: "B999", Quantity: 1},
			serviceErr:     model.ErrProductNotFound,
			expectService:  true,
			expectedStatus: http.StatusNotFound,
			expectedCode:   model.ErrCodeProductNotFound,
		},
		{
			name:           "Zero quantity",
			body:           model.CartItemRequest{ProductID: "B001", Quantity: 0},
			serviceErr:     model.ErrInvalidQuantity,
			expectService:  true,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidQuantity,
		},
		{
			name:           "Malformed JSON",
			body:           "[",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carts := new(MockCartService)
			h := NewCartHandler(carts, zerolog.Nop())

			if tt.expectService {
				req := tt.body.(model.CartItemRequest)
				var result *model.Cart
				if tt.serviceErr == nil {
					result = sampleCart()
				}
				carts.On("Add", mock.Anything, int64(7), req.ProductID, req.Quantity).Return(result, tt.serviceErr)
			}

			w := httptest.NewRecorder()
			h.Add(w, newRequest(t, http.MethodPost, "/api/cart/items", tt.body, 7, model.RoleCustomer))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCode, decodeResponse(t, w).Error)
		})
	}
}

func TestCartHandler_Update(t *testing.T) {
	tests := []struct {
		name           string
		productID      string
		quantity       int
		serviceErr     error
		expectedStatus int
	}{
		{"Updated", "B001", 3, nil, http.StatusOK},
		{"Line not in cart", "B003", 1, model.ErrCartItemNotFound, http.StatusNotFound},
		{"Invalid quantity", "B001", -1, model.ErrInvalidQuantity, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carts := new(MockCartService)
			h := NewCartHandler(carts, zerolog.Nop())

			var result *model.Cart
			if tt.serviceErr == nil {
				result = sampleCart()
			}
			carts.On("UpdateQuantity", mock.Anything, int64(7), tt.productID, tt.quantity).Return(result, tt.serviceErr)

			req := newRequest(t, http.MethodPut, "/api/cart/items/"+tt.productID, model.CartItemRequest{Quantity: tt.quantity}, 7, model.RoleCustomer)
			req.SetPathValue("productID", tt.productID)
			w := httptest.NewRecorder()
			h.Update(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			carts.AssertExpectations(t)
		})
	}
}

func TestCartHandler_Remove(t *testing.T) {
	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
	}{
		{"Removed", nil, http.StatusOK},
		{"Line not in cart", model.ErrCartItemNotFound, http.StatusNotFound},
		{"Storage failure", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carts := new(MockCartService)
			h := NewCartHandler(carts, zerolog.Nop())

			var result *model.Cart
			if tt.serviceErr == nil {
				result = &model.Cart{Items: []model.CartItem{}}
			}
			carts.On("Remove", mock.Anything, int64(7), "B001").Return(result, tt.serviceErr)

			req := newRequest(t, http.MethodDelete, "/api/cart/items/B001", nil, 7, model.RoleCustomer)
			req.SetPathValue("productID", "B001")
			w := httptest.NewRecorder()
			h.Remove(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestCartHandler_Addresses(t *testing.T) {
	carts := new(MockCartService)
	h := NewCartHandler(carts, zerolog.Nop())
	carts.On("ListAddresses", mock.Anything, int64(7)).Return([]model.Address{
		{ID: uuid.New(), City: "Hà Nội", IsDefault: true},
		{ID: uuid.New(), City: "Đà Nẵng"},
	}, nil)

	w := httptest.NewRecorder()
	h.Addresses(w, newRequest(t, http.MethodGet, "/api/addresses", nil, 7, model.RoleCustomer))

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.([]interface{})
	require.Len(t, data, 2)
	assert.Equal(t, true, data[0].(map[string]interface{})["is_default"])
}
