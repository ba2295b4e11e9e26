package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/auth"
	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Checkout(ctx context.Context, userID int64, req *model.CheckoutRequest) (*model.OrderResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

func (m *MockCheckoutService) QuoteShipping(ctx context.Context, userID int64, req *model.ShippingQuoteRequest) (int64, error) {
	args := m.Called(ctx, userID, req)
	return args.Get(0).(int64), args.Error(1)
}

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) cart(args mock.Arguments) (*model.Cart, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	return m.cart(m.Called(ctx, userID))
}

func (m *MockCartService) Add(ctx context.Context, userID int64, productID string, quantity int) (*model.Cart, error) {
	return m.cart(m.Called(ctx, userID, productID, quantity))
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, userID int64, productID string, quantity int) (*model.Cart, error) {
	return m.cart(m.Called(ctx, userID, productID, quantity))
}

func (m *MockCartService) Remove(ctx context.Context, userID int64, productID string) (*model.Cart, error) {
	return m.cart(m.Called(ctx, userID, productID))
}

func (m *MockCartService) ListAddresses(ctx context.Context, userID int64) ([]model.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Address), args.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) orders(args mock.Arguments) ([]model.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) order(args mock.Arguments) (*model.OrderResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

func (m *MockOrderService) ListForUser(ctx context.Context, userID int64, filter model.OrderFilter) ([]model.Order, error) {
	return m.orders(m.Called(ctx, userID, filter))
}

func (m *MockOrderService) GetForUser(ctx context.Context, userID int64, id uuid.UUID) (*model.OrderResponse, error) {
	return m.order(m.Called(ctx, userID, id))
}

func (m *MockOrderService) Cancel(ctx context.Context, userID int64, id uuid.UUID) (*model.OrderResponse, error) {
	return m.order(m.Called(ctx, userID, id))
}

func (m *MockOrderService) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	return m.orders(m.Called(ctx, filter))
}

func (m *MockOrderService) Get(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	return m.order(m.Called(ctx, id))
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, adminID int64, id uuid.UUID, status string) (*model.OrderResponse, error) {
	return m.order(m.Called(ctx, adminID, id, status))
}

func (m *MockOrderService) Confirm(ctx context.Context, adminID int64, id uuid.UUID) (*model.OrderResponse, error) {
	return m.order(m.Called(ctx, adminID, id))
}

func (m *MockOrderService) Statistics(ctx context.Context) (*model.OrderStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderStats), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, filter model.UserFilter) ([]model.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) user(args mock.Arguments) (*model.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id int64) (*model.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	return m.user(m.Called(ctx, req))
}

func (m *MockUserService) UpdateStatus(ctx context.Context, actorID, id int64, status string) (*model.User, error) {
	return m.user(m.Called(ctx, actorID, id, status))
}

func (m *MockUserService) Delete(ctx context.Context, actorID, id int64) error {
	return m.Called(ctx, actorID, id).Error(0)
}

func (m *MockUserService) Update(ctx context.Context, actorID, id int64, req *model.UpdateUserRequest) (*model.User, error) {
	return m.user(m.Called(ctx, actorID, id, req))
}

func (m *MockUserService) Statistics(ctx context.Context) (*model.UserStatistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserStatistics), args.Error(1)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Create(ctx context.Context, userID int64, productID string, req *model.CreateReviewRequest) (*model.Review, error) {
	args := m.Called(ctx, userID, productID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]model.Review, error) {
	args := m.Called(ctx, productID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

// newRequest builds a request with an optional JSON body and, when userID is
// positive, an authenticated principal.
func newRequest(t *testing.T, method, target string, body interface{}, userID int64, role model.Role) *http.Request {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, r)
	if userID > 0 {
		req = req.WithContext(auth.WithPrincipal(req.Context(), auth.Principal{UserID: userID, Role: role}))
	}
	return req
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) model.Response {
	t.Helper()
	var resp model.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}
