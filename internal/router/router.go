package router

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Product    *handler.ProductHandler
	Review     *handler.ReviewHandler
	Checkout   *handler.CheckoutHandler
	Cart       *handler.CartHandler
	Order      *handler.OrderHandler
	AdminOrder *handler.AdminOrderHandler
	AdminUser  *handler.AdminUserHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, jwtSecret []byte, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Catalogue (public)
	mux.HandleFunc("GET /api/products", h.Product.List)
	mux.HandleFunc("GET /api/products/{id}", h.Product.GetByID)
	mux.HandleFunc("GET /api/products/{id}/reviews", h.Review.List)
	mux.HandleFunc("POST /api/products/{id}/reviews", h.Review.Create)

	// Cart and addresses
	mux.HandleFunc("GET /api/cart", h.Cart.Get)
	mux.HandleFunc("POST /api/cart/items", h.Cart.Add)
	mux.HandleFunc("PUT /api/cart/items/{productID}", h.Cart.Update)
	mux.HandleFunc("DELETE /api/cart/items/{productID}", h.Cart.Remove)
	mux.HandleFunc("GET /api/addresses", h.Cart.Addresses)

	// Checkout
	mux.HandleFunc("GET /api/checkout", h.Checkout.Summary)
	mux.HandleFunc("POST /api/checkout", h.Checkout.Checkout)
	mux.HandleFunc("POST /api/shipping/calculate", h.Checkout.CalculateShipping)

	// Order tracking
	mux.HandleFunc("GET /api/orders", h.Order.List)
	mux.HandleFunc("GET /api/orders/{id}", h.Order.GetByID)
	mux.HandleFunc("POST /api/orders/{id}/cancel", h.Order.Cancel)

	// Admin
	admin := http.NewServeMux()
	admin.HandleFunc("GET /api/admin/orders", h.AdminOrder.List)
	admin.HandleFunc("GET /api/admin/orders/statistics", h.AdminOrder.Statistics)
	admin.HandleFunc("GET /api/admin/orders/{id}", h.AdminOrder.GetByID)
	admin.HandleFunc("PATCH /api/admin/orders/{id}/status", h.AdminOrder.UpdateStatus)
	admin.HandleFunc("POST /api/admin/orders/{id}/confirm", h.AdminOrder.Confirm)
	admin.HandleFunc("GET /api/admin/users", h.AdminUser.List)
	admin.HandleFunc("POST /api/admin/users", h.AdminUser.Create)
	admin.HandleFunc("GET /api/admin/users/statistics", h.AdminUser.Statistics)
	admin.HandleFunc("GET /api/admin/users/{id}", h.AdminUser.GetByID)
	admin.HandleFunc("PUT /api/admin/users/{id}", h.AdminUser.Update)
	admin.HandleFunc("PATCH /api/admin/users/{id}/status", h.AdminUser.UpdateStatus)
	admin.HandleFunc("DELETE /api/admin/users/{id}", h.AdminUser.Delete)
	mux.Handle("/api/admin/", middleware.RequireAdmin(logger)(admin))

	// Apply middleware in order: Recovery -> Logging -> CORS -> Authenticate
	var handler http.Handler = mux
	handler = middleware.Authenticate(jwtSecret, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
