package integration

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"storefront/internal/auth"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
	"storefront/internal/shipping"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testSecret = []byte("integration-secret")

// TestDB holds test database resources.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL container with the application schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}

	if err := database.EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: pgContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// recordingNotifier captures notifications instead of sending them.
type recordingNotifier struct {
	mu        sync.Mutex
	placed    []model.Order
	confirmed []model.Order
}

func (n *recordingNotifier) OrderPlaced(order model.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.placed = append(n.placed, order)
}

func (n *recordingNotifier) OrderConfirmed(order model.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmed = append(n.confirmed, order)
}

func (n *recordingNotifier) counts() (placed, confirmed int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.placed), len(n.confirmed)
}

// App is the fully wired HTTP stack over a test database.
type App struct {
	Handler  http.Handler
	Notifier *recordingNotifier
	Orders   repository.OrderRepository
	Users    repository.UserRepository
}

// NewApp wires repositories, services and the router the same way the API
// binary does, with notifications recorded in memory.
func NewApp(t *testing.T, pool *pgxpool.Pool) *App {
	t.Helper()

	logger := zerolog.Nop()
	notifier := &recordingNotifier{}

	productRepo := repository.NewProductRepository(pool, logger)
	addressRepo := repository.NewAddressRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	reviewRepo := repository.NewReviewRepository(pool, logger)

	productService := service.NewProductService(productRepo, logger)
	cartService := service.NewCartService(cartRepo, productRepo, addressRepo, logger)
	checkoutService := service.NewCheckoutService(orderRepo, cartRepo, addressRepo, productRepo, shipping.DefaultRates(), notifier, logger)
	orderService := service.NewOrderService(orderRepo, addressRepo, notifier, logger)
	userService := service.NewUserService(userRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, productRepo, logger)

	h := router.New(router.Handlers{
		Product:    handler.NewProductHandler(productService, logger),
		Review:     handler.NewReviewHandler(reviewService, logger),
		Checkout:   handler.NewCheckoutHandler(checkoutService, cartService, logger),
		Cart:       handler.NewCartHandler(cartService, logger),
		Order:      handler.NewOrderHandler(orderService, logger),
		AdminOrder: handler.NewAdminOrderHandler(orderService, logger),
		AdminUser:  handler.NewAdminUserHandler(userService, logger),
	}, testSecret, logger)

	return &App{Handler: h, Notifier: notifier, Orders: orderRepo, Users: userRepo}
}

// Token issues a bearer token for userID.
func Token(t *testing.T, userID int64, role model.Role) string {
	t.Helper()

	token, err := auth.IssueToken(testSecret, auth.Principal{UserID: userID, Role: role}, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

// SeedUser inserts an active user and returns its ID.
func SeedUser(t *testing.T, pool *pgxpool.Pool, name string, role model.Role) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, 'x', $3)
		RETURNING id
	`, name, fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]), role).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", name, err)
	}
	return id
}

// SeedProducts inserts the book catalogue used by the tests.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	products := []struct {
		id       string
		name     string
		author   string
		price    int64
		category string
		stock    int
	}{
		{"B001", "Số Đỏ", "Vũ Trọng Phụng", 150_000, "Văn học", 5},
		{"B002", "Dế Mèn Phiêu Lưu Ký", "Tô Hoài", 90_000, "Thiếu nhi", 10},
		{"B003", "Tắt Đèn", "Ngô Tất Tố", 1_200_000, "Văn học", 1},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx,
			"INSERT INTO products (id, name, author, price, category, stock) VALUES ($1, $2, $3, $4, $5, $6)",
			p.id, p.name, p.author, p.price, p.category, p.stock,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.id, err)
		}
	}
}

// SeedAddress inserts an address for userID and returns its ID.
func SeedAddress(t *testing.T, pool *pgxpool.Pool, userID int64, city string, isDefault bool) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO addresses (id, user_id, full_name, phone_number, details, ward, district, city, country, is_default)
		VALUES ($1, $2, 'Nguyễn Văn A', '0912345678', '12 Tràng Tiền', 'Tràng Tiền', 'Hoàn Kiếm', $3, 'Việt Nam', $4)
	`, id, userID, city, isDefault)
	if err != nil {
		t.Fatalf("failed to seed address: %v", err)
	}
	return id
}

// Stock returns the current stock of productID.
func Stock(t *testing.T, pool *pgxpool.Pool, productID string) int {
	t.Helper()

	var stock int
	if err := pool.QueryRow(context.Background(), "SELECT stock FROM products WHERE id = $1", productID).Scan(&stock); err != nil {
		t.Fatalf("failed to read stock of %s: %v", productID, err)
	}
	return stock
}

// CleanupDB removes all rows from the application tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"reviews", "order_items", "orders", "cart_items", "addresses", "products", "users"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
