package repository

import (
	"context"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProducts(now time.Time) []model.Product {
	return []model.Product{
		{ID: "P001", Name: "Chí Phèo", Author: "Nam Cao", Price: 100000, Category: "Truyện ngắn", Stock: 5, CreatedAt: now},
		{ID: "P002", Name: "Dế Mèn Phiêu Lưu Ký", Author: "Tô Hoài", Price: 200000, Category: "Thiếu nhi", Stock: 0, CreatedAt: now},
		{ID: "P003", Name: "Số Đỏ", Author: "Vũ Trọng Phụng", Price: 300000, Category: "Tiểu thuyết", Stock: 10, CreatedAt: now},
		{ID: "P004", Name: "Thơ Thơ", Author: "Xuân Diệu", Price: 400000, Category: "Thơ", Stock: 1, CreatedAt: now},
		{ID: "P005", Name: "Truyện Kiều 100%", Author: "Nguyễn Du", Price: 500000, Category: "Thơ", Stock: 2, CreatedAt: now},
	}
}

func TestProductRepository_List(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())
	seedProducts(t, pool, sampleProducts(time.Now()))

	tests := []struct {
		name     string
		filter   model.ProductFilter
		expected []string
	}{
		{name: "First page", filter: model.ProductFilter{Limit: 2}, expected: []string{"P001", "P002"}},
		{name: "Second page", filter: model.ProductFilter{Limit: 2, Offset: 2}, expected: []string{"P003", "P004"}},
		{name: "Offset beyond results", filter: model.ProductFilter{Limit: 10, Offset: 10}, expected: []string{}},
		{name: "Category", filter: model.ProductFilter{Category: "Thơ"}, expected: []string{"P004", "P005"}},
		{name: "Author search is case-insensitive", filter: model.ProductFilter{Query: "tô hoài"}, expected: []string{"P002"}},
		{name: "Name search", filter: model.ProductFilter{Query: "số"}, expected: []string{"P003"}},
		{name: "Wildcards are literal", filter: model.ProductFilter{Query: "%"}, expected: []string{"P005"}},
		{name: "In stock only", filter: model.ProductFilter{Category: "Thiếu nhi", InStockOnly: true}, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := repo.List(context.Background(), tt.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(products))
			for _, p := range products {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestProductRepository_List_ScansAllColumns(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())
	seeded := sampleProducts(time.Now())
	seedProducts(t, pool, seeded)

	products, err := repo.List(context.Background(), model.ProductFilter{Query: "Nam Cao"})
	require.NoError(t, err)
	require.Len(t, products, 1)

	assert.Equal(t, seeded[0].Name, products[0].Name)
	assert.Equal(t, seeded[0].Author, products[0].Author)
	assert.Equal(t, seeded[0].Price, products[0].Price)
	assert.Equal(t, seeded[0].Category, products[0].Category)
	assert.Equal(t, seeded[0].Stock, products[0].Stock)
	assert.False(t, products[0].CreatedAt.IsZero())
}

func TestProductRepository_GetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())
	products := sampleProducts(time.Now())
	seedProducts(t, pool, products)

	t.Run("Product exists", func(t *testing.T) {
		product, err := repo.GetByID(context.Background(), "P001")

		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, products[0].Name, product.Name)
		assert.Equal(t, products[0].Author, product.Author)
		assert.Equal(t, products[0].Price, product.Price)
		assert.Equal(t, products[0].Stock, product.Stock)
	})

	t.Run("Product does not exist", func(t *testing.T) {
		product, err := repo.GetByID(context.Background(), "P999")

		require.NoError(t, err)
		assert.Nil(t, product)
	})
}

func TestProductRepository_DecrementStock(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())
	seedProducts(t, pool, sampleProducts(time.Now()))
	ctx := context.Background()

	tests := []struct {
		name          string
		id            string
		quantity      int
		expectedOK    bool
		expectedStock int
	}{
		{name: "Enough stock", id: "P001", quantity: 3, expectedOK: true, expectedStock: 2},
		{name: "Exactly remaining stock", id: "P001", quantity: 2, expectedOK: true, expectedStock: 0},
		{name: "Out of stock", id: "P001", quantity: 1, expectedOK: false, expectedStock: 0},
		{name: "More than available", id: "P003", quantity: 11, expectedOK: false, expectedStock: 10},
		{name: "Unknown product", id: "P999", quantity: 1, expectedOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := pool.Begin(ctx)
			require.NoError(t, err)

			ok, err := repo.DecrementStock(ctx, tx, tt.id, tt.quantity)
			require.NoError(t, err)
			require.NoError(t, tx.Commit(ctx))

			assert.Equal(t, tt.expectedOK, ok)

			if tt.id != "P999" {
				p, err := repo.GetByID(ctx, tt.id)
				require.NoError(t, err)
				assert.Equal(t, tt.expectedStock, p.Stock)
			}
		})
	}
}
