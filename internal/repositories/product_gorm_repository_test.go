package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gudang/internal/models"
	"gudang/internal/repositories"
	"gudang/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_ListFilters(t *testing.T) {
	f := testutil.NewFixture(t)
	f.Product(t, "Green Tea", "2.50", 10)
	f.Product(t, "Black Tea", "3.00", 4)
	f.Product(t, "Coffee Beans", "12.00", 7)
	f.Product(t, "Tea_Bags 100%", "5.00", 1)
	f.Product(t, "Empty Tea", "1.00", 0)

	repo := repositories.NewGORMProductRepository(f.DB)
	ctx := context.Background()

	t.Run("keyword is case-insensitive and hides out of stock", func(t *testing.T) {
		items, total, err := repo.List(ctx, models.ProductFilter{Keyword: "TEA"})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		require.Len(t, items, 3)
		assert.Equal(t, "Black Tea", items[0].Name)
		assert.Equal(t, f.Category.Name, items[0].CategoryName)
		assert.Equal(t, f.Supplier.Name, items[0].SupplierName)
	})

	t.Run("wildcards in keyword are literal", func(t *testing.T) {
		items, total, err := repo.List(ctx, models.ProductFilter{Keyword: "_bags 100%"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, items, 1)
		assert.Equal(t, "Tea_Bags 100%", items[0].Name)

		_, total, err = repo.List(ctx, models.ProductFilter{Keyword: "%"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})

	t.Run("price bounds are inclusive", func(t *testing.T) {
		min := decimal.RequireFromString("2.50")
		max := decimal.RequireFromString("5")
		items, total, err := repo.List(ctx, models.ProductFilter{MinPrice: &min, MaxPrice: &max})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		names := make([]string, 0, len(items))
		for _, p := range items {
			names = append(names, p.Name)
		}
		assert.ElementsMatch(t, []string{"Green Tea", "Black Tea", "Tea_Bags 100%"}, names)
	})
}

func TestProductRepository_ListPagination(t *testing.T) {
	f := testutil.NewFixture(t)
	for i := 1; i <= 25; i++ {
		f.Product(t, fmt.Sprintf("Item %02d", i), "1.00", i)
	}
	repo := repositories.NewGORMProductRepository(f.DB)

	items, total, err := repo.List(context.Background(), models.ProductFilter{Pagination: models.Pagination{Page: 3, Size: 10}})
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	require.Len(t, items, 5)
	assert.Equal(t, "Item 21", items[0].Name)

	page := models.NewPage(items, models.Pagination{Page: 3, Size: 10}, total)
	assert.Equal(t, 3, page.TotalPage)
}

func TestProductRepository_UpdateLeavesStock(t *testing.T) {
	f := testutil.NewFixture(t)
	product := f.Product(t, "Green Tea", "2.50", 10)
	repo := repositories.NewGORMProductRepository(f.DB)
	ctx := context.Background()

	product.Name = "Jasmine Tea"
	product.Price = decimal.RequireFromString("4.25")
	product.QuantityInStock = 999
	require.NoError(t, repo.Update(ctx, &product))

	view, err := repo.GetView(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jasmine Tea", view.Name)
	assert.True(t, decimal.RequireFromString("4.25").Equal(view.Price))
	assert.Equal(t, 10, view.QuantityInStock)
}

func TestProductRepository_NameTaken(t *testing.T) {
	f := testutil.NewFixture(t)
	product := f.Product(t, "Green Tea", "2.50", 10)
	repo := repositories.NewGORMProductRepository(f.DB)
	ctx := context.Background()

	taken, err := repo.NameTaken(ctx, "  green TEA ", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.NameTaken(ctx, "green tea", product.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestProductRepository_NotFound(t *testing.T) {
	f := testutil.NewFixture(t)
	repo := repositories.NewGORMProductRepository(f.DB)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = repo.GetView(ctx, 42)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 42), repositories.ErrNotFound)
}

func TestCategoryRepository_DeleteReferenced(t *testing.T) {
	f := testutil.NewFixture(t)
	f.Product(t, "Green Tea", "2.50", 10)
	repo := repositories.NewGORMCategoryRepository(f.DB)
	ctx := context.Background()

	assert.ErrorIs(t, repo.Delete(ctx, f.Category.ID), repositories.ErrReferenced)

	exists, err := repo.Exists(ctx, f.Category.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestProductRepository_DeleteReferenced(t *testing.T) {
	f := testutil.NewFixture(t)
	product := f.Product(t, "Green Tea", "2.50", 10)
	require.NoError(t, f.DB.Create(&models.StockAdjustment{
		ProductID:        product.ID,
		AdjustmentAmount: 2,
		Reason:           "recount",
		AdjustmentDate:   time.Now().UTC(),
	}).Error)
	repo := repositories.NewGORMProductRepository(f.DB)

	assert.ErrorIs(t, repo.Delete(context.Background(), product.ID), repositories.ErrReferenced)
	assert.ErrorIs(t, repositories.NewGORMSupplierRepository(f.DB).Delete(context.Background(), f.Supplier.ID), repositories.ErrReferenced)
}

func TestCategoryRepository_WithProducts(t *testing.T) {
	f := testutil.NewFixture(t)
	f.Product(t, "Green Tea", "2.50", 10)
	f.Product(t, "Black Tea", "3.00", 4)
	empty := models.Category{Name: "Appliances"}
	require.NoError(t, f.DB.Create(&empty).Error)

	result, err := repositories.NewGORMCategoryRepository(f.DB).WithProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, "Appliances", result[0].Name)
	assert.Empty(t, result[0].Products)
	assert.NotNil(t, result[0].Products)

	assert.Equal(t, "Beverages", result[1].Name)
	require.Len(t, result[1].Products, 2)
	assert.Equal(t, "Black Tea", result[1].Products[0].Name)
	assert.Equal(t, 4, result[1].Products[0].QuantityInStock)
}

func TestSupplierRepository_WithProducts(t *testing.T) {
	f := testutil.NewFixture(t)
	f.Product(t, "Green Tea", "2.50", 10)
	f.Product(t, "Black Tea", "3.00", 4)

	result, err := repositories.NewGORMSupplierRepository(f.DB).WithProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, f.Supplier.ID, result[0].SupplierID)
	assert.Equal(t, []string{"Black Tea", "Green Tea"}, result[0].ProductNames)
}
