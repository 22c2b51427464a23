// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"gudang/internal/models"
	"gudang/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory SQLite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := repositories.Open("sqlite", dsn)
	require.NoError(t, err, "failed to open in-memory database")
	require.NoError(t, repositories.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Fixture is a category and supplier that products can be attached to.
type Fixture struct {
	DB       *gorm.DB
	Category models.Category
	Supplier models.Supplier
}

// NewFixture opens a database and inserts one category and one supplier.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()

	f := &Fixture{
		DB:       NewDB(t),
		Category: models.Category{Name: "Beverages"},
		Supplier: models.Supplier{Name: "Acme Trading", Phone: "0812345678"},
	}
	require.NoError(t, f.DB.Create(&f.Category).Error)
	require.NoError(t, f.DB.Create(&f.Supplier).Error)
	return f
}

// Product inserts a product in the fixture's category and supplier.
func (f *Fixture) Product(t *testing.T, name, price string, stock int) models.Product {
	t.Helper()

	p := models.Product{
		Name:            name,
		Price:           decimal.RequireFromString(price),
		QuantityInStock: stock,
		CategoryID:      f.Category.ID,
		SupplierID:      f.Supplier.ID,
	}
	require.NoError(t, f.DB.Omit("Category", "Supplier").Create(&p).Error)
	return p
}

// Stock reads the current stock of a product.
func (f *Fixture) Stock(t *testing.T, productID uint) int {
	t.Helper()

	var p models.Product
	require.NoError(t, f.DB.First(&p, productID).Error)
	return p.QuantityInStock
}
