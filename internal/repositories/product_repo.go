package repositories

import (
	"context"

	"gudang/internal/models"
)

// ProductRepository defines the interface for product data access.
// Stock is never written here; see StockLedger.
type ProductRepository interface {
	List(ctx context.Context, filter models.ProductFilter) ([]models.ProductResponse, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	GetView(ctx context.Context, id uint) (*models.ProductResponse, error)
	Exists(ctx context.Context, id uint) (bool, error)
	NameTaken(ctx context.Context, name string, excludeID uint) (bool, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
}
