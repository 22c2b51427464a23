package repositories

import (
	"context"

	"gudang/internal/models"
)

// SupplierRepository defines the interface for supplier data access.
type SupplierRepository interface {
	List(ctx context.Context, filter models.SupplierFilter) ([]models.Supplier, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Supplier, error)
	Exists(ctx context.Context, id uint) (bool, error)
	NameTaken(ctx context.Context, name string, excludeID uint) (bool, error)
	Create(ctx context.Context, supplier *models.Supplier) error
	Update(ctx context.Context, supplier *models.Supplier) error
	Delete(ctx context.Context, id uint) error
	WithProducts(ctx context.Context) ([]models.SupplierWithProducts, error)
}
