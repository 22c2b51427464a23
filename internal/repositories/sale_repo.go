package repositories

import (
	"context"

	"gudang/internal/models"
)

// SaleRepository defines the interface for sale data access. Stock effects of
// a sale are applied separately through StockLedger in the same transaction.
type SaleRepository interface {
	List(ctx context.Context, filter models.SaleFilter) ([]models.SaleResponse, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Sale, error)
	GetView(ctx context.Context, id uint) (*models.SaleResponse, error)
	ListByProduct(ctx context.Context, productID uint) ([]models.SaleResponse, error)
	Create(ctx context.Context, sale *models.Sale) error
	Update(ctx context.Context, sale *models.Sale) error
	Delete(ctx context.Context, id uint) error
}
