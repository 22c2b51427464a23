package repositories

import (
	"context"

	"gudang/internal/models"
)

// StockAdjustmentRepository defines the interface for stock adjustment data access.
type StockAdjustmentRepository interface {
	List(ctx context.Context, filter models.StockAdjustmentFilter) ([]models.StockAdjustmentResponse, int64, error)
	GetByID(ctx context.Context, id uint) (*models.StockAdjustment, error)
	GetView(ctx context.Context, id uint) (*models.StockAdjustmentResponse, error)
	ListByProduct(ctx context.Context, productID uint) ([]models.StockAdjustmentResponse, error)
	Create(ctx context.Context, adjustment *models.StockAdjustment) error
	Update(ctx context.Context, adjustment *models.StockAdjustment) error
	Delete(ctx context.Context, id uint) error
}
