package repositories

import (
	"context"

	"gudang/internal/models"

	"gorm.io/gorm"
)

const adjustmentViewColumns = "stock_adjustments.id AS id, stock_adjustments.product_id AS product_id, " +
	"products.name AS product_name, stock_adjustments.adjustment_amount AS adjustment_amount, " +
	"stock_adjustments.reason AS reason, stock_adjustments.adjustment_date AS adjustment_date"

// GORMStockAdjustmentRepository is a GORM implementation of StockAdjustmentRepository.
type GORMStockAdjustmentRepository struct {
	db *gorm.DB
}

// NewGORMStockAdjustmentRepository creates a new instance of GORMStockAdjustmentRepository.
func NewGORMStockAdjustmentRepository(db *gorm.DB) *GORMStockAdjustmentRepository {
	return &GORMStockAdjustmentRepository{db: db}
}

func (r *GORMStockAdjustmentRepository) views(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.StockAdjustment{}).
		Joins("JOIN products ON products.id = stock_adjustments.product_id")
}

// List returns one page of adjustments matching filter, newest first.
func (r *GORMStockAdjustmentRepository) List(ctx context.Context, filter models.StockAdjustmentFilter) ([]models.StockAdjustmentResponse, int64, error) {
	q := r.views(ctx).Scopes(nameContains("products.name", filter.Keyword))
	if filter.ProductID > 0 {
		q = q.Where("stock_adjustments.product_id = ?", filter.ProductID)
	}
	q = q.Session(&gorm.Session{})

	var adjustments []models.StockAdjustmentResponse
	order := "stock_adjustments.adjustment_date DESC, stock_adjustments.id DESC"
	total, err := countAndFind(q, filter.Pagination.Normalize(), adjustmentViewColumns, order, &adjustments)
	if err != nil {
		return nil, 0, translate(err, "failed to list stock adjustments")
	}
	return adjustments, total, nil
}

// GetByID retrieves a single adjustment by its ID.
func (r *GORMStockAdjustmentRepository) GetByID(ctx context.Context, id uint) (*models.StockAdjustment, error) {
	var adjustment models.StockAdjustment
	if err := r.db.WithContext(ctx).First(&adjustment, id).Error; err != nil {
		return nil, translate(err, "failed to get stock adjustment %d", id)
	}
	return &adjustment, nil
}

// GetView retrieves an adjustment together with its product name.
func (r *GORMStockAdjustmentRepository) GetView(ctx context.Context, id uint) (*models.StockAdjustmentResponse, error) {
	var view models.StockAdjustmentResponse
	res := r.views(ctx).Select(adjustmentViewColumns).Where("stock_adjustments.id = ?", id).Limit(1).Scan(&view)
	if res.Error != nil {
		return nil, translate(res.Error, "failed to get stock adjustment %d", id)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &view, nil
}

// ListByProduct returns every adjustment of a product, oldest first.
func (r *GORMStockAdjustmentRepository) ListByProduct(ctx context.Context, productID uint) ([]models.StockAdjustmentResponse, error) {
	adjustments := []models.StockAdjustmentResponse{}
	err := r.views(ctx).
		Select(adjustmentViewColumns).
		Where("stock_adjustments.product_id = ?", productID).
		Order("stock_adjustments.adjustment_date ASC, stock_adjustments.id ASC").
		Scan(&adjustments).Error
	if err != nil {
		return nil, translate(err, "failed to list stock adjustments of product %d", productID)
	}
	return adjustments, nil
}

// Create inserts a new adjustment.
func (r *GORMStockAdjustmentRepository) Create(ctx context.Context, adjustment *models.StockAdjustment) error {
	if err := r.db.WithContext(ctx).Omit("Product").Create(adjustment).Error; err != nil {
		return translate(err, "failed to create stock adjustment")
	}
	return nil
}

// Update writes the product, amount and reason of an existing adjustment.
func (r *GORMStockAdjustmentRepository) Update(ctx context.Context, adjustment *models.StockAdjustment) error {
	res := r.db.WithContext(ctx).
		Model(adjustment).
		Select("product_id", "adjustment_amount", "reason").
		Updates(adjustment)
	if res.Error != nil {
		return translate(res.Error, "failed to update stock adjustment %d", adjustment.ID)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an adjustment.
func (r *GORMStockAdjustmentRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.StockAdjustment{}, id)
	if res.Error != nil {
		return translate(res.Error, "failed to delete stock adjustment %d", id)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
