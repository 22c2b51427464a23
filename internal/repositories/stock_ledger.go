package repositories

import (
	"context"

	"gudang/internal/models"

	"gorm.io/gorm"
)

// StockLedger is the only writer of products.quantity_in_stock.
type StockLedger interface {
	// Apply adds delta (negative for outgoing stock) to the product's stock and
	// returns the new quantity. It fails with ErrInsufficientStock when the
	// result would be negative and with ErrNotFound when the product is missing.
	Apply(ctx context.Context, productID uint, delta int) (int, error)
}

// GORMStockLedger is a GORM implementation of StockLedger.
type GORMStockLedger struct {
	db *gorm.DB
}

// NewGORMStockLedger creates a new instance of GORMStockLedger.
func NewGORMStockLedger(db *gorm.DB) *GORMStockLedger {
	return &GORMStockLedger{db: db}
}

// Apply implements StockLedger. The bound check and the write are one UPDATE,
// so concurrent movements on the same product cannot both pass the check.
func (l *GORMStockLedger) Apply(ctx context.Context, productID uint, delta int) (int, error) {
	db := l.db.WithContext(ctx)

	res := db.Model(&models.Product{}).
		Where("id = ? AND quantity_in_stock + ? >= 0", productID, delta).
		UpdateColumn("quantity_in_stock", gorm.Expr("quantity_in_stock + ?", delta))
	if res.Error != nil {
		return 0, translate(res.Error, "failed to apply stock movement to product %d", productID)
	}

	if res.RowsAffected == 0 {
		var count int64
		if err := db.Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
			return 0, translate(err, "failed to check product %d", productID)
		}
		if count == 0 {
			return 0, ErrNotFound
		}
		return 0, ErrInsufficientStock
	}

	var quantity int
	err := db.Model(&models.Product{}).
		Select("quantity_in_stock").
		Where("id = ?", productID).
		Scan(&quantity).Error
	if err != nil {
		return 0, translate(err, "failed to read stock of product %d", productID)
	}
	return quantity, nil
}
