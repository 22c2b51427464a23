package repositories

import (
	"context"
	"time"

	"gudang/internal/models"
)

// ReportRepository defines the read-only aggregate queries behind the reports.
type ReportRepository interface {
	Dashboard(ctx context.Context) (models.DashboardStatistic, error)
	ProductStatistic(ctx context.Context) (models.ProductStatistic, error)
	LowStock(ctx context.Context, threshold int) ([]models.LowStockProduct, error)
	// SalesBetween returns the sales in [from, to), oldest first.
	SalesBetween(ctx context.Context, from, to time.Time) ([]models.SaleLine, error)
	// SalesSince returns the sales at or after since, oldest first.
	SalesSince(ctx context.Context, since time.Time) ([]models.SaleLine, error)
	TopSale(ctx context.Context, limit int) ([]models.TopSaleProduct, error)
	AdjustmentHistory(ctx context.Context, productID uint) ([]models.StockAdjustmentHistoryEntry, error)
}
