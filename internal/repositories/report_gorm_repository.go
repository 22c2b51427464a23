package repositories

import (
	"context"
	"time"

	"gudang/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const saleLineColumns = "sales.id AS id, sales.product_id AS product_id, products.name AS product_name, " +
	"sales.quantity_sold AS quantity_sold, products.price AS unit_price, sales.sale_date AS sale_date"

// GORMReportRepository is a GORM implementation of ReportRepository.
type GORMReportRepository struct {
	db *gorm.DB
}

// NewGORMReportRepository creates a new instance of GORMReportRepository.
func NewGORMReportRepository(db *gorm.DB) *GORMReportRepository {
	return &GORMReportRepository{db: db}
}

type salesTotalsRow struct {
	TotalSold    int64
	TotalRevenue decimal.Decimal
}

type productTotalsRow struct {
	TotalProducts int64
	AveragePrice  decimal.Decimal
}

func (r *GORMReportRepository) salesTotals(db *gorm.DB) (salesTotalsRow, error) {
	var row salesTotalsRow
	err := db.Table("sales").
		Joins("JOIN products ON products.id = sales.product_id").
		Select("COALESCE(SUM(sales.quantity_sold), 0) AS total_sold, " +
			"COALESCE(SUM(sales.quantity_sold * products.price), 0) AS total_revenue").
		Scan(&row).Error
	return row, err
}

// Dashboard counts products and sums units sold and revenue at current prices.
func (r *GORMReportRepository) Dashboard(ctx context.Context) (models.DashboardStatistic, error) {
	db := r.db.WithContext(ctx)

	var stat models.DashboardStatistic
	if err := db.Model(&models.Product{}).Count(&stat.TotalProducts).Error; err != nil {
		return stat, translate(err, "failed to count products")
	}

	totals, err := r.salesTotals(db)
	if err != nil {
		return stat, translate(err, "failed to sum sales")
	}
	stat.TotalSales = totals.TotalSold
	stat.TotalRevenue = totals.TotalRevenue
	return stat, nil
}

// ProductStatistic counts products and averages their prices.
func (r *GORMReportRepository) ProductStatistic(ctx context.Context) (models.ProductStatistic, error) {
	db := r.db.WithContext(ctx)

	var stat models.ProductStatistic
	var products productTotalsRow
	err := db.Model(&models.Product{}).
		Select("COUNT(*) AS total_products, COALESCE(AVG(price), 0) AS average_price").
		Scan(&products).Error
	if err != nil {
		return stat, translate(err, "failed to aggregate products")
	}

	totals, err := r.salesTotals(db)
	if err != nil {
		return stat, translate(err, "failed to sum sales")
	}

	stat.TotalProducts = products.TotalProducts
	stat.AveragePrice = products.AveragePrice
	stat.TotalSold = totals.TotalSold
	return stat, nil
}

// LowStock lists the products whose stock is below threshold, scarcest first.
func (r *GORMReportRepository) LowStock(ctx context.Context, threshold int) ([]models.LowStockProduct, error) {
	products := []models.LowStockProduct{}
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("id, name, quantity_in_stock").
		Where("quantity_in_stock < ?", threshold).
		Order("quantity_in_stock ASC, name ASC").
		Scan(&products).Error
	if err != nil {
		return nil, translate(err, "failed to list low stock products")
	}
	return products, nil
}

func (r *GORMReportRepository) saleLines(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("sales").
		Joins("JOIN products ON products.id = sales.product_id").
		Select(saleLineColumns).
		Order("sales.sale_date ASC, sales.id ASC")
}

// SalesBetween implements ReportRepository.
func (r *GORMReportRepository) SalesBetween(ctx context.Context, from, to time.Time) ([]models.SaleLine, error) {
	lines := []models.SaleLine{}
	err := r.saleLines(ctx).
		Where("sales.sale_date >= ? AND sales.sale_date < ?", from.UTC(), to.UTC()).
		Scan(&lines).Error
	if err != nil {
		return nil, translate(err, "failed to list sales between %s and %s", from.Format(time.DateOnly), to.Format(time.DateOnly))
	}
	return lines, nil
}

// SalesSince implements ReportRepository.
func (r *GORMReportRepository) SalesSince(ctx context.Context, since time.Time) ([]models.SaleLine, error) {
	lines := []models.SaleLine{}
	if err := r.saleLines(ctx).Where("sales.sale_date >= ?", since.UTC()).Scan(&lines).Error; err != nil {
		return nil, translate(err, "failed to list sales since %s", since.Format(time.DateOnly))
	}
	return lines, nil
}

// TopSale sums units sold per product name, best sellers first with ties broken by name.
func (r *GORMReportRepository) TopSale(ctx context.Context, limit int) ([]models.TopSaleProduct, error) {
	rows := []models.TopSaleProduct{}
	err := r.db.WithContext(ctx).
		Table("sales").
		Joins("JOIN products ON products.id = sales.product_id").
		Select("products.name AS product_name, SUM(sales.quantity_sold) AS total_sold").
		Group("products.name").
		Order("total_sold DESC, products.name ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "failed to rank products by sales")
	}
	return rows, nil
}

// AdjustmentHistory lists the adjustments of a product, oldest first.
func (r *GORMReportRepository) AdjustmentHistory(ctx context.Context, productID uint) ([]models.StockAdjustmentHistoryEntry, error) {
	entries := []models.StockAdjustmentHistoryEntry{}
	err := r.db.WithContext(ctx).
		Model(&models.StockAdjustment{}).
		Select("adjustment_date, adjustment_amount AS amount, reason").
		Where("product_id = ?", productID).
		Order("adjustment_date ASC, id ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, translate(err, "failed to list stock adjustment history of product %d", productID)
	}
	return entries, nil
}
