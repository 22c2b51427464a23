package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gudang/internal/apperror"
	"gudang/internal/models"
	"gudang/internal/repositories"

	"github.com/shopspring/decimal"
)

// ReportService answers the read-only reporting queries.
type ReportService struct {
	store repositories.Repositories
	log   *slog.Logger
	now   func() time.Time
}

// NewReportService creates a new ReportService.
func NewReportService(store repositories.Repositories, log *slog.Logger) *ReportService {
	return &ReportService{
		store: store,
		log:   log.With(slog.String("service", "report")),
		now:   time.Now,
	}
}

// DashboardStatistic reports product count, units sold and revenue at current prices.
func (s *ReportService) DashboardStatistic(ctx context.Context) (models.DashboardStatistic, error) {
	stat, err := s.store.Reports().Dashboard(ctx)
	if err != nil {
		return models.DashboardStatistic{}, fail(ctx, s.log, "dashboard statistic", err)
	}
	stat.TotalRevenue = stat.TotalRevenue.Round(2)
	return stat, nil
}

// ProductStatistic reports product count, average price and units sold.
func (s *ReportService) ProductStatistic(ctx context.Context) (models.ProductStatistic, error) {
	stat, err := s.store.Reports().ProductStatistic(ctx)
	if err != nil {
		return models.ProductStatistic{}, fail(ctx, s.log, "product statistic", err)
	}
	stat.AveragePrice = stat.AveragePrice.Round(2)
	return stat, nil
}

// LowStockProducts lists products with fewer than models.LowStockThreshold units.
func (s *ReportService) LowStockProducts(ctx context.Context) ([]models.LowStockProduct, error) {
	products, err := s.store.Reports().LowStock(ctx, models.LowStockThreshold)
	if err != nil {
		return nil, fail(ctx, s.log, "low stock products", err)
	}
	return products, nil
}

// ProductsWithDate lists the sales made from the start date through the end
// date, both days included.
func (s *ReportService) ProductsWithDate(ctx context.Context, start, end time.Time) ([]models.SaleLine, error) {
	from, to, err := dayRange(start, end)
	if err != nil {
		return nil, err
	}

	lines, err := s.store.Reports().SalesBetween(ctx, from, to)
	if err != nil {
		return nil, fail(ctx, s.log, "sales by date", err)
	}
	return lines, nil
}

// TopSaleProducts ranks products by units sold, ties broken by name.
func (s *ReportService) TopSaleProducts(ctx context.Context) ([]models.TopSaleProduct, error) {
	rows, err := s.store.Reports().TopSale(ctx, models.TopSaleLimit)
	if err != nil {
		return nil, fail(ctx, s.log, "top sale products", err)
	}
	return rows, nil
}

// DailyRevenue sums revenue per UTC day from models.DailyRevenueDays days ago
// through today. Days without sales are omitted.
func (s *ReportService) DailyRevenue(ctx context.Context) ([]models.DailyRevenue, error) {
	since := startOfDay(s.now()).AddDate(0, 0, -models.DailyRevenueDays)

	lines, err := s.store.Reports().SalesSince(ctx, since)
	if err != nil {
		return nil, fail(ctx, s.log, "daily revenue", err)
	}

	result := []models.DailyRevenue{}
	for _, line := range lines {
		day := startOfDay(line.SaleDate)
		amount := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.QuantitySold)))
		// Lines arrive ordered by date, so a new day always starts a new entry.
		if n := len(result); n > 0 && result[n-1].Date.Equal(day) {
			result[n-1].Revenue = result[n-1].Revenue.Add(amount)
			continue
		}
		result = append(result, models.DailyRevenue{Date: day, Revenue: amount})
	}
	for i := range result {
		result[i].Revenue = result[i].Revenue.Round(2)
	}
	return result, nil
}

// StockAdjustmentHistory lists a product's adjustments, oldest first.
func (s *ReportService) StockAdjustmentHistory(ctx context.Context, productID uint) ([]models.StockAdjustmentHistoryEntry, error) {
	if productID == 0 {
		return nil, apperror.Validation("productId must be greater than 0")
	}
	exists, err := s.store.Products().Exists(ctx, productID)
	if err != nil {
		return nil, fail(ctx, s.log, "check product", err)
	}
	if !exists {
		return nil, apperror.NotFound("Product not found")
	}

	entries, err := s.store.Reports().AdjustmentHistory(ctx, productID)
	if err != nil {
		return nil, fail(ctx, s.log, "stock adjustment history", err)
	}
	return entries, nil
}

// ProductDetails returns a product with its category, supplier, sales and adjustments.
func (s *ReportService) ProductDetails(ctx context.Context, id uint) (*models.ProductDetails, error) {
	view, err := s.store.Products().GetView(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Product not found")
		}
		return nil, fail(ctx, s.log, "get product", err)
	}

	sales, err := s.store.Sales().ListByProduct(ctx, id)
	if err != nil {
		return nil, fail(ctx, s.log, "list product sales", err)
	}
	adjustments, err := s.store.StockAdjustments().ListByProduct(ctx, id)
	if err != nil {
		return nil, fail(ctx, s.log, "list product adjustments", err)
	}

	return &models.ProductDetails{
		ProductID:        view.ID,
		ProductName:      view.Name,
		Price:            view.Price,
		QuantityInStock:  view.QuantityInStock,
		Category:         view.CategoryName,
		Supplier:         view.SupplierName,
		Sales:            sales,
		StockAdjustments: adjustments,
	}, nil
}

// CategoryWithProducts lists every category with its products.
func (s *ReportService) CategoryWithProducts(ctx context.Context) ([]models.CategoryWithProducts, error) {
	result, err := s.store.Categories().WithProducts(ctx)
	if err != nil {
		return nil, fail(ctx, s.log, "category with products", err)
	}
	return result, nil
}

// SupplierWithProducts lists every supplier with its product names.
func (s *ReportService) SupplierWithProducts(ctx context.Context) ([]models.SupplierWithProducts, error) {
	result, err := s.store.Suppliers().WithProducts(ctx)
	if err != nil {
		return nil, fail(ctx, s.log, "supplier with products", err)
	}
	return result, nil
}

// dayRange turns an inclusive pair of dates into the half-open UTC range
// [start day, day after end).
func dayRange(start, end time.Time) (time.Time, time.Time, error) {
	from := startOfDay(start)
	to := startOfDay(end)
	if to.Before(from) {
		return time.Time{}, time.Time{}, apperror.Validation("endDate must not be before startDate")
	}
	return from, to.AddDate(0, 0, 1), nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
