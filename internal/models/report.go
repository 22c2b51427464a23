package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock level under which a product is reported as low.
const LowStockThreshold = 5

// TopSaleLimit is the number of products in the top-selling report.
const TopSaleLimit = 5

// DailyRevenueDays is how many days before today the daily revenue report covers.
const DailyRevenueDays = 7

// DashboardStatistic summarizes the whole inventory.
type DashboardStatistic struct {
	TotalProducts int64           `json:"totalProducts"`
	TotalSales    int64           `json:"totalSales"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
}

// ProductStatistic summarizes the product catalogue.
type ProductStatistic struct {
	TotalProducts int64           `json:"totalProducts"`
	AveragePrice  decimal.Decimal `json:"averagePrice"`
	TotalSold     int64           `json:"totalSold"`
}

// LowStockProduct is a product whose stock is under LowStockThreshold.
type LowStockProduct struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	QuantityInStock int    `json:"quantityInStock"`
}

// TopSaleProduct is the total quantity sold of one product.
type TopSaleProduct struct {
	ProductName string `json:"productName"`
	TotalSold   int64  `json:"totalSold"`
}

// DailyRevenue is the revenue of one UTC calendar day.
type DailyRevenue struct {
	Date    time.Time       `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// SaleLine is a sale joined with its product, used by date-range reports and exports.
type SaleLine struct {
	ID           uint            `json:"id"`
	ProductID    uint            `json:"productId"`
	ProductName  string          `json:"productName"`
	QuantitySold int             `json:"quantitySold"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	SaleDate     time.Time       `json:"saleDate"`
}

// ProductDetails is a product with its full sale and adjustment history.
type ProductDetails struct {
	ProductID        uint                      `json:"productId"`
	ProductName      string                    `json:"productName"`
	Price            decimal.Decimal           `json:"price"`
	QuantityInStock  int                       `json:"quantityInStock"`
	Category         string                    `json:"category"`
	Supplier         string                    `json:"supplier"`
	Sales            []SaleResponse            `json:"sales"`
	StockAdjustments []StockAdjustmentResponse `json:"stockAdjustments"`
}
