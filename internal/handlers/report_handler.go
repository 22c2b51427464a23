package handlers

import (
	"gudang/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler serves the read-only reporting endpoints.
type ReportHandler struct {
	service *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// RegisterRoutes registers the report routes on router.
func (h *ReportHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/dashboard-statistics", h.HandleDashboardStatistics)
	router.Get("/product-statistics", h.HandleProductStatistics)
	router.Get("/low-stock-products", h.HandleLowStockProducts)
	router.Get("/sales-by-date", h.HandleSalesByDate)
	router.Get("/stock-adjustment-history", h.HandleStockAdjustmentHistory)
	router.Get("/top-sale-product", h.HandleTopSaleProducts)
	router.Get("/daily-revenue", h.HandleDailyRevenue)
	router.Get("/details/:id", h.HandleProductDetails)
	router.Get("/category-with-products", h.HandleCategoryWithProducts)
	router.Get("/supplier-with-products", h.HandleSupplierWithProducts)
}

func (h *ReportHandler) HandleDashboardStatistics(c *fiber.Ctx) error {
	stats, err := h.service.DashboardStatistic(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, stats)
}

func (h *ReportHandler) HandleProductStatistics(c *fiber.Ctx) error {
	stats, err := h.service.ProductStatistic(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, stats)
}

// HandleLowStockProducts lists products whose stock is below the alert threshold.
func (h *ReportHandler) HandleLowStockProducts(c *fiber.Ctx) error {
	products, err := h.service.LowStockProducts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, products)
}

// HandleSalesByDate lists sale lines between startDate and endDate, both days included.
func (h *ReportHandler) HandleSalesByDate(c *fiber.Ctx) error {
	start, err := requiredTime(c, "startDate")
	if err != nil {
		return writeError(c, err)
	}
	end, err := requiredTime(c, "endDate")
	if err != nil {
		return writeError(c, err)
	}

	lines, err := h.service.ProductsWithDate(c.UserContext(), start, end)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, lines)
}

func (h *ReportHandler) HandleStockAdjustmentHistory(c *fiber.Ctx) error {
	productID, err := uintQuery(c, "productId")
	if err != nil {
		return writeError(c, err)
	}
	history, err := h.service.StockAdjustmentHistory(c.UserContext(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, history)
}

func (h *ReportHandler) HandleTopSaleProducts(c *fiber.Ctx) error {
	products, err := h.service.TopSaleProducts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, products)
}

// HandleDailyRevenue returns revenue per day for the last week.
func (h *ReportHandler) HandleDailyRevenue(c *fiber.Ctx) error {
	revenue, err := h.service.DailyRevenue(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, revenue)
}

func (h *ReportHandler) HandleProductDetails(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	details, err := h.service.ProductDetails(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, details)
}

func (h *ReportHandler) HandleCategoryWithProducts(c *fiber.Ctx) error {
	categories, err := h.service.CategoryWithProducts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, categories)
}

func (h *ReportHandler) HandleSupplierWithProducts(c *fiber.Ctx) error {
	suppliers, err := h.service.SupplierWithProducts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, suppliers)
}
