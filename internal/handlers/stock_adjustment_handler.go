package handlers

import (
	"gudang/internal/models"
	"gudang/internal/services"

	"github.com/gofiber/fiber/v2"
)

// StockAdjustmentHandler handles HTTP requests for stock adjustments.
type StockAdjustmentHandler struct {
	service *services.StockAdjustmentService
}

// NewStockAdjustmentHandler creates a new StockAdjustmentHandler.
func NewStockAdjustmentHandler(service *services.StockAdjustmentService) *StockAdjustmentHandler {
	return &StockAdjustmentHandler{service: service}
}

// RegisterRoutes registers the stock adjustment routes on router.
func (h *StockAdjustmentHandler) RegisterRoutes(router fiber.Router) {
	adjustmentRoutes := router.Group("/stock-adjustment")
	adjustmentRoutes.Get("/", h.HandleList)
	adjustmentRoutes.Get("/:id", h.HandleGetByID)
	adjustmentRoutes.Post("/", h.HandleCreate)
	adjustmentRoutes.Put("/:id", h.HandleUpdate)
	adjustmentRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList lists adjustments, optionally for one product.
func (h *StockAdjustmentHandler) HandleList(c *fiber.Ctx) error {
	productID, err := uintQuery(c, "productId")
	if err != nil {
		return writeError(c, err)
	}

	filter := models.StockAdjustmentFilter{
		Pagination: pagination(c),
		Keyword:    keyword(c),
		ProductID:  productID,
	}
	page, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return okPage(c, page)
}

func (h *StockAdjustmentHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	adjustment, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, adjustment)
}

// HandleCreate records an adjustment and applies its signed amount to stock.
func (h *StockAdjustmentHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.StockAdjustmentRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}
	adjustment, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, adjustment, "Stock adjustment created successfully")
}

func (h *StockAdjustmentHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req models.StockAdjustmentRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}
	adjustment, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, adjustment)
}

func (h *StockAdjustmentHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return deleted(c, "Stock adjustment deleted successfully")
}
