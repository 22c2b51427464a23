package handlers

import (
	"gudang/internal/models"
	"gudang/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SupplierHandler handles HTTP requests for suppliers.
type SupplierHandler struct {
	service *services.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler.
func NewSupplierHandler(service *services.SupplierService) *SupplierHandler {
	return &SupplierHandler{service: service}
}

// RegisterRoutes registers the supplier routes on router.
func (h *SupplierHandler) RegisterRoutes(router fiber.Router) {
	supplierRoutes := router.Group("/supplier")
	supplierRoutes.Get("/", h.HandleList)
	supplierRoutes.Get("/:id", h.HandleGetByID)
	supplierRoutes.Post("/", h.HandleCreate)
	supplierRoutes.Put("/:id", h.HandleUpdate)
	supplierRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList lists suppliers.
func (h *SupplierHandler) HandleList(c *fiber.Ctx) error {
	filter := models.SupplierFilter{Pagination: pagination(c), Keyword: keyword(c)}
	page, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return okPage(c, page)
}

// HandleGetByID retrieves a single supplier.
func (h *SupplierHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	supplier, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, supplier)
}

// HandleCreate creates a supplier.
func (h *SupplierHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.SupplierRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}
	supplier, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, supplier, "Supplier created successfully")
}

// HandleUpdate updates a supplier.
func (h *SupplierHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req models.SupplierRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}
	supplier, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, supplier)
}

// HandleDelete deletes a supplier without products.
func (h *SupplierHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return deleted(c, "Supplier deleted successfully")
}
