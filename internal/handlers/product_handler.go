package handlers

import (
	"gudang/internal/models"
	"gudang/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// RegisterRoutes registers the product routes on router.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/product")
	productRoutes.Get("/", h.HandleList)
	productRoutes.Get("/:id", h.HandleGetByID)
	productRoutes.Post("/", h.HandleCreate)
	productRoutes.Put("/:id", h.HandleUpdate)
	productRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList lists in-stock products filtered by keyword and price range.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	minPrice, err := decimalQuery(c, "minPrice")
	if err != nil {
		return writeError(c, err)
	}
	maxPrice, err := decimalQuery(c, "maxPrice")
	if err != nil {
		return writeError(c, err)
	}

	filter := models.ProductFilter{
		Pagination: pagination(c),
		Keyword:    keyword(c),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
	}
	page, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return okPage(c, page)
}

// HandleGetByID retrieves a single product with its category and supplier names.
func (h *ProductHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	product, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, product)
}

// HandleCreate creates a product with its initial stock.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.ProductCreateRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}
	product, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, product, "Product created successfully")
}

// HandleUpdate updates a product. Stock is only changed through sales and adjustments.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req models.ProductUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}
	product, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, product)
}

// HandleDelete deletes a product without sales or adjustments.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return deleted(c, "Product deleted successfully")
}
