package handlers

import (
	"gudang/internal/models"
	"gudang/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// RegisterRoutes registers the category routes on router.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/category")
	categoryRoutes.Get("/", h.HandleList)
	categoryRoutes.Get("/:id", h.HandleGetByID)
	categoryRoutes.Post("/", h.HandleCreate)
	categoryRoutes.Put("/:id", h.HandleUpdate)
	categoryRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList lists categories filtered by keyword.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	filter := models.CategoryFilter{Pagination: pagination(c), Keyword: keyword(c)}
	page, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return okPage(c, page)
}

// HandleGetByID retrieves a single category.
func (h *CategoryHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	category, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, category)
}

// HandleCreate creates a category.
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CategoryRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}
	category, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, category, "Category created successfully")
}

// HandleUpdate renames a category.
func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req models.CategoryRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}
	category, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, category)
}

// HandleDelete deletes a category that no product references.
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return deleted(c, "Category deleted successfully")
}
