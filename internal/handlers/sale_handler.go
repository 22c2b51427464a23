package handlers

import (
	"fmt"
	"strings"

	"gudang/internal/apperror"
	"gudang/internal/models"
	"gudang/internal/services"

	"github.com/gofiber/fiber/v2"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

// SaleHandler handles HTTP requests for sales and the sales export.
type SaleHandler struct {
	service *services.SaleService
	export  *services.ExportService
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(service *services.SaleService, export *services.ExportService) *SaleHandler {
	return &SaleHandler{service: service, export: export}
}

// RegisterRoutes registers the sale routes on router.
func (h *SaleHandler) RegisterRoutes(router fiber.Router) {
	saleRoutes := router.Group("/sale")
	saleRoutes.Get("/", h.HandleList)
	// Must precede /:id.
	saleRoutes.Get("/export", h.HandleExport)
	saleRoutes.Get("/:id", h.HandleGetByID)
	saleRoutes.Post("/", h.HandleCreate)
	saleRoutes.Put("/:id", h.HandleUpdate)
	saleRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList lists sales filtered by product name and sale date.
func (h *SaleHandler) HandleList(c *fiber.Ctx) error {
	startDate, err := timeQuery(c, "startDate")
	if err != nil {
		return writeError(c, err)
	}
	endDate, err := endTimeQuery(c, "endDate")
	if err != nil {
		return writeError(c, err)
	}

	filter := models.SaleFilter{
		Pagination: pagination(c),
		Keyword:    keyword(c),
		StartDate:  startDate,
		EndDate:    endDate,
	}
	page, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return okPage(c, page)
}

// HandleGetByID retrieves a single sale.
func (h *SaleHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	sale, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, sale)
}

// HandleCreate records a sale and takes the sold quantity out of stock.
func (h *SaleHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.SaleRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}
	sale, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, sale, "Sale created successfully")
}

// HandleUpdate changes the product or quantity of a sale.
func (h *SaleHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req models.SaleRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}
	sale, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, sale)
}

// HandleDelete deletes a sale.
func (h *SaleHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return deleted(c, "Sale deleted successfully")
}

// HandleExport sends the sales between startDate and endDate as an xlsx
// workbook, or as a PDF when format=pdf.
func (h *SaleHandler) HandleExport(c *fiber.Ctx) error {
	start, err := requiredTime(c, "startDate")
	if err != nil {
		return writeError(c, err)
	}
	end, err := requiredTime(c, "endDate")
	if err != nil {
		return writeError(c, err)
	}

	var (
		document    []byte
		contentType string
		extension   string
	)
	switch format := strings.ToLower(c.Query("format", "xlsx")); format {
	case "xlsx":
		document, err = h.export.SalesWorkbook(c.UserContext(), start, end)
		contentType, extension = xlsxContentType, "xlsx"
	case "pdf":
		document, err = h.export.SalesPDF(c.UserContext(), start, end)
		contentType, extension = pdfContentType, "pdf"
	default:
		return writeError(c, apperror.Validation("format must be xlsx or pdf"))
	}
	if err != nil {
		return writeError(c, err)
	}

	filename := fmt.Sprintf("sales_%s_%s.%s", start.Format(dateLayout), end.Format(dateLayout), extension)
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(document)
}
