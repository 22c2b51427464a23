package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"gudang/internal/models"
	"gudang/internal/repositories"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"
)

// SalesSheetName is the worksheet holding the exported sales.
const SalesSheetName = "Sales"

var salesHeaders = []string{"Sale ID", "Sale Date", "Product", "Quantity", "Unit Price", "Line Total"}

// ExportService renders sales as xlsx workbooks or PDF documents.
type ExportService struct {
	store repositories.Repositories
	log   *slog.Logger
}

// NewExportService creates a new ExportService.
func NewExportService(store repositories.Repositories, log *slog.Logger) *ExportService {
	return &ExportService{
		store: store,
		log:   log.With(slog.String("service", "export")),
	}
}

// SalesWorkbook builds an xlsx workbook of the sales from the start date
// through the end date: a header row, one row per sale and a totals row.
func (s *ExportService) SalesWorkbook(ctx context.Context, start, end time.Time) ([]byte, error) {
	lines, err := s.sales(ctx, start, end)
	if err != nil {
		return nil, err
	}

	data, err := buildSalesWorkbook(lines)
	if err != nil {
		return nil, fail(ctx, s.log, "build sales workbook", err)
	}
	s.log.InfoContext(ctx, "sales exported", slog.String("format", "xlsx"), slog.Int("total_rows", len(lines)))
	return data, nil
}

// SalesPDF renders the same report as SalesWorkbook as a one-table PDF.
func (s *ExportService) SalesPDF(ctx context.Context, start, end time.Time) ([]byte, error) {
	lines, err := s.sales(ctx, start, end)
	if err != nil {
		return nil, err
	}

	data, err := buildSalesPDF(lines, startOfDay(start), startOfDay(end))
	if err != nil {
		return nil, fail(ctx, s.log, "build sales pdf", err)
	}
	s.log.InfoContext(ctx, "sales exported", slog.String("format", "pdf"), slog.Int("total_rows", len(lines)))
	return data, nil
}

func (s *ExportService) sales(ctx context.Context, start, end time.Time) ([]models.SaleLine, error) {
	from, to, err := dayRange(start, end)
	if err != nil {
		return nil, err
	}

	lines, err := s.store.Reports().SalesBetween(ctx, from, to)
	if err != nil {
		return nil, fail(ctx, s.log, "load sales for export", err)
	}
	return lines, nil
}

func buildSalesWorkbook(lines []models.SaleLine) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(SalesSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet: %w", err)
	}

	header := sheet.AddRow()
	for _, title := range salesHeaders {
		cell := header.AddCell()
		cell.Value = title
		cell.GetStyle().Font.Bold = true
	}

	for _, line := range lines {
		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.QuantitySold)))
		addRow(sheet,
			strconv.FormatUint(uint64(line.ID), 10),
			line.SaleDate.UTC().Format(time.DateTime),
			line.ProductName,
			strconv.Itoa(line.QuantitySold),
			line.UnitPrice.StringFixed(2),
			lineTotal.StringFixed(2),
		)
	}

	totalQuantity, totalRevenue := salesTotals(lines)
	totals := addRow(sheet, "Total", "", "", strconv.Itoa(totalQuantity), "", totalRevenue.StringFixed(2))
	totals.GetCell(0).GetStyle().Font.Bold = true

	for i := range salesHeaders {
		sheet.SetColWidth(i+1, i+1, 18)
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buffer.Bytes(), nil
}

func addRow(sheet *xlsx.Sheet, values ...string) *xlsx.Row {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().Value = v
	}
	return row
}

func salesTotals(lines []models.SaleLine) (int, decimal.Decimal) {
	quantity, revenue := 0, decimal.Zero
	for _, line := range lines {
		quantity += line.QuantitySold
		revenue = revenue.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.QuantitySold))))
	}
	return quantity, revenue
}

// pdfColumns are the widths in mm of the salesHeaders columns on A4 portrait.
var pdfColumns = []float64{18, 38, 52, 22, 28, 32}

func buildSalesPDF(lines []models.SaleLine, from, to time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Sales Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Date Range: %s to %s", from.Format(time.DateOnly), to.Format(time.DateOnly)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	for i, title := range salesHeaders {
		pdf.CellFormat(pdfColumns[i], 8, title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, line := range lines {
		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.QuantitySold)))
		pdf.CellFormat(pdfColumns[0], 8, strconv.FormatUint(uint64(line.ID), 10), "1", 0, "C", false, 0, "")
		pdf.CellFormat(pdfColumns[1], 8, line.SaleDate.UTC().Format(time.DateTime), "1", 0, "C", false, 0, "")
		pdf.CellFormat(pdfColumns[2], 8, line.ProductName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(pdfColumns[3], 8, strconv.Itoa(line.QuantitySold), "1", 0, "R", false, 0, "")
		pdf.CellFormat(pdfColumns[4], 8, line.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(pdfColumns[5], 8, lineTotal.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	totalQuantity, totalRevenue := salesTotals(lines)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(pdfColumns[0]+pdfColumns[1]+pdfColumns[2], 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(pdfColumns[3], 8, strconv.Itoa(totalQuantity), "1", 0, "R", false, 0, "")
	pdf.CellFormat(pdfColumns[4], 8, "", "1", 0, "R", false, 0, "")
	pdf.CellFormat(pdfColumns[5], 8, totalRevenue.StringFixed(2), "1", 1, "R", false, 0, "")

	var buffer bytes.Buffer
	if err := pdf.Output(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buffer.Bytes(), nil
}
