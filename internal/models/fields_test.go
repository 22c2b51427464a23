package models_test

import (
	"testing"

	"gudang/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFieldsIgnoreCaseAndSpacing(t *testing.T) {
	stored := models.Category{ID: 1, Name: "Drinks"}
	assert.Equal(t, stored.Fields(), models.CategoryRequest{Name: "  drinks "}.Fields())
	assert.NotEqual(t, stored.Fields(), models.CategoryRequest{Name: "Snacks"}.Fields())

	adj := models.StockAdjustment{ProductID: 2, AdjustmentAmount: -3, Reason: "Broken"}
	assert.Equal(t, adj.Fields(), models.StockAdjustmentRequest{ProductID: 2, AdjustmentAmount: -3, Reason: "broken "}.Fields())
	assert.NotEqual(t, adj.Fields(), models.StockAdjustmentRequest{ProductID: 2, AdjustmentAmount: 3, Reason: "broken"}.Fields())
}

func TestProductFieldsComparePriceByValue(t *testing.T) {
	stored := models.Product{Name: "Tea", Price: decimal.RequireFromString("2.50"), CategoryID: 1, SupplierID: 1}
	req := models.ProductUpdateRequest{Name: "tea", Price: decimal.RequireFromString("2.5"), CategoryID: 1, SupplierID: 1}
	assert.Equal(t, stored.Fields(), req.Fields())

	req.SupplierID = 2
	assert.NotEqual(t, stored.Fields(), req.Fields())
}

func TestNewPage(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		size      int
		wantPages int
	}{
		{"empty", 0, 10, 0},
		{"exact", 20, 10, 2},
		{"remainder", 21, 10, 3},
		{"single", 1, 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := models.NewPage[int](nil, models.Pagination{Page: 1, Size: tt.size}, tt.total)
			assert.Equal(t, tt.wantPages, page.TotalPage)
			assert.NotNil(t, page.Items)
		})
	}
}

func TestPaginationNormalize(t *testing.T) {
	assert.Equal(t, models.Pagination{Page: 1, Size: 10}, models.Pagination{}.Normalize())
	assert.Equal(t, models.Pagination{Page: 3, Size: 100}, models.Pagination{Page: 3, Size: 500}.Normalize())
	assert.Equal(t, 40, models.Pagination{Page: 5, Size: 10}.Offset())
}
