package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Pagination selects one 1-based page of a listing.
type Pagination struct {
	Page int
	Size int
}

// Normalize clamps the page to >= 1 and the size to [1, MaxPageSize].
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset is the number of rows skipped before the page starts.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Size
}

// CategoryFilter filters the category listing.
type CategoryFilter struct {
	Pagination
	Keyword string
}

// SupplierFilter filters the supplier listing.
type SupplierFilter struct {
	Pagination
	Keyword string
}

// ProductFilter filters the product listing. Out-of-stock products are never listed.
type ProductFilter struct {
	Pagination
	Keyword  string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// SaleFilter filters the sale listing. Keyword matches the product name.
type SaleFilter struct {
	Pagination
	Keyword   string
	StartDate *time.Time
	EndDate   *time.Time // exclusive
}

// StockAdjustmentFilter filters the adjustment listing.
type StockAdjustmentFilter struct {
	Pagination
	Keyword   string
	ProductID uint
}

// Page is one page of results together with the paging totals.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalCount int64 `json:"totalCount"`
	TotalPage  int   `json:"totalPage"`
}

// NewPage builds a Page for items fetched with p out of total matching rows.
func NewPage[T any](items []T, p Pagination, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPage := 0
	if p.Size > 0 {
		totalPage = int((total + int64(p.Size) - 1) / int64(p.Size))
	}
	return Page[T]{
		Items:      items,
		Page:       p.Page,
		Size:       p.Size,
		TotalCount: total,
		TotalPage:  totalPage,
	}
}
