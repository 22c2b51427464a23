package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the central aggregate. QuantityInStock is changed only by the
// stock ledger, never by a product update.
type Product struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	Name            string          `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
	Price           decimal.Decimal `json:"price" gorm:"type:decimal(18,2);not null"`
	QuantityInStock int             `json:"quantityInStock" gorm:"not null;check:chk_products_stock,quantity_in_stock >= 0"`
	CategoryID      uint            `json:"categoryId" gorm:"not null;index"`
	Category        *Category       `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	SupplierID      uint            `json:"supplierId" gorm:"not null;index"`
	Supplier        *Supplier       `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ProductCreateRequest is the body of a product create call.
type ProductCreateRequest struct {
	Name            string          `json:"name" validate:"required,min=2,max=100"`
	Price           decimal.Decimal `json:"price"`
	QuantityInStock int             `json:"quantityInStock" validate:"gte=0"`
	CategoryID      uint            `json:"categoryId" validate:"required"`
	SupplierID      uint            `json:"supplierId" validate:"required"`
}

// ProductUpdateRequest is the body of a product update call. Stock is not
// editable here; use a stock adjustment.
type ProductUpdateRequest struct {
	Name       string          `json:"name" validate:"required,min=2,max=100"`
	Price      decimal.Decimal `json:"price"`
	CategoryID uint            `json:"categoryId" validate:"required"`
	SupplierID uint            `json:"supplierId" validate:"required"`
}

// ProductResponse is the public view of a product with its category and supplier names.
type ProductResponse struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	QuantityInStock int             `json:"quantityInStock"`
	CategoryID      uint            `json:"categoryId"`
	CategoryName    string          `json:"categoryName"`
	SupplierID      uint            `json:"supplierId"`
	SupplierName    string          `json:"supplierName"`
}

// ProductSummary is the short product view embedded in other resources.
type ProductSummary struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	QuantityInStock int             `json:"quantityInStock"`
}
