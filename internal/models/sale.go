package models

import "time"

// Sale records units of a product leaving stock.
type Sale struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ProductID    uint      `json:"productId" gorm:"not null;index"`
	Product      *Product  `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	QuantitySold int       `json:"quantitySold" gorm:"not null"`
	SaleDate     time.Time `json:"saleDate" gorm:"not null;index"`
}

// SaleRequest is the body of sale create and update calls.
type SaleRequest struct {
	ProductID    uint `json:"productId" validate:"required"`
	QuantitySold int  `json:"quantitySold" validate:"gt=0"`
}

// SaleResponse is the public view of a sale.
type SaleResponse struct {
	ID           uint      `json:"id"`
	ProductID    uint      `json:"productId"`
	ProductName  string    `json:"productName"`
	QuantitySold int       `json:"quantitySold"`
	SaleDate     time.Time `json:"saleDate"`
}
