package models

import "time"

// MaxReasonLength bounds StockAdjustment.Reason.
const MaxReasonLength = 300

// StockAdjustment records a signed manual correction of a product's stock.
type StockAdjustment struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	ProductID        uint      `json:"productId" gorm:"not null;index"`
	Product          *Product  `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	AdjustmentAmount int       `json:"adjustmentAmount" gorm:"not null"`
	Reason           string    `json:"reason" gorm:"type:varchar(300);not null"`
	AdjustmentDate   time.Time `json:"adjustmentDate" gorm:"not null;index"`
}

// StockAdjustmentRequest is the body of adjustment create and update calls.
type StockAdjustmentRequest struct {
	ProductID        uint   `json:"productId" validate:"required"`
	AdjustmentAmount int    `json:"adjustmentAmount" validate:"ne=0"`
	Reason           string `json:"reason" validate:"required,max=300"`
}

// StockAdjustmentResponse is the public view of an adjustment.
type StockAdjustmentResponse struct {
	ID               uint      `json:"id"`
	ProductID        uint      `json:"productId"`
	ProductName      string    `json:"productName"`
	AdjustmentAmount int       `json:"adjustmentAmount"`
	Reason           string    `json:"reason"`
	AdjustmentDate   time.Time `json:"adjustmentDate"`
}

// StockAdjustmentHistoryEntry is one row of a product's adjustment history.
type StockAdjustmentHistoryEntry struct {
	AdjustmentDate time.Time `json:"adjustmentDate"`
	Amount         int       `json:"amount"`
	Reason         string    `json:"reason"`
}
