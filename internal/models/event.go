package models

import "time"

// Stock movement kinds carried by StockMovementEvent.
const (
	MovementSale               = "sale"
	MovementSaleReversal       = "sale_reversal"
	MovementAdjustment         = "adjustment"
	MovementAdjustmentReversal = "adjustment_reversal"
)

// StockMovementEvent is published after a committed change of a product's stock.
type StockMovementEvent struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	ProductID     uint      `json:"productId"`
	Delta         int       `json:"delta"`
	QuantityAfter int       `json:"quantityAfter"`
	ReferenceID   uint      `json:"referenceId"`
	OccurredAt    time.Time `json:"occurredAt"`
}
