package services

import (
	"context"
	"log/slog"
	"time"

	"gudang/internal/models"

	"github.com/google/uuid"
)

// StockEventPublisher delivers stock movement events to interested consumers.
type StockEventPublisher interface {
	PublishStockMovement(event models.StockMovementEvent) error
}

// movements collects the stock changes of one unit of work so they can be
// published once it has committed.
type movements []models.StockMovementEvent

func (m *movements) add(kind string, productID uint, delta, after int, referenceID uint) {
	*m = append(*m, models.StockMovementEvent{
		Kind:          kind,
		ProductID:     productID,
		Delta:         delta,
		QuantityAfter: after,
		ReferenceID:   referenceID,
	})
}

// publish sends every collected movement. A nil publisher drops them.
// Failures are logged and never reported to the caller.
func (m movements) publish(ctx context.Context, publisher StockEventPublisher, log *slog.Logger) {
	if publisher == nil {
		return
	}
	now := time.Now().UTC()
	for _, event := range m {
		event.ID = uuid.NewString()
		event.OccurredAt = now
		if err := publisher.PublishStockMovement(event); err != nil {
			log.WarnContext(ctx, "failed to publish stock movement",
				slog.String("kind", event.Kind),
				slog.Uint64("product_id", uint64(event.ProductID)),
				slog.String("error", err.Error()))
		}
	}
}
