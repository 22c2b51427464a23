package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gudang/internal/apperror"
	"gudang/internal/models"
	"gudang/internal/repositories"
)

const negativeStock = "Adjustment would make stock negative"

// StockAdjustmentService records manual stock corrections.
type StockAdjustmentService struct {
	store     repositories.Repositories
	policy    string
	publisher StockEventPublisher
	log       *slog.Logger
}

// NewStockAdjustmentService creates a new StockAdjustmentService. publisher may be nil.
func NewStockAdjustmentService(store repositories.Repositories, policy string, publisher StockEventPublisher, log *slog.Logger) *StockAdjustmentService {
	return &StockAdjustmentService{
		store:     store,
		policy:    policy,
		publisher: publisher,
		log:       log.With(slog.String("service", "stock_adjustment")),
	}
}

// List returns one page of adjustments.
func (s *StockAdjustmentService) List(ctx context.Context, filter models.StockAdjustmentFilter) (models.Page[models.StockAdjustmentResponse], error) {
	filter.Pagination = filter.Pagination.Normalize()

	adjustments, total, err := s.store.StockAdjustments().List(ctx, filter)
	if err != nil {
		return models.Page[models.StockAdjustmentResponse]{}, fail(ctx, s.log, "list stock adjustments", err)
	}
	return models.NewPage(adjustments, filter.Pagination, total), nil
}

// GetByID retrieves a single adjustment with its product name.
func (s *StockAdjustmentService) GetByID(ctx context.Context, id uint) (*models.StockAdjustmentResponse, error) {
	view, err := s.store.StockAdjustments().GetView(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Stock adjustment not found")
		}
		return nil, fail(ctx, s.log, "get stock adjustment", err)
	}
	return view, nil
}

// Create records an adjustment dated now and applies its signed amount to stock.
func (s *StockAdjustmentService) Create(ctx context.Context, req models.StockAdjustmentRequest) (*models.StockAdjustmentResponse, error) {
	req.Reason = strings.TrimSpace(req.Reason)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var (
		view  *models.StockAdjustmentResponse
		moves movements
	)
	err := s.store.Transaction(ctx, func(tx repositories.Repositories) error {
		after, err := tx.Ledger().Apply(ctx, req.ProductID, req.AdjustmentAmount)
		if err != nil {
			return ledgerError(err, negativeStock)
		}

		adjustment := models.StockAdjustment{
			ProductID:        req.ProductID,
			AdjustmentAmount: req.AdjustmentAmount,
			Reason:           req.Reason,
			AdjustmentDate:   time.Now().UTC(),
		}
		if err := tx.StockAdjustments().Create(ctx, &adjustment); err != nil {
			return err
		}
		moves.add(models.MovementAdjustment, adjustment.ProductID, adjustment.AdjustmentAmount, after, adjustment.ID)

		view, err = tx.StockAdjustments().GetView(ctx, adjustment.ID)
		return err
	})
	if err != nil {
		return nil, fail(ctx, s.log, "create stock adjustment", err)
	}

	s.log.InfoContext(ctx, "stock adjustment created",
		slog.Uint64("adjustment_id", uint64(view.ID)),
		slog.Uint64("product_id", uint64(view.ProductID)),
		slog.Int("amount", view.AdjustmentAmount))
	moves.publish(ctx, s.publisher, s.log)
	return view, nil
}

// Update changes an adjustment. Under the reverse policy stock moves by the
// difference between the new and old amounts, or, when the product changes,
// the old amount is undone on its product before the new amount is applied.
// Under the legacy policy the new amount is applied on top of the old one.
func (s *StockAdjustmentService) Update(ctx context.Context, id uint, req models.StockAdjustmentRequest) (*models.StockAdjustmentResponse, error) {
	req.Reason = strings.TrimSpace(req.Reason)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	exists, err := s.store.Products().Exists(ctx, req.ProductID)
	if err != nil {
		return nil, fail(ctx, s.log, "check product", err)
	}
	if !exists {
		return nil, apperror.NotFound("Product not found")
	}

	adjustment, err := s.store.StockAdjustments().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Stock adjustment not found")
		}
		return nil, fail(ctx, s.log, "get stock adjustment", err)
	}
	if adjustment.Fields() == req.Fields() {
		return nil, apperror.NoChange()
	}

	var (
		view  *models.StockAdjustmentResponse
		moves movements
	)
	err = s.store.Transaction(ctx, func(tx repositories.Repositories) error {
		switch {
		case !reverses(s.policy):
			after, err := tx.Ledger().Apply(ctx, req.ProductID, req.AdjustmentAmount)
			if err != nil {
				return ledgerError(err, negativeStock)
			}
			moves.add(models.MovementAdjustment, req.ProductID, req.AdjustmentAmount, after, adjustment.ID)
		case adjustment.ProductID == req.ProductID:
			// Same product: only the net difference touches stock.
			if delta := req.AdjustmentAmount - adjustment.AdjustmentAmount; delta != 0 {
				after, err := tx.Ledger().Apply(ctx, req.ProductID, delta)
				if err != nil {
					return ledgerError(err, negativeStock)
				}
				moves.add(models.MovementAdjustment, req.ProductID, delta, after, adjustment.ID)
			}
		default:
			after, err := tx.Ledger().Apply(ctx, adjustment.ProductID, -adjustment.AdjustmentAmount)
			if err != nil {
				return ledgerError(err, negativeStock)
			}
			moves.add(models.MovementAdjustmentReversal, adjustment.ProductID, -adjustment.AdjustmentAmount, after, adjustment.ID)

			after, err = tx.Ledger().Apply(ctx, req.ProductID, req.AdjustmentAmount)
			if err != nil {
				return ledgerError(err, negativeStock)
			}
			moves.add(models.MovementAdjustment, req.ProductID, req.AdjustmentAmount, after, adjustment.ID)
		}

		adjustment.ProductID = req.ProductID
		adjustment.AdjustmentAmount = req.AdjustmentAmount
		adjustment.Reason = req.Reason
		if err := tx.StockAdjustments().Update(ctx, adjustment); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperror.NotFound("Stock adjustment not found")
			}
			return err
		}

		view, err = tx.StockAdjustments().GetView(ctx, adjustment.ID)
		return err
	})
	if err != nil {
		return nil, fail(ctx, s.log, "update stock adjustment", err)
	}

	s.log.InfoContext(ctx, "stock adjustment updated",
		slog.Uint64("adjustment_id", uint64(id)),
		slog.String("policy", s.policy))
	moves.publish(ctx, s.publisher, s.log)
	return view, nil
}

// Delete removes an adjustment. Under the reverse policy its amount is undone,
// which fails with Conflict if the stock it added has since been used.
func (s *StockAdjustmentService) Delete(ctx context.Context, id uint) error {
	var moves movements
	err := s.store.Transaction(ctx, func(tx repositories.Repositories) error {
		adjustment, err := tx.StockAdjustments().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperror.NotFound("Stock adjustment not found")
			}
			return err
		}

		if reverses(s.policy) {
			after, err := tx.Ledger().Apply(ctx, adjustment.ProductID, -adjustment.AdjustmentAmount)
			if err != nil {
				return ledgerError(err, negativeStock)
			}
			moves.add(models.MovementAdjustmentReversal, adjustment.ProductID, -adjustment.AdjustmentAmount, after, adjustment.ID)
		}

		if err := tx.StockAdjustments().Delete(ctx, id); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperror.NotFound("Stock adjustment not found")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return fail(ctx, s.log, "delete stock adjustment", err)
	}

	s.log.InfoContext(ctx, "stock adjustment deleted", slog.Uint64("adjustment_id", uint64(id)))
	moves.publish(ctx, s.publisher, s.log)
	return nil
}
