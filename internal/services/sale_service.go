package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gudang/internal/apperror"
	"gudang/internal/models"
	"gudang/internal/repositories"
)

const insufficientStock = "Insufficient stock"

// SaleService records sales and keeps product stock in step with them.
type SaleService struct {
	store     repositories.Repositories
	policy    string
	publisher StockEventPublisher
	log       *slog.Logger
}

// NewSaleService creates a new SaleService. policy is config.PolicyReverse or
// config.PolicyLegacy; publisher may be nil.
func NewSaleService(store repositories.Repositories, policy string, publisher StockEventPublisher, log *slog.Logger) *SaleService {
	return &SaleService{
		store:     store,
		policy:    policy,
		publisher: publisher,
		log:       log.With(slog.String("service", "sale")),
	}
}

// List returns one page of sales.
func (s *SaleService) List(ctx context.Context, filter models.SaleFilter) (models.Page[models.SaleResponse], error) {
	filter.Pagination = filter.Pagination.Normalize()
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return models.Page[models.SaleResponse]{}, apperror.Validation("endDate must not be before startDate")
	}

	sales, total, err := s.store.Sales().List(ctx, filter)
	if err != nil {
		return models.Page[models.SaleResponse]{}, fail(ctx, s.log, "list sales", err)
	}
	return models.NewPage(sales, filter.Pagination, total), nil
}

// GetByID retrieves a single sale with its product name.
func (s *SaleService) GetByID(ctx context.Context, id uint) (*models.SaleResponse, error) {
	view, err := s.store.Sales().GetView(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Sale not found")
		}
		return nil, fail(ctx, s.log, "get sale", err)
	}
	return view, nil
}

// Create records a sale dated now and takes its quantity out of stock.
func (s *SaleService) Create(ctx context.Context, req models.SaleRequest) (*models.SaleResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var (
		view  *models.SaleResponse
		moves movements
	)
	err := s.store.Transaction(ctx, func(tx repositories.Repositories) error {
		after, err := tx.Ledger().Apply(ctx, req.ProductID, -req.QuantitySold)
		if err != nil {
			return ledgerError(err, insufficientStock)
		}

		sale := models.Sale{
			ProductID:    req.ProductID,
			QuantitySold: req.QuantitySold,
			SaleDate:     time.Now().UTC(),
		}
		if err := tx.Sales().Create(ctx, &sale); err != nil {
			return err
		}
		moves.add(models.MovementSale, sale.ProductID, -sale.QuantitySold, after, sale.ID)

		view, err = tx.Sales().GetView(ctx, sale.ID)
		return err
	})
	if err != nil {
		return nil, fail(ctx, s.log, "create sale", err)
	}

	s.log.InfoContext(ctx, "sale created",
		slog.Uint64("sale_id", uint64(view.ID)),
		slog.Uint64("product_id", uint64(view.ProductID)),
		slog.Int("quantity", view.QuantitySold))
	moves.publish(ctx, s.publisher, s.log)
	return view, nil
}

// Update changes the product and quantity of a sale. Under the reverse policy
// the old quantity goes back to its product before the new one is taken; under
// the legacy policy the new quantity is taken on top of the old effect.
func (s *SaleService) Update(ctx context.Context, id uint, req models.SaleRequest) (*models.SaleResponse, error) {
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

	sale, err := s.store.Sales().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Sale not found")
		}
		return nil, fail(ctx, s.log, "get sale", err)
	}
	if sale.Fields() == req.Fields() {
		return nil, apperror.NoChange()
	}

	var (
		view  *models.SaleResponse
		moves movements
	)
	err = s.store.Transaction(ctx, func(tx repositories.Repositories) error {
		if reverses(s.policy) {
			after, err := tx.Ledger().Apply(ctx, sale.ProductID, sale.QuantitySold)
			if err != nil {
				return ledgerError(err, insufficientStock)
			}
			moves.add(models.MovementSaleReversal, sale.ProductID, sale.QuantitySold, after, sale.ID)
		}

		after, err := tx.Ledger().Apply(ctx, req.ProductID, -req.QuantitySold)
		if err != nil {
			return ledgerError(err, insufficientStock)
		}
		moves.add(models.MovementSale, req.ProductID, -req.QuantitySold, after, sale.ID)

		sale.ProductID = req.ProductID
		sale.QuantitySold = req.QuantitySold
		if err := tx.Sales().Update(ctx, sale); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperror.NotFound("Sale not found")
			}
			return err
		}

		view, err = tx.Sales().GetView(ctx, sale.ID)
		return err
	})
	if err != nil {
		return nil, fail(ctx, s.log, "update sale", err)
	}

	s.log.InfoContext(ctx, "sale updated",
		slog.Uint64("sale_id", uint64(id)),
		slog.String("policy", s.policy))
	moves.publish(ctx, s.publisher, s.log)
	return view, nil
}

// Delete removes a sale. Under the reverse policy its quantity returns to stock.
func (s *SaleService) Delete(ctx context.Context, id uint) error {
	var moves movements
	err := s.store.Transaction(ctx, func(tx repositories.Repositories) error {
		sale, err := tx.Sales().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperror.NotFound("Sale not found")
			}
			return err
		}

		if reverses(s.policy) {
			after, err := tx.Ledger().Apply(ctx, sale.ProductID, sale.QuantitySold)
			if err != nil {
				return ledgerError(err, insufficientStock)
			}
			moves.add(models.MovementSaleReversal, sale.ProductID, sale.QuantitySold, after, sale.ID)
		}

		if err := tx.Sales().Delete(ctx, id); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperror.NotFound("Sale not found")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return fail(ctx, s.log, "delete sale", err)
	}

	s.log.InfoContext(ctx, "sale deleted", slog.Uint64("sale_id", uint64(id)))
	moves.publish(ctx, s.publisher, s.log)
	return nil
}
