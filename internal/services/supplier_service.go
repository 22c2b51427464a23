package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gudang/internal/apperror"
	"gudang/internal/models"
	"gudang/internal/repositories"
)

// SupplierService handles business logic related to suppliers.
type SupplierService struct {
	store repositories.Repositories
	log   *slog.Logger
}

// NewSupplierService creates a new SupplierService.
func NewSupplierService(store repositories.Repositories, log *slog.Logger) *SupplierService {
	return &SupplierService{
		store: store,
		log:   log.With(slog.String("service", "supplier")),
	}
}

// List returns one page of suppliers.
func (s *SupplierService) List(ctx context.Context, filter models.SupplierFilter) (models.Page[models.SupplierResponse], error) {
	filter.Pagination = filter.Pagination.Normalize()

	suppliers, total, err := s.store.Suppliers().List(ctx, filter)
	if err != nil {
		return models.Page[models.SupplierResponse]{}, fail(ctx, s.log, "list suppliers", err)
	}

	items := make([]models.SupplierResponse, 0, len(suppliers))
	for _, sup := range suppliers {
		items = append(items, toSupplierResponse(sup))
	}
	return models.NewPage(items, filter.Pagination, total), nil
}

// GetByID retrieves a single supplier.
func (s *SupplierService) GetByID(ctx context.Context, id uint) (*models.SupplierResponse, error) {
	supplier, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toSupplierResponse(*supplier)
	return &resp, nil
}

// Create validates and stores a new supplier.
func (s *SupplierService) Create(ctx context.Context, req models.SupplierRequest) (*models.SupplierResponse, error) {
	req = normalizeSupplier(req)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, req.Name, 0); err != nil {
		return nil, err
	}

	supplier := models.Supplier{Name: req.Name, Phone: req.Phone}
	if err := s.store.Suppliers().Create(ctx, &supplier); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperror.Conflict("Supplier name already exists")
		}
		return nil, fail(ctx, s.log, "create supplier", err)
	}

	s.log.InfoContext(ctx, "supplier created", slog.Uint64("supplier_id", uint64(supplier.ID)))
	resp := toSupplierResponse(supplier)
	return &resp, nil
}

// Update changes the name and phone of the supplier identified by id.
func (s *SupplierService) Update(ctx context.Context, id uint, req models.SupplierRequest) (*models.SupplierResponse, error) {
	req = normalizeSupplier(req)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	supplier, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier.Fields() == req.Fields() {
		return nil, apperror.NoChange()
	}
	if err := s.ensureNameFree(ctx, req.Name, id); err != nil {
		return nil, err
	}

	supplier.Name = req.Name
	supplier.Phone = req.Phone
	if err := s.store.Suppliers().Update(ctx, supplier); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, apperror.NotFound("Supplier not found")
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, apperror.Conflict("Supplier name already exists")
		}
		return nil, fail(ctx, s.log, "update supplier", err)
	}

	s.log.InfoContext(ctx, "supplier updated", slog.Uint64("supplier_id", uint64(id)))
	resp := toSupplierResponse(*supplier)
	return &resp, nil
}

// Delete removes a supplier that no product uses.
func (s *SupplierService) Delete(ctx context.Context, id uint) error {
	if err := s.store.Suppliers().Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return apperror.NotFound("Supplier not found")
		case errors.Is(err, repositories.ErrReferenced):
			return apperror.Conflict("Supplier is still used by products")
		}
		return fail(ctx, s.log, "delete supplier", err)
	}

	s.log.InfoContext(ctx, "supplier deleted", slog.Uint64("supplier_id", uint64(id)))
	return nil
}

func (s *SupplierService) find(ctx context.Context, id uint) (*models.Supplier, error) {
	supplier, err := s.store.Suppliers().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Supplier not found")
		}
		return nil, fail(ctx, s.log, "get supplier", err)
	}
	return supplier, nil
}

func (s *SupplierService) ensureNameFree(ctx context.Context, name string, excludeID uint) error {
	taken, err := s.store.Suppliers().NameTaken(ctx, name, excludeID)
	if err != nil {
		return fail(ctx, s.log, "check supplier name", err)
	}
	if taken {
		return apperror.Conflict("Supplier name already exists")
	}
	return nil
}

func normalizeSupplier(req models.SupplierRequest) models.SupplierRequest {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	return req
}

func toSupplierResponse(s models.Supplier) models.SupplierResponse {
	return models.SupplierResponse{ID: s.ID, Name: s.Name, Phone: s.Phone}
}
