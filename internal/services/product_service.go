package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gudang/internal/apperror"
	"gudang/internal/models"
	"gudang/internal/repositories"

	"github.com/shopspring/decimal"
)

// ProductService handles business logic related to products.
// Stock is set once at creation; afterwards only sales and adjustments move it.
type ProductService struct {
	store repositories.Repositories
	log   *slog.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(store repositories.Repositories, log *slog.Logger) *ProductService {
	return &ProductService{
		store: store,
		log:   log.With(slog.String("service", "product")),
	}
}

// List returns one page of in-stock products.
func (s *ProductService) List(ctx context.Context, filter models.ProductFilter) (models.Page[models.ProductResponse], error) {
	filter.Pagination = filter.Pagination.Normalize()
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return models.Page[models.ProductResponse]{}, apperror.Validation("minPrice must not be greater than maxPrice")
	}

	products, total, err := s.store.Products().List(ctx, filter)
	if err != nil {
		return models.Page[models.ProductResponse]{}, fail(ctx, s.log, "list products", err)
	}
	return models.NewPage(products, filter.Pagination, total), nil
}

// GetByID retrieves a single product with its category and supplier names.
func (s *ProductService) GetByID(ctx context.Context, id uint) (*models.ProductResponse, error) {
	view, err := s.store.Products().GetView(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Product not found")
		}
		return nil, fail(ctx, s.log, "get product", err)
	}
	return view, nil
}

// Create validates and stores a new product with its opening stock.
func (s *ProductService) Create(ctx context.Context, req models.ProductCreateRequest) (*models.ProductResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := validatePrice(req.Price); err != nil {
		return nil, err
	}
	if err := s.ensureReferences(ctx, req.CategoryID, req.SupplierID); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, req.Name, 0); err != nil {
		return nil, err
	}

	product := models.Product{
		Name:            req.Name,
		Price:           req.Price.Round(2),
		QuantityInStock: req.QuantityInStock,
		CategoryID:      req.CategoryID,
		SupplierID:      req.SupplierID,
	}
	if err := s.store.Products().Create(ctx, &product); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperror.Conflict("Product name already exists")
		}
		return nil, fail(ctx, s.log, "create product", err)
	}

	s.log.InfoContext(ctx, "product created",
		slog.Uint64("product_id", uint64(product.ID)),
		slog.Int("quantity_in_stock", product.QuantityInStock))
	return s.GetByID(ctx, product.ID)
}

// Update changes the descriptive fields of a product. Stock is not editable here.
func (s *ProductService) Update(ctx context.Context, id uint, req models.ProductUpdateRequest) (*models.ProductResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := validatePrice(req.Price); err != nil {
		return nil, err
	}

	product, err := s.store.Products().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Product not found")
		}
		return nil, fail(ctx, s.log, "get product", err)
	}
	if product.Fields() == req.Fields() {
		return nil, apperror.NoChange()
	}
	if err := s.ensureReferences(ctx, req.CategoryID, req.SupplierID); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, req.Name, id); err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.Price = req.Price.Round(2)
	product.CategoryID = req.CategoryID
	product.SupplierID = req.SupplierID
	if err := s.store.Products().Update(ctx, product); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, apperror.NotFound("Product not found")
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, apperror.Conflict("Product name already exists")
		}
		return nil, fail(ctx, s.log, "update product", err)
	}

	s.log.InfoContext(ctx, "product updated", slog.Uint64("product_id", uint64(id)))
	return s.GetByID(ctx, id)
}

// Delete removes a product that has no sales or adjustments.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if err := s.store.Products().Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return apperror.NotFound("Product not found")
		case errors.Is(err, repositories.ErrReferenced):
			return apperror.Conflict("Product has sales or stock adjustments")
		}
		return fail(ctx, s.log, "delete product", err)
	}

	s.log.InfoContext(ctx, "product deleted", slog.Uint64("product_id", uint64(id)))
	return nil
}

func (s *ProductService) ensureReferences(ctx context.Context, categoryID, supplierID uint) error {
	ok, err := s.store.Categories().Exists(ctx, categoryID)
	if err != nil {
		return fail(ctx, s.log, "check category", err)
	}
	if !ok {
		return apperror.NotFound("Category not found")
	}

	ok, err = s.store.Suppliers().Exists(ctx, supplierID)
	if err != nil {
		return fail(ctx, s.log, "check supplier", err)
	}
	if !ok {
		return apperror.NotFound("Supplier not found")
	}
	return nil
}

func (s *ProductService) ensureNameFree(ctx context.Context, name string, excludeID uint) error {
	taken, err := s.store.Products().NameTaken(ctx, name, excludeID)
	if err != nil {
		return fail(ctx, s.log, "check product name", err)
	}
	if taken {
		return apperror.Conflict("Product name already exists")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return apperror.Validation("price must not be negative")
	}
	return nil
}
