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

// CategoryService handles business logic related to categories.
type CategoryService struct {
	store repositories.Repositories
	log   *slog.Logger
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(store repositories.Repositories, log *slog.Logger) *CategoryService {
	return &CategoryService{
		store: store,
		log:   log.With(slog.String("service", "category")),
	}
}

// List returns one page of categories.
func (s *CategoryService) List(ctx context.Context, filter models.CategoryFilter) (models.Page[models.CategoryResponse], error) {
	filter.Pagination = filter.Pagination.Normalize()

	categories, total, err := s.store.Categories().List(ctx, filter)
	if err != nil {
		return models.Page[models.CategoryResponse]{}, fail(ctx, s.log, "list categories", err)
	}

	items := make([]models.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		items = append(items, toCategoryResponse(c))
	}
	return models.NewPage(items, filter.Pagination, total), nil
}

// GetByID retrieves a single category.
func (s *CategoryService) GetByID(ctx context.Context, id uint) (*models.CategoryResponse, error) {
	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toCategoryResponse(*category)
	return &resp, nil
}

// Create validates and stores a new category. Names are unique ignoring case.
func (s *CategoryService) Create(ctx context.Context, req models.CategoryRequest) (*models.CategoryResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, req.Name, 0); err != nil {
		return nil, err
	}

	category := models.Category{Name: req.Name}
	if err := s.store.Categories().Create(ctx, &category); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperror.Conflict("Category name already exists")
		}
		return nil, fail(ctx, s.log, "create category", err)
	}

	s.log.InfoContext(ctx, "category created", slog.Uint64("category_id", uint64(category.ID)))
	resp := toCategoryResponse(category)
	return &resp, nil
}

// Update renames a category.
func (s *CategoryService) Update(ctx context.Context, id uint, req models.CategoryRequest) (*models.CategoryResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if category.Fields() == req.Fields() {
		return nil, apperror.NoChange()
	}
	if err := s.ensureNameFree(ctx, req.Name, id); err != nil {
		return nil, err
	}

	category.Name = req.Name
	if err := s.store.Categories().Update(ctx, category); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, apperror.NotFound("Category not found")
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, apperror.Conflict("Category name already exists")
		}
		return nil, fail(ctx, s.log, "update category", err)
	}

	s.log.InfoContext(ctx, "category updated", slog.Uint64("category_id", uint64(id)))
	resp := toCategoryResponse(*category)
	return &resp, nil
}

// Delete removes a category that no product uses.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if err := s.store.Categories().Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return apperror.NotFound("Category not found")
		case errors.Is(err, repositories.ErrReferenced):
			return apperror.Conflict("Category is still used by products")
		}
		return fail(ctx, s.log, "delete category", err)
	}

	s.log.InfoContext(ctx, "category deleted", slog.Uint64("category_id", uint64(id)))
	return nil
}

func (s *CategoryService) find(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.store.Categories().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Category not found")
		}
		return nil, fail(ctx, s.log, "get category", err)
	}
	return category, nil
}

func (s *CategoryService) ensureNameFree(ctx context.Context, name string, excludeID uint) error {
	taken, err := s.store.Categories().NameTaken(ctx, name, excludeID)
	if err != nil {
		return fail(ctx, s.log, "check category name", err)
	}
	if taken {
		return apperror.Conflict("Category name already exists")
	}
	return nil
}

func toCategoryResponse(c models.Category) models.CategoryResponse {
	return models.CategoryResponse{ID: c.ID, Name: c.Name}
}
