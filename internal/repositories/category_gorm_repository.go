package repositories

import (
	"context"
	"strings"

	"gudang/internal/models"

	"gorm.io/gorm"
)

// categoryProductRow is a product summary tagged with its category.
type categoryProductRow struct {
	models.ProductSummary
	CategoryID uint
}

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

// List returns one page of categories matching filter and the total match count.
func (r *GORMCategoryRepository) List(ctx context.Context, filter models.CategoryFilter) ([]models.Category, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Scopes(nameContains("name", filter.Keyword)).
		Session(&gorm.Session{})

	var categories []models.Category
	total, err := countAndFind(q, filter.Pagination.Normalize(), "", "name ASC, id ASC", &categories)
	if err != nil {
		return nil, 0, translate(err, "failed to list categories")
	}
	return categories, total, nil
}

// GetByID retrieves a single category by its ID.
func (r *GORMCategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, translate(err, "failed to get category %d", id)
	}
	return &category, nil
}

// Exists reports whether a category with the given ID exists.
func (r *GORMCategoryRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translate(err, "failed to check category %d", id)
	}
	return count > 0, nil
}

// NameTaken reports whether another category already uses name, ignoring case
// and surrounding spaces. excludeID is skipped so a row never conflicts with itself.
func (r *GORMCategoryRepository) NameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("LOWER(TRIM(name)) = ? AND id <> ?", strings.ToLower(strings.TrimSpace(name)), excludeID).
		Count(&count).Error
	if err != nil {
		return false, translate(err, "failed to check category name")
	}
	return count > 0, nil
}

// Create inserts a new category.
func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return translate(err, "failed to create category")
	}
	return nil
}

// Update writes the name of an existing category.
func (r *GORMCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	res := r.db.WithContext(ctx).Model(category).Select("name", "updated_at").Updates(category)
	if res.Error != nil {
		return translate(res.Error, "failed to update category %d", category.ID)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a category. It fails with ErrReferenced while products use it.
func (r *GORMCategoryRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	inUse, err := referenced(db, id, "category_id", &models.Product{})
	if err != nil {
		return translate(err, "failed to check references of category %d", id)
	}
	if inUse {
		return ErrReferenced
	}

	res := db.Delete(&models.Category{}, id)
	if res.Error != nil {
		return translate(res.Error, "failed to delete category %d", id)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// WithProducts lists every category, including empty ones, with its products.
func (r *GORMCategoryRepository) WithProducts(ctx context.Context) ([]models.CategoryWithProducts, error) {
	db := r.db.WithContext(ctx)

	var categories []models.Category
	if err := db.Order("name ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, translate(err, "failed to list categories")
	}

	var rows []categoryProductRow
	err := db.Model(&models.Product{}).
		Select("id, name, price, quantity_in_stock, category_id").
		Order("name ASC, id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "failed to list products by category")
	}

	byCategory := make(map[uint][]models.ProductSummary, len(categories))
	for _, row := range rows {
		byCategory[row.CategoryID] = append(byCategory[row.CategoryID], row.ProductSummary)
	}

	result := make([]models.CategoryWithProducts, 0, len(categories))
	for _, c := range categories {
		products := byCategory[c.ID]
		if products == nil {
			products = []models.ProductSummary{}
		}
		result = append(result, models.CategoryWithProducts{ID: c.ID, Name: c.Name, Products: products})
	}
	return result, nil
}
