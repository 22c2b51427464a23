package repositories

import (
	"context"
	"strings"

	"gudang/internal/models"

	"gorm.io/gorm"
)

const productViewColumns = "products.id AS id, products.name AS name, products.price AS price, " +
	"products.quantity_in_stock AS quantity_in_stock, products.category_id AS category_id, " +
	"categories.name AS category_name, products.supplier_id AS supplier_id, suppliers.name AS supplier_name"

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{db: db}
}

func (r *GORMProductRepository) views(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Joins("JOIN categories ON categories.id = products.category_id").
		Joins("JOIN suppliers ON suppliers.id = products.supplier_id")
}

// List returns one page of in-stock products matching filter and the total match count.
func (r *GORMProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.ProductResponse, int64, error) {
	q := r.views(ctx).
		Scopes(
			inStock,
			nameContains("products.name", filter.Keyword),
			priceBetween("products.price", filter.MinPrice, filter.MaxPrice),
		).
		Session(&gorm.Session{})

	var products []models.ProductResponse
	total, err := countAndFind(q, filter.Pagination.Normalize(), productViewColumns, "products.name ASC, products.id ASC", &products)
	if err != nil {
		return nil, 0, translate(err, "failed to list products")
	}
	return products, total, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, translate(err, "failed to get product %d", id)
	}
	return &product, nil
}

// GetView retrieves a product together with its category and supplier names.
func (r *GORMProductRepository) GetView(ctx context.Context, id uint) (*models.ProductResponse, error) {
	var view models.ProductResponse
	res := r.views(ctx).Select(productViewColumns).Where("products.id = ?", id).Limit(1).Scan(&view)
	if res.Error != nil {
		return nil, translate(res.Error, "failed to get product %d", id)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &view, nil
}

// Exists reports whether a product with the given ID exists.
func (r *GORMProductRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translate(err, "failed to check product %d", id)
	}
	return count > 0, nil
}

// NameTaken reports whether a product other than excludeID already uses name.
func (r *GORMProductRepository) NameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("LOWER(TRIM(name)) = ? AND id <> ?", strings.ToLower(strings.TrimSpace(name)), excludeID).
		Count(&count).Error
	if err != nil {
		return false, translate(err, "failed to check product name")
	}
	return count > 0, nil
}

// Create inserts a new product with its opening stock.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Omit("Category", "Supplier").Create(product).Error; err != nil {
		return translate(err, "failed to create product")
	}
	return nil
}

// Update writes the descriptive columns of a product. QuantityInStock is left untouched.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).
		Model(product).
		Select("name", "price", "category_id", "supplier_id", "updated_at").
		Updates(product)
	if res.Error != nil {
		return translate(res.Error, "failed to update product %d", product.ID)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a product. It fails with ErrReferenced while sales or adjustments use it.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	inUse, err := referenced(db, id, "product_id", &models.Sale{}, &models.StockAdjustment{})
	if err != nil {
		return translate(err, "failed to check references of product %d", id)
	}
	if inUse {
		return ErrReferenced
	}

	res := db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return translate(res.Error, "failed to delete product %d", id)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
