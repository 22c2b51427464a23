package repositories

import (
	"context"

	"gudang/internal/models"

	"gorm.io/gorm"
)

const saleViewColumns = "sales.id AS id, sales.product_id AS product_id, products.name AS product_name, " +
	"sales.quantity_sold AS quantity_sold, sales.sale_date AS sale_date"

// GORMSaleRepository is a GORM implementation of SaleRepository.
type GORMSaleRepository struct {
	db *gorm.DB
}

// NewGORMSaleRepository creates a new instance of GORMSaleRepository.
func NewGORMSaleRepository(db *gorm.DB) *GORMSaleRepository {
	return &GORMSaleRepository{db: db}
}

func (r *GORMSaleRepository) views(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Joins("JOIN products ON products.id = sales.product_id")
}

// List returns one page of sales matching filter, newest first.
func (r *GORMSaleRepository) List(ctx context.Context, filter models.SaleFilter) ([]models.SaleResponse, int64, error) {
	q := r.views(ctx).
		Scopes(
			nameContains("products.name", filter.Keyword),
			timeBetween("sales.sale_date", filter.StartDate, filter.EndDate),
		).
		Session(&gorm.Session{})

	var sales []models.SaleResponse
	total, err := countAndFind(q, filter.Pagination.Normalize(), saleViewColumns, "sales.sale_date DESC, sales.id DESC", &sales)
	if err != nil {
		return nil, 0, translate(err, "failed to list sales")
	}
	return sales, total, nil
}

// GetByID retrieves a single sale by its ID.
func (r *GORMSaleRepository) GetByID(ctx context.Context, id uint) (*models.Sale, error) {
	var sale models.Sale
	if err := r.db.WithContext(ctx).First(&sale, id).Error; err != nil {
		return nil, translate(err, "failed to get sale %d", id)
	}
	return &sale, nil
}

// GetView retrieves a sale together with its product name.
func (r *GORMSaleRepository) GetView(ctx context.Context, id uint) (*models.SaleResponse, error) {
	var view models.SaleResponse
	res := r.views(ctx).Select(saleViewColumns).Where("sales.id = ?", id).Limit(1).Scan(&view)
	if res.Error != nil {
		return nil, translate(res.Error, "failed to get sale %d", id)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &view, nil
}

// ListByProduct returns every sale of a product, oldest first.
func (r *GORMSaleRepository) ListByProduct(ctx context.Context, productID uint) ([]models.SaleResponse, error) {
	sales := []models.SaleResponse{}
	err := r.views(ctx).
		Select(saleViewColumns).
		Where("sales.product_id = ?", productID).
		Order("sales.sale_date ASC, sales.id ASC").
		Scan(&sales).Error
	if err != nil {
		return nil, translate(err, "failed to list sales of product %d", productID)
	}
	return sales, nil
}

// Create inserts a new sale.
func (r *GORMSaleRepository) Create(ctx context.Context, sale *models.Sale) error {
	if err := r.db.WithContext(ctx).Omit("Product").Create(sale).Error; err != nil {
		return translate(err, "failed to create sale")
	}
	return nil
}

// Update writes the product and quantity of an existing sale. The sale date is kept.
func (r *GORMSaleRepository) Update(ctx context.Context, sale *models.Sale) error {
	res := r.db.WithContext(ctx).Model(sale).Select("product_id", "quantity_sold").Updates(sale)
	if res.Error != nil {
		return translate(res.Error, "failed to update sale %d", sale.ID)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a sale.
func (r *GORMSaleRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Sale{}, id)
	if res.Error != nil {
		return translate(res.Error, "failed to delete sale %d", id)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
