package repositories

import (
	"context"
	"strings"

	"gudang/internal/models"

	"gorm.io/gorm"
)

// GORMSupplierRepository is a GORM implementation of SupplierRepository.
type GORMSupplierRepository struct {
	db *gorm.DB
}

// NewGORMSupplierRepository creates a new instance of GORMSupplierRepository.
func NewGORMSupplierRepository(db *gorm.DB) *GORMSupplierRepository {
	return &GORMSupplierRepository{db: db}
}

// List returns one page of suppliers matching filter and the total match count.
func (r *GORMSupplierRepository) List(ctx context.Context, filter models.SupplierFilter) ([]models.Supplier, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Supplier{}).
		Scopes(nameContains("name", filter.Keyword)).
		Session(&gorm.Session{})

	var suppliers []models.Supplier
	total, err := countAndFind(q, filter.Pagination.Normalize(), "", "name ASC, id ASC", &suppliers)
	if err != nil {
		return nil, 0, translate(err, "failed to list suppliers")
	}
	return suppliers, total, nil
}

// GetByID retrieves a single supplier by its ID.
func (r *GORMSupplierRepository) GetByID(ctx context.Context, id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, id).Error; err != nil {
		return nil, translate(err, "failed to get supplier %d", id)
	}
	return &supplier, nil
}

// Exists reports whether a supplier with the given ID exists.
func (r *GORMSupplierRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Supplier{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translate(err, "failed to check supplier %d", id)
	}
	return count > 0, nil
}

// NameTaken reports whether a supplier other than excludeID already uses name.
func (r *GORMSupplierRepository) NameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Supplier{}).
		Where("LOWER(TRIM(name)) = ? AND id <> ?", strings.ToLower(strings.TrimSpace(name)), excludeID).
		Count(&count).Error
	if err != nil {
		return false, translate(err, "failed to check supplier name")
	}
	return count > 0, nil
}

// Create inserts a new supplier.
func (r *GORMSupplierRepository) Create(ctx context.Context, supplier *models.Supplier) error {
	if err := r.db.WithContext(ctx).Create(supplier).Error; err != nil {
		return translate(err, "failed to create supplier")
	}
	return nil
}

// Update writes the name and phone of an existing supplier.
func (r *GORMSupplierRepository) Update(ctx context.Context, supplier *models.Supplier) error {
	res := r.db.WithContext(ctx).Model(supplier).Select("name", "phone", "updated_at").Updates(supplier)
	if res.Error != nil {
		return translate(res.Error, "failed to update supplier %d", supplier.ID)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a supplier. It fails with ErrReferenced while products use it.
func (r *GORMSupplierRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	inUse, err := referenced(db, id, "supplier_id", &models.Product{})
	if err != nil {
		return translate(err, "failed to check references of supplier %d", id)
	}
	if inUse {
		return ErrReferenced
	}

	res := db.Delete(&models.Supplier{}, id)
	if res.Error != nil {
		return translate(res.Error, "failed to delete supplier %d", id)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// WithProducts lists every supplier with the names of its products.
func (r *GORMSupplierRepository) WithProducts(ctx context.Context) ([]models.SupplierWithProducts, error) {
	db := r.db.WithContext(ctx)

	var suppliers []models.Supplier
	if err := db.Order("name ASC, id ASC").Find(&suppliers).Error; err != nil {
		return nil, translate(err, "failed to list suppliers")
	}

	var products []models.Product
	if err := db.Select("id, name, supplier_id").Order("name ASC, id ASC").Find(&products).Error; err != nil {
		return nil, translate(err, "failed to list products by supplier")
	}

	names := make(map[uint][]string, len(suppliers))
	for _, p := range products {
		names[p.SupplierID] = append(names[p.SupplierID], p.Name)
	}

	result := make([]models.SupplierWithProducts, 0, len(suppliers))
	for _, s := range suppliers {
		productNames := names[s.ID]
		if productNames == nil {
			productNames = []string{}
		}
		result = append(result, models.SupplierWithProducts{
			SupplierID:   s.ID,
			SupplierName: s.Name,
			ProductNames: productNames,
		})
	}
	return result, nil
}
