package repositories

import (
	"context"

	"gudang/internal/models"

	"gorm.io/gorm"
)

// GORMOperatorRepository is a GORM implementation of OperatorRepository.
type GORMOperatorRepository struct {
	db *gorm.DB
}

// NewGORMOperatorRepository creates a new instance of GORMOperatorRepository.
func NewGORMOperatorRepository(db *gorm.DB) *GORMOperatorRepository {
	return &GORMOperatorRepository{db: db}
}

// Create creates a new operator in the database.
func (r *GORMOperatorRepository) Create(ctx context.Context, operator *models.Operator) error {
	if err := r.db.WithContext(ctx).Create(operator).Error; err != nil {
		return translate(err, "failed to create operator")
	}
	return nil
}

// GetByUsername retrieves an operator by username.
func (r *GORMOperatorRepository) GetByUsername(ctx context.Context, username string) (*models.Operator, error) {
	var operator models.Operator
	if err := r.db.WithContext(ctx).First(&operator, "username = ?", username).Error; err != nil {
		return nil, translate(err, "failed to get operator by username %s", username)
	}
	return &operator, nil
}

// GetByEmail retrieves an operator by email.
func (r *GORMOperatorRepository) GetByEmail(ctx context.Context, email string) (*models.Operator, error) {
	var operator models.Operator
	if err := r.db.WithContext(ctx).First(&operator, "email = ?", email).Error; err != nil {
		return nil, translate(err, "failed to get operator by email %s", email)
	}
	return &operator, nil
}

// GetByID retrieves an operator by ID.
func (r *GORMOperatorRepository) GetByID(ctx context.Context, id uint) (*models.Operator, error) {
	var operator models.Operator
	if err := r.db.WithContext(ctx).First(&operator, id).Error; err != nil {
		return nil, translate(err, "failed to get operator %d", id)
	}
	return &operator, nil
}
