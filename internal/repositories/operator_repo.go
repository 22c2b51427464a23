package repositories

import (
	"context"

	"gudang/internal/models"
)

// OperatorRepository defines the interface for operator data access.
type OperatorRepository interface {
	Create(ctx context.Context, operator *models.Operator) error
	GetByUsername(ctx context.Context, username string) (*models.Operator, error)
	GetByEmail(ctx context.Context, email string) (*models.Operator, error)
	GetByID(ctx context.Context, id uint) (*models.Operator, error)
}
