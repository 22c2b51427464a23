package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Repositories hands out the repositories of one unit of work.
type Repositories interface {
	Categories() CategoryRepository
	Suppliers() SupplierRepository
	Products() ProductRepository
	Sales() SaleRepository
	StockAdjustments() StockAdjustmentRepository
	Ledger() StockLedger
	Reports() ReportRepository
	Operators() OperatorRepository

	// Transaction runs fn with repositories bound to a single database
	// transaction. It commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(tx Repositories) error) error
}

// Store is the GORM implementation of Repositories.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store on top of db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Categories() CategoryRepository { return NewGORMCategoryRepository(s.db) }

func (s *Store) Suppliers() SupplierRepository { return NewGORMSupplierRepository(s.db) }

func (s *Store) Products() ProductRepository { return NewGORMProductRepository(s.db) }

func (s *Store) Sales() SaleRepository { return NewGORMSaleRepository(s.db) }

func (s *Store) StockAdjustments() StockAdjustmentRepository {
	return NewGORMStockAdjustmentRepository(s.db)
}

func (s *Store) Ledger() StockLedger { return NewGORMStockLedger(s.db) }

func (s *Store) Reports() ReportRepository { return NewGORMReportRepository(s.db) }

func (s *Store) Operators() OperatorRepository { return NewGORMOperatorRepository(s.db) }

// Transaction implements Repositories. Nested calls reuse the outer transaction
// through a savepoint.
func (s *Store) Transaction(ctx context.Context, fn func(tx Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
