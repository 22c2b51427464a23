package repositories_test

import (
	"context"
	"errors"
	"testing"

	"gudang/internal/models"
	"gudang/internal/repositories"
	"gudang/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockLedger_Apply(t *testing.T) {
	f := testutil.NewFixture(t)
	product := f.Product(t, "Green Tea", "2.50", 10)
	ledger := repositories.NewGORMStockLedger(f.DB)
	ctx := context.Background()

	qty, err := ledger.Apply(ctx, product.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 7, qty)

	qty, err = ledger.Apply(ctx, product.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 12, qty)

	qty, err = ledger.Apply(ctx, product.ID, -12)
	require.NoError(t, err)
	assert.Equal(t, 0, qty)
	assert.Equal(t, 0, f.Stock(t, product.ID))
}

func TestStockLedger_ApplyRejectsNegativeStock(t *testing.T) {
	f := testutil.NewFixture(t)
	product := f.Product(t, "Green Tea", "2.50", 2)
	ledger := repositories.NewGORMStockLedger(f.DB)

	_, err := ledger.Apply(context.Background(), product.ID, -5)
	assert.ErrorIs(t, err, repositories.ErrInsufficientStock)
	assert.Equal(t, 2, f.Stock(t, product.ID))
}

func TestStockLedger_ApplyMissingProduct(t *testing.T) {
	f := testutil.NewFixture(t)
	ledger := repositories.NewGORMStockLedger(f.DB)

	_, err := ledger.Apply(context.Background(), 999, 1)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestStore_TransactionRollsBackStock(t *testing.T) {
	f := testutil.NewFixture(t)
	product := f.Product(t, "Green Tea", "2.50", 10)
	store := repositories.NewStore(f.DB)
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.Transaction(ctx, func(tx repositories.Repositories) error {
		if _, err := tx.Ledger().Apply(ctx, product.ID, -4); err != nil {
			return err
		}
		sale := &models.Sale{ProductID: product.ID, QuantitySold: 4}
		if err := tx.Sales().Create(ctx, sale); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 10, f.Stock(t, product.ID))

	var count int64
	require.NoError(t, f.DB.Model(&models.Sale{}).Count(&count).Error)
	assert.Zero(t, count)
}
