package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"gudang/internal/apperror"
	"gudang/internal/config"
	"gudang/internal/logger"
	"gudang/internal/models"
	"gudang/internal/repositories"
	"gudang/internal/services"
	"gudang/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	events []models.StockMovementEvent
	err    error
}

func (p *recordingPublisher) PublishStockMovement(event models.StockMovementEvent) error {
	p.events = append(p.events, event)
	return p.err
}

func newSaleService(f *testutil.Fixture, policy string, publisher services.StockEventPublisher) *services.SaleService {
	return services.NewSaleService(repositories.NewStore(f.DB), policy, publisher, logger.Discard())
}

func TestSaleService_CreateTakesStock(t *testing.T) {
	f := testutil.NewFixture(t)
	product := f.Product(t, "Green Tea", "2.50", 10)
	publisher := &recordingPublisher{}
	svc := newSaleService(f, config.PolicyReverse, publisher)

	before := time.Now().UTC().Add(-time.Second)
	sale, err := svc.Create(context.Background(), models.SaleRequest{ProductID: product.ID, QuantitySold: 3})
	require.NoError(t, err)

	assert.Equal(t, 3, sale.QuantitySold)
	assert.Equal(t, "Green Tea", sale.ProductName)
	assert.False(t, sale.SaleDate.Before(before), "sale date should be server time")
	assert.WithinDuration(t, time.Now(), sale.SaleDate, time.Minute)
	assert.Equal(t, 7, f.Stock(t, product.ID))

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, models.MovementSale, event.Kind)
	assert.Equal(t, -3, event.Delta)
	assert.Equal(t, 7, event.QuantityAfter)
	assert.Equal(t, sale.ID, event.ReferenceID)
	assert.NotEmpty(t, event.ID)
}

func TestSaleService_CreateInsufficientStock(t *testing.T) {
	f := testutil.NewFixture(t)
	product := f.Product(t, "Green Tea", "2.50", 2)
	publisher := &recordingPublisher{}
	svc := newSaleService(f, config.PolicyReverse, publisher)

	_, err := svc.Create(context.Background(), models.SaleRequest{ProductID: product.ID, QuantitySold: 5})
	assert.True(t, apperror.Is(err, apperror.KindConflict), "got %v", err)
	assert.Equal(t, 2, f.Stock(t, product.ID))
	assert.Empty(t, publisher.events)

	var count int64
	require.NoError(t, f.DB.Model(&models.Sale{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSaleService_CreateValidation(t *testing.T) {
	f := testutil.NewFixture(t)
	product := f.Product(t, "Green Tea", "2.50", 2)
	svc := newSaleService(f, config.PolicyReverse, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.SaleRequest
		kind apperror.Kind
	}{
		{"zero quantity", models.SaleRequest{ProductID: product.ID, QuantitySold: 0}, apperror.KindValidation},
		{"negative quantity", models.SaleRequest{ProductID: product.ID, QuantitySold: -1}, apperror.KindValidation},
		{"missing product id", models.SaleRequest{QuantitySold: 1}, apperror.KindValidation},
		{"unknown product", models.SaleRequest{ProductID: 999, QuantitySold: 1}, apperror.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			assert.Equal(t, tt.kind, apperror.KindOf(err))
		})
	}
	assert.Equal(t, 2, f.Stock(t, product.ID))
}

func TestSaleService_UpdateNoChange(t *testing.T) {
	f := testutil.NewFixture(t)
	product := f.Product(t, "Green Tea", "2.50", 10)
	svc := newSaleService(f, config.PolicyReverse, nil)
	ctx := context.Background()

	sale, err := svc.Create(ctx, models.SaleRequest{ProductID: product.ID, QuantitySold: 3})
	require.NoError(t, err)

	_, err = svc.Update(ctx, sale.ID, models.SaleRequest{ProductID: product.ID, QuantitySold: 3})
	assert.True(t, apperror.Is(err, apperror.KindNoChange))
	assert.Equal(t, 7, f.Stock(t, product.ID))
}

func TestSaleService_UpdateNotFound(t *testing.T) {
	f := testutil.NewFixture(t)
	product := f.Product(t, "Green Tea", "2.50", 10)
	svc := newSaleService(f, config.PolicyReverse, nil)
	ctx := context.Background()

	_, err := svc.Update(ctx, 42, models.SaleRequest{ProductID: product.ID, QuantitySold: 1})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.Equal(t, "Sale not found", apperror.MessageOf(err))

	_, err = svc.Update(ctx, 42, models.SaleRequest{ProductID: 999, QuantitySold: 1})
	assert.Equal(t, "Product not found", apperror.MessageOf(err))
}

// The reverse policy returns the old quantity before taking the new one, so
// only the difference leaves stock.
func TestSaleService_UpdateReversePolicy(t *testing.T) {
	f := testutil.NewFixture(t)
	tea := f.Product(t, "Green Tea", "2.50", 10)
	coffee := f.Product(t, "Coffee", "4.00", 5)
	publisher := &recordingPublisher{}
	svc := newSaleService(f, config.PolicyReverse, publisher)
	ctx := context.Background()

	sale, err := svc.Create(ctx, models.SaleRequest{ProductID: tea.ID, QuantitySold: 3})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, sale.ID, models.SaleRequest{ProductID: tea.ID, QuantitySold: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.QuantitySold)
	assert.True(t, sale.SaleDate.Equal(updated.SaleDate))
	assert.Equal(t, 5, f.Stock(t, tea.ID))

	// The whole stock of the old product is usable once its sale is reversed.
	_, err = svc.Update(ctx, sale.ID, models.SaleRequest{ProductID: tea.ID, QuantitySold: 10})
	require.NoError(t, err)
	assert.Equal(t, 0, f.Stock(t, tea.ID))

	moved, err := svc.Update(ctx, sale.ID, models.SaleRequest{ProductID: coffee.ID, QuantitySold: 2})
	require.NoError(t, err)
	assert.Equal(t, "Coffee", moved.ProductName)
	assert.Equal(t, 10, f.Stock(t, tea.ID))
	assert.Equal(t, 3, f.Stock(t, coffee.ID))

	_, err = svc.Update(ctx, sale.ID, models.SaleRequest{ProductID: tea.ID, QuantitySold: 11})
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Equal(t, 10, f.Stock(t, tea.ID), "failed update must roll back the reversal")
	assert.Equal(t, 3, f.Stock(t, coffee.ID))

	last := publisher.events[len(publisher.events)-2:]
	assert.Equal(t, models.MovementSaleReversal, last[0].Kind)
	assert.Equal(t, models.MovementSale, last[1].Kind)
}

// The legacy policy keeps the old effect and takes the new quantity on top of it.
func TestSaleService_UpdateLegacyPolicy(t *testing.T) {
	f := testutil.NewFixture(t)
	tea := f.Product(t, "Green Tea", "2.50", 10)
	svc := newSaleService(f, config.PolicyLegacy, nil)
	ctx := context.Background()

	sale, err := svc.Create(ctx, models.SaleRequest{ProductID: tea.ID, QuantitySold: 3})
	require.NoError(t, err)

	_, err = svc.Update(ctx, sale.ID, models.SaleRequest{ProductID: tea.ID, QuantitySold: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, f.Stock(t, tea.ID))

	_, err = svc.Update(ctx, sale.ID, models.SaleRequest{ProductID: tea.ID, QuantitySold: 3})
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Equal(t, 2, f.Stock(t, tea.ID))
}

func TestSaleService_DeletePolicies(t *testing.T) {
	ctx := context.Background()

	t.Run("reverse returns stock", func(t *testing.T) {
		f := testutil.NewFixture(t)
		tea := f.Product(t, "Green Tea", "2.50", 10)
		svc := newSaleService(f, config.PolicyReverse, nil)

		sale, err := svc.Create(ctx, models.SaleRequest{ProductID: tea.ID, QuantitySold: 4})
		require.NoError(t, err)
		require.NoError(t, svc.Delete(ctx, sale.ID))
		assert.Equal(t, 10, f.Stock(t, tea.ID))

		_, err = svc.GetByID(ctx, sale.ID)
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})

	t.Run("legacy leaves stock", func(t *testing.T) {
		f := testutil.NewFixture(t)
		tea := f.Product(t, "Green Tea", "2.50", 10)
		svc := newSaleService(f, config.PolicyLegacy, nil)

		sale, err := svc.Create(ctx, models.SaleRequest{ProductID: tea.ID, QuantitySold: 4})
		require.NoError(t, err)
		require.NoError(t, svc.Delete(ctx, sale.ID))
		assert.Equal(t, 6, f.Stock(t, tea.ID))
	})

	t.Run("missing sale", func(t *testing.T) {
		f := testutil.NewFixture(t)
		err := newSaleService(f, config.PolicyReverse, nil).Delete(ctx, 42)
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})
}

func TestSaleService_PublishFailureDoesNotFailRequest(t *testing.T) {
	f := testutil.NewFixture(t)
	tea := f.Product(t, "Green Tea", "2.50", 10)
	publisher := &recordingPublisher{err: errors.New("broker down")}
	svc := newSaleService(f, config.PolicyReverse, publisher)

	_, err := svc.Create(context.Background(), models.SaleRequest{ProductID: tea.ID, QuantitySold: 1})
	require.NoError(t, err)
	assert.Len(t, publisher.events, 1)
	assert.Equal(t, 9, f.Stock(t, tea.ID))
}

func TestSaleService_ListFilters(t *testing.T) {
	f := testutil.NewFixture(t)
	tea := f.Product(t, "Green Tea", "2.50", 100)
	coffee := f.Product(t, "Coffee", "4.00", 100)
	svc := newSaleService(f, config.PolicyReverse, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, models.SaleRequest{ProductID: tea.ID, QuantitySold: 1})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, models.SaleRequest{ProductID: coffee.ID, QuantitySold: 1})
	require.NoError(t, err)

	page, err := svc.List(ctx, models.SaleFilter{Keyword: "tea", Pagination: models.Pagination{Page: 1, Size: 2}})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.TotalCount)
	assert.Equal(t, 2, page.TotalPage)
	assert.Len(t, page.Items, 2)

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	page, err = svc.List(ctx, models.SaleFilter{EndDate: &yesterday})
	require.NoError(t, err)
	assert.Zero(t, page.TotalCount)
	assert.NotNil(t, page.Items)

	start := time.Now().UTC()
	_, err = svc.List(ctx, models.SaleFilter{StartDate: &start, EndDate: &yesterday})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}
