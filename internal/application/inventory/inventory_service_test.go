package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/papersupply/backend/internal/domain/catalog"
	"github.com/papersupply/backend/internal/domain/shared"
)

// MockItemRepository is a mock implementation of catalog.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindByName(ctx context.Context, name string) (*catalog.Item, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Item, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindByCategory(ctx context.Context, category catalog.Category) ([]catalog.Item, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindBelowMinimum(ctx context.Context) ([]catalog.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) TotalStockValue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func newItem(t *testing.T, name string, stock, minLevel int) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem(name, catalog.CategoryPaper, decimal.NewFromFloat(0.05), stock, minLevel)
	require.NoError(t, err)
	return item
}

func TestService_CheckAvailability(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("short stock reports shortage and reorder", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		svc := NewService(itemRepo, zap.NewNop())
		itemRepo.On("FindByName", ctx, "A4 Paper 80gsm").
			Return(newItem(t, "A4 Paper 80gsm", 500, 1000), nil)

		result, err := svc.CheckAvailability(ctx, "A4 Paper 80gsm", 1000, asOf)

		require.NoError(t, err)
		assert.False(t, result.Available)
		assert.Equal(t, 500, result.Shortage)
		assert.True(t, result.NeedsReorder)
		assert.Equal(t, 2000, result.ReorderQuantity)
		require.NotNil(t, result.SupplierDeliveryETA)
		assert.Equal(t, asOf.AddDate(0, 0, 5), *result.SupplierDeliveryETA,
			"eta follows the 2000-unit reorder, not the requested 1000")
	})

	t.Run("ample stock is simply available", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		svc := NewService(itemRepo, zap.NewNop())
		itemRepo.On("FindByName", ctx, "A4 Paper 80gsm").
			Return(newItem(t, "A4 Paper 80gsm", 5000, 1000), nil)

		result, err := svc.CheckAvailability(ctx, "A4 Paper 80gsm", 200, asOf)

		require.NoError(t, err)
		assert.True(t, result.Available)
		assert.Equal(t, 0, result.Shortage)
		assert.False(t, result.NeedsReorder)
		assert.Equal(t, 0, result.ReorderQuantity)
		assert.Nil(t, result.SupplierDeliveryETA)
	})

	t.Run("unknown item fails", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		svc := NewService(itemRepo, zap.NewNop())
		itemRepo.On("FindByName", ctx, "Unobtainium").Return(nil, shared.ErrNotFound)

		_, err := svc.CheckAvailability(ctx, "Unobtainium", 10, asOf)

		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", shared.CodeOf(err))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		svc := NewService(new(MockItemRepository), zap.NewNop())

		_, err := svc.CheckAvailability(ctx, "A4 Paper 80gsm", 0, asOf)

		require.Error(t, err)
		assert.Equal(t, "INVALID_INPUT", shared.CodeOf(err))
	})
}

func TestReorderQuantity(t *testing.T) {
	tests := []struct {
		name     string
		stock    int
		minLevel int
		want     int
	}{
		{"refill below double threshold", 500, 1000, 2000},
		{"deep deficit wins over the floor", 0, 40, 80},
		{"huge threshold gap", 100, 5000, 10000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := newItem(t, "A4 Paper 80gsm", tt.stock, tt.minLevel)
			assert.Equal(t, tt.want, ReorderQuantity(item))
		})
	}
}

func TestSupplierDeliveryDate(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, from.AddDate(0, 0, 3), SupplierDeliveryDate(999, from))
	assert.Equal(t, from.AddDate(0, 0, 5), SupplierDeliveryDate(1000, from))
	assert.Equal(t, from.AddDate(0, 0, 5), SupplierDeliveryDate(4999, from))
	assert.Equal(t, from.AddDate(0, 0, 7), SupplierDeliveryDate(5000, from))
}

func TestService_AdjustStock(t *testing.T) {
	ctx := context.Background()

	t.Run("applies a signed delta", func(t *testing.T) {
		item := newItem(t, "A4 Paper 80gsm", 100, 50)
		itemRepo := new(MockItemRepository)
		svc := NewService(itemRepo, zap.NewNop())
		itemRepo.On("FindByName", ctx, "A4 Paper 80gsm").Return(item, nil)
		itemRepo.On("Save", ctx, item).Return(nil)

		updated, err := svc.AdjustStock(ctx, "A4 Paper 80gsm", -30)

		require.NoError(t, err)
		assert.Equal(t, 70, updated.CurrentStock)
	})

	t.Run("refuses to drive stock negative", func(t *testing.T) {
		item := newItem(t, "A4 Paper 80gsm", 100, 50)
		itemRepo := new(MockItemRepository)
		svc := NewService(itemRepo, zap.NewNop())
		itemRepo.On("FindByName", ctx, "A4 Paper 80gsm").Return(item, nil)

		_, err := svc.AdjustStock(ctx, "A4 Paper 80gsm", -200)

		require.Error(t, err)
		assert.Equal(t, "INSUFFICIENT_STOCK", shared.CodeOf(err))
		assert.Equal(t, 100, item.CurrentStock)
		itemRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestService_StockSnapshot(t *testing.T) {
	ctx := context.Background()

	itemRepo := new(MockItemRepository)
	svc := NewService(itemRepo, zap.NewNop())
	itemRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).Return([]catalog.Item{
		*newItem(t, "A4 Paper 80gsm", 500, 1000),
		*newItem(t, "Envelopes", 200, 100),
	}, nil)

	snapshot, err := svc.StockSnapshot(ctx)

	require.NoError(t, err)
	assert.Equal(t, StockSnapshot{"A4 Paper 80gsm": 500, "Envelopes": 200}, snapshot)
}
