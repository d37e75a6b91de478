package fulfillment

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
	"github.com/papersupply/backend/internal/domain/ledger"
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

// MockEntryRepository is a mock implementation of ledger.EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) Create(ctx context.Context, entry *ledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) FindUpTo(ctx context.Context, asOf time.Time) ([]ledger.Entry, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindByItemUpTo(ctx context.Context, itemName string, asOf time.Time) ([]ledger.Entry, error) {
	args := m.Called(ctx, itemName, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) SumAmountByKind(ctx context.Context, kind ledger.Kind, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, kind, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockEntryRepository) TopSellers(ctx context.Context, limit int) ([]ledger.ItemSales, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.ItemSales), args.Error(1)
}

// passthroughUnitOfWork hands the test's mocks to the closure directly;
// rollback behavior is covered against a real database in the
// persistence package.
type passthroughUnitOfWork struct {
	items   catalog.ItemRepository
	entries ledger.EntryRepository
}

func (u passthroughUnitOfWork) Execute(ctx context.Context, fn func(catalog.ItemRepository, ledger.EntryRepository) error) error {
	return fn(u.items, u.entries)
}

func newTestService(itemRepo catalog.ItemRepository, ledgerRepo ledger.EntryRepository) *Service {
	return NewService(passthroughUnitOfWork{items: itemRepo, entries: ledgerRepo}, DefaultPolicy(), zap.NewNop())
}

func newPaperItem(t *testing.T, stock int) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem("A4 Paper 80gsm", catalog.CategoryPaper, decimal.NewFromFloat(0.05), stock, 1000)
	require.NoError(t, err)
	return item
}

func TestService_ProcessOrder(t *testing.T) {
	ctx := context.Background()
	requestDate := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("partial allocation records sale and reorder", func(t *testing.T) {
		item := newPaperItem(t, 500)
		itemRepo := new(MockItemRepository)
		ledgerRepo := new(MockEntryRepository)
		svc := newTestService(itemRepo, ledgerRepo)

		itemRepo.On("FindByName", ctx, "A4 Paper 80gsm").Return(item, nil)
		itemRepo.On("Save", ctx, item).Return(nil)

		var recorded []*ledger.Entry
		ledgerRepo.On("Create", ctx, mock.AnythingOfType("*ledger.Entry")).
			Run(func(args mock.Arguments) {
				recorded = append(recorded, args.Get(1).(*ledger.Entry))
			}).Return(nil)

		resp, err := svc.ProcessOrder(ctx, OrderRequest{
			CustomerID:  "cust-042",
			Items:       []OrderRequestItem{{ItemName: "A4 Paper 80gsm", Quantity: 1000}},
			RequestDate: &requestDate,
		})

		require.NoError(t, err)
		assert.Equal(t, StatusPartial, resp.Status)
		assert.Equal(t, requestDate.AddDate(0, 0, 5), resp.DeliveryDate)
		assert.Equal(t, 0, item.CurrentStock)

		require.Len(t, resp.Fulfilled, 1)
		assert.Equal(t, 500, resp.Fulfilled[0].Quantity)
		assert.True(t, resp.Fulfilled[0].Subtotal.Equal(decimal.NewFromFloat(25.00)))

		require.Len(t, resp.Backorders, 1)
		assert.Equal(t, 500, resp.Backorders[0].Quantity)

		require.Len(t, resp.Reorders, 1)
		assert.True(t, resp.Reorders[0].SupplierCost.Equal(decimal.NewFromFloat(17.50)),
			"got %s", resp.Reorders[0].SupplierCost)

		require.Len(t, recorded, 2)
		sale, order := recorded[0], recorded[1]
		assert.Equal(t, ledger.KindSale, sale.Kind)
		assert.Equal(t, 500, *sale.Units)
		assert.True(t, sale.Amount.Equal(decimal.NewFromFloat(25.00)))
		assert.Equal(t, ledger.KindStockOrder, order.Kind)
		assert.Equal(t, 500, *order.Units)
		assert.True(t, order.Amount.Equal(decimal.NewFromFloat(17.50)))

		assert.Regexp(t, `^ORD-[0-9A-F]{8}$`, resp.OrderID)
		assert.Regexp(t, `^TRK-[0-9A-F]{12}$`, resp.TrackingNumber)
	})

	t.Run("full allocation completes the order", func(t *testing.T) {
		item := newPaperItem(t, 5000)
		itemRepo := new(MockItemRepository)
		ledgerRepo := new(MockEntryRepository)
		svc := newTestService(itemRepo, ledgerRepo)

		itemRepo.On("FindByName", ctx, "A4 Paper 80gsm").Return(item, nil)
		itemRepo.On("Save", ctx, item).Return(nil)
		ledgerRepo.On("Create", ctx, mock.AnythingOfType("*ledger.Entry")).Return(nil)

		resp, err := svc.ProcessOrder(ctx, OrderRequest{
			CustomerID:  "cust-042",
			Items:       []OrderRequestItem{{ItemName: "A4 Paper 80gsm", Quantity: 1000}},
			RequestDate: &requestDate,
		})

		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, resp.Status)
		assert.Equal(t, requestDate.AddDate(0, 0, 2), resp.DeliveryDate)
		assert.Empty(t, resp.Backorders)
		assert.Empty(t, resp.Reorders)
		assert.Equal(t, 4000, item.CurrentStock)
		ledgerRepo.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("empty stock leaves the order pending", func(t *testing.T) {
		item := newPaperItem(t, 0)
		itemRepo := new(MockItemRepository)
		ledgerRepo := new(MockEntryRepository)
		svc := newTestService(itemRepo, ledgerRepo)

		itemRepo.On("FindByName", ctx, "A4 Paper 80gsm").Return(item, nil)
		itemRepo.On("Save", ctx, item).Return(nil)
		ledgerRepo.On("Create", ctx, mock.MatchedBy(func(e *ledger.Entry) bool {
			return e.Kind == ledger.KindStockOrder
		})).Return(nil)

		resp, err := svc.ProcessOrder(ctx, OrderRequest{
			CustomerID:  "cust-042",
			Items:       []OrderRequestItem{{ItemName: "A4 Paper 80gsm", Quantity: 300}},
			RequestDate: &requestDate,
		})

		require.NoError(t, err)
		assert.Equal(t, StatusPending, resp.Status)
		assert.Equal(t, requestDate.AddDate(0, 0, 7), resp.DeliveryDate)
		assert.Empty(t, resp.Fulfilled)
		assert.True(t, resp.TotalAmount.IsZero())
	})

	t.Run("unknown item aborts before any mutation", func(t *testing.T) {
		item := newPaperItem(t, 500)
		itemRepo := new(MockItemRepository)
		ledgerRepo := new(MockEntryRepository)
		svc := newTestService(itemRepo, ledgerRepo)

		itemRepo.On("FindByName", ctx, "A4 Paper 80gsm").Return(item, nil)
		itemRepo.On("FindByName", ctx, "Unobtainium").Return(nil, shared.ErrNotFound)

		_, err := svc.ProcessOrder(ctx, OrderRequest{
			CustomerID: "cust-042",
			Items: []OrderRequestItem{
				{ItemName: "A4 Paper 80gsm", Quantity: 100},
				{ItemName: "Unobtainium", Quantity: 10},
			},
			RequestDate: &requestDate,
		})

		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", shared.CodeOf(err))
		assert.Equal(t, 500, item.CurrentStock)
		itemRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		ledgerRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate lines share one stock pool", func(t *testing.T) {
		item := newPaperItem(t, 500)
		itemRepo := new(MockItemRepository)
		ledgerRepo := new(MockEntryRepository)
		svc := newTestService(itemRepo, ledgerRepo)

		itemRepo.On("FindByName", ctx, "A4 Paper 80gsm").Return(item, nil).Once()
		itemRepo.On("Save", ctx, item).Return(nil)
		ledgerRepo.On("Create", ctx, mock.AnythingOfType("*ledger.Entry")).Return(nil)

		resp, err := svc.ProcessOrder(ctx, OrderRequest{
			CustomerID: "cust-042",
			Items: []OrderRequestItem{
				{ItemName: "A4 Paper 80gsm", Quantity: 400},
				{ItemName: "A4 Paper 80gsm", Quantity: 400},
			},
			RequestDate: &requestDate,
		})

		require.NoError(t, err)
		assert.Equal(t, 0, item.CurrentStock)
		require.Len(t, resp.Fulfilled, 2)
		assert.Equal(t, 400, resp.Fulfilled[0].Quantity)
		assert.Equal(t, 100, resp.Fulfilled[1].Quantity)
		require.Len(t, resp.Backorders, 1)
		assert.Equal(t, 300, resp.Backorders[0].Quantity)
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		svc := newTestService(new(MockItemRepository), new(MockEntryRepository))

		_, err := svc.ProcessOrder(ctx, OrderRequest{
			CustomerID: "cust-042",
			Items:      []OrderRequestItem{{ItemName: "A4 Paper 80gsm", Quantity: 0}},
		})

		require.Error(t, err)
		assert.Equal(t, "INVALID_INPUT", shared.CodeOf(err))
	})

	t.Run("ledger write failure aborts through the transaction boundary", func(t *testing.T) {
		item := newPaperItem(t, 500)
		itemRepo := new(MockItemRepository)
		ledgerRepo := new(MockEntryRepository)
		svc := newTestService(itemRepo, ledgerRepo)

		itemRepo.On("FindByName", ctx, "A4 Paper 80gsm").Return(item, nil)
		ledgerRepo.On("Create", ctx, mock.MatchedBy(func(e *ledger.Entry) bool {
			return e.Kind == ledger.KindSale
		})).Return(nil)
		ledgerRepo.On("Create", ctx, mock.MatchedBy(func(e *ledger.Entry) bool {
			return e.Kind == ledger.KindStockOrder
		})).Return(assert.AnError)

		resp, err := svc.ProcessOrder(ctx, OrderRequest{
			CustomerID:  "cust-042",
			Items:       []OrderRequestItem{{ItemName: "A4 Paper 80gsm", Quantity: 1000}},
			RequestDate: &requestDate,
		})

		require.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, resp)
		itemRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
