package quoting

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
	"github.com/papersupply/backend/internal/domain/quoting"
	"github.com/papersupply/backend/internal/domain/shared"
)

// MockQuoteRepository is a mock implementation of quoting.QuoteRepository
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) FindByQuoteID(ctx context.Context, quoteID string) (*quoting.Quote, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quoting.Quote), args.Error(1)
}

func (m *MockQuoteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]quoting.Quote, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]quoting.Quote), args.Error(1)
}

func (m *MockQuoteRepository) FindExpiredPending(ctx context.Context, now time.Time) ([]quoting.Quote, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]quoting.Quote), args.Error(1)
}

func (m *MockQuoteRepository) Search(ctx context.Context, terms []string) ([]quoting.Quote, error) {
	args := m.Called(ctx, terms)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]quoting.Quote), args.Error(1)
}

func (m *MockQuoteRepository) Save(ctx context.Context, quote *quoting.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockQuoteRepository) Delete(ctx context.Context, quoteID string) error {
	args := m.Called(ctx, quoteID)
	return args.Error(0)
}

func (m *MockQuoteRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

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

func newTestItem(t *testing.T, name string, price float64, stock, minLevel int) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem(name, catalog.CategoryPaper, decimal.NewFromFloat(price), stock, minLevel)
	require.NoError(t, err)
	return item
}

func TestService_GenerateQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("applies the top tier discount", func(t *testing.T) {
		quoteRepo := new(MockQuoteRepository)
		itemRepo := new(MockItemRepository)
		svc := NewService(quoteRepo, itemRepo, DefaultPolicy(), zap.NewNop())

		itemRepo.On("FindByName", ctx, "Premium Cardstock").
			Return(newTestItem(t, "Premium Cardstock", 1.00, 50000, 1000), nil)
		quoteRepo.On("Save", ctx, mock.AnythingOfType("*quoting.Quote")).Return(nil)

		requestDate := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
		resp, err := svc.GenerateQuote(ctx, QuoteRequest{
			CustomerID:  "cust-042",
			Items:       []QuoteRequestItem{{ItemName: "Premium Cardstock", Quantity: 10000}},
			RequestDate: &requestDate,
		})

		require.NoError(t, err)
		require.Len(t, resp.Lines, 1)
		assert.True(t, resp.Lines[0].DiscountPercent.Equal(decimal.NewFromFloat(0.15)))
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromFloat(8500.00)), "got %s", resp.TotalAmount)
		assert.True(t, resp.TotalSavings.Equal(decimal.NewFromFloat(1500.00)), "got %s", resp.TotalSavings)
		assert.Equal(t, requestDate.AddDate(0, 0, 5), resp.DeliveryDate)
		assert.Equal(t, requestDate.AddDate(0, 0, 30), resp.ValidUntil)
		assert.Regexp(t, `^Q-2025-[0-9A-F]{6}$`, resp.QuoteID)
		quoteRepo.AssertExpectations(t)
	})

	t.Run("fails when an item is unknown", func(t *testing.T) {
		quoteRepo := new(MockQuoteRepository)
		itemRepo := new(MockItemRepository)
		svc := NewService(quoteRepo, itemRepo, DefaultPolicy(), zap.NewNop())

		itemRepo.On("FindByName", ctx, "Unobtainium").Return(nil, shared.ErrNotFound)

		_, err := svc.GenerateQuote(ctx, QuoteRequest{
			CustomerID: "cust-042",
			Items:      []QuoteRequestItem{{ItemName: "Unobtainium", Quantity: 100}},
		})

		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", shared.CodeOf(err))
		quoteRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("fails with no items", func(t *testing.T) {
		svc := NewService(new(MockQuoteRepository), new(MockItemRepository), DefaultPolicy(), zap.NewNop())

		_, err := svc.GenerateQuote(ctx, QuoteRequest{CustomerID: "cust-042"})

		require.Error(t, err)
		assert.Equal(t, "INVALID_INPUT", shared.CodeOf(err))
	})
}

func TestService_ValidateQuote(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

	storedQuote := func(t *testing.T, validUntil time.Time) *quoting.Quote {
		line, err := quoting.NewLine("A4 Paper 80gsm", 100, decimal.NewFromFloat(0.05))
		require.NoError(t, err)
		q, err := quoting.NewQuote("Q-2025-AB12CD", "cust-001", []quoting.Line{line},
			validUntil.AddDate(0, 0, -25), validUntil)
		require.NoError(t, err)
		return q
	}

	t.Run("valid inside the window", func(t *testing.T) {
		quoteRepo := new(MockQuoteRepository)
		svc := NewService(quoteRepo, new(MockItemRepository), DefaultPolicy(), zap.NewNop())
		quoteRepo.On("FindByQuoteID", ctx, "Q-2025-AB12CD").
			Return(storedQuote(t, now.AddDate(0, 0, 1)), nil)

		result, err := svc.ValidateQuote(ctx, "Q-2025-AB12CD", now)

		require.NoError(t, err)
		assert.True(t, result.Valid)
	})

	t.Run("invalid past the window", func(t *testing.T) {
		quoteRepo := new(MockQuoteRepository)
		svc := NewService(quoteRepo, new(MockItemRepository), DefaultPolicy(), zap.NewNop())
		quoteRepo.On("FindByQuoteID", ctx, "Q-2025-AB12CD").
			Return(storedQuote(t, now.AddDate(0, 0, -1)), nil)

		result, err := svc.ValidateQuote(ctx, "Q-2025-AB12CD", now)

		require.NoError(t, err)
		assert.False(t, result.Valid)
	})

	t.Run("missing quote validates to false", func(t *testing.T) {
		quoteRepo := new(MockQuoteRepository)
		svc := NewService(quoteRepo, new(MockItemRepository), DefaultPolicy(), zap.NewNop())
		quoteRepo.On("FindByQuoteID", ctx, "Q-2025-MISSING").Return(nil, shared.ErrNotFound)

		result, err := svc.ValidateQuote(ctx, "Q-2025-MISSING", now)

		require.NoError(t, err)
		assert.False(t, result.Valid)
	})
}

func TestService_ExpireOldQuotes(t *testing.T) {
	ctx := context.Background()

	t.Run("expires a quote one day past validity", func(t *testing.T) {
		created := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
		sweepAt := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

		line, err := quoting.NewLine("A4 Paper 80gsm", 100, decimal.NewFromFloat(0.05))
		require.NoError(t, err)
		stale, err := quoting.NewQuote("Q-2025-0FF1CE", "cust-001", []quoting.Line{line},
			created.AddDate(0, 0, 5), created.AddDate(0, 0, 30))
		require.NoError(t, err)

		quoteRepo := new(MockQuoteRepository)
		svc := NewService(quoteRepo, new(MockItemRepository), DefaultPolicy(), zap.NewNop())
		quoteRepo.On("FindExpiredPending", ctx, sweepAt).Return([]quoting.Quote{*stale}, nil)
		quoteRepo.On("Save", ctx, mock.MatchedBy(func(q *quoting.Quote) bool {
			return q.Status == quoting.StatusExpired
		})).Return(nil)

		result, err := svc.ExpireOldQuotes(ctx, sweepAt)

		require.NoError(t, err)
		assert.Equal(t, 1, result.ExpiredCount)
		quoteRepo.AssertExpectations(t)
	})

	t.Run("nothing to expire", func(t *testing.T) {
		quoteRepo := new(MockQuoteRepository)
		svc := NewService(quoteRepo, new(MockItemRepository), DefaultPolicy(), zap.NewNop())
		quoteRepo.On("FindExpiredPending", ctx, mock.AnythingOfType("time.Time")).
			Return([]quoting.Quote{}, nil)

		result, err := svc.ExpireOldQuotes(ctx, time.Now())

		require.NoError(t, err)
		assert.Equal(t, 0, result.ExpiredCount)
		quoteRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestService_AcceptQuote(t *testing.T) {
	ctx := context.Background()

	line, err := quoting.NewLine("A4 Paper 80gsm", 100, decimal.NewFromFloat(0.05))
	require.NoError(t, err)
	pending, err := quoting.NewQuote("Q-2025-ACCEPT", "cust-001", []quoting.Line{line},
		time.Now().AddDate(0, 0, 5), time.Now().AddDate(0, 0, 30))
	require.NoError(t, err)

	quoteRepo := new(MockQuoteRepository)
	svc := NewService(quoteRepo, new(MockItemRepository), DefaultPolicy(), zap.NewNop())
	quoteRepo.On("FindByQuoteID", ctx, "Q-2025-ACCEPT").Return(pending, nil)
	quoteRepo.On("Save", ctx, mock.AnythingOfType("*quoting.Quote")).Return(nil)

	resp, err := svc.AcceptQuote(ctx, "Q-2025-ACCEPT")

	require.NoError(t, err)
	assert.Equal(t, quoting.StatusAccepted, resp.Status)

	// a second transition must fail
	_, err = svc.AcceptQuote(ctx, "Q-2025-ACCEPT")
	require.Error(t, err)
	assert.Equal(t, "INVALID_STATE", shared.CodeOf(err))
}
