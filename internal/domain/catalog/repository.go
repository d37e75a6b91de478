package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/papersupply/backend/internal/domain/shared"
)

// ItemRepository defines catalog persistence operations
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByName(ctx context.Context, name string) (*Item, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, error)
	FindByCategory(ctx context.Context, category Category) ([]Item, error)
	FindBelowMinimum(ctx context.Context) ([]Item, error)
	Save(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	TotalStockValue(ctx context.Context) (decimal.Decimal, error)
}
