package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ItemSales aggregates sale volume for one item
type ItemSales struct {
	ItemName   string          `json:"item_name"`
	TotalUnits int             `json:"total_units"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// EntryRepository defines ledger persistence operations.
// The ledger is append-only; there are no update or delete methods.
type EntryRepository interface {
	Create(ctx context.Context, entry *Entry) error
	FindUpTo(ctx context.Context, asOf time.Time) ([]Entry, error)
	FindByItemUpTo(ctx context.Context, itemName string, asOf time.Time) ([]Entry, error)
	SumAmountByKind(ctx context.Context, kind Kind, from, to time.Time) (decimal.Decimal, error)
	TopSellers(ctx context.Context, limit int) ([]ItemSales, error)
}
