package quoting

import (
	"context"
	"time"

	"github.com/papersupply/backend/internal/domain/shared"
)

// QuoteRepository defines quote persistence operations.
// Save persists the quote together with its lines.
type QuoteRepository interface {
	FindByQuoteID(ctx context.Context, quoteID string) (*Quote, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Quote, error)
	FindExpiredPending(ctx context.Context, now time.Time) ([]Quote, error)
	Search(ctx context.Context, terms []string) ([]Quote, error)
	Save(ctx context.Context, quote *Quote) error
	Delete(ctx context.Context, quoteID string) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
