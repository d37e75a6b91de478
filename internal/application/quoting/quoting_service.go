package quoting

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/papersupply/backend/internal/domain/catalog"
	"github.com/papersupply/backend/internal/domain/quoting"
	"github.com/papersupply/backend/internal/domain/shared"
)

// Policy carries the tunable quoting parameters
type Policy struct {
	ValidityDays int
	DeliveryDays int
}

// DefaultPolicy returns the standard quoting terms
func DefaultPolicy() Policy {
	return Policy{
		ValidityDays: 30,
		DeliveryDays: 5,
	}
}

// Service handles quote pricing and lifecycle operations
type Service struct {
	quoteRepo   quoting.QuoteRepository
	catalogRepo catalog.ItemRepository
	policy      Policy
	logger      *zap.Logger
}

// NewService creates a new quoting Service
func NewService(quoteRepo quoting.QuoteRepository, catalogRepo catalog.ItemRepository, policy Policy, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		quoteRepo:   quoteRepo,
		catalogRepo: catalogRepo,
		policy:      policy,
		logger:      logger,
	}
}

// GenerateQuote prices the requested items with volume discounts and
// persists a pending quote. Every item must exist in the catalog.
func (s *Service) GenerateQuote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.ErrInvalidInput.WithMessagef("quote request requires at least one item")
	}

	requestDate := time.Now().UTC()
	if req.RequestDate != nil {
		requestDate = req.RequestDate.UTC()
	}

	lines := make([]quoting.Line, 0, len(req.Items))
	for _, reqItem := range req.Items {
		item, err := s.catalogRepo.FindByName(ctx, reqItem.ItemName)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.ErrNotFound.WithMessagef("item %q is not in the catalog", reqItem.ItemName)
			}
			return nil, err
		}
		line, err := quoting.NewLine(item.Name, reqItem.Quantity, item.UnitPrice)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	quote, err := quoting.NewQuote(
		s.newQuoteID(requestDate),
		req.CustomerID,
		lines,
		requestDate.AddDate(0, 0, s.policy.DeliveryDays),
		requestDate.AddDate(0, 0, s.policy.ValidityDays),
	)
	if err != nil {
		return nil, err
	}
	quote.Notes = req.Notes

	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}

	s.logger.Info("quote generated",
		zap.String("quote_id", quote.QuoteID),
		zap.String("customer_id", quote.CustomerID),
		zap.Int("lines", len(quote.Lines)),
		zap.String("total_amount", quote.TotalAmount.String()))

	return toQuoteResponse(quote), nil
}

// GetQuote loads a quote by its public identifier.
func (s *Service) GetQuote(ctx context.Context, quoteID string) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByQuoteID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(quote), nil
}

// ListQuotes returns quotes matching the filter.
func (s *Service) ListQuotes(ctx context.Context, filter shared.Filter) ([]QuoteResponse, int64, error) {
	quotes, err := s.quoteRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.quoteRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]QuoteResponse, 0, len(quotes))
	for i := range quotes {
		responses = append(responses, *toQuoteResponse(&quotes[i]))
	}
	return responses, total, nil
}

// SearchQuotes finds quotes whose id, customer or notes match every term.
func (s *Service) SearchQuotes(ctx context.Context, query string) ([]QuoteResponse, error) {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil, shared.ErrInvalidInput.WithMessagef("search query is empty")
	}
	quotes, err := s.quoteRepo.Search(ctx, terms)
	if err != nil {
		return nil, err
	}
	responses := make([]QuoteResponse, 0, len(quotes))
	for i := range quotes {
		responses = append(responses, *toQuoteResponse(&quotes[i]))
	}
	return responses, nil
}

// ValidateQuote reports whether a quote exists and is still inside its
// validity window. A missing quote validates to false rather than an error.
func (s *Service) ValidateQuote(ctx context.Context, quoteID string, now time.Time) (*ValidationResult, error) {
	quote, err := s.quoteRepo.FindByQuoteID(ctx, quoteID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &ValidationResult{QuoteID: quoteID, Valid: false}, nil
		}
		return nil, err
	}
	return &ValidationResult{QuoteID: quoteID, Valid: quote.IsValidAt(now)}, nil
}

// AcceptQuote transitions a pending quote to accepted.
func (s *Service) AcceptQuote(ctx context.Context, quoteID string) (*QuoteResponse, error) {
	return s.transition(ctx, quoteID, (*quoting.Quote).Accept)
}

// RejectQuote transitions a pending quote to rejected.
func (s *Service) RejectQuote(ctx context.Context, quoteID string) (*QuoteResponse, error) {
	return s.transition(ctx, quoteID, (*quoting.Quote).Reject)
}

func (s *Service) transition(ctx context.Context, quoteID string, apply func(*quoting.Quote) error) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByQuoteID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if err := apply(quote); err != nil {
		return nil, err
	}
	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}
	s.logger.Info("quote status changed",
		zap.String("quote_id", quote.QuoteID),
		zap.String("status", string(quote.Status)))
	return toQuoteResponse(quote), nil
}

// ExpireOldQuotes sweeps pending quotes whose validity has lapsed and
// returns how many were expired.
func (s *Service) ExpireOldQuotes(ctx context.Context, now time.Time) (*ExpiryResult, error) {
	stale, err := s.quoteRepo.FindExpiredPending(ctx, now)
	if err != nil {
		return nil, err
	}

	expired := 0
	for i := range stale {
		quote := &stale[i]
		if err := quote.Expire(); err != nil {
			continue
		}
		if err := s.quoteRepo.Save(ctx, quote); err != nil {
			return nil, err
		}
		expired++
	}

	if expired > 0 {
		s.logger.Info("expired stale quotes", zap.Int("count", expired))
	}
	return &ExpiryResult{ExpiredCount: expired, SweptAt: now}, nil
}

// newQuoteID builds an identifier like Q-2025-3F82A1.
func (s *Service) newQuoteID(at time.Time) string {
	buf := make([]byte, 3)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("Q-%d-%s", at.Year(), strings.ToUpper(hex.EncodeToString(buf)))
}
