package fulfillment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/papersupply/backend/internal/domain/catalog"
	"github.com/papersupply/backend/internal/domain/ledger"
	"github.com/papersupply/backend/internal/domain/shared"
)

// Policy carries the tunable fulfillment parameters
type Policy struct {
	SupplierCostRatio     decimal.Decimal
	CompletedDeliveryDays int
	PartialDeliveryDays   int
	PendingDeliveryDays   int
}

// DefaultPolicy returns the standard fulfillment terms
func DefaultPolicy() Policy {
	return Policy{
		SupplierCostRatio:     decimal.NewFromFloat(0.7),
		CompletedDeliveryDays: 2,
		PartialDeliveryDays:   5,
		PendingDeliveryDays:   7,
	}
}

// UnitOfWork runs fn against repositories bound to a single database
// transaction. An error from fn rolls the whole transaction back.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(items catalog.ItemRepository, entries ledger.EntryRepository) error) error
}

// Service allocates orders against live stock and records the resulting
// ledger movements
type Service struct {
	uow    UnitOfWork
	policy Policy
	logger *zap.Logger
}

// NewService creates a new fulfillment Service
func NewService(uow UnitOfWork, policy Policy, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		uow:    uow,
		policy: policy,
		logger: logger,
	}
}

// ProcessOrder allocates each requested line against current stock.
// Shipped units are billed at the undiscounted catalog price; any
// shortfall is backordered and a supplier reorder is recorded for it.
// All items are resolved before the first mutation, so an unknown item
// fails the whole order without touching stock. The whole call runs in
// one transaction: a write failure part-way through rolls back every
// stock decrement and ledger entry already applied.
func (s *Service) ProcessOrder(ctx context.Context, req OrderRequest) (*OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.ErrInvalidInput.WithMessagef("order requires at least one item")
	}
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, shared.ErrInvalidInput.WithMessagef("quantity for %q must be positive", line.ItemName)
		}
	}

	processedAt := time.Now().UTC()
	if req.RequestDate != nil {
		processedAt = req.RequestDate.UTC()
	}

	resp := &OrderResponse{
		OrderID:        newOrderID(),
		TrackingNumber: newTrackingNumber(),
		CustomerID:     req.CustomerID,
		TotalAmount:    decimal.Zero,
		ProcessedAt:    processedAt,
	}

	err := s.uow.Execute(ctx, func(itemRepo catalog.ItemRepository, entryRepo ledger.EntryRepository) error {
		// Resolve every item up front. Duplicate lines share one instance
		// so a second line sees the stock the first one already took.
		items := make(map[string]*catalog.Item, len(req.Items))
		for _, line := range req.Items {
			if _, ok := items[line.ItemName]; ok {
				continue
			}
			item, err := itemRepo.FindByName(ctx, line.ItemName)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.ErrNotFound.WithMessagef("item %q is not in the catalog", line.ItemName)
				}
				return err
			}
			items[line.ItemName] = item
		}

		for _, line := range req.Items {
			item := items[line.ItemName]

			allocated, err := item.Allocate(line.Quantity)
			if err != nil {
				return err
			}

			if allocated > 0 {
				amount := item.UnitPrice.Mul(decimal.NewFromInt(int64(allocated)))
				sale, err := ledger.NewSale(item.Name, allocated, amount, processedAt)
				if err != nil {
					return err
				}
				if err := entryRepo.Create(ctx, sale); err != nil {
					return err
				}
				resp.Fulfilled = append(resp.Fulfilled, FulfilledLine{
					ItemName:  item.Name,
					Quantity:  allocated,
					UnitPrice: item.UnitPrice,
					Subtotal:  amount,
				})
				resp.TotalAmount = resp.TotalAmount.Add(amount)
			}

			if shortage := line.Quantity - allocated; shortage > 0 {
				resp.Backorders = append(resp.Backorders, Backorder{
					ItemName: item.Name,
					Quantity: shortage,
				})
				reorder, err := s.recordReorder(ctx, entryRepo, item, shortage, processedAt)
				if err != nil {
					return err
				}
				resp.Reorders = append(resp.Reorders, *reorder)
			}

			if err := itemRepo.Save(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp.Status, resp.DeliveryDate = s.classify(resp, processedAt)

	s.logger.Info("order processed",
		zap.String("order_id", resp.OrderID),
		zap.String("customer_id", resp.CustomerID),
		zap.String("status", string(resp.Status)),
		zap.Int("fulfilled_lines", len(resp.Fulfilled)),
		zap.Int("backorders", len(resp.Backorders)))

	return resp, nil
}

// recordReorder books a supplier purchase for the backordered units.
// Stock is not incremented until the delivery actually arrives.
func (s *Service) recordReorder(ctx context.Context, entryRepo ledger.EntryRepository, item *catalog.Item, quantity int, at time.Time) (*Reorder, error) {
	cost := item.UnitPrice.Mul(s.policy.SupplierCostRatio).Mul(decimal.NewFromInt(int64(quantity)))
	entry, err := ledger.NewStockOrder(item.Name, quantity, cost, at)
	if err != nil {
		return nil, err
	}
	if err := entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return &Reorder{
		ItemName:     item.Name,
		Quantity:     quantity,
		SupplierCost: cost,
	}, nil
}

func (s *Service) classify(resp *OrderResponse, at time.Time) (OrderStatus, time.Time) {
	switch {
	case len(resp.Backorders) == 0:
		return StatusCompleted, at.AddDate(0, 0, s.policy.CompletedDeliveryDays)
	case len(resp.Fulfilled) == 0:
		return StatusPending, at.AddDate(0, 0, s.policy.PendingDeliveryDays)
	default:
		return StatusPartial, at.AddDate(0, 0, s.policy.PartialDeliveryDays)
	}
}

// newOrderID builds an identifier like ORD-9C4E21AB.
func newOrderID() string {
	return "ORD-" + randomHex(4)
}

// newTrackingNumber builds an identifier like TRK-5A0B9C4E21AB.
func newTrackingNumber() string {
	return "TRK-" + randomHex(6)
}

func randomHex(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	return strings.ToUpper(hex.EncodeToString(buf))
}
