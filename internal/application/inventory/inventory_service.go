package inventory

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/papersupply/backend/internal/domain/catalog"
	"github.com/papersupply/backend/internal/domain/shared"
)

// Supplier lead times by order size
const (
	smallOrderLeadDays  = 3
	mediumOrderLeadDays = 5
	largeOrderLeadDays  = 7

	mediumOrderThreshold = 1000
	largeOrderThreshold  = 5000
)

// Service answers stock questions against the live catalog
type Service struct {
	catalogRepo catalog.ItemRepository
	logger      *zap.Logger
}

// NewService creates a new inventory Service
func NewService(catalogRepo catalog.ItemRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// CheckAvailability reports whether a quantity can ship from stock now,
// and if not, what the shortfall and recommended reorder look like.
func (s *Service) CheckAvailability(ctx context.Context, itemName string, quantity int, asOf time.Time) (*AvailabilityResult, error) {
	if quantity <= 0 {
		return nil, shared.ErrInvalidInput.WithMessagef("quantity must be positive")
	}
	item, err := s.catalogRepo.FindByName(ctx, itemName)
	if err != nil {
		return nil, err
	}

	shortage := quantity - item.CurrentStock
	if shortage < 0 {
		shortage = 0
	}

	result := &AvailabilityResult{
		ItemName:     item.Name,
		Requested:    quantity,
		CurrentStock: item.CurrentStock,
		Available:    shortage == 0,
		Shortage:     shortage,
		NeedsReorder: item.NeedsReorder(),
		UnitPrice:    item.UnitPrice,
	}
	if result.NeedsReorder {
		// ETA is for replenishment, so it tracks the recommended reorder
		// size rather than the requested quantity.
		result.ReorderQuantity = ReorderQuantity(item)
		eta := SupplierDeliveryDate(result.ReorderQuantity, asOf)
		result.SupplierDeliveryETA = &eta
	}
	return result, nil
}

// ReorderQuantity recommends how much to reorder: enough to refill the
// threshold, but at least twice the threshold.
func ReorderQuantity(item *catalog.Item) int {
	refill := item.MinStockLevel - item.CurrentStock
	floor := 2 * item.MinStockLevel
	if refill > floor {
		return refill
	}
	return floor
}

// SupplierDeliveryDate estimates when a supplier order of the given
// size would arrive.
func SupplierDeliveryDate(quantity int, from time.Time) time.Time {
	days := smallOrderLeadDays
	switch {
	case quantity >= largeOrderThreshold:
		days = largeOrderLeadDays
	case quantity >= mediumOrderThreshold:
		days = mediumOrderLeadDays
	}
	return from.AddDate(0, 0, days)
}

// StockSnapshot returns current stock for the whole catalog.
func (s *Service) StockSnapshot(ctx context.Context) (StockSnapshot, error) {
	items, err := s.catalogRepo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 10000, OrderBy: "name", OrderDir: "asc"})
	if err != nil {
		return nil, err
	}
	snapshot := make(StockSnapshot, len(items))
	for i := range items {
		snapshot[items[i].Name] = items[i].CurrentStock
	}
	return snapshot, nil
}

// LowStockItems lists items at or below their reorder threshold.
func (s *Service) LowStockItems(ctx context.Context) ([]catalog.Item, error) {
	return s.catalogRepo.FindBelowMinimum(ctx)
}

// AdjustStock applies a signed delta to an item's stock counter.
// The counter never goes below zero.
func (s *Service) AdjustStock(ctx context.Context, itemName string, delta int) (*catalog.Item, error) {
	item, err := s.catalogRepo.FindByName(ctx, itemName)
	if err != nil {
		return nil, err
	}
	if err := item.AdjustStock(delta); err != nil {
		return nil, err
	}
	if err := s.catalogRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info("stock adjusted",
		zap.String("item", item.Name),
		zap.Int("delta", delta),
		zap.Int("current_stock", item.CurrentStock))
	return item, nil
}
