package finance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/papersupply/backend/internal/domain/catalog"
	"github.com/papersupply/backend/internal/domain/ledger"
	"github.com/papersupply/backend/internal/domain/shared"
)

// DefaultTopSellersLimit caps the best-seller ranking in reports
const DefaultTopSellersLimit = 10

// Service derives financial state by replaying the ledger and summing
// over the live catalog
type Service struct {
	ledgerRepo      ledger.EntryRepository
	catalogRepo     catalog.ItemRepository
	topSellersLimit int
	logger          *zap.Logger
}

// NewService creates a new finance Service
func NewService(ledgerRepo ledger.EntryRepository, catalogRepo catalog.ItemRepository, topSellersLimit int, logger *zap.Logger) *Service {
	if topSellersLimit <= 0 {
		topSellersLimit = DefaultTopSellersLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		ledgerRepo:      ledgerRepo,
		catalogRepo:     catalogRepo,
		topSellersLimit: topSellersLimit,
		logger:          logger,
	}
}

// StockLevel replays the item's ledger entries up to asOf.
// Stock orders add units, sales subtract them.
func (s *Service) StockLevel(ctx context.Context, itemName string, asOf time.Time) (int, error) {
	if itemName == "" {
		return 0, shared.ErrInvalidInput.WithMessagef("item name is required")
	}
	entries, err := s.ledgerRepo.FindByItemUpTo(ctx, itemName, asOf)
	if err != nil {
		return 0, err
	}
	level := 0
	for i := range entries {
		level += entries[i].StockDelta()
	}
	return level, nil
}

// CashBalance replays all ledger entries up to asOf.
// Sales add money, stock orders and cash transactions remove it.
func (s *Service) CashBalance(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	entries, err := s.ledgerRepo.FindUpTo(ctx, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	balance := decimal.Zero
	for i := range entries {
		balance = balance.Add(entries[i].CashDelta())
	}
	return balance, nil
}

// InventoryValue is the retail value of everything currently on hand.
func (s *Service) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	return s.catalogRepo.TotalStockValue(ctx)
}

// RecordCashTransaction appends an outgoing payment to the ledger.
func (s *Service) RecordCashTransaction(ctx context.Context, req CashTransactionRequest) error {
	occurredAt := time.Now().UTC()
	if req.OccurredAt != nil {
		occurredAt = req.OccurredAt.UTC()
	}
	entry, err := ledger.NewCashTransaction(req.Amount, occurredAt)
	if err != nil {
		return err
	}
	if err := s.ledgerRepo.Create(ctx, entry); err != nil {
		return err
	}
	s.logger.Info("cash transaction recorded",
		zap.String("amount", req.Amount.String()),
		zap.Time("occurred_at", occurredAt))
	return nil
}

// PeriodSummary sums revenue and expenses between two instants.
func (s *Service) PeriodSummary(ctx context.Context, from, to time.Time) (*PeriodSummary, error) {
	if to.Before(from) {
		return nil, shared.ErrInvalidInput.WithMessagef("period end precedes its start")
	}
	revenue, err := s.ledgerRepo.SumAmountByKind(ctx, ledger.KindSale, from, to)
	if err != nil {
		return nil, err
	}
	stockOrders, err := s.ledgerRepo.SumAmountByKind(ctx, ledger.KindStockOrder, from, to)
	if err != nil {
		return nil, err
	}
	cash, err := s.ledgerRepo.SumAmountByKind(ctx, ledger.KindCash, from, to)
	if err != nil {
		return nil, err
	}
	expenses := stockOrders.Add(cash)
	return &PeriodSummary{
		From:      from,
		To:        to,
		Revenue:   revenue,
		Expenses:  expenses,
		NetProfit: revenue.Sub(expenses),
	}, nil
}

// GenerateReport assembles the full financial snapshot as of a point in
// time. Replaying the same ledger twice yields the same report.
func (s *Service) GenerateReport(ctx context.Context, asOf time.Time) (*Report, error) {
	cashBalance, err := s.CashBalance(ctx, asOf)
	if err != nil {
		return nil, err
	}

	items, err := s.catalogRepo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 10000, OrderBy: "name", OrderDir: "asc"})
	if err != nil {
		return nil, err
	}

	inventoryValue := decimal.Zero
	summaries := make([]ItemSummary, 0, len(items))
	for i := range items {
		item := &items[i]
		value := item.StockValue()
		inventoryValue = inventoryValue.Add(value)
		summaries = append(summaries, ItemSummary{
			ItemName:     item.Name,
			CurrentStock: item.CurrentStock,
			UnitPrice:    item.UnitPrice,
			StockValue:   value,
			NeedsReorder: item.NeedsReorder(),
		})
	}

	sellers, err := s.ledgerRepo.TopSellers(ctx, s.topSellersLimit)
	if err != nil {
		return nil, err
	}
	topSellers := make([]TopSeller, 0, len(sellers))
	for _, seller := range sellers {
		topSellers = append(topSellers, TopSeller{
			ItemName:  seller.ItemName,
			UnitsSold: seller.TotalUnits,
			Revenue:   seller.Revenue,
		})
	}

	yearStart := time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	period, err := s.PeriodSummary(ctx, yearStart, asOf)
	if err != nil {
		return nil, err
	}

	return &Report{
		AsOf:           asOf,
		CashBalance:    cashBalance,
		InventoryValue: inventoryValue,
		TotalAssets:    cashBalance.Add(inventoryValue),
		Items:          summaries,
		TopSellers:     topSellers,
		YearToDate:     *period,
	}, nil
}
