package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/papersupply/backend/internal/domain/shared"
)

// Kind discriminates ledger entry types
type Kind string

const (
	KindSale       Kind = "sale"
	KindStockOrder Kind = "stock_order"
	KindCash       Kind = "cash_transaction"
)

// Entry is an append-only ledger record. Entries are never updated or
// deleted; stock levels and cash balances are derived by replaying them
// in occurrence order.
type Entry struct {
	shared.BaseEntity
	Kind       Kind            `gorm:"type:varchar(32);not null;index" json:"kind"`
	ItemName   *string         `gorm:"type:varchar(255);index" json:"item_name,omitempty"`
	Units      *int            `json:"units,omitempty"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	OccurredAt time.Time       `gorm:"not null;index" json:"occurred_at"`
}

// TableName returns the table name for GORM
func (Entry) TableName() string {
	return "ledger_entries"
}

// NewSale records revenue for units leaving stock.
func NewSale(itemName string, units int, amount decimal.Decimal, occurredAt time.Time) (*Entry, error) {
	return newMovement(KindSale, itemName, units, amount, occurredAt)
}

// NewStockOrder records a supplier purchase of units entering stock.
func NewStockOrder(itemName string, units int, amount decimal.Decimal, occurredAt time.Time) (*Entry, error) {
	return newMovement(KindStockOrder, itemName, units, amount, occurredAt)
}

func newMovement(kind Kind, itemName string, units int, amount decimal.Decimal, occurredAt time.Time) (*Entry, error) {
	itemName = strings.TrimSpace(itemName)
	if itemName == "" {
		return nil, shared.ErrInvalidInput.WithMessagef("ledger entry requires an item name")
	}
	if units <= 0 {
		return nil, shared.ErrInvalidInput.WithMessagef("ledger entry units must be positive")
	}
	if amount.IsNegative() {
		return nil, shared.ErrInvalidInput.WithMessagef("ledger entry amount cannot be negative")
	}
	return &Entry{
		BaseEntity: shared.NewBaseEntity(),
		Kind:       kind,
		ItemName:   &itemName,
		Units:      &units,
		Amount:     amount,
		OccurredAt: occurredAt.UTC(),
	}, nil
}

// NewCashTransaction records an outgoing payment not tied to stock.
func NewCashTransaction(amount decimal.Decimal, occurredAt time.Time) (*Entry, error) {
	if !amount.IsPositive() {
		return nil, shared.ErrInvalidInput.WithMessagef("cash transaction amount must be positive")
	}
	return &Entry{
		BaseEntity: shared.NewBaseEntity(),
		Kind:       KindCash,
		Amount:     amount,
		OccurredAt: occurredAt.UTC(),
	}, nil
}

// StockDelta is the signed effect of this entry on an item's stock count.
func (e *Entry) StockDelta() int {
	if e.Units == nil {
		return 0
	}
	switch e.Kind {
	case KindStockOrder:
		return *e.Units
	case KindSale:
		return -*e.Units
	default:
		return 0
	}
}

// CashDelta is the signed effect of this entry on the cash balance.
func (e *Entry) CashDelta() decimal.Decimal {
	if e.Kind == KindSale {
		return e.Amount
	}
	return e.Amount.Neg()
}
