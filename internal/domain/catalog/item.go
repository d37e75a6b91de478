package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/papersupply/backend/internal/domain/shared"
)

// Category classifies an item in the catalog
type Category string

const (
	CategoryPaper       Category = "paper"
	CategoryOffice      Category = "office_supplies"
	CategoryLargeFormat Category = "large_format"
	CategorySpecialty   Category = "specialty"
)

// Item is a sellable product with live stock counters.
// CurrentStock is the operational truth used for allocation; the ledger
// keeps the full movement history for point-in-time queries.
type Item struct {
	shared.BaseEntity
	Name          string          `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Category      Category        `gorm:"type:varchar(50);not null" json:"category"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_price"`
	CurrentStock  int             `gorm:"not null;default:0" json:"current_stock"`
	MinStockLevel int             `gorm:"not null;default:0" json:"min_stock_level"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "catalog_items"
}

// NewItem creates a catalog item, enforcing field invariants.
func NewItem(name string, category Category, unitPrice decimal.Decimal, currentStock, minStockLevel int) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.ErrInvalidInput.WithMessagef("item name is required")
	}
	if len(name) > 255 {
		return nil, shared.ErrInvalidInput.WithMessagef("item name exceeds 255 characters")
	}
	if !unitPrice.IsPositive() {
		return nil, shared.ErrInvalidInput.WithMessagef("unit price must be positive")
	}
	if currentStock < 0 {
		return nil, shared.ErrInvalidInput.WithMessagef("current stock cannot be negative")
	}
	if minStockLevel < 0 {
		return nil, shared.ErrInvalidInput.WithMessagef("minimum stock level cannot be negative")
	}
	return &Item{
		BaseEntity:    shared.NewBaseEntity(),
		Name:          name,
		Category:      category,
		UnitPrice:     unitPrice,
		CurrentStock:  currentStock,
		MinStockLevel: minStockLevel,
	}, nil
}

// Allocate reserves up to requested units and returns how many were taken.
// Stock never goes below zero; a short allocation is not an error.
func (i *Item) Allocate(requested int) (int, error) {
	if requested <= 0 {
		return 0, shared.ErrInvalidInput.WithMessagef("requested quantity must be positive")
	}
	allocated := requested
	if i.CurrentStock < allocated {
		allocated = i.CurrentStock
	}
	i.CurrentStock -= allocated
	i.Touch()
	return allocated, nil
}

// AdjustStock applies a signed delta to the stock counter.
func (i *Item) AdjustStock(delta int) error {
	if i.CurrentStock+delta < 0 {
		return shared.ErrInsufficientStock.WithMessagef(
			"stock of %q cannot go below zero (have %d, delta %d)", i.Name, i.CurrentStock, delta)
	}
	i.CurrentStock += delta
	i.Touch()
	return nil
}

// SetUnitPrice updates the catalog price.
func (i *Item) SetUnitPrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return shared.ErrInvalidInput.WithMessagef("unit price must be positive")
	}
	i.UnitPrice = price
	i.Touch()
	return nil
}

// SetMinStockLevel updates the reorder threshold.
func (i *Item) SetMinStockLevel(level int) error {
	if level < 0 {
		return shared.ErrInvalidInput.WithMessagef("minimum stock level cannot be negative")
	}
	i.MinStockLevel = level
	i.Touch()
	return nil
}

// NeedsReorder reports whether stock has fallen to or below the threshold.
func (i *Item) NeedsReorder() bool {
	return i.CurrentStock <= i.MinStockLevel
}

// CanFulfill reports whether the full quantity is on hand.
func (i *Item) CanFulfill(quantity int) bool {
	return quantity > 0 && i.CurrentStock >= quantity
}

// StockValue is the retail value of the units on hand.
func (i *Item) StockValue() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.CurrentStock)))
}
