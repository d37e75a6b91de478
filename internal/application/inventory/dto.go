package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// AvailabilityResult answers a stock availability query
type AvailabilityResult struct {
	ItemName            string          `json:"item_name"`
	Requested           int             `json:"requested"`
	CurrentStock        int             `json:"current_stock"`
	Available           bool            `json:"available"`
	Shortage            int             `json:"shortage"`
	NeedsReorder        bool            `json:"needs_reorder"`
	ReorderQuantity     int             `json:"reorder_quantity,omitempty"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	SupplierDeliveryETA *time.Time      `json:"supplier_delivery_eta,omitempty"`
}

// StockAdjustmentRequest applies a signed delta to an item's stock
type StockAdjustmentRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// StockSnapshot maps item names to current stock counts
type StockSnapshot map[string]int
