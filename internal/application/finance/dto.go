package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemSummary is one catalog row of the financial report
type ItemSummary struct {
	ItemName     string          `json:"item_name"`
	CurrentStock int             `json:"current_stock"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	StockValue   decimal.Decimal `json:"stock_value"`
	NeedsReorder bool            `json:"needs_reorder"`
}

// TopSeller is one entry of the best-seller ranking
type TopSeller struct {
	ItemName  string          `json:"item_name"`
	UnitsSold int             `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// PeriodSummary aggregates money flow over a date range
type PeriodSummary struct {
	From      time.Time       `json:"from"`
	To        time.Time       `json:"to"`
	Revenue   decimal.Decimal `json:"revenue"`
	Expenses  decimal.Decimal `json:"expenses"`
	NetProfit decimal.Decimal `json:"net_profit"`
}

// Report is the full financial snapshot as of a point in time
type Report struct {
	AsOf           time.Time       `json:"as_of"`
	CashBalance    decimal.Decimal `json:"cash_balance"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	TotalAssets    decimal.Decimal `json:"total_assets"`
	Items          []ItemSummary   `json:"items"`
	TopSellers     []TopSeller     `json:"top_sellers"`
	YearToDate     PeriodSummary   `json:"year_to_date"`
}

// CashTransactionRequest records an outgoing payment
type CashTransactionRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	OccurredAt *time.Time      `json:"occurred_at,omitempty"`
	Memo       string          `json:"memo,omitempty"`
}
