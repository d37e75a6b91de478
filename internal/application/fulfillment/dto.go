package fulfillment

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus summarizes how completely an order was filled
type OrderStatus string

const (
	StatusCompleted OrderStatus = "completed"
	StatusPartial   OrderStatus = "partial"
	StatusPending   OrderStatus = "pending"
)

// OrderRequest asks for an order to be processed against live stock
type OrderRequest struct {
	CustomerID  string             `json:"customer_id" binding:"required"`
	Items       []OrderRequestItem `json:"items" binding:"required,min=1,dive"`
	RequestDate *time.Time         `json:"request_date,omitempty"`
}

// OrderRequestItem is one requested position
type OrderRequestItem struct {
	ItemName string `json:"item_name" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// FulfilledLine is a position shipped from stock at catalog price
type FulfilledLine struct {
	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Backorder is the unfulfilled remainder of a position
type Backorder struct {
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// Reorder is a supplier purchase triggered by depleted stock
type Reorder struct {
	ItemName     string          `json:"item_name"`
	Quantity     int             `json:"quantity"`
	SupplierCost decimal.Decimal `json:"supplier_cost"`
}

// OrderResponse is the outcome of processing an order
type OrderResponse struct {
	OrderID        string          `json:"order_id"`
	TrackingNumber string          `json:"tracking_number"`
	CustomerID     string          `json:"customer_id"`
	Status         OrderStatus     `json:"status"`
	Fulfilled      []FulfilledLine `json:"fulfilled"`
	Backorders     []Backorder     `json:"backorders"`
	Reorders       []Reorder       `json:"reorders"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	DeliveryDate   time.Time       `json:"delivery_date"`
	ProcessedAt    time.Time       `json:"processed_at"`
}
