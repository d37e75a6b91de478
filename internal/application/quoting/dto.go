package quoting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/papersupply/backend/internal/domain/quoting"
)

// QuoteRequest asks for a priced quote
type QuoteRequest struct {
	CustomerID  string             `json:"customer_id" binding:"required"`
	Items       []QuoteRequestItem `json:"items" binding:"required,min=1,dive"`
	RequestDate *time.Time         `json:"request_date,omitempty"`
	Notes       string             `json:"notes,omitempty"`
}

// QuoteRequestItem is one requested position
type QuoteRequestItem struct {
	ItemName string `json:"item_name" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// QuoteLineResponse is a priced position of a quote
type QuoteLineResponse struct {
	ItemName        string          `json:"item_name"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Savings         decimal.Decimal `json:"savings"`
}

// QuoteResponse is the API view of a quote
type QuoteResponse struct {
	QuoteID      string              `json:"quote_id"`
	CustomerID   string              `json:"customer_id"`
	Lines        []QuoteLineResponse `json:"lines"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	TotalSavings decimal.Decimal     `json:"total_savings"`
	DeliveryDate time.Time           `json:"delivery_date"`
	ValidUntil   time.Time           `json:"valid_until"`
	Status       quoting.Status      `json:"status"`
	Notes        string              `json:"notes,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// ValidationResult reports whether a quote is still actionable
type ValidationResult struct {
	QuoteID string `json:"quote_id"`
	Valid   bool   `json:"valid"`
}

// ExpiryResult reports the outcome of an expiry sweep
type ExpiryResult struct {
	ExpiredCount int       `json:"expired_count"`
	SweptAt      time.Time `json:"swept_at"`
}

func toQuoteResponse(q *quoting.Quote) *QuoteResponse {
	resp := &QuoteResponse{
		QuoteID:      q.QuoteID,
		CustomerID:   q.CustomerID,
		TotalAmount:  q.TotalAmount,
		TotalSavings: q.TotalSavings,
		DeliveryDate: q.DeliveryDate,
		ValidUntil:   q.ValidUntil,
		Status:       q.Status,
		Notes:        q.Notes,
		CreatedAt:    q.CreatedAt,
	}
	for _, l := range q.Lines {
		resp.Lines = append(resp.Lines, QuoteLineResponse{
			ItemName:        l.ItemName,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			DiscountPercent: l.DiscountPercent,
			DiscountedPrice: l.DiscountedPrice,
			Subtotal:        l.Subtotal,
			Savings:         l.Savings(),
		})
	}
	return resp
}
