package quoting

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/papersupply/backend/internal/domain/shared"
)

// Status is the lifecycle state of a quote
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

// Line is a single priced position of a quote
type Line struct {
	shared.BaseEntity
	QuoteRef        uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	ItemName        string          `gorm:"type:varchar(255);not null" json:"item_name"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_price"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(8,4);not null" json:"discount_percent"`
	DiscountedPrice decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"discounted_price"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"subtotal"`
}

// TableName returns the table name for GORM
func (Line) TableName() string {
	return "quote_lines"
}

// NewLine prices one position at the given catalog price.
func NewLine(itemName string, quantity int, unitPrice decimal.Decimal) (Line, error) {
	itemName = strings.TrimSpace(itemName)
	if itemName == "" {
		return Line{}, shared.ErrInvalidInput.WithMessagef("quote line requires an item name")
	}
	if quantity <= 0 {
		return Line{}, shared.ErrInvalidInput.WithMessagef("quote line quantity must be positive")
	}
	if !unitPrice.IsPositive() {
		return Line{}, shared.ErrInvalidInput.WithMessagef("quote line unit price must be positive")
	}
	discounted := DiscountedUnitPrice(unitPrice, quantity)
	return Line{
		BaseEntity:      shared.NewBaseEntity(),
		ItemName:        itemName,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountPercent: DiscountPercent(quantity),
		DiscountedPrice: discounted,
		Subtotal:        discounted.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// Savings is the amount saved against the undiscounted price.
func (l Line) Savings() decimal.Decimal {
	full := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
	return full.Sub(l.Subtotal)
}

// Quote is a priced offer with a validity window
type Quote struct {
	shared.BaseEntity
	QuoteID      string          `gorm:"type:varchar(32);not null;uniqueIndex" json:"quote_id"`
	CustomerID   string          `gorm:"type:varchar(255);not null;index" json:"customer_id"`
	Lines        []Line          `gorm:"foreignKey:QuoteRef;references:ID" json:"lines"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_amount"`
	TotalSavings decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_savings"`
	DeliveryDate time.Time       `gorm:"not null" json:"delivery_date"`
	ValidUntil   time.Time       `gorm:"not null;index" json:"valid_until"`
	Status       Status          `gorm:"type:varchar(20);not null;index" json:"status"`
	Notes        string          `gorm:"type:text" json:"notes,omitempty"`
}

// TableName returns the table name for GORM
func (Quote) TableName() string {
	return "quotes"
}

// NewQuote assembles a pending quote from priced lines and computes totals.
func NewQuote(quoteID, customerID string, lines []Line, deliveryDate, validUntil time.Time) (*Quote, error) {
	if strings.TrimSpace(quoteID) == "" {
		return nil, shared.ErrInvalidInput.WithMessagef("quote id is required")
	}
	if strings.TrimSpace(customerID) == "" {
		return nil, shared.ErrInvalidInput.WithMessagef("customer id is required")
	}
	if len(lines) == 0 {
		return nil, shared.ErrInvalidInput.WithMessagef("quote requires at least one line")
	}
	if deliveryDate.IsZero() || validUntil.IsZero() {
		return nil, shared.ErrInvalidInput.WithMessagef("delivery date and validity are required")
	}

	q := &Quote{
		BaseEntity:   shared.NewBaseEntity(),
		QuoteID:      quoteID,
		CustomerID:   customerID,
		DeliveryDate: deliveryDate,
		ValidUntil:   validUntil,
		Status:       StatusPending,
		TotalAmount:  decimal.Zero,
		TotalSavings: decimal.Zero,
	}
	for _, line := range lines {
		if line.DiscountedPrice.GreaterThan(line.UnitPrice) {
			return nil, shared.ErrIntegrityViolation.WithMessagef(
				"discounted price of %q exceeds its unit price", line.ItemName)
		}
		line.QuoteRef = q.ID
		q.Lines = append(q.Lines, line)
		q.TotalAmount = q.TotalAmount.Add(line.Subtotal)
		q.TotalSavings = q.TotalSavings.Add(line.Savings())
	}
	return q, nil
}

// IsValidAt reports whether the quote can still be acted on at the given time.
func (q *Quote) IsValidAt(now time.Time) bool {
	return !now.After(q.ValidUntil)
}

// Accept marks a pending quote as accepted.
func (q *Quote) Accept() error {
	return q.transition(StatusAccepted)
}

// Reject marks a pending quote as rejected.
func (q *Quote) Reject() error {
	return q.transition(StatusRejected)
}

// Expire marks a pending quote as expired.
func (q *Quote) Expire() error {
	return q.transition(StatusExpired)
}

func (q *Quote) transition(to Status) error {
	if q.Status != StatusPending {
		return shared.ErrInvalidState.WithMessagef(
			"quote %s is %s and cannot become %s", q.QuoteID, q.Status, to)
	}
	q.Status = to
	q.Touch()
	return nil
}
