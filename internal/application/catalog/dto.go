package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/papersupply/backend/internal/domain/catalog"
)

// CreateItemRequest adds a new product to the catalog
type CreateItemRequest struct {
	Name          string          `json:"name" binding:"required"`
	Category      string          `json:"category" binding:"required"`
	UnitPrice     decimal.Decimal `json:"unit_price" binding:"required"`
	CurrentStock  int             `json:"current_stock" binding:"gte=0"`
	MinStockLevel int             `json:"min_stock_level" binding:"gte=0"`
}

// UpdateItemRequest changes price or reorder threshold.
// Nil fields are left untouched.
type UpdateItemRequest struct {
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	MinStockLevel *int             `json:"min_stock_level,omitempty"`
}

// ListFilter narrows a catalog listing
type ListFilter struct {
	Category string `form:"category"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
}

func toCategory(raw string) catalog.Category {
	return catalog.Category(raw)
}
