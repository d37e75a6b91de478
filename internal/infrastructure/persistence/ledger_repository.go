package persistence

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/papersupply/backend/internal/domain/ledger"
)

// GormEntryRepository implements ledger.EntryRepository using GORM.
// The ledger is append-only, so only Create mutates it.
type GormEntryRepository struct {
	db *gorm.DB
}

// NewGormEntryRepository creates a new GormEntryRepository
func NewGormEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

// Create appends a ledger entry
func (r *GormEntryRepository) Create(ctx context.Context, entry *ledger.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindUpTo returns all entries that occurred at or before asOf,
// in occurrence order
func (r *GormEntryRepository) FindUpTo(ctx context.Context, asOf time.Time) ([]ledger.Entry, error) {
	var entries []ledger.Entry
	if err := r.db.WithContext(ctx).
		Where("occurred_at <= ?", asOf).
		Order("occurred_at asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByItemUpTo returns one item's entries up to asOf, in occurrence order
func (r *GormEntryRepository) FindByItemUpTo(ctx context.Context, itemName string, asOf time.Time) ([]ledger.Entry, error) {
	var entries []ledger.Entry
	if err := r.db.WithContext(ctx).
		Where("item_name = ? AND occurred_at <= ?", itemName, asOf).
		Order("occurred_at asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// SumAmountByKind sums the amounts of one entry kind inside [from, to]
func (r *GormEntryRepository) SumAmountByKind(ctx context.Context, kind ledger.Kind, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&ledger.Entry{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("kind = ? AND occurred_at >= ? AND occurred_at <= ?", kind, from, to).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// TopSellers ranks items by cumulative units sold
func (r *GormEntryRepository) TopSellers(ctx context.Context, limit int) ([]ledger.ItemSales, error) {
	var sales []ledger.ItemSales
	if err := r.db.WithContext(ctx).Model(&ledger.Entry{}).
		Select("item_name, COALESCE(SUM(units), 0) AS total_units, COALESCE(SUM(amount), 0) AS revenue").
		Where("kind = ?", ledger.KindSale).
		Group("item_name").
		Order("total_units DESC").
		Limit(limit).
		Scan(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}
