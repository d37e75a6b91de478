package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/papersupply/backend/internal/domain/quoting"
	"github.com/papersupply/backend/internal/domain/shared"
)

// GormQuoteRepository implements quoting.QuoteRepository using GORM
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new GormQuoteRepository
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// FindByQuoteID finds a quote with its lines by its public identifier
func (r *GormQuoteRepository) FindByQuoteID(ctx context.Context, quoteID string) (*quoting.Quote, error) {
	var quote quoting.Quote
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&quote, "quote_id = ?", quoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &quote, nil
}

// FindAll returns quotes matching the filter
func (r *GormQuoteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]quoting.Quote, error) {
	var quotes []quoting.Quote
	query := r.applyFilter(r.db.WithContext(ctx).Model(&quoting.Quote{}).Preload("Lines"), filter)
	if err := query.Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

// FindExpiredPending returns pending quotes whose validity lapsed before now
func (r *GormQuoteRepository) FindExpiredPending(ctx context.Context, now time.Time) ([]quoting.Quote, error) {
	var quotes []quoting.Quote
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("status = ? AND valid_until < ?", quoting.StatusPending, now).
		Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

// Search returns quotes whose id, customer or notes match every term
func (r *GormQuoteRepository) Search(ctx context.Context, terms []string) ([]quoting.Quote, error) {
	query := r.db.WithContext(ctx).Model(&quoting.Quote{}).Preload("Lines")
	for _, term := range terms {
		pattern := "%" + term + "%"
		query = query.Where(
			"LOWER(quote_id) LIKE ? OR LOWER(customer_id) LIKE ? OR LOWER(notes) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	var quotes []quoting.Quote
	if err := query.Order("created_at desc").Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

// Save persists a quote together with its lines
func (r *GormQuoteRepository) Save(ctx context.Context, quote *quoting.Quote) error {
	// Quote and lines are separate statements; the connection skips
	// gorm's default per-write transaction, so wrap them explicitly.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).
			Save(quote).Error
	})
}

// Delete removes a quote and its lines in one transaction.
// Line cleanup is explicit rather than relying on FK cascade.
func (r *GormQuoteRepository) Delete(ctx context.Context, quoteID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var quote quoting.Quote
		if err := tx.First(&quote, "quote_id = ?", quoteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(&quoting.Line{}, "quote_ref = ?", quote.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&quote).Error
	})
}

// Count returns the number of quotes matching the filter
func (r *GormQuoteRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&quoting.Quote{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("quote_id LIKE ? OR customer_id LIKE ?", pattern, pattern)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormQuoteRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("quote_id LIKE ? OR customer_id LIKE ?", pattern, pattern)
	}
	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at"
	}
	orderDir := filter.OrderDir
	if orderDir != "asc" {
		orderDir = "desc"
	}
	return query.
		Order(fmt.Sprintf("%s %s", orderBy, orderDir)).
		Offset(filter.Offset()).
		Limit(filter.Limit())
}
