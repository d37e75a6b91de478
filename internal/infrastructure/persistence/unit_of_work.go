package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/papersupply/backend/internal/domain/catalog"
	"github.com/papersupply/backend/internal/domain/ledger"
)

// FulfillmentUnitOfWork binds the catalog and ledger repositories to one
// database transaction per call, so an order either applies every stock
// decrement and ledger entry or none of them.
type FulfillmentUnitOfWork struct {
	db *gorm.DB
}

// NewFulfillmentUnitOfWork creates a new FulfillmentUnitOfWork
func NewFulfillmentUnitOfWork(db *gorm.DB) *FulfillmentUnitOfWork {
	return &FulfillmentUnitOfWork{db: db}
}

// Execute runs fn with transaction-scoped repositories. An error from fn
// rolls the transaction back and is returned unchanged.
func (u *FulfillmentUnitOfWork) Execute(ctx context.Context, fn func(items catalog.ItemRepository, entries ledger.EntryRepository) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormItemRepository(tx), NewGormEntryRepository(tx))
	})
}
