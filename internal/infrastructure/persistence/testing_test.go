package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE catalog_items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			category TEXT NOT NULL,
			unit_price DECIMAL(18,4) NOT NULL,
			current_stock INTEGER NOT NULL DEFAULT 0,
			min_stock_level INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE ledger_entries (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			item_name TEXT,
			units INTEGER,
			amount DECIMAL(18,4) NOT NULL,
			occurred_at DATETIME NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE quotes (
			id TEXT PRIMARY KEY,
			quote_id TEXT NOT NULL UNIQUE,
			customer_id TEXT NOT NULL,
			total_amount DECIMAL(18,4) NOT NULL,
			total_savings DECIMAL(18,4) NOT NULL,
			delivery_date DATETIME NOT NULL,
			valid_until DATETIME NOT NULL,
			status TEXT NOT NULL,
			notes TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE quote_lines (
			id TEXT PRIMARY KEY,
			quote_ref TEXT NOT NULL,
			item_name TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			unit_price DECIMAL(18,4) NOT NULL,
			discount_percent DECIMAL(8,4) NOT NULL,
			discounted_price DECIMAL(18,4) NOT NULL,
			subtotal DECIMAL(18,4) NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	return db
}
