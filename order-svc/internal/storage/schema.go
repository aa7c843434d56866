package storage

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		table_code TEXT NOT NULL,
		customer_phone TEXT NOT NULL,
		items JSONB NOT NULL DEFAULT '[]',
		total_amount NUMERIC(14, 2) NOT NULL,
		notes TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		payment_method TEXT,
		payment_status TEXT NOT NULL DEFAULT 'unpaid',
		payment_code TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	"ALTER TABLE IF EXISTS orders ADD COLUMN IF NOT EXISTS payment_reference TEXT",
	"ALTER TABLE IF EXISTS orders ADD COLUMN IF NOT EXISTS payment_gateway TEXT",
	"ALTER TABLE IF EXISTS orders ADD COLUMN IF NOT EXISTS gateway_transaction_id TEXT",
	"ALTER TABLE IF EXISTS orders ADD COLUMN IF NOT EXISTS payment_amount NUMERIC(14, 2)",
	"ALTER TABLE IF EXISTS orders ADD COLUMN IF NOT EXISTS confirmed_by BIGINT",
	"CREATE INDEX IF NOT EXISTS idx_orders_payment_code ON orders (payment_code)",
	"CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status)",
	`CREATE TABLE IF NOT EXISTS customers (
		id UUID PRIMARY KEY,
		phone TEXT NOT NULL UNIQUE,
		table_code TEXT,
		first_visit_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_visit_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		visit_count INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	"CREATE INDEX IF NOT EXISTS idx_customers_table_code ON customers (table_code)",
}

// EnsureSchema creates the orders and customers tables and adds columns
// introduced after the first release.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}
