package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dine-easy/ledger-svc/internal/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS ledger_entries (
		transaction_id TEXT PRIMARY KEY,
		gateway TEXT NOT NULL DEFAULT '',
		bank_name TEXT NOT NULL DEFAULT '',
		account_number TEXT NOT NULL DEFAULT '',
		amount NUMERIC(16, 2) NOT NULL,
		direction TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		accumulated NUMERIC(16, 2),
		order_id TEXT,
		occurred_at TIMESTAMPTZ NOT NULL,
		booked_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	"CREATE INDEX IF NOT EXISTS idx_ledger_entries_occurred_at ON ledger_entries (occurred_at)",
}

type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}

// SaveEntry books an entry once. It reports false when the transaction was
// already booked.
func (s *Store) SaveEntry(ctx context.Context, entry domain.Entry) (bool, error) {
	var accumulated interface{}
	if entry.Accumulated != nil {
		accumulated = *entry.Accumulated
	}

	result, err := s.DB.ExecContext(ctx, `
		INSERT INTO ledger_entries (transaction_id, gateway, bank_name, account_number, amount, direction, content, accumulated, order_id, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10)
		ON CONFLICT (transaction_id) DO NOTHING`,
		entry.TransactionID, entry.Gateway, entry.BankName, entry.AccountNumber, entry.Amount,
		entry.Direction, entry.Content, accumulated, entry.OrderID, entry.OccurredAt)
	if err != nil {
		return false, fmt.Errorf("failed to save ledger entry %s: %w", entry.TransactionID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *Store) Summarize(ctx context.Context, from, to time.Time) (domain.Summary, error) {
	summary := domain.Summary{From: from, To: to}
	err := s.DB.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE direction = 'in'), 0),
			COALESCE(SUM(amount) FILTER (WHERE direction = 'out'), 0),
			COUNT(*)
		FROM ledger_entries
		WHERE occurred_at >= $1 AND occurred_at < $2`,
		from, to,
	).Scan(&summary.TotalIncome, &summary.TotalExpense, &summary.TransactionCount)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("failed to summarize ledger: %w", err)
	}
	return summary, nil
}

// DeleteBefore removes entries that occurred before cutoff.
func (s *Store) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.DB.ExecContext(ctx, `DELETE FROM ledger_entries WHERE occurred_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old ledger entries: %w", err)
	}
	return result.RowsAffected()
}
