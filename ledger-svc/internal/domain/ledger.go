package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// Entry is one booked bank transaction.
type Entry struct {
	TransactionID string
	Gateway       string
	BankName      string
	AccountNumber string
	Amount        decimal.Decimal
	Direction     string
	Content       string
	Accumulated   *decimal.Decimal
	OrderID       string
	OccurredAt    time.Time
}

// Summary totals the entries booked in [From, To).
type Summary struct {
	From             time.Time
	To               time.Time
	TotalIncome      decimal.Decimal
	TotalExpense     decimal.Decimal
	TransactionCount int
}

func (s Summary) Net() decimal.Decimal {
	return s.TotalIncome.Sub(s.TotalExpense)
}
