package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeStatusChanged = "order_status_changed"
	TypeTransaction   = "bank_transaction"
)

// StatusEvent is emitted whenever an order status changes.
type StatusEvent struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	Actor     string    `json:"actor,omitempty"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// TransactionMessage is the ledger copy of a bank transaction.
type TransactionMessage struct {
	Type          string           `json:"type"`
	TransactionID string           `json:"transaction_id"`
	Gateway       string           `json:"gateway"`
	BankName      string           `json:"bank_name"`
	AccountNumber string           `json:"account_number"`
	Amount        decimal.Decimal  `json:"amount"`
	Direction     string           `json:"direction"`
	Content       string           `json:"content"`
	Accumulated   *decimal.Decimal `json:"accumulated,omitempty"`
	OrderID       string           `json:"order_id,omitempty"`
	OccurredAt    time.Time        `json:"occurred_at"`
}
