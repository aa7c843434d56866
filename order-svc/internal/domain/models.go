package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusRejected  OrderStatus = "rejected"
	StatusPaying    OrderStatus = "paying"
	StatusPaid      OrderStatus = "paid"
)

// IsTerminal reports whether no further transition is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusPaid
}

// CanTransition is the conflict rule applied to every status write. A
// write of the current status is a replay, handled by callers.
func CanTransition(from, to OrderStatus) bool {
	if from.IsTerminal() {
		return false
	}
	switch to {
	case StatusConfirmed, StatusRejected:
		return from == StatusPending
	case StatusPaying:
		return from == StatusConfirmed
	case StatusPaid:
		return from == StatusConfirmed || from == StatusPaying
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
)

const (
	PaymentStatusUnpaid  = "unpaid"
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

type LineItem struct {
	MenuItemID string            `json:"menuItemId" validate:"required"`
	Name       string            `json:"name" validate:"required"`
	Quantity   int               `json:"quantity" validate:"gte=1"`
	Modifiers  map[string]string `json:"modifiers,omitempty"`
	Note       string            `json:"note,omitempty"`
	UnitPrice  decimal.Decimal   `json:"unitPrice"`
}

type Order struct {
	ID                   string          `json:"id"`
	TableCode            string          `json:"tableCode"`
	CustomerPhone        string          `json:"customerPhone"`
	Items                []LineItem      `json:"items"`
	TotalAmount          decimal.Decimal `json:"totalAmount"`
	Notes                string          `json:"notes,omitempty"`
	Status               OrderStatus     `json:"status"`
	PaymentMethod        PaymentMethod   `json:"paymentMethod,omitempty"`
	PaymentStatus        string          `json:"paymentStatus"`
	PaymentCode          string          `json:"paymentCode"`
	PaymentReference     string          `json:"paymentReference,omitempty"`
	PaymentGateway       string          `json:"paymentGateway,omitempty"`
	GatewayTransactionID string          `json:"gatewayTransactionId,omitempty"`
	PaymentAmount        decimal.Decimal `json:"paymentAmount"`
	ConfirmedBy          *int64          `json:"confirmedBy,omitempty"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

type CreateOrderRequest struct {
	Phone     string     `json:"phone" validate:"required,vnphone"`
	TableCode string     `json:"tableCode" validate:"required,max=16"`
	Items     []LineItem `json:"items" validate:"required,min=1,dive"`
	Notes     string     `json:"notes" validate:"max=500"`
}

// PaymentUpdate carries the fields written when a transfer settles an order.
type PaymentUpdate struct {
	Status               OrderStatus
	Method               PaymentMethod
	Amount               decimal.Decimal
	Reference            string
	Gateway              string
	GatewayTransactionID string
}

// CacheEntry is the last known status of an order.
type CacheEntry struct {
	OrderID   string      `json:"orderId"`
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	UpdatedBy string      `json:"updatedBy,omitempty"`
}

type StatusView struct {
	Status    *OrderStatus `json:"status"`
	Timestamp *time.Time   `json:"timestamp,omitempty"`
	FromCache bool         `json:"fromCache"`
	UpdatedBy string       `json:"updatedBy,omitempty"`
}

// CallbackQuery is a staff button press relayed by the chat provider.
type CallbackQuery struct {
	ID        string
	Data      string
	ActorID   int64
	ActorName string
	ChatID    int64
	MessageID int
}

type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Transaction is the common shape every bank or gateway webhook is
// normalized into.
type Transaction struct {
	ID            string
	Source        string
	Gateway       string
	BankName      string
	AccountNumber string
	Amount        decimal.Decimal
	Content       string
	Direction     Direction
	OccurredAt    time.Time
	ReferenceCode string
	Accumulated   *decimal.Decimal
}

func (t Transaction) Bank() string {
	if t.BankName != "" {
		return t.BankName
	}
	if t.Gateway != "" {
		return t.Gateway
	}
	return "Bank"
}

type PaymentOutcome string

const (
	OutcomeConfirmed       PaymentOutcome = "confirmed"
	OutcomeOutgoing        PaymentOutcome = "outgoing"
	OutcomeUnmatched       PaymentOutcome = "unmatched"
	OutcomeOrderNotFound   PaymentOutcome = "order_not_found"
	OutcomeOrderNotPayable PaymentOutcome = "order_not_payable"
	OutcomeAlreadyPaid     PaymentOutcome = "already_paid"
	OutcomeAmountMismatch  PaymentOutcome = "amount_mismatch"
)

type PaymentResult struct {
	Outcome    PaymentOutcome `json:"outcome"`
	OrderID    string         `json:"orderId,omitempty"`
	Status     OrderStatus    `json:"status,omitempty"`
	Suspicious []string       `json:"suspicious,omitempty"`
	Message    string         `json:"message"`
}

type BankInfo struct {
	BankCode      string `json:"bankCode"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
}

type PaymentInstructions struct {
	OrderID     string          `json:"orderId"`
	Method      PaymentMethod   `json:"method"`
	Status      OrderStatus     `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentCode string          `json:"paymentCode,omitempty"`
	QRURL       string          `json:"qrUrl,omitempty"`
	Bank        *BankInfo       `json:"bank,omitempty"`
}
