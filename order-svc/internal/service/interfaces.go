package service

import (
	"context"

	"dine-easy/internal/events"
	"dine-easy/internal/notify"
	"dine-easy/order-svc/internal/domain"
)

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	SelectPayment(ctx context.Context, id string, method domain.PaymentMethod) (*domain.PaymentInstructions, error)
	GetStatus(ctx context.Context, id string) (domain.StatusView, error)
	RecentUpdates(ctx context.Context) ([]domain.CacheEntry, error)
	ClearStatus(ctx context.Context, id string) error
	ClearAllStatuses(ctx context.Context) error
}

type CustomerServiceInterface interface {
	RegisterVisit(ctx context.Context, phone, tableCode string) (*domain.Customer, error)
}

type CallbackServiceInterface interface {
	HandleCallback(ctx context.Context, callback domain.CallbackQuery) (string, error)
}

type PaymentServiceInterface interface {
	ProcessTransaction(ctx context.Context, tx domain.Transaction) (domain.PaymentResult, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	FindPayableByPaymentCode(ctx context.Context, code string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus, actorID *int64) error
	SetPaymentMethod(ctx context.Context, id string, from domain.OrderStatus, method domain.PaymentMethod) error
	ConfirmPayment(ctx context.Context, id string, from domain.OrderStatus, update domain.PaymentUpdate) error
}

// StatusCache holds the last known status per order. Record overwrites
// and restarts the entry's time to live.
type StatusCache interface {
	Record(ctx context.Context, orderID string, status domain.OrderStatus, actor string) error
	Read(ctx context.Context, orderID string) (domain.CacheEntry, bool, error)
	List(ctx context.Context) ([]domain.CacheEntry, error)
	Delete(ctx context.Context, orderID string) error
	Clear(ctx context.Context) error
}

type Notifier interface {
	NewOrder(ctx context.Context, data notify.Data) error
	OrderPayment(ctx context.Context, data notify.Data) error
	PaymentMethod(ctx context.Context, data notify.Data) error
	Balance(ctx context.Context, incoming bool, data notify.Data) error
	SuspiciousTransaction(ctx context.Context, data notify.Data) error
}

type BotClient interface {
	AnswerCallback(ctx context.Context, callbackID, text string) error
	EditKeyboard(ctx context.Context, chatID int64, messageID int, keyboard [][]notify.InlineButton) error
}

// CustomerRepository counts table visits per phone number.
type CustomerRepository interface {
	RecordVisit(ctx context.Context, phone, tableCode string) (*domain.Customer, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.StatusEvent) error
}

type TransactionPublisher interface {
	PublishTransaction(ctx context.Context, msg events.TransactionMessage) error
}

type QRGenerator interface {
	Generate(tableCode string) ([]byte, error)
}

var (
	_ OrderServiceInterface    = (*OrderService)(nil)
	_ CustomerServiceInterface = (*CustomerService)(nil)
	_ CallbackServiceInterface = (*CallbackService)(nil)
	_ PaymentServiceInterface  = (*PaymentService)(nil)
	_ QRGenerator              = DefaultQRGenerator{}
	_ Notifier                 = (*notify.Notifier)(nil)
	_ EventPublisher           = (*events.Bus)(nil)
)
