package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"dine-easy/internal/events"
	"dine-easy/internal/notify"
	"dine-easy/order-svc/internal/domain"
	"dine-easy/order-svc/internal/matcher"
)

const actorCustomer = "customer"

type OrderService struct {
	repository OrderRepository
	cache      StatusCache
	notifier   Notifier
	events     EventPublisher
	bank       domain.BankInfo
	now        func() time.Time
}

func NewOrderService(repository OrderRepository, cache StatusCache, notifier Notifier, publisher EventPublisher, bank domain.BankInfo) *OrderService {
	return &OrderService{
		repository: repository,
		cache:      cache,
		notifier:   notifier,
		events:     publisher,
		bank:       bank,
		now:        time.Now,
	}
}

// CreateOrder prices the submitted lines, stores a pending order and asks
// staff to accept it. The staff message is best effort.
func (s *OrderService) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: no items", ErrInvalidOrder)
	}
	if !domain.IsVietnamesePhone(req.Phone) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOrder, ErrInvalidPhone)
	}

	cart := domain.NewCart()
	for _, line := range req.Items {
		if line.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: negative price for %s", ErrInvalidOrder, line.MenuItemID)
		}
		cart.AddLine(line)
	}

	now := s.now()
	id := uuid.NewString()
	order := &domain.Order{
		ID:            id,
		TableCode:     req.TableCode,
		CustomerPhone: req.Phone,
		Items:         cart.LineItems(),
		TotalAmount:   cart.TotalPrice(),
		Notes:         req.Notes,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentStatusUnpaid,
		PaymentCode:   matcher.OrderCode(id),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repository.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.notifier.NewOrder(ctx, notify.Data{
		"orderId":       order.ID,
		"tableCode":     order.TableCode,
		"customerPhone": order.CustomerPhone,
		"items":         describeItems(order.Items),
		"totalAmount":   order.TotalAmount,
		"notes":         order.Notes,
		"createdAt":     order.CreatedAt,
	}); err != nil {
		log.Printf("Warning: failed to notify staff about order %s: %v", order.ID, err)
	}

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.repository.GetOrder(ctx, id)
}

// GetStatus answers from the cache first and falls back to the stored
// order. An unknown order yields a view with a nil status.
func (s *OrderService) GetStatus(ctx context.Context, id string) (domain.StatusView, error) {
	entry, ok, err := s.cache.Read(ctx, id)
	if err != nil {
		log.Printf("Warning: status cache read for %s failed: %v", id, err)
	}
	if err == nil && ok {
		status, timestamp := entry.Status, entry.Timestamp
		return domain.StatusView{Status: &status, Timestamp: &timestamp, FromCache: true, UpdatedBy: entry.UpdatedBy}, nil
	}

	order, err := s.repository.GetOrder(ctx, id)
	if errors.Is(err, ErrOrderNotFound) {
		return domain.StatusView{}, nil
	}
	if err != nil {
		return domain.StatusView{}, fmt.Errorf("failed to load status of order %s: %w", id, err)
	}

	status, timestamp := order.Status, order.UpdatedAt
	if timestamp.IsZero() {
		timestamp = order.CreatedAt
	}
	return domain.StatusView{Status: &status, Timestamp: &timestamp}, nil
}

// SelectPayment moves a confirmed order to paying and tells staff which
// method was chosen. Bank transfers get a payment code and the QR image the
// customer pays with. Choosing the same method again returns fresh
// instructions without another write or staff message.
func (s *OrderService) SelectPayment(ctx context.Context, id string, method domain.PaymentMethod) (*domain.PaymentInstructions, error) {
	if method != domain.PaymentCash && method != domain.PaymentBankTransfer {
		return nil, ErrInvalidPaymentMethod
	}

	order, err := s.repository.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	replay := order.Status == domain.StatusPaying && order.PaymentMethod == method
	if !replay {
		if !domain.CanTransition(order.Status, domain.StatusPaying) {
			return nil, fmt.Errorf("%w: order %s is %s", ErrStatusConflict, id, order.Status)
		}
		if err := s.repository.SetPaymentMethod(ctx, id, order.Status, method); err != nil {
			return nil, fmt.Errorf("failed to select payment method: %w", err)
		}
		s.recordStatus(ctx, id, domain.StatusPaying, actorCustomer, "customer")
	}

	instructions := &domain.PaymentInstructions{
		OrderID: id,
		Method:  method,
		Status:  domain.StatusPaying,
		Amount:  order.TotalAmount,
	}
	if method == domain.PaymentBankTransfer {
		bank := s.bank
		instructions.PaymentCode = matcher.PaymentCode(id, s.now())
		instructions.QRURL = TransferQRURL(bank.AccountNumber, bank.BankCode, order.TotalAmount, instructions.PaymentCode)
		instructions.Bank = &bank
	}
	if !replay {
		s.notifyPaymentMethod(ctx, order, instructions)
	}
	return instructions, nil
}

// notifyPaymentMethod posts the customer's choice to the order chat so staff
// know whether to collect cash or watch for a transfer. It is best effort.
func (s *OrderService) notifyPaymentMethod(ctx context.Context, order *domain.Order, instructions *domain.PaymentInstructions) {
	note := "Customer will pay cash on delivery"
	if instructions.Method == domain.PaymentBankTransfer {
		note = "Awaiting bank transfer with code " + instructions.PaymentCode
	}
	data := notify.Data{
		"orderId":       order.ID,
		"tableCode":     order.TableCode,
		"customerPhone": order.CustomerPhone,
		"amount":        instructions.Amount,
		"paymentMethod": string(instructions.Method),
		"note":          note,
		"timestamp":     s.now(),
	}
	if instructions.PaymentCode != "" {
		data["paymentCode"] = instructions.PaymentCode
	}
	if err := s.notifier.PaymentMethod(ctx, data); err != nil {
		log.Printf("Warning: failed to notify payment method for order %s: %v", order.ID, err)
	}
}

func (s *OrderService) RecentUpdates(ctx context.Context) ([]domain.CacheEntry, error) {
	return s.cache.List(ctx)
}

func (s *OrderService) ClearStatus(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, id)
}

func (s *OrderService) ClearAllStatuses(ctx context.Context) error {
	return s.cache.Clear(ctx)
}

func (s *OrderService) recordStatus(ctx context.Context, id string, status domain.OrderStatus, actor, source string) {
	if err := s.cache.Record(ctx, id, status, actor); err != nil {
		log.Printf("Warning: failed to cache status of order %s: %v", id, err)
	}
	publishStatus(ctx, s.events, events.StatusEvent{
		Type:      events.TypeStatusChanged,
		OrderID:   id,
		Status:    string(status),
		Actor:     actor,
		Source:    source,
		Timestamp: s.now(),
	})
}

func publishStatus(ctx context.Context, publisher EventPublisher, event events.StatusEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		log.Printf("Warning: failed to publish status of order %s: %v", event.OrderID, err)
	}
}

func describeItems(items []domain.LineItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		line := fmt.Sprintf("%dx %s", item.Quantity, item.Name)
		if item.Note != "" {
			line += " (" + item.Note + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
