package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"dine-easy/internal/events"
	"dine-easy/internal/notify"
	"dine-easy/order-svc/internal/domain"
	"dine-easy/order-svc/internal/matcher"
)

// AmountTolerance is the largest difference between a transfer and the
// order total still accepted as a full payment.
var AmountTolerance = decimal.NewFromInt(1)

// PaymentService matches bank transfers to orders and settles them.
type PaymentService struct {
	repository OrderRepository
	cache      StatusCache
	notifier   Notifier
	events     EventPublisher
	ledger     TransactionPublisher
	rules      SuspicionRules
	now        func() time.Time
}

func NewPaymentService(repository OrderRepository, cache StatusCache, notifier Notifier, publisher EventPublisher, ledger TransactionPublisher, rules SuspicionRules) *PaymentService {
	return &PaymentService{
		repository: repository,
		cache:      cache,
		notifier:   notifier,
		events:     publisher,
		ledger:     ledger,
		rules:      rules,
		now:        time.Now,
	}
}

// ProcessTransaction handles one normalized webhook transaction. Every
// transaction is reported to the balance chat and copied to the ledger;
// an incoming transfer that names a payable order settles it.
func (s *PaymentService) ProcessTransaction(ctx context.Context, tx domain.Transaction) (domain.PaymentResult, error) {
	result, err := s.process(ctx, tx)
	s.publishLedger(ctx, tx, result)
	return result, err
}

func (s *PaymentService) process(ctx context.Context, tx domain.Transaction) (domain.PaymentResult, error) {
	reasons := s.rules.Classify(tx)
	data := transactionData(tx)

	if tx.Direction != domain.DirectionIn {
		s.report(ctx, false, data, reasons)
		return domain.PaymentResult{
			Outcome:    domain.OutcomeOutgoing,
			Suspicious: reasons,
			Message:    "outgoing transaction recorded",
		}, nil
	}

	ref, ok := matcher.ExtractOrderRef(tx.Content)
	if !ok {
		s.report(ctx, true, data, reasons)
		return domain.PaymentResult{
			Outcome:    domain.OutcomeUnmatched,
			Suspicious: reasons,
			Message:    "no order reference in transfer content",
		}, nil
	}

	order, err := s.resolveOrder(ctx, ref)
	if errors.Is(err, ErrOrderNotFound) {
		s.report(ctx, true, data, reasons)
		return domain.PaymentResult{
			Outcome:    domain.OutcomeOrderNotFound,
			Suspicious: reasons,
			Message:    fmt.Sprintf("no payable order for %s", ref.Value),
		}, nil
	}
	if err != nil {
		return domain.PaymentResult{}, fmt.Errorf("failed to resolve order %s: %w", ref.Value, err)
	}

	data["orderId"] = order.ID
	data["tableCode"] = order.TableCode
	data["customerPhone"] = order.CustomerPhone
	result := domain.PaymentResult{OrderID: order.ID, Status: order.Status}

	switch order.Status {
	case domain.StatusPaid:
		s.report(ctx, true, data, reasons)
		result.Outcome = domain.OutcomeAlreadyPaid
		result.Suspicious = reasons
		result.Message = fmt.Sprintf("order %s is already paid", order.ID)
		return result, nil
	case domain.StatusRejected:
		reasons = append(reasons, "transfer for rejected order")
		s.report(ctx, true, data, reasons)
		result.Outcome = domain.OutcomeOrderNotPayable
		result.Suspicious = reasons
		result.Message = fmt.Sprintf("order %s was rejected", order.ID)
		return result, nil
	}

	if tx.Amount.Sub(order.TotalAmount).Abs().GreaterThan(AmountTolerance) {
		reasons = append(reasons, fmt.Sprintf("amount %s does not match order total %s",
			notify.FormatCurrency(tx.Amount), notify.FormatCurrency(order.TotalAmount)))
		s.report(ctx, true, data, reasons)
		result.Outcome = domain.OutcomeAmountMismatch
		result.Suspicious = reasons
		result.Message = fmt.Sprintf("amount does not match order %s", order.ID)
		return result, nil
	}

	target := domain.StatusPaid
	if order.Status == domain.StatusPending {
		target = domain.StatusConfirmed
	}
	reference := tx.ReferenceCode
	if reference == "" {
		reference = tx.ID
	}
	if err := s.repository.ConfirmPayment(ctx, order.ID, order.Status, domain.PaymentUpdate{
		Status:               target,
		Method:               domain.PaymentBankTransfer,
		Amount:               tx.Amount,
		Reference:            reference,
		Gateway:              tx.Bank(),
		GatewayTransactionID: tx.ID,
	}); err != nil {
		return domain.PaymentResult{}, fmt.Errorf("failed to confirm payment for order %s: %w", order.ID, err)
	}

	if err := s.cache.Record(ctx, order.ID, target, tx.Source); err != nil {
		log.Printf("Warning: failed to cache status of order %s: %v", order.ID, err)
	}
	publishStatus(ctx, s.events, events.StatusEvent{
		Type:      events.TypeStatusChanged,
		OrderID:   order.ID,
		Status:    string(target),
		Actor:     tx.Source,
		Source:    tx.Source,
		Timestamp: s.now(),
	})

	if err := s.notifier.OrderPayment(ctx, notify.Data{
		"orderId":       order.ID,
		"tableCode":     order.TableCode,
		"customerPhone": order.CustomerPhone,
		"amount":        tx.Amount,
		"paymentMethod": "Bank transfer",
		"timestamp":     tx.OccurredAt,
	}); err != nil {
		log.Printf("Warning: failed to notify payment of order %s: %v", order.ID, err)
	}
	s.report(ctx, true, data, reasons)

	result.Outcome = domain.OutcomeConfirmed
	result.Status = target
	result.Suspicious = reasons
	result.Message = fmt.Sprintf("order %s is %s", order.ID, target)
	return result, nil
}

func (s *PaymentService) resolveOrder(ctx context.Context, ref matcher.OrderRef) (*domain.Order, error) {
	if ref.Kind == matcher.KindUUID {
		return s.repository.GetOrder(ctx, ref.Value)
	}
	return s.repository.FindPayableByPaymentCode(ctx, ref.Value)
}

// report sends the balance message and, when any rule tripped, the
// suspicious transaction alert. Both are best effort.
func (s *PaymentService) report(ctx context.Context, incoming bool, data notify.Data, reasons []string) {
	if err := s.notifier.Balance(ctx, incoming, data); err != nil {
		log.Printf("Warning: failed to send balance notification for %v: %v", data["transactionId"], err)
	}
	if len(reasons) == 0 {
		return
	}

	alert := make(notify.Data, len(data)+1)
	for key, value := range data {
		alert[key] = value
	}
	alert["reasons"] = strings.Join(reasons, "; ")
	if err := s.notifier.SuspiciousTransaction(ctx, alert); err != nil {
		log.Printf("Warning: failed to send suspicious transaction alert for %v: %v", data["transactionId"], err)
	}
}

func (s *PaymentService) publishLedger(ctx context.Context, tx domain.Transaction, result domain.PaymentResult) {
	if s.ledger == nil {
		return
	}
	msg := events.TransactionMessage{
		Type:          events.TypeTransaction,
		TransactionID: tx.ID,
		Gateway:       tx.Gateway,
		BankName:      tx.Bank(),
		AccountNumber: tx.AccountNumber,
		Amount:        tx.Amount,
		Direction:     string(tx.Direction),
		Content:       tx.Content,
		Accumulated:   tx.Accumulated,
		OccurredAt:    tx.OccurredAt,
	}
	if result.Outcome == domain.OutcomeConfirmed {
		msg.OrderID = result.OrderID
	}
	if err := s.ledger.PublishTransaction(ctx, msg); err != nil {
		log.Printf("Warning: failed to publish transaction %s: %v", tx.ID, err)
	}
}

func transactionData(tx domain.Transaction) notify.Data {
	return notify.Data{
		"bankName":        tx.Bank(),
		"accountNumber":   tx.AccountNumber,
		"amount":          tx.Amount,
		"content":         tx.Content,
		"transactionId":   tx.ID,
		"transactionDate": tx.OccurredAt,
	}
}
