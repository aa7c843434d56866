package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

var (
	ErrDisabled        = errors.New("notifier is disabled")
	ErrNoChat          = errors.New("no chat configured for notification")
	ErrUnknownTemplate = errors.New("unknown notification template")
)

// Sender delivers one message over the chat provider's API.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type Notifier struct {
	sender        Sender
	orderChatID   int64
	balanceChatID int64
	location      *time.Location
}

// NewNotifier returns a notifier that routes order messages and balance
// messages to their chats. A nil sender disables delivery.
func NewNotifier(sender Sender, orderChatID, balanceChatID int64, location *time.Location) *Notifier {
	if location == nil {
		location = time.UTC
	}
	return &Notifier{
		sender:        sender,
		orderChatID:   orderChatID,
		balanceChatID: balanceChatID,
		location:      location,
	}
}

func (n *Notifier) Enabled() bool {
	return n != nil && n.sender != nil
}

// Notify renders the named template and sends it to chatID. It returns the
// delivery error unchanged; callers decide whether it matters.
func (n *Notifier) Notify(ctx context.Context, templateName string, chatID int64, data Data) error {
	template, ok := Templates[templateName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTemplate, templateName)
	}
	if !n.Enabled() {
		log.Printf("Notifier disabled, dropping %s message", templateName)
		return ErrDisabled
	}
	if chatID == 0 {
		return ErrNoChat
	}

	rendered := Render(template, data, n.location)
	for _, key := range rendered.Missing {
		log.Printf("Warning: %s message is missing required field %q", templateName, key)
	}

	if err := n.sender.Send(ctx, Message{
		ChatID:    chatID,
		Text:      rendered.Text,
		ParseMode: ParseModeHTML,
		Keyboard:  rendered.Keyboard,
	}); err != nil {
		return fmt.Errorf("failed to send %s message: %w", templateName, err)
	}
	return nil
}

func (n *Notifier) NewOrder(ctx context.Context, data Data) error {
	return n.Notify(ctx, TemplateNewOrder, n.orderChatID, data)
}

func (n *Notifier) OrderPayment(ctx context.Context, data Data) error {
	return n.Notify(ctx, TemplateOrderPayment, n.orderChatID, data)
}

// PaymentMethod tells the order chat how a customer chose to pay.
func (n *Notifier) PaymentMethod(ctx context.Context, data Data) error {
	return n.Notify(ctx, TemplatePaymentMethod, n.orderChatID, data)
}

// Balance sends money_in or money_out depending on direction.
func (n *Notifier) Balance(ctx context.Context, incoming bool, data Data) error {
	if incoming {
		return n.Notify(ctx, TemplateMoneyIn, n.balanceChatID, data)
	}
	return n.Notify(ctx, TemplateMoneyOut, n.balanceChatID, data)
}

func (n *Notifier) SuspiciousTransaction(ctx context.Context, data Data) error {
	return n.Notify(ctx, TemplateSuspiciousTransaction, n.balanceChatID, data)
}

func (n *Notifier) DailySummary(ctx context.Context, data Data) error {
	return n.Notify(ctx, TemplateDailySummary, n.balanceChatID, data)
}

func (n *Notifier) LowBalance(ctx context.Context, data Data) error {
	return n.Notify(ctx, TemplateLowBalance, n.balanceChatID, data)
}
