package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"dine-easy/internal/events"
	"dine-easy/internal/notify"
	"dine-easy/order-svc/internal/domain"
)

const (
	ActionConfirm = "confirm"
	ActionReject  = "reject"
	ActionStatus  = "status"
)

// ParseCallbackData splits "<action>_<orderId>" button data. Anything other
// than exactly two segments is malformed.
func ParseCallbackData(data string) (action, orderID string, err error) {
	parts := strings.Split(data, "_")
	if len(parts) != 2 || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedCallback, data)
	}
	switch parts[0] {
	case ActionConfirm, ActionReject, ActionStatus:
		return parts[0], parts[1], nil
	}
	return "", "", fmt.Errorf("%w: unknown action %q", ErrMalformedCallback, parts[0])
}

// CallbackService applies staff decisions made from the order chat.
type CallbackService struct {
	repository OrderRepository
	cache      StatusCache
	bot        BotClient
	events     EventPublisher
	now        func() time.Time
}

func NewCallbackService(repository OrderRepository, cache StatusCache, bot BotClient, publisher EventPublisher) *CallbackService {
	return &CallbackService{
		repository: repository,
		cache:      cache,
		bot:        bot,
		events:     publisher,
		now:        time.Now,
	}
}

// HandleCallback confirms or rejects a pending order. The store is written
// first; a failure there aborts before anything else changes. Pressing the
// button of the decision already taken is answered without any write.
func (s *CallbackService) HandleCallback(ctx context.Context, callback domain.CallbackQuery) (string, error) {
	action, orderID, err := ParseCallbackData(callback.Data)
	if err != nil {
		s.answer(ctx, callback.ID, "❌ Unknown action")
		return "", err
	}

	order, err := s.repository.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			s.answer(ctx, callback.ID, fmt.Sprintf("❌ Order %s not found", orderID))
			return "", err
		}
		s.answer(ctx, callback.ID, "❌ Error updating order status")
		return "", fmt.Errorf("failed to load order %s: %w", orderID, err)
	}

	if action == ActionStatus {
		message := fmt.Sprintf("ℹ️ Order %s is %s", orderID, order.Status)
		s.answer(ctx, callback.ID, message)
		return message, nil
	}

	target := domain.StatusConfirmed
	if action == ActionReject {
		target = domain.StatusRejected
	}

	if order.Status == target {
		message := fmt.Sprintf("ℹ️ Order %s is already %s", orderID, target)
		s.answer(ctx, callback.ID, message)
		return message, nil
	}
	if !domain.CanTransition(order.Status, target) {
		s.answer(ctx, callback.ID, fmt.Sprintf("⚠️ Order %s is already %s", orderID, order.Status))
		return "", fmt.Errorf("%w: order %s is %s", ErrStatusConflict, orderID, order.Status)
	}

	var actorID *int64
	if callback.ActorID != 0 {
		id := callback.ActorID
		actorID = &id
	}
	if err := s.repository.UpdateStatus(ctx, orderID, order.Status, target, actorID); err != nil {
		s.answer(ctx, callback.ID, "❌ Error updating order status")
		return "", fmt.Errorf("failed to update order %s: %w", orderID, err)
	}

	name := actorName(callback)
	message := fmt.Sprintf("✅ Order %s confirmed by %s", orderID, name)
	if target == domain.StatusRejected {
		message = fmt.Sprintf("❌ Order %s rejected by %s", orderID, name)
	}
	s.answer(ctx, callback.ID, message)
	s.markDecided(ctx, callback, orderID, target, name)

	actor := name
	if callback.ActorID != 0 {
		actor = strconv.FormatInt(callback.ActorID, 10)
	}
	if err := s.cache.Record(ctx, orderID, target, actor); err != nil {
		log.Printf("Warning: failed to cache status of order %s: %v", orderID, err)
	}
	publishStatus(ctx, s.events, events.StatusEvent{
		Type:      events.TypeStatusChanged,
		OrderID:   orderID,
		Status:    string(target),
		Actor:     actor,
		Source:    "telegram",
		Timestamp: s.now(),
	})

	return message, nil
}

func (s *CallbackService) answer(ctx context.Context, callbackID, text string) {
	if s.bot == nil || callbackID == "" {
		return
	}
	if err := s.bot.AnswerCallback(ctx, callbackID, text); err != nil {
		log.Printf("Warning: failed to answer callback %s: %v", callbackID, err)
	}
}

// markDecided swaps the decision buttons for a single status button.
func (s *CallbackService) markDecided(ctx context.Context, callback domain.CallbackQuery, orderID string, status domain.OrderStatus, name string) {
	if s.bot == nil || callback.ChatID == 0 || callback.MessageID == 0 {
		return
	}
	text := "✅ Confirmed by " + name
	if status == domain.StatusRejected {
		text = "❌ Rejected by " + name
	}
	keyboard := [][]notify.InlineButton{{{Text: text, CallbackData: ActionStatus + "_" + orderID}}}
	if err := s.bot.EditKeyboard(ctx, callback.ChatID, callback.MessageID, keyboard); err != nil {
		log.Printf("Warning: failed to update buttons for order %s: %v", orderID, err)
	}
}

func actorName(callback domain.CallbackQuery) string {
	if callback.ActorName != "" {
		return callback.ActorName
	}
	if callback.ActorID != 0 {
		return "user " + strconv.FormatInt(callback.ActorID, 10)
	}
	return "staff"
}
