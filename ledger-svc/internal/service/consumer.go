package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"dine-easy/internal/events"
	"dine-easy/internal/notify"
	"dine-easy/ledger-svc/internal/domain"
)

// Consumer books transactions read from the bank-transactions topic.
type Consumer struct {
	Reader    MessageReader
	Store     StoreInterface
	Notifier  Notifier
	Threshold decimal.Decimal
}

func NewConsumer(reader MessageReader, store StoreInterface, notifier Notifier, threshold decimal.Decimal) *Consumer {
	return &Consumer{
		Reader:    reader,
		Store:     store,
		Notifier:  notifier,
		Threshold: threshold,
	}
}

// Start reads until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting Ledger Service consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		var msg events.TransactionMessage
		if err := json.Unmarshal(message.Value, &msg); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		if err := c.ProcessTransaction(ctx, msg); err != nil {
			log.Printf("Error processing transaction %s: %v", msg.TransactionID, err)
		}
	}
}

// ProcessTransaction books msg and raises a low-balance alert when the
// reported account balance is under the threshold. Redelivered
// transactions are ignored.
func (c *Consumer) ProcessTransaction(ctx context.Context, msg events.TransactionMessage) error {
	if msg.Type != events.TypeTransaction || msg.TransactionID == "" {
		return nil
	}

	occurredAt := msg.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	booked, err := c.Store.SaveEntry(ctx, domain.Entry{
		TransactionID: msg.TransactionID,
		Gateway:       msg.Gateway,
		BankName:      msg.BankName,
		AccountNumber: msg.AccountNumber,
		Amount:        msg.Amount,
		Direction:     msg.Direction,
		Content:       msg.Content,
		Accumulated:   msg.Accumulated,
		OrderID:       msg.OrderID,
		OccurredAt:    occurredAt,
	})
	if err != nil {
		return err
	}
	if !booked {
		log.Printf("Transaction %s already booked", msg.TransactionID)
		return nil
	}

	if msg.Accumulated != nil && !c.Threshold.IsZero() && msg.Accumulated.LessThan(c.Threshold) {
		if err := c.Notifier.LowBalance(ctx, notify.Data{
			"bankName":       msg.BankName,
			"accountNumber":  msg.AccountNumber,
			"currentBalance": *msg.Accumulated,
			"threshold":      c.Threshold,
			"checkTime":      time.Now(),
		}); err != nil {
			log.Printf("Warning: failed to send low balance alert: %v", err)
		}
	}

	log.Printf("Booked transaction %s (%s %s)", msg.TransactionID, msg.Direction, msg.Amount.String())
	return nil
}
