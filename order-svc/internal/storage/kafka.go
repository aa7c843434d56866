package storage

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"dine-easy/internal/events"
)

// KafkaPublisher writes status events and ledger transactions. The two
// writers target different topics.
type KafkaPublisher struct {
	StatusWriter      *kafka.Writer
	TransactionWriter *kafka.Writer
}

func NewKafkaPublisher(statusWriter, transactionWriter *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{StatusWriter: statusWriter, TransactionWriter: transactionWriter}
}

func (p *KafkaPublisher) PublishStatus(ctx context.Context, event events.StatusEvent) error {
	payload, _ := json.Marshal(event)
	return p.StatusWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
	})
}

func (p *KafkaPublisher) PublishTransaction(ctx context.Context, msg events.TransactionMessage) error {
	payload, _ := json.Marshal(msg)
	return p.TransactionWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.TransactionID),
		Value: payload,
	})
}
