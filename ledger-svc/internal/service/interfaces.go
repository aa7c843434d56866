package service

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"dine-easy/internal/events"
	"dine-easy/internal/notify"
	"dine-easy/ledger-svc/internal/domain"
	"dine-easy/ledger-svc/internal/storage"
)

type StoreInterface interface {
	SaveEntry(ctx context.Context, entry domain.Entry) (bool, error)
	Summarize(ctx context.Context, from, to time.Time) (domain.Summary, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Notifier interface {
	DailySummary(ctx context.Context, data notify.Data) error
	LowBalance(ctx context.Context, data notify.Data) error
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessTransaction(ctx context.Context, msg events.TransactionMessage) error
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ Notifier          = (*notify.Notifier)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
