package tests

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"dine-easy/internal/events"
	"dine-easy/internal/notify"
	"dine-easy/ledger-svc/internal/domain"
	"dine-easy/ledger-svc/internal/mocks"
	"dine-easy/ledger-svc/internal/service"
)

var ict = time.FixedZone("ICT", 7*60*60)

func transaction(id string, amount int64, accumulated *decimal.Decimal) events.TransactionMessage {
	return events.TransactionMessage{
		Type:          events.TypeTransaction,
		TransactionID: id,
		Gateway:       "MBBank",
		BankName:      "MB Bank",
		AccountNumber: "0123456789",
		Amount:        decimal.NewFromInt(amount),
		Direction:     domain.DirectionIn,
		Content:       "ORDERAB12 thanh toan",
		Accumulated:   accumulated,
		OccurredAt:    time.Date(2026, 10, 16, 12, 30, 0, 0, ict),
	}
}

func balance(value int64) *decimal.Decimal {
	d := decimal.NewFromInt(value)
	return &d
}

func TestConsumer_ProcessTransaction(t *testing.T) {
	threshold := decimal.NewFromInt(1_000_000)

	tests := []struct {
		name          string
		message       events.TransactionMessage
		setupStore    func(*mocks.StoreInterface)
		setupNotifier func(*mocks.Notifier)
		expectErr     bool
	}{
		{
			name:    "books new transaction",
			message: transaction("FT1", 285000, balance(5_000_000)),
			setupStore: func(store *mocks.StoreInterface) {
				store.On("SaveEntry", mock.Anything, mock.MatchedBy(func(entry domain.Entry) bool {
					return entry.TransactionID == "FT1" && entry.Amount.Equal(decimal.NewFromInt(285000))
				})).Return(true, nil)
			},
		},
		{
			name:    "low balance raises alert",
			message: transaction("FT2", 50000, balance(400_000)),
			setupStore: func(store *mocks.StoreInterface) {
				store.On("SaveEntry", mock.Anything, mock.Anything).Return(true, nil)
			},
			setupNotifier: func(notifier *mocks.Notifier) {
				notifier.On("LowBalance", mock.Anything, mock.MatchedBy(func(data notify.Data) bool {
					current, ok := data["currentBalance"].(decimal.Decimal)
					return ok && current.Equal(decimal.NewFromInt(400_000)) && data["accountNumber"] == "0123456789"
				})).Return(nil)
			},
		},
		{
			name:    "alert failure is not an error",
			message: transaction("FT3", 50000, balance(10)),
			setupStore: func(store *mocks.StoreInterface) {
				store.On("SaveEntry", mock.Anything, mock.Anything).Return(true, nil)
			},
			setupNotifier: func(notifier *mocks.Notifier) {
				notifier.On("LowBalance", mock.Anything, mock.Anything).Return(errors.New("telegram down"))
			},
		},
		{
			name:    "redelivery does not alert twice",
			message: transaction("FT2", 50000, balance(400_000)),
			setupStore: func(store *mocks.StoreInterface) {
				store.On("SaveEntry", mock.Anything, mock.Anything).Return(false, nil)
			},
		},
		{
			name:    "no balance reported",
			message: transaction("FT4", 50000, nil),
			setupStore: func(store *mocks.StoreInterface) {
				store.On("SaveEntry", mock.Anything, mock.Anything).Return(true, nil)
			},
		},
		{
			name:    "store error",
			message: transaction("FT5", 50000, balance(10)),
			setupStore: func(store *mocks.StoreInterface) {
				store.On("SaveEntry", mock.Anything, mock.Anything).Return(false, errors.New("db connection failed"))
			},
			expectErr: true,
		},
		{
			name: "other message types are ignored",
			message: events.TransactionMessage{
				Type:          events.TypeStatusChanged,
				TransactionID: "FT6",
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store := mocks.NewStoreInterface(t)
			notifier := mocks.NewNotifier(t)
			if testCase.setupStore != nil {
				testCase.setupStore(store)
			}
			if testCase.setupNotifier != nil {
				testCase.setupNotifier(notifier)
			}

			consumer := service.NewConsumer(nil, store, notifier, threshold)
			err := consumer.ProcessTransaction(context.Background(), testCase.message)

			if testCase.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

type fakeReader struct {
	messages []kafka.Message
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.messages) == 0 {
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	message := r.messages[0]
	r.messages = r.messages[1:]
	return message, nil
}

func TestConsumer_Start(t *testing.T) {
	payload, err := json.Marshal(transaction("FT10", 120000, nil))
	assert.NoError(t, err)

	reader := &fakeReader{messages: []kafka.Message{
		{Value: []byte("not json")},
		{Value: payload},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := mocks.NewStoreInterface(t)
	store.On("SaveEntry", mock.Anything, mock.MatchedBy(func(entry domain.Entry) bool {
		return entry.TransactionID == "FT10"
	})).Return(true, nil).Run(func(mock.Arguments) { cancel() })

	consumer := service.NewConsumer(reader, store, mocks.NewNotifier(t), decimal.NewFromInt(1_000_000))

	done := make(chan struct{})
	go func() {
		consumer.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop after cancel")
	}
}
