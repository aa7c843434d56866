package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"dine-easy/internal/notify"
	"dine-easy/ledger-svc/internal/domain"
	"dine-easy/ledger-svc/internal/mocks"
	"dine-easy/ledger-svc/internal/service"
)

func TestReporter_Report(t *testing.T) {
	day := time.Date(2026, 10, 16, 23, 59, 30, 0, ict)
	from := time.Date(2026, 10, 16, 0, 0, 0, 0, ict)
	to := time.Date(2026, 10, 17, 0, 0, 0, 0, ict)
	cutoff := time.Date(2026, 10, 10, 0, 0, 0, 0, ict)

	summary := domain.Summary{
		From:             from,
		To:               to,
		TotalIncome:      decimal.NewFromInt(2_500_000),
		TotalExpense:     decimal.NewFromInt(300_000),
		TransactionCount: 9,
	}

	tests := []struct {
		name          string
		retentionDays int
		setupStore    func(*mocks.StoreInterface)
		setupNotifier func(*mocks.Notifier)
		expectErr     bool
	}{
		{
			name:          "summary then prune",
			retentionDays: 7,
			setupStore: func(store *mocks.StoreInterface) {
				store.On("Summarize", mock.Anything, from, to).Return(summary, nil)
				store.On("DeleteBefore", mock.Anything, cutoff).Return(int64(4), nil)
			},
			setupNotifier: func(notifier *mocks.Notifier) {
				notifier.On("DailySummary", mock.Anything, mock.MatchedBy(func(data notify.Data) bool {
					net, ok := data["netAmount"].(decimal.Decimal)
					return ok && net.Equal(decimal.NewFromInt(2_200_000)) &&
						data["date"] == "16/10/2026" &&
						data["transactionCount"] == 9
				})).Return(nil)
			},
		},
		{
			name:          "retention disabled",
			retentionDays: 0,
			setupStore: func(store *mocks.StoreInterface) {
				store.On("Summarize", mock.Anything, from, to).Return(summary, nil)
			},
			setupNotifier: func(notifier *mocks.Notifier) {
				notifier.On("DailySummary", mock.Anything, mock.Anything).Return(nil)
			},
		},
		{
			name:          "notify failure still prunes",
			retentionDays: 7,
			setupStore: func(store *mocks.StoreInterface) {
				store.On("Summarize", mock.Anything, from, to).Return(summary, nil)
				store.On("DeleteBefore", mock.Anything, cutoff).Return(int64(0), nil)
			},
			setupNotifier: func(notifier *mocks.Notifier) {
				notifier.On("DailySummary", mock.Anything, mock.Anything).Return(errors.New("telegram down"))
			},
		},
		{
			name:          "summarize error",
			retentionDays: 7,
			setupStore: func(store *mocks.StoreInterface) {
				store.On("Summarize", mock.Anything, from, to).Return(domain.Summary{}, errors.New("db down"))
			},
			expectErr: true,
		},
		{
			name:          "prune error",
			retentionDays: 7,
			setupStore: func(store *mocks.StoreInterface) {
				store.On("Summarize", mock.Anything, from, to).Return(summary, nil)
				store.On("DeleteBefore", mock.Anything, cutoff).Return(int64(0), errors.New("db down"))
			},
			setupNotifier: func(notifier *mocks.Notifier) {
				notifier.On("DailySummary", mock.Anything, mock.Anything).Return(nil)
			},
			expectErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store := mocks.NewStoreInterface(t)
			notifier := mocks.NewNotifier(t)
			testCase.setupStore(store)
			if testCase.setupNotifier != nil {
				testCase.setupNotifier(notifier)
			}

			reporter := service.NewReporter(store, notifier, ict, testCase.retentionDays)
			err := reporter.Report(context.Background(), day)

			if testCase.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStartOfDay(t *testing.T) {
	got := service.StartOfDay(time.Date(2026, 10, 16, 0, 0, 1, 0, ict))
	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, ict), got)
}

func TestReporter_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	reporter := service.NewReporter(mocks.NewStoreInterface(t), mocks.NewNotifier(t), ict, 7)

	done := make(chan struct{})
	go func() {
		reporter.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reporter did not stop after cancel")
	}
}
