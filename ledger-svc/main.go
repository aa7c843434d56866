package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"dine-easy/config"
	"dine-easy/internal/notify"
	"dine-easy/internal/telegram"
	"dine-easy/ledger-svc/internal/service"
	"dine-easy/ledger-svc/internal/storage"
)

func main() {
	settings := config.Load()
	if !config.KafkaEnabled() {
		log.Fatal("KAFKA_BROKER is required for the ledger service")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres()
	defer db.Close()

	store := storage.NewStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	var sender notify.Sender
	if settings.Telegram.BotToken != "" {
		client, err := telegram.NewClient(settings.Telegram.BotToken, settings.Telegram.APIEndpoint, settings.Telegram.RequestTimeout)
		if err != nil {
			log.Printf("Warning: telegram unavailable, ledger alerts disabled: %v", err)
		} else {
			sender = client
		}
	} else {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set, ledger alerts are disabled")
	}
	notifier := notify.NewNotifier(sender, settings.Telegram.OrderChatID, settings.Telegram.BalanceChatID, settings.Location)

	reader := config.NewKafkaReader(config.TopicBankTransactions, "ledger-svc-consumer")
	defer reader.Close()

	consumer := service.NewConsumer(reader, store, notifier, settings.LowBalanceThreshold)
	reporter := service.NewReporter(store, notifier, settings.Location, settings.LedgerRetentionDays)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		consumer.Start(ctx)
		return nil
	})
	group.Go(func() error {
		reporter.Run(ctx)
		return nil
	})

	_ = group.Wait()
	log.Println("Ledger Service stopped")
}
