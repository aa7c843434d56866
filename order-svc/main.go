package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"dine-easy/config"
	"dine-easy/internal/events"
	"dine-easy/internal/notify"
	"dine-easy/internal/telegram"
	httpapi "dine-easy/order-svc/internal/api/http"
	"dine-easy/order-svc/internal/domain"
	"dine-easy/order-svc/internal/service"
	"dine-easy/order-svc/internal/storage"
)

func main() {
	settings := config.Load()
	settings.Warn()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres()
	defer db.Close()
	if err := storage.EnsureSchema(ctx, db); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	repo := storage.NewPostgresRepository(db)
	cache := newStatusCache(settings)
	bus := events.NewBus()

	group, ctx := errgroup.WithContext(ctx)

	var ledger service.TransactionPublisher
	if config.KafkaEnabled() {
		statusWriter := config.NewKafkaWriter(config.TopicOrderStatus)
		transactionWriter := config.NewKafkaWriter(config.TopicBankTransactions)
		defer statusWriter.Close()
		defer transactionWriter.Close()

		publisher := storage.NewKafkaPublisher(statusWriter, transactionWriter)
		ledger = publisher
		group.Go(func() error {
			events.Forward(ctx, bus, publisher)
			return nil
		})
	} else {
		log.Println("Warning: KAFKA_BROKER not set, status events and transactions are not published")
	}

	// Interfaces stay nil without a bot so that services can tell.
	var (
		sender   notify.Sender
		bot      service.BotClient
		botAdmin httpapi.BotAdmin
	)
	if settings.Telegram.BotToken != "" {
		client, err := telegram.NewClient(settings.Telegram.BotToken, settings.Telegram.APIEndpoint, settings.Telegram.RequestTimeout)
		if err != nil {
			log.Printf("Warning: telegram unavailable, notifications disabled: %v", err)
		} else {
			sender, bot, botAdmin = client, client, client
			if settings.Telegram.WebhookURL != "" {
				if err := client.SetWebhook(ctx, settings.Telegram.WebhookURL); err != nil {
					log.Printf("Warning: failed to register telegram webhook: %v", err)
				}
			}
		}
	}
	notifier := notify.NewNotifier(sender, settings.Telegram.OrderChatID, settings.Telegram.BalanceChatID, settings.Location)

	bank := domain.BankInfo{
		BankCode:      settings.Bank.Code,
		BankName:      settings.Bank.Name,
		AccountNumber: settings.Bank.AccountNumber,
		AccountName:   settings.Bank.AccountName,
	}

	handler := httpapi.NewHandler(
		service.NewOrderService(repo, cache, notifier, bus, bank),
		service.NewCustomerService(repo),
		service.NewCallbackService(repo, cache, bot, bus),
		service.NewPaymentService(repo, cache, notifier, bus, ledger, service.NewSuspicionRules(settings.Suspicion, settings.Location)),
		service.DefaultQRGenerator{BaseURL: settings.PublicBaseURL},
		botAdmin,
		httpapi.Config{
			WebhookSecret:      settings.Webhook.Secret,
			SignatureRequired:  settings.Webhook.SignatureRequired,
			SepayAPIKey:        settings.Webhook.SepayAPIKey,
			AdminJWTSecret:     settings.AdminJWTSecret,
			TelegramWebhookURL: settings.Telegram.WebhookURL,
			Location:           settings.Location,
		},
	)
	server := httpapi.NewServer(settings.HTTPAddr, httpapi.NewRouter(handler))

	group.Go(func() error {
		log.Printf("Order Service starting on %s", settings.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Printf("Order Service stopped: %v", err)
	}
}

func newStatusCache(settings config.Settings) service.StatusCache {
	if settings.StatusCache == "redis" {
		log.Println("Using Redis status cache")
		return storage.NewRedisStatusCache(config.MustInitRedis(), settings.StatusCacheTTL)
	}
	return storage.NewMemoryStatusCache(settings.StatusCacheTTL)
}
