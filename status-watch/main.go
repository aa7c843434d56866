// Command status-watch follows one order until staff or a payment settles it.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"dine-easy/config"
	"dine-easy/internal/events"
	"dine-easy/internal/poller"
)

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "order service base URL")
	orderID := flag.String("order", "", "order id to watch")
	interval := flag.Duration("interval", poller.DefaultInterval, "status check interval")
	keepWatching := flag.Bool("keep", false, "keep watching after the order reaches a final status")
	flag.Parse()

	if *orderID == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)

	opts := []poller.Option{
		poller.WithInterval(*interval),
		poller.WithOnChange(func(state poller.State) {
			switch {
			case state.Loading:
				return
			case state.Err != nil:
				log.Printf("Error checking order %s: %v", *orderID, state.Err)
			case state.Status == "":
				log.Printf("Order %s: no status yet", *orderID)
			default:
				log.Printf("Order %s: %s (at %s, cached=%t)", *orderID, state.Status, state.Timestamp.Format(time.RFC3339), state.FromCache)
			}
			if !*keepWatching && poller.IsTerminal(state.Status) {
				cancel()
			}
		}),
	}

	if config.KafkaEnabled() {
		bus := events.NewBus()
		sub, unsubscribe := bus.Subscribe()
		defer unsubscribe()
		opts = append(opts, poller.WithEvents(sub))

		reader := config.NewKafkaReader(config.TopicOrderStatus, "status-watch-"+uuid.NewString())
		defer reader.Close()
		group.Go(func() error {
			for {
				message, err := reader.ReadMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					log.Printf("Error reading status event: %v", err)
					continue
				}
				var event events.StatusEvent
				if err := json.Unmarshal(message.Value, &event); err != nil {
					log.Printf("Error unmarshaling status event: %v", err)
					continue
				}
				bus.Publish(ctx, event)
			}
		})
	}

	watcher := poller.New(poller.NewHTTPFetcher(*apiURL, nil), *orderID, opts...)
	group.Go(func() error {
		if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		log.Fatal(err)
	}
}
