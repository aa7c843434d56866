package events

import (
	"context"
	"log"
	"sync"
)

const subscriberBuffer = 16

// Bus fans status events out to same-process listeners. Delivery is
// best-effort: a subscriber whose buffer is full misses the event.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[int]chan StatusEvent
	nextID      int
}

func NewBus() *Bus {
	return &Bus{subscribers: make(map[int]chan StatusEvent)}
}

// Subscribe returns a channel of future events and a function that
// unsubscribes and closes it.
func (b *Bus) Subscribe() (<-chan StatusEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan StatusEvent, subscriberBuffer)
	b.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subscribers, id)
			b.mu.Unlock()
			close(ch)
		})
	}
}

func (b *Bus) Publish(_ context.Context, event StatusEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			log.Printf("Warning: dropping status event for order %s, subscriber is busy", event.OrderID)
		}
	}
	return nil
}

// StatusPublisher forwards events to another transport such as Kafka.
type StatusPublisher interface {
	PublishStatus(ctx context.Context, event StatusEvent) error
}

// Forward relays every bus event to the publisher until ctx is done.
func Forward(ctx context.Context, bus *Bus, publisher StatusPublisher) {
	ch, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := publisher.PublishStatus(ctx, event); err != nil {
				log.Printf("Warning: failed to forward status event for order %s: %v", event.OrderID, err)
			}
		}
	}
}
