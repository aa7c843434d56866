package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishReachesEverySubscriber(t *testing.T) {
	bus := NewBus()
	first, unsubscribeFirst := bus.Subscribe()
	defer unsubscribeFirst()
	second, unsubscribeSecond := bus.Subscribe()
	defer unsubscribeSecond()

	event := StatusEvent{Type: TypeStatusChanged, OrderID: "ORDER77", Status: "rejected"}
	require.NoError(t, bus.Publish(context.Background(), event))

	assert.Equal(t, event, <-first)
	assert.Equal(t, event, <-second)
}

func TestBus_UnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus()
	ch, unsubscribe := bus.Subscribe()
	unsubscribe()
	unsubscribe()

	_, ok := <-ch
	assert.False(t, ok)
	assert.NoError(t, bus.Publish(context.Background(), StatusEvent{OrderID: "x"}))
}

func TestBus_FullSubscriberDoesNotBlock(t *testing.T) {
	bus := NewBus()
	_, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			_ = bus.Publish(context.Background(), StatusEvent{OrderID: "busy"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []StatusEvent
	err    error
}

func (p *recordingPublisher) PublishStatus(_ context.Context, event StatusEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func TestForward(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "publisher_ok"},
		{name: "publisher_error_is_swallowed", err: errors.New("broker down")},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			bus := NewBus()
			publisher := &recordingPublisher{err: testCase.err}
			ctx, cancel := context.WithCancel(context.Background())
			stopped := make(chan struct{})

			go func() {
				Forward(ctx, bus, publisher)
				close(stopped)
			}()

			assert.Eventually(t, func() bool {
				_ = bus.Publish(ctx, StatusEvent{OrderID: "a1", Status: "confirmed"})
				return publisher.count() > 0
			}, time.Second, 10*time.Millisecond)

			cancel()
			<-stopped
		})
	}
}
