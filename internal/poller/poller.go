package poller

import (
	"context"
	"log"
	"sync"
	"time"

	"dine-easy/internal/events"
)

const DefaultInterval = 30 * time.Second

type Snapshot struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	FromCache bool      `json:"fromCache"`
}

type State struct {
	Snapshot
	Loading bool
	Err     error
}

type Fetcher interface {
	FetchStatus(ctx context.Context, orderID string) (Snapshot, error)
}

// IsTerminal reports whether polling can stop for status.
func IsTerminal(status string) bool {
	switch status {
	case "confirmed", "rejected", "paid":
		return true
	}
	return false
}

type Option func(*Poller)

func WithInterval(interval time.Duration) Option {
	return func(p *Poller) {
		if interval > 0 {
			p.interval = interval
		}
	}
}

// WithEvents makes the poller apply pushed events for its order immediately.
func WithEvents(ch <-chan events.StatusEvent) Option {
	return func(p *Poller) { p.events = ch }
}

func WithOnChange(fn func(State)) Option {
	return func(p *Poller) { p.onChange = fn }
}

// Poller tracks the status of one order: an immediate check on start, a
// recurring check until the status is terminal, pushed events, and manual
// refreshes.
type Poller struct {
	fetcher  Fetcher
	orderID  string
	interval time.Duration
	events   <-chan events.StatusEvent
	onChange func(State)
	refresh  chan struct{}

	mu    sync.Mutex
	state State
}

func New(fetcher Fetcher, orderID string, opts ...Option) *Poller {
	p := &Poller{
		fetcher:  fetcher,
		orderID:  orderID,
		interval: DefaultInterval,
		refresh:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Refresh requests an out-of-band check. It never blocks.
func (p *Poller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// Run blocks until ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	p.check(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	tick := ticker.C
	if IsTerminal(p.State().Status) {
		ticker.Stop()
		tick = nil
	}

	eventsCh := p.events
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
			p.check(ctx)
		case <-p.refresh:
			p.check(ctx)
		case event, ok := <-eventsCh:
			if !ok {
				eventsCh = nil
				continue
			}
			if event.OrderID == p.orderID {
				p.apply(Snapshot{Status: event.Status, Timestamp: event.Timestamp})
			}
		}

		if tick != nil && IsTerminal(p.State().Status) {
			ticker.Stop()
			tick = nil
		}
	}
}

func (p *Poller) check(ctx context.Context) {
	p.update(func(s *State) { s.Loading = true })

	snapshot, err := p.fetcher.FetchStatus(ctx, p.orderID)
	if err != nil {
		log.Printf("Error checking status of order %s: %v", p.orderID, err)
		p.update(func(s *State) {
			s.Loading = false
			s.Err = err
		})
		return
	}

	p.update(func(s *State) {
		s.Loading = false
		s.Err = nil
		if snapshot.Status != "" {
			s.Snapshot = snapshot
		}
	})
}

func (p *Poller) apply(snapshot Snapshot) {
	p.update(func(s *State) {
		s.Snapshot = snapshot
		s.Err = nil
	})
}

func (p *Poller) update(mutate func(*State)) {
	p.mu.Lock()
	before := p.state
	mutate(&p.state)
	after := p.state
	p.mu.Unlock()

	if p.onChange != nil && changed(before, after) {
		p.onChange(after)
	}
}

func changed(before, after State) bool {
	if before.Snapshot != after.Snapshot || before.Loading != after.Loading {
		return true
	}
	if (before.Err == nil) != (after.Err == nil) {
		return true
	}
	return before.Err != nil && before.Err.Error() != after.Err.Error()
}
