package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"dine-easy/order-svc/internal/domain"
)

type memoryEntry struct {
	entry domain.CacheEntry
	seq   uint64
	timer *time.Timer
}

// MemoryStatusCache keeps statuses in process. Each entry expires ttl
// after its last write.
type MemoryStatusCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	seq     uint64
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStatusCache(ttl time.Duration) *MemoryStatusCache {
	return &MemoryStatusCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *MemoryStatusCache) Record(_ context.Context, orderID string, status domain.OrderStatus, actor string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[orderID]; ok {
		old.timer.Stop()
	}

	c.seq++
	seq := c.seq
	c.entries[orderID] = memoryEntry{
		entry: domain.CacheEntry{
			OrderID:   orderID,
			Status:    status,
			Timestamp: c.now(),
			UpdatedBy: actor,
		},
		seq:   seq,
		timer: time.AfterFunc(c.ttl, func() { c.expire(orderID, seq) }),
	}
	return nil
}

func (c *MemoryStatusCache) Read(_ context.Context, orderID string) (domain.CacheEntry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored, ok := c.entries[orderID]
	if !ok || c.expired(stored.entry) {
		return domain.CacheEntry{}, false, nil
	}
	return stored.entry, true, nil
}

// List returns live entries, newest first.
func (c *MemoryStatusCache) List(_ context.Context) ([]domain.CacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]domain.CacheEntry, 0, len(c.entries))
	for _, stored := range c.entries {
		if !c.expired(stored.entry) {
			entries = append(entries, stored.entry)
		}
	}
	sortNewestFirst(entries)
	return entries, nil
}

func (c *MemoryStatusCache) Delete(_ context.Context, orderID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if stored, ok := c.entries[orderID]; ok {
		stored.timer.Stop()
		delete(c.entries, orderID)
	}
	return nil
}

func (c *MemoryStatusCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, stored := range c.entries {
		stored.timer.Stop()
		delete(c.entries, id)
	}
	return nil
}

func (c *MemoryStatusCache) expire(orderID string, seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if stored, ok := c.entries[orderID]; ok && stored.seq == seq {
		delete(c.entries, orderID)
	}
}

func (c *MemoryStatusCache) expired(entry domain.CacheEntry) bool {
	return c.now().Sub(entry.Timestamp) >= c.ttl
}

func sortNewestFirst(entries []domain.CacheEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
}
