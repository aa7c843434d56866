package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dine-easy/order-svc/internal/domain"
	"dine-easy/order-svc/internal/service"
)

var (
	_ service.StatusCache = (*MemoryStatusCache)(nil)
	_ service.StatusCache = (*RedisStatusCache)(nil)
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryStatusCache_RecordAndRead(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)}
	cache := NewMemoryStatusCache(time.Hour)
	cache.now = clock.Now

	_, ok, err := cache.Read(ctx, "o-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Record(ctx, "o-1", domain.StatusConfirmed, "42"))
	entry, ok, err := cache.Read(ctx, "o-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.StatusConfirmed, entry.Status)
	assert.Equal(t, "42", entry.UpdatedBy)
	assert.Equal(t, clock.Now(), entry.Timestamp)

	clock.Advance(59 * time.Minute)
	require.NoError(t, cache.Record(ctx, "o-1", domain.StatusPaid, "bank"))
	clock.Advance(59 * time.Minute)
	entry, ok, _ = cache.Read(ctx, "o-1")
	require.True(t, ok, "a new write restarts the time to live")
	assert.Equal(t, domain.StatusPaid, entry.Status)

	clock.Advance(time.Minute)
	_, ok, _ = cache.Read(ctx, "o-1")
	assert.False(t, ok)
}

func TestMemoryStatusCache_ListDeleteClear(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)}
	cache := NewMemoryStatusCache(time.Hour)
	cache.now = clock.Now

	require.NoError(t, cache.Record(ctx, "o-1", domain.StatusConfirmed, "42"))
	clock.Advance(time.Second)
	require.NoError(t, cache.Record(ctx, "o-2", domain.StatusRejected, "42"))
	clock.Advance(time.Second)
	require.NoError(t, cache.Record(ctx, "o-3", domain.StatusPaid, "sepay"))

	entries, err := cache.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"o-3", "o-2", "o-1"}, []string{entries[0].OrderID, entries[1].OrderID, entries[2].OrderID})

	require.NoError(t, cache.Delete(ctx, "o-2"))
	require.NoError(t, cache.Delete(ctx, "missing"))
	entries, _ = cache.List(ctx)
	assert.Len(t, entries, 2)

	require.NoError(t, cache.Clear(ctx))
	entries, _ = cache.List(ctx)
	assert.Empty(t, entries)
}

func TestMemoryStatusCache_TimerEvictsEntry(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryStatusCache(20 * time.Millisecond)

	require.NoError(t, cache.Record(ctx, "o-1", domain.StatusConfirmed, "42"))

	assert.Eventually(t, func() bool {
		cache.mu.Lock()
		defer cache.mu.Unlock()
		_, present := cache.entries["o-1"]
		return !present
	}, time.Second, 5*time.Millisecond)
}

func setupRedisCache(t *testing.T) (*RedisStatusCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStatusCache(client, time.Hour), mr
}

func TestRedisStatusCache_RecordAndRead(t *testing.T) {
	ctx := context.Background()
	cache, mr := setupRedisCache(t)

	_, ok, err := cache.Read(ctx, "o-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Record(ctx, "o-1", domain.StatusConfirmed, "42"))
	assert.Equal(t, time.Hour, mr.TTL("order-status:o-1"))

	entry, ok, err := cache.Read(ctx, "o-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "o-1", entry.OrderID)
	assert.Equal(t, domain.StatusConfirmed, entry.Status)
	assert.Equal(t, "42", entry.UpdatedBy)

	mr.FastForward(time.Hour)
	_, ok, err = cache.Read(ctx, "o-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStatusCache_ListDeleteClear(t *testing.T) {
	ctx := context.Background()
	cache, mr := setupRedisCache(t)
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	tick := 0
	cache.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	require.NoError(t, mr.Set("session:abc", "keep"))
	require.NoError(t, cache.Record(ctx, "o-1", domain.StatusConfirmed, "42"))
	require.NoError(t, cache.Record(ctx, "o-2", domain.StatusPaid, "bank"))

	entries, err := cache.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "o-2", entries[0].OrderID)

	require.NoError(t, cache.Delete(ctx, "o-2"))
	assert.False(t, mr.Exists("order-status:o-2"))

	require.NoError(t, cache.Clear(ctx))
	assert.False(t, mr.Exists("order-status:o-1"))
	assert.True(t, mr.Exists("session:abc"))

	entries, err = cache.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
