package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"dine-easy/order-svc/internal/domain"
)

const statusKeyPrefix = "order-status:"

// RedisStatusCache shares statuses between replicas.
type RedisStatusCache struct {
	Client *redis.Client
	TTL    time.Duration
	now    func() time.Time
}

func NewRedisStatusCache(client *redis.Client, ttl time.Duration) *RedisStatusCache {
	return &RedisStatusCache{Client: client, TTL: ttl, now: time.Now}
}

func (c *RedisStatusCache) StatusKey(orderID string) string {
	return statusKeyPrefix + orderID
}

func (c *RedisStatusCache) Record(ctx context.Context, orderID string, status domain.OrderStatus, actor string) error {
	payload, err := json.Marshal(domain.CacheEntry{
		OrderID:   orderID,
		Status:    status,
		Timestamp: c.now(),
		UpdatedBy: actor,
	})
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.StatusKey(orderID), payload, c.TTL).Err()
}

func (c *RedisStatusCache) Read(ctx context.Context, orderID string) (domain.CacheEntry, bool, error) {
	raw, err := c.Client.Get(ctx, c.StatusKey(orderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.CacheEntry{}, false, nil
	}
	if err != nil {
		return domain.CacheEntry{}, false, err
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return domain.CacheEntry{}, false, fmt.Errorf("decode cached status of %s: %w", orderID, err)
	}
	return entry, true, nil
}

func (c *RedisStatusCache) List(ctx context.Context) ([]domain.CacheEntry, error) {
	keys, err := c.keys(ctx)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return []domain.CacheEntry{}, nil
	}

	values, err := c.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]domain.CacheEntry, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var entry domain.CacheEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Printf("Warning: skipping unreadable cache key %s: %v", keys[i], err)
			continue
		}
		entries = append(entries, entry)
	}
	sortNewestFirst(entries)
	return entries, nil
}

func (c *RedisStatusCache) Delete(ctx context.Context, orderID string) error {
	return c.Client.Del(ctx, c.StatusKey(orderID)).Err()
}

func (c *RedisStatusCache) Clear(ctx context.Context) error {
	keys, err := c.keys(ctx)
	if err != nil || len(keys) == 0 {
		return err
	}
	return c.Client.Del(ctx, keys...).Err()
}

func (c *RedisStatusCache) keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := c.Client.Scan(ctx, 0, statusKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	return keys, iter.Err()
}
