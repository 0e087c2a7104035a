package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// AvailabilityCacheTTL bounds staleness if the worker misses an event.
	AvailabilityCacheTTL = 24 * time.Hour

	availabilityKeyPrefix = "availability"
)

// CachedAvailability is the denormalized read model of one item's counter.
// Maintained by the worker from loan events; the authoritative counter lives
// in Postgres and is never written through this cache.
type CachedAvailability struct {
	ItemID    uuid.UUID `json:"item_id"`
	Total     int       `json:"total"`
	Available int       `json:"available"`
}

// AvailabilityCache provides structured read/write operations for the
// per-item availability read model. Key format: "availability:{itemID}".
type AvailabilityCache struct {
	client *RedisClient
}

// NewAvailabilityCache creates an AvailabilityCache backed by the given RedisClient.
func NewAvailabilityCache(r *RedisClient) *AvailabilityCache {
	return &AvailabilityCache{client: r}
}

// Get retrieves the cached counter for an item.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *AvailabilityCache) Get(ctx context.Context, itemID uuid.UUID) (*CachedAvailability, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(itemID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	id, err := uuid.Parse(vals["item_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse item_id: %w", err)
	}
	total, err := strconv.Atoi(vals["total"])
	if err != nil {
		return nil, fmt.Errorf("cache parse total: %w", err)
	}
	available, err := strconv.Atoi(vals["available"])
	if err != nil {
		return nil, fmt.Errorf("cache parse available: %w", err)
	}

	return &CachedAvailability{ItemID: id, Total: total, Available: available}, nil
}

// Set writes the counter snapshot as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *AvailabilityCache) Set(ctx context.Context, a *CachedAvailability) error {
	key := c.key(a.ItemID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"item_id", a.ItemID.String(),
		"total", strconv.Itoa(a.Total),
		"available", strconv.Itoa(a.Available),
	)
	pipe.Expire(ctx, key, AvailabilityCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached counter, forcing the next read through to Postgres.
func (c *AvailabilityCache) Delete(ctx context.Context, itemID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(itemID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "availability:{itemID}"
func (c *AvailabilityCache) key(itemID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", availabilityKeyPrefix, itemID)
}
