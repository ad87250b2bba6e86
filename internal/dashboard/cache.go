package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const statsCacheKey = "finsight:dashboard:stats"

// Cache keeps the computed stats block in Redis so the dashboard does not
// re-run six aggregate queries on every poll. Misses and Redis failures both
// fall through to a fresh computation.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache builds Cache.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// GetStats returns the cached stats and whether there was a usable hit.
func (c *Cache) GetStats(ctx context.Context) (Stats, bool) {
	payload, err := c.client.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		return Stats{}, false
	}
	var stats Stats
	if err := json.Unmarshal(payload, &stats); err != nil {
		return Stats{}, false
	}
	return stats, true
}

// SetStats stores the stats block under the configured TTL.
func (c *Cache) SetStats(ctx context.Context, stats Stats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, statsCacheKey, payload, c.ttl).Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
