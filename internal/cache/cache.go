// FilePath: internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Bochorn0/aquatech-api-sub001/internal/models"
)

const latestKeyPrefix = "aquatech:latest:"

// LatestReadingCache keeps the most recent telemetry log per device in Redis
// so the status endpoint never touches the hypertable on the hot path. The
// cache is write-through on ingestion and purely best-effort: a miss falls
// back to the log store.
type LatestReadingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client) *LatestReadingCache {
	return &LatestReadingCache{
		client: client,
		// Devices report on minute cadence; anything older than a day is
		// stale enough that the store fallback should decide.
		ttl: 24 * time.Hour,
	}
}

func latestKey(deviceID string) string {
	return latestKeyPrefix + deviceID
}

// SetLatest stores a device's newest log. Older snapshots are simply
// overwritten; ingestion is the only writer.
func (c *LatestReadingCache) SetLatest(ctx context.Context, deviceID string, log *models.ProductLog) error {
	payload, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("failed to marshal latest reading: %w", err)
	}
	if err := c.client.Set(ctx, latestKey(deviceID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache latest reading: %w", err)
	}
	return nil
}

// GetLatest returns the cached newest log, or (nil, nil) on a miss.
func (c *LatestReadingCache) GetLatest(ctx context.Context, deviceID string) (*models.ProductLog, error) {
	payload, err := c.client.Get(ctx, latestKey(deviceID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read latest reading: %w", err)
	}

	var log models.ProductLog
	if err := json.Unmarshal(payload, &log); err != nil {
		return nil, fmt.Errorf("failed to unmarshal latest reading: %w", err)
	}
	return &log, nil
}

// Invalidate removes a device's snapshot, e.g. when the product is deleted.
func (c *LatestReadingCache) Invalidate(ctx context.Context, deviceID string) error {
	if err := c.client.Del(ctx, latestKey(deviceID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate latest reading: %w", err)
	}
	return nil
}
