// FilePath: internal/weather/cache.go
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/verdantlabs/gardenhub/internal/models"
)

// Cache keeps the most recent weather sample per user in redis so the
// per-plant assessment path does not hit the database once per plant.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

func cacheKey(userID string) string {
	return "gardenhub:weather:latest:" + userID
}

func (c *Cache) SetLatest(ctx context.Context, userID string, sample *models.WeatherSample) error {
	data, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("failed to marshal weather sample: %w", err)
	}
	if err := c.rdb.Set(ctx, cacheKey(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache weather sample: %w", err)
	}
	return nil
}

// GetLatest returns the cached sample, or nil on a miss.
func (c *Cache) GetLatest(ctx context.Context, userID string) (*models.WeatherSample, error) {
	data, err := c.rdb.Get(ctx, cacheKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read weather cache: %w", err)
	}

	sample := &models.WeatherSample{}
	if err := json.Unmarshal(data, sample); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached weather sample: %w", err)
	}
	return sample, nil
}

func (c *Cache) Invalidate(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, cacheKey(userID)).Err()
}
