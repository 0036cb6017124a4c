package route

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Lawmlor123/run-app/internal/shared/geo"
	"github.com/redis/go-redis/v9"
)

const cacheTTL = 15 * time.Minute

// Cache keeps provider geometries in Redis so regenerating candidates for
// the same origin, length and seed skips the network round trip. A nil
// Redis client disables caching; every lookup is then a miss.
type Cache struct {
	redis *redis.Client
}

func NewCache(redisClient *redis.Client) *Cache {
	return &Cache{redis: redisClient}
}

func cacheKey(origin geo.Coordinate, lengthMeters float64, seed int) string {
	return fmt.Sprintf("route:%.5f:%.5f:%.0f:%d", origin.Lat, origin.Lng, lengthMeters, seed)
}

func (c *Cache) Get(ctx context.Context, origin geo.Coordinate, lengthMeters float64, seed int) ([]geo.Coordinate, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}
	raw, err := c.redis.Get(ctx, cacheKey(origin, lengthMeters, seed)).Bytes()
	if err != nil {
		return nil, false
	}
	var path []geo.Coordinate
	if err := json.Unmarshal(raw, &path); err != nil {
		return nil, false
	}
	return path, true
}

func (c *Cache) Put(ctx context.Context, origin geo.Coordinate, lengthMeters float64, seed int, path []geo.Coordinate) {
	if c == nil || c.redis == nil {
		return
	}
	raw, err := json.Marshal(path)
	if err != nil {
		return
	}
	c.redis.Set(ctx, cacheKey(origin, lengthMeters, seed), raw, cacheTTL)
}
