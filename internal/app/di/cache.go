package di

import (
	"os"
	"strconv"
	"time"

	"sector_dashboard/internal/platform/cache"

	"github.com/redis/go-redis/v9"
)

// NewCacheStore creates the result cache. With a live Redis client the
// cache is shared across instances; without one it degrades to an
// in-process store with the same TTL semantics.
func NewCacheStore(rdb *redis.Client) cache.Store {
	ttl := cacheTTL()
	if rdb != nil {
		return cache.NewRedisStore(rdb, ttl, "results")
	}
	return cache.NewMemoryStore(ttl, nil)
}

func cacheTTL() time.Duration {
	if raw := os.Getenv("CACHE_TTL_SECONDS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return cache.DefaultTTL
}
