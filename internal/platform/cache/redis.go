package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is the Redis-backed Store used when a Redis instance is
// available, so multiple server processes share one result cache. Values are
// stored as JSON under a common namespace; TTL enforcement is delegated to
// Redis key expiry.
type RedisStore struct {
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewRedisStore creates a RedisStore. If ttl is 0 or negative it defaults to
// DefaultTTL. If namespace is empty, it uses "results".
func NewRedisStore(rdb *redis.Client, ttl time.Duration, namespace string) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = "results"
	}
	return &RedisStore{rdb: rdb, ttl: ttl, namespace: namespace}
}

// Get fetches and unmarshals the cached value for key. Corrupted entries are
// deleted and treated as misses.
func (r *RedisStore) Get(ctx context.Context, key string, dest any) bool {
	b, err := r.rdb.Get(ctx, r.namespaced(key)).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dest); err != nil {
		_ = r.rdb.Del(ctx, r.namespaced(key)).Err()
		return false
	}
	return true
}

// Set stores value under key with the configured TTL, best effort.
func (r *RedisStore) Set(ctx context.Context, key string, value any) {
	b, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, r.namespaced(key), b, r.ttl).Err(); err != nil {
		slog.Warn("cache set failed", "key", key, "error", err)
	}
}

// Clear deletes every key in the namespace using SCAN, so it stays safe
// against a shared Redis holding unrelated data.
func (r *RedisStore) Clear(ctx context.Context) error {
	pattern := r.namespace + ":*"
	var cursor uint64
	for {
		keys, cur, err := r.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			return nil
		}
	}
}

func (r *RedisStore) namespaced(key string) string {
	return r.namespace + ":" + key
}
