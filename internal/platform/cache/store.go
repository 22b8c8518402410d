// Package cache provides the short-TTL result cache shared by the quote and
// sector pipelines.
package cache

import (
	"context"
	"strings"
	"time"
)

// DefaultTTL is how long a cached result stays valid.
const DefaultTTL = 30 * time.Second

// Store memoizes computed results under deterministic keys. Read-through is
// the caller's responsibility: check Get first, compute on a miss, then Set
// before returning. Clear evicts every entry; there is no per-key eviction.
type Store interface {
	// Get unmarshals the cached value for key into dest and reports whether
	// a live entry existed.
	Get(ctx context.Context, key string, dest any) bool
	// Set stores value under key. Failures are swallowed: caching is best
	// effort and must never fail a request.
	Set(ctx context.Context, key string, value any)
	// Clear evicts all entries unconditionally.
	Clear(ctx context.Context) error
}

// Key builds a cache key from a logical function name and its arguments, so
// the same call shape always maps to the same entry and different argument
// lists never collide.
func Key(fn string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, safe(fn))
	for _, a := range args {
		parts = append(parts, safe(a))
	}
	return strings.Join(parts, ":")
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
