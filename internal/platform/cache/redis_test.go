package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

// TestNewRedisStore_Defaults verifies TTL and namespace fallbacks.
func TestNewRedisStore_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{name: "defaults when zero/empty", ttl: 0, namespace: "", expectedTTL: DefaultTTL, expectedNamespace: "results"},
		{name: "negative ttl uses default", ttl: -time.Second, namespace: "", expectedTTL: DefaultTTL, expectedNamespace: "results"},
		{name: "custom values preserved", ttl: time.Minute, namespace: "custom", expectedTTL: time.Minute, expectedNamespace: "custom"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := NewRedisStore(nil, tt.ttl, tt.namespace)

			if store.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, store.ttl)
			}
			if store.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, store.namespace)
			}
		})
	}
}

// TestRedisStore_Get_Hit verifies a live entry is returned and unmarshaled.
func TestRedisStore_Get_Hit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cached := []string{"sh600519", "sh601318"}
	b, _ := json.Marshal(cached)
	mock.ExpectGet("results:fetchQuotes:CN").SetVal(string(b))

	store := NewRedisStore(rdb, 30*time.Second, "results")

	var got []string
	if !store.Get(context.Background(), "fetchQuotes:CN", &got) {
		t.Fatal("expected a cache hit")
	}
	if len(got) != 2 || got[0] != "sh600519" {
		t.Errorf("got %v, want %v", got, cached)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

// TestRedisStore_Get_Miss verifies redis.Nil is reported as a miss.
func TestRedisStore_Get_Miss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("results:absent").RedisNil()

	store := NewRedisStore(rdb, 30*time.Second, "results")

	var got string
	if store.Get(context.Background(), "absent", &got) {
		t.Error("expected a miss")
	}
}

// TestRedisStore_Get_Corrupted verifies a corrupted entry is deleted and
// treated as a miss.
func TestRedisStore_Get_Corrupted(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("results:bad").SetVal("{not json")
	mock.ExpectDel("results:bad").SetVal(1)

	store := NewRedisStore(rdb, 30*time.Second, "results")

	var got []string
	if store.Get(context.Background(), "bad", &got) {
		t.Error("corrupted entry must be a miss")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

// TestRedisStore_Set verifies the JSON value is written with the TTL.
func TestRedisStore_Set(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	value := map[string]int{"n": 1}
	b, _ := json.Marshal(value)
	mock.ExpectSet("results:k", b, 30*time.Second).SetVal("OK")

	store := NewRedisStore(rdb, 30*time.Second, "results")
	store.Set(context.Background(), "k", value)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

// TestRedisStore_Clear verifies the SCAN+DEL sweep over the namespace.
func TestRedisStore_Clear(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectScan(0, "results:*", 200).SetVal([]string{"results:a", "results:b"}, 0)
	mock.ExpectDel("results:a", "results:b").SetVal(2)

	store := NewRedisStore(rdb, 30*time.Second, "results")

	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}
