package history

import (
	"context"
	"net"
	"os"
	"reflect"
	"strconv"
	"testing"
	"time"

	"sanachat/internal/config"
	"sanachat/internal/models"
	"sanachat/internal/redis"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis-backed history tests")
	}
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatalf("split host port: %v", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("atoi port: %v", err)
	}
	db := 0
	if v := os.Getenv("TEST_REDIS_DB"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			db = parsed
		}
	}

	client, err := redis.NewClient(&config.Config{
		Redis: config.RedisConfig{Host: host, Port: port, DB: db},
	})
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Raw().FlushDB(ctx).Err(); err != nil {
		t.Fatalf("flush db: %v", err)
	}
	return NewRedisStore(client)
}

func TestRedisStoreEmpty(t *testing.T) {
	store := newTestRedisStore(t)
	if got := store.Load(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty transcript, got %#v", got)
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	transcript := []models.Message{
		{Role: models.RoleSystem, Content: "persona"},
		{Role: models.RoleUser, Content: "hello"},
		{Role: models.RoleAssistant, Content: "hi there"},
	}
	store.Save(ctx, transcript)

	got := store.Load(ctx)
	if !reflect.DeepEqual(got, transcript) {
		t.Fatalf("round trip mismatch:\nwant %#v\ngot  %#v", transcript, got)
	}
}

func TestRedisStoreSaveReplaces(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	store.Save(ctx, []models.Message{
		{Role: models.RoleUser, Content: "one"},
		{Role: models.RoleAssistant, Content: "two"},
	})
	replacement := []models.Message{{Role: models.RoleUser, Content: "only"}}
	store.Save(ctx, replacement)

	got := store.Load(ctx)
	if !reflect.DeepEqual(got, replacement) {
		t.Fatalf("expected replacement transcript, got %#v", got)
	}

	store.Save(ctx, nil)
	if got := store.Load(ctx); len(got) != 0 {
		t.Fatalf("expected cleared transcript, got %#v", got)
	}
}
