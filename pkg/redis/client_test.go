package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	mr := miniredis.RunT(t)
	raw := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { raw.Close() })
	return &Client{store: raw, raw: raw}
}

func TestSnapshotKeyNamespacing(t *testing.T) {
	t.Parallel()

	c := &Client{}
	if got := c.SnapshotKey("abc-123"); got != "dreshop:snapshot:abc-123" {
		t.Fatalf("unexpected snapshot key %q", got)
	}
	if got := c.IdempotencyKey("checkout", "key-1"); got != "dreshop:idempotency:checkout:key-1" {
		t.Fatalf("unexpected idempotency key %q", got)
	}
	if got := joinKey(); got != keyNamespace {
		t.Fatalf("empty parts should yield bare namespace, got %q", got)
	}
}

func TestSetGetDelRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	key := client.SnapshotKey("sess-1")
	if err := client.Set(ctx, key, `{"cart":[]}`, time.Hour); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	value, err := client.Get(ctx, key)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if value != `{"cart":[]}` {
		t.Fatalf("unexpected value %q", value)
	}

	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := client.Get(ctx, key); err != redislib.Nil {
		t.Fatalf("expected redis.Nil after delete, got %v", err)
	}
}

func TestSetNXOnlySetsOnce(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	ok, err := client.SetNX(ctx, "dreshop:idempotency:x", "first", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first setnx should succeed: ok=%v err=%v", ok, err)
	}
	ok, err = client.SetNX(ctx, "dreshop:idempotency:x", "second", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("second setnx should report the key already present")
	}
}

func TestUninitializedClientErrors(t *testing.T) {
	t.Parallel()

	var c Client
	ctx := context.Background()
	if err := c.Set(ctx, "k", "v", 0); err == nil {
		t.Fatalf("expected error from uninitialized client")
	}
	if _, err := c.Get(ctx, "k"); err == nil {
		t.Fatalf("expected error from uninitialized client")
	}
	if err := c.Ping(ctx); err == nil {
		t.Fatalf("expected error from uninitialized client")
	}
}
