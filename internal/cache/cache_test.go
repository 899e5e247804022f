package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	return &Cache{RDB: redis.NewClient(&redis.Options{Addr: s.Addr()}), Prefix: "wingcfg:"}, s
}

func TestCacheRoundtrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	payload := map[string]string{"login.title": "Login"}
	if err := c.Set(ctx, "translations", "km:IOS", payload, TranslationsTTL); err != nil {
		t.Fatalf("set: %v", err)
	}
	var got map[string]string
	hit, err := c.Get(ctx, "translations", "km:IOS", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !hit {
		t.Fatal("expected hit")
	}
	if diff := cmp.Diff(payload, got); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)
	var got map[string]string
	hit, err := c.Get(context.Background(), "translations", "en:ALL", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if hit {
		t.Fatal("expected miss")
	}
}

func TestCacheTTLExpires(t *testing.T) {
	c, s := newTestCache(t)
	ctx := context.Background()
	if err := c.Set(ctx, "mobileConfig", "IOS", map[string]string{"a": "b"}, MobileConfigTTL); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.FastForward(MobileConfigTTL + time.Second)
	var got map[string]string
	hit, err := c.Get(ctx, "mobileConfig", "IOS", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if hit {
		t.Fatal("expected expiry")
	}
}

func TestCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	for _, suffix := range []string{"en:ALL", "km:IOS", "km:ANDROID"} {
		if err := c.Set(ctx, "translations", suffix, map[string]string{"k": "v"}, TranslationsTTL); err != nil {
			t.Fatalf("set: %v", err)
		}
	}
	if err := c.Set(ctx, "mobileConfig", "IOS", map[string]string{"k": "v"}, MobileConfigTTL); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Invalidate(ctx, "translations"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	var got map[string]string
	if hit, _ := c.Get(ctx, "translations", "km:IOS", &got); hit {
		t.Fatal("translations should be gone")
	}
	if hit, _ := c.Get(ctx, "mobileConfig", "IOS", &got); !hit {
		t.Fatal("other collections should survive")
	}
}

func TestNilCacheIsPassthrough(t *testing.T) {
	var c *Cache
	ctx := context.Background()
	if err := c.Set(ctx, "translations", "", map[string]string{}, TranslationsTTL); err != nil {
		t.Fatalf("set: %v", err)
	}
	var got map[string]string
	hit, err := c.Get(ctx, "translations", "", &got)
	if err != nil || hit {
		t.Fatalf("nil cache: hit=%v err=%v", hit, err)
	}
	if err := c.Invalidate(ctx, "translations"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
}
