package cache

import (
	"context"
	"testing"
	"time"

	"github.com/vitrina-next/internal/config"
	"github.com/vitrina-next/internal/models"
)

func TestDisabledCacheFallsThrough(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init disabled redis failed: %v", err)
	}
	if Enabled() || Client() != nil {
		t.Fatalf("cache should be disabled")
	}
	ctx := context.Background()

	var dest []string
	hit, err := GetStorefront(ctx, "abc", &dest)
	if err != nil || hit {
		t.Fatalf("disabled cache should miss: hit=%v err=%v", hit, err)
	}
	if err := SetStorefront(ctx, "abc", []string{"x"}, time.Minute); err != nil {
		t.Fatalf("disabled set should be noop: %v", err)
	}
	if err := InvalidateStorefront(ctx); err != nil {
		t.Fatalf("disabled invalidate should be noop: %v", err)
	}
	if err := Ping(ctx); err != nil {
		t.Fatalf("disabled ping should be noop: %v", err)
	}
}

func TestStorefrontKey(t *testing.T) {
	if StorefrontKey("") != "storefront:products" {
		t.Fatalf("unexpected base key: %s", StorefrontKey(""))
	}
	if StorefrontKey("v1") != "storefront:products:v1" {
		t.Fatalf("unexpected variant key: %s", StorefrontKey("v1"))
	}
}

func TestBuildAdminAuthState(t *testing.T) {
	if BuildAdminAuthState(nil) != nil {
		t.Fatalf("nil admin should build nil state")
	}
	state := BuildAdminAuthState(&models.AdminAccount{ID: 7, Email: "a@b.c", Role: "sme", Status: "active", TokenVersion: 3})
	if state.AdminID != 7 || state.Role != "sme" || state.TokenVersion != 3 {
		t.Fatalf("unexpected state: %+v", state)
	}
}

func TestStoreKeyPrefix(t *testing.T) {
	s := &store{prefix: "vitrina"}
	if got := s.key(" storefront:products "); got != "vitrina:storefront:products" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := s.key(""); got != "vitrina" {
		t.Fatalf("empty key should map to prefix, got %s", got)
	}
}
