package cache

import (
	"context"
	"errors"
	"testing"
)

func TestRedis_UnavailableBypasses(t *testing.T) {
	r := NewRedisFromClient(nil, nil, 0)
	ctx := context.Background()

	if r.Available() {
		t.Fatalf("expected unavailable")
	}
	if err := r.Ping(ctx); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if _, _, err := r.Get(ctx, "k"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}

	var out map[string]any
	hit, err := r.GetJSON(ctx, "k", &out)
	if hit || err != nil {
		t.Fatalf("expected silent miss, got %v %v", hit, err)
	}
	if err := r.SetJSON(ctx, "k", map[string]any{"a": 1}, 0); err != nil {
		t.Fatalf("expected silent set, got %v", err)
	}
	if err := r.DeleteByPattern(ctx, "k*"); err != nil {
		t.Fatalf("expected silent delete, got %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("unexpected close err: %v", err)
	}
}
