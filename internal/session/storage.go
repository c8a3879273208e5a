package session

import (
	"context"
	"time"
)

// Keys of the two persisted entries of a session.
const (
	UserKey    = "middlebeat_user"
	ProfileKey = "middlebeat_profile"
)

// KV is the durable key-value storage a store persists into.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// prefixKV scopes every key of a session under one namespace.
type prefixKV struct {
	kv     KV
	prefix string
}

func namespaced(kv KV, sid string) KV {
	return prefixKV{kv: kv, prefix: "session:" + sid + ":"}
}

func (p prefixKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return p.kv.Get(ctx, p.prefix+key)
}

func (p prefixKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return p.kv.Set(ctx, p.prefix+key, value, ttl)
}

func (p prefixKV) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, p.prefix+k)
	}
	return p.kv.Delete(ctx, full...)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
