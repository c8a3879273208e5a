package usecase

import (
	"context"
	"time"
)

// SearchCache holds serialized query results. Implementations bypass
// silently when their backend is down.
type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}
