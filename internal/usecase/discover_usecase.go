package usecase

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"middlebeat/internal/domain/user"
	"middlebeat/internal/query"

	"go.uber.org/zap"
)

type DiscoverParams struct {
	Query     string
	Skills    []string
	Genres    []string
	Location  string
	Verified  *bool
	MinRating *float64
}

type DiscoverUsecase interface {
	Search(ctx context.Context, viewerID string, params DiscoverParams) ([]user.Profile, error)
	Invalidate(ctx context.Context)
}

type Discover struct {
	profiles user.ProfileRepository
	cache    SearchCache
	ttl      time.Duration
	logger   *zap.Logger

	// generation is bumped by Invalidate; results computed under an older
	// generation land under keys no search reads again.
	generation atomic.Uint64
}

func NewDiscoverUsecase(profiles user.ProfileRepository, cache SearchCache, ttl time.Duration, logger *zap.Logger) *Discover {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Discover{profiles: profiles, cache: cache, ttl: ttl, logger: logger}
}

// Search lists the profiles visible to viewerID, never including the
// viewer's own profile.
func (u *Discover) Search(ctx context.Context, viewerID string, params DiscoverParams) ([]user.Profile, error) {
	if params.MinRating != nil && (math.IsNaN(*params.MinRating) || *params.MinRating < 0 || *params.MinRating > 5) {
		return nil, ErrInvalidInput
	}
	params = normalizeDiscoverParams(params)

	gen := u.generation.Load()
	cacheKey := DiscoverCacheKey(gen, viewerID, params)
	if u.cache != nil {
		var cached []user.Profile
		hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			u.logger.Debug("discover cache hit", zap.String("key", cacheKey))
			return cached, nil
		}
		u.logger.Debug("discover cache miss", zap.String("key", cacheKey))
	}

	all, err := u.profiles.List(ctx)
	if err != nil {
		u.logger.Error("discover: list profiles failed", zap.Error(err))
		return nil, ErrInternal
	}

	out := query.FilterProfiles(all, viewerID, params.Query, query.ProfileFilter{
		Skills:    params.Skills,
		Genres:    params.Genres,
		Location:  params.Location,
		Verified:  params.Verified,
		MinRating: params.MinRating,
	})

	if u.cache != nil && u.generation.Load() == gen {
		if err := u.cache.SetJSON(ctx, cacheKey, out, u.ttl); err != nil {
			u.logger.Warn("discover cache set failed", zap.Error(err))
		}
	}
	return out, nil
}

// Invalidate drops every cached search. Profile writes call it.
func (u *Discover) Invalidate(ctx context.Context) {
	u.generation.Add(1)
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPattern(ctx, DiscoverCachePattern()); err != nil {
		u.logger.Warn("discover cache invalidate failed", zap.Error(err))
	}
}
