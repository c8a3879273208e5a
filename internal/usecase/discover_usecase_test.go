package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"middlebeat/internal/domain/user"
	"middlebeat/internal/infrastructure/cache"
	"middlebeat/internal/repository/memory"
)

type countingProfiles struct {
	user.ProfileRepository
	lists  int
	err    error
	onList func()
}

func (c *countingProfiles) List(ctx context.Context) ([]user.Profile, error) {
	c.lists++
	if c.onList != nil {
		c.onList()
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.ProfileRepository.List(ctx)
}

func TestDiscover_ExcludesViewer(t *testing.T) {
	repo := memory.NewSeededStore()
	uc := NewDiscoverUsecase(repo.Profiles(), nil, time.Minute, nil)

	got, err := uc.Search(context.Background(), "1", DiscoverParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 7 {
		t.Fatalf("expected 7 profiles, got %d", len(got))
	}
	for _, p := range got {
		if p.UserID == "1" {
			t.Fatalf("viewer profile returned")
		}
	}
}

func TestDiscover_GenreAndText(t *testing.T) {
	repo := memory.NewSeededStore()
	uc := NewDiscoverUsecase(repo.Profiles(), nil, time.Minute, nil)

	got, err := uc.Search(context.Background(), "1", DiscoverParams{Query: "jazz"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].FullName != "Maya Johnson" {
		t.Fatalf("expected only Maya, got %+v", got)
	}
}

func TestDiscover_RejectsRatingOutOfRange(t *testing.T) {
	repo := memory.NewSeededStore()
	uc := NewDiscoverUsecase(repo.Profiles(), nil, time.Minute, nil)

	for _, bad := range []float64{7.5, -1, math.NaN()} {
		if _, err := uc.Search(context.Background(), "1", DiscoverParams{MinRating: &bad}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("rating %v: expected ErrInvalidInput, got %v", bad, err)
		}
	}
}

func TestDiscover_CachesUntilInvalidated(t *testing.T) {
	repo := memory.NewSeededStore()
	profiles := &countingProfiles{ProfileRepository: repo.Profiles()}
	uc := NewDiscoverUsecase(profiles, cache.NewMemory(time.Minute), time.Minute, nil)
	ctx := context.Background()

	params := DiscoverParams{Genres: []string{"Pop"}}
	first, err := uc.Search(ctx, "1", params)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := uc.Search(ctx, "1", params)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if profiles.lists != 1 {
		t.Fatalf("expected one repository read, got %d", profiles.lists)
	}
	if len(first) != len(second) {
		t.Fatalf("cached result differs: %d vs %d", len(first), len(second))
	}

	uc.Invalidate(ctx)
	if _, err := uc.Search(ctx, "1", params); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if profiles.lists != 2 {
		t.Fatalf("expected a fresh read after invalidation, got %d", profiles.lists)
	}
}

func TestDiscover_RepositoryError(t *testing.T) {
	profiles := &countingProfiles{err: errors.New("boom")}
	uc := NewDiscoverUsecase(profiles, nil, time.Minute, nil)

	if _, err := uc.Search(context.Background(), "1", DiscoverParams{}); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestDiscover_CachedSearchMatchesEngine(t *testing.T) {
	repo := memory.NewSeededStore()
	cached := NewDiscoverUsecase(repo.Profiles(), cache.NewMemory(time.Minute), time.Minute, nil)
	plain := NewDiscoverUsecase(repo.Profiles(), nil, time.Minute, nil)
	ctx := context.Background()

	searches := []DiscoverParams{
		{Query: "hip  hop"},
		{Query: "hip hop"},
		{Query: " HIP HOP "},
		{Skills: []string{" "}},
		{},
		{Location: "los  angeles"},
		{Location: "Los Angeles"},
	}
	for _, params := range searches {
		want, err := plain.Search(ctx, "1", params)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		got, err := cached.Search(ctx, "1", params)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("%+v: cached search returned %d profiles, engine %d", params, len(got), len(want))
		}
	}

	if got, _ := plain.Search(ctx, "1", DiscoverParams{Query: "hip hop"}); len(got) == 0 {
		t.Fatalf("expected hip hop profiles in the fixtures")
	}
}

func TestDiscover_InvalidateDuringSearchSkipsCaching(t *testing.T) {
	repo := memory.NewSeededStore()
	profiles := &countingProfiles{ProfileRepository: repo.Profiles()}
	uc := NewDiscoverUsecase(profiles, cache.NewMemory(time.Minute), time.Minute, nil)
	ctx := context.Background()

	profiles.onList = func() {
		profiles.onList = nil
		uc.Invalidate(ctx)
	}

	params := DiscoverParams{Genres: []string{"Pop"}}
	for i := 0; i < 3; i++ {
		if _, err := uc.Search(ctx, "1", params); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if profiles.lists != 2 {
		t.Fatalf("expected the raced result to stay uncached, got %d reads", profiles.lists)
	}
}

func TestDiscoverCacheKey_Normalizes(t *testing.T) {
	a := DiscoverCacheKey(0, "1", DiscoverParams{Query: "  Jazz Vocals ", Skills: []string{"Vocals", "Piano"}})
	b := DiscoverCacheKey(0, "1", DiscoverParams{Query: "jazz vocals", Skills: []string{"Piano", "Vocals", " "}})
	if a != b {
		t.Fatalf("expected equal keys")
	}
	if a == DiscoverCacheKey(0, "1", DiscoverParams{Query: "jazz  vocals", Skills: []string{"Piano", "Vocals"}}) {
		t.Fatalf("expected inner spacing to change the key")
	}
	if a == DiscoverCacheKey(0, "2", DiscoverParams{Query: "jazz vocals", Skills: []string{"Piano", "Vocals"}}) {
		t.Fatalf("expected viewer to change the key")
	}
	if a == DiscoverCacheKey(1, "1", DiscoverParams{Query: "jazz vocals", Skills: []string{"Piano", "Vocals"}}) {
		t.Fatalf("expected generation to change the key")
	}
	v := true
	if a == DiscoverCacheKey(0, "1", DiscoverParams{Query: "jazz vocals", Skills: []string{"Piano", "Vocals"}, Verified: &v}) {
		t.Fatalf("expected verified to change the key")
	}
}
