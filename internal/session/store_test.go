package session

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"middlebeat/internal/domain/user"
	"middlebeat/internal/infrastructure/cache"
	"middlebeat/internal/repository/memory"
)

type failingKV struct{}

func (failingKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, errors.New("down")
}

func (failingKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return errors.New("down")
}

func (failingKV) Delete(ctx context.Context, keys ...string) error {
	return errors.New("down")
}

func newTestStore(t *testing.T, opts Options) (*Store, *memory.Store, *cache.Memory) {
	t.Helper()
	repo := memory.NewSeededStore()
	kv := cache.NewMemory(time.Minute)

	n := 0
	if opts.NewID == nil {
		opts.NewID = func() string {
			n++
			return "new-" + strconv.Itoa(n)
		}
	}
	s := NewStore(repo.Users(), repo.Profiles(), kv, opts)
	s.Restore(context.Background())
	return s, repo, kv
}

func TestStore_StartsLoadingThenUnauthenticated(t *testing.T) {
	repo := memory.NewSeededStore()
	s := NewStore(repo.Users(), repo.Profiles(), cache.NewMemory(time.Minute), Options{})

	if st := s.State(); st.Status != StatusLoading || !st.IsLoading() {
		t.Fatalf("expected loading, got %s", st.Status)
	}
	st := s.Restore(context.Background())
	if st.Status != StatusUnauthenticated || st.User != nil || st.Profile != nil || st.IsLoading() {
		t.Fatalf("unexpected state %+v", st)
	}
}

func TestStore_LoginIgnoresEmailCase(t *testing.T) {
	s, _, _ := newTestStore(t, Options{AllowDemoAccounts: true})

	st, err := s.Login(context.Background(), "ALEX.MUSIC@example.com", "anything")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !st.IsAuthenticated() {
		t.Fatalf("expected authenticated, got %s", st.Status)
	}
	if st.User.ID != "1" || st.Profile.FullName != "Alex Martinez" {
		t.Fatalf("unexpected identity %s / %s", st.User.ID, st.Profile.FullName)
	}
	if st.Pending {
		t.Fatalf("expected pending cleared")
	}
}

func TestStore_LoginUnknownEmail(t *testing.T) {
	s, _, kv := newTestStore(t, Options{AllowDemoAccounts: true})

	_, err := s.Login(context.Background(), "ghost@example.com", "x")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if s.State().Status != StatusUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", s.State().Status)
	}
	if _, ok, _ := kv.Get(context.Background(), UserKey); ok {
		t.Fatalf("expected nothing persisted")
	}
}

func TestStore_LoginDemoAccountsDisabled(t *testing.T) {
	s, _, _ := newTestStore(t, Options{AllowDemoAccounts: false})

	if _, err := s.Login(context.Background(), "alex.music@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestStore_RegisterThenLoginChecksPassword(t *testing.T) {
	s, repo, _ := newTestStore(t, Options{})
	ctx := context.Background()

	st, err := s.Register(ctx, RegisterInput{
		Email:    "new.artist@example.com",
		Password: "secret1",
		Role:     user.RoleMusicCollaborator,
		FullName: "New Artist",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !st.IsAuthenticated() || st.Profile.UserID != st.User.ID {
		t.Fatalf("unexpected state %+v", st)
	}
	if st.Profile.FullName != "New Artist" || st.Profile.Bio != "" || len(st.Profile.Skills) != 0 || st.Profile.Rating != 0 {
		t.Fatalf("expected empty profile besides name, got %+v", st.Profile)
	}

	n, _ := repo.Users().Count(ctx)
	if n != 9 {
		t.Fatalf("expected 9 users, got %d", n)
	}

	s.Logout(ctx)
	if _, err := s.Login(ctx, "NEW.ARTIST@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Login(ctx, "new.artist@example.com", "secret1"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestStore_RegisterDuplicateEmail(t *testing.T) {
	s, repo, _ := newTestStore(t, Options{})
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterInput{
		Email:    "Alex.Music@Example.com",
		Password: "secret1",
		Role:     user.RoleMusicCollaborator,
		FullName: "Impostor",
	})
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
	if s.State().Status != StatusUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", s.State().Status)
	}

	users, _ := repo.Users().Count(ctx)
	profiles, _ := repo.Profiles().List(ctx)
	if users != 8 || len(profiles) != 8 {
		t.Fatalf("expected collections unchanged, got %d users %d profiles", users, len(profiles))
	}
}

func TestStore_RegisterValidatesInput(t *testing.T) {
	s, _, _ := newTestStore(t, Options{})

	cases := []RegisterInput{
		{Email: "", Password: "secret1", Role: user.RoleMusicCollaborator, FullName: "A"},
		{Email: "a@b.c", Password: "123", Role: user.RoleMusicCollaborator, FullName: "A"},
		{Email: "a@b.c", Password: "secret1", Role: "drummer", FullName: "A"},
		{Email: "a@b.c", Password: "secret1", Role: user.RoleMusicCollaborator, FullName: "  "},
	}
	for i, in := range cases {
		if _, err := s.Register(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestStore_SurvivesReload(t *testing.T) {
	repo := memory.NewSeededStore()
	kv := cache.NewMemory(time.Minute)
	ctx := context.Background()

	first := NewStore(repo.Users(), repo.Profiles(), kv, Options{AllowDemoAccounts: true})
	first.Restore(ctx)
	if _, err := first.Login(ctx, "maya.vocalist@example.com", ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	second := NewStore(repo.Users(), repo.Profiles(), kv, Options{})
	st := second.Restore(ctx)
	if !st.IsAuthenticated() {
		t.Fatalf("expected authenticated after reload, got %s", st.Status)
	}
	if st.User.ID != "8" || st.Profile.FullName != "Maya Johnson" {
		t.Fatalf("unexpected identity %s / %s", st.User.ID, st.Profile.FullName)
	}
}

func TestStore_RestoreDiscardsCorruptEntries(t *testing.T) {
	repo := memory.NewSeededStore()
	kv := cache.NewMemory(time.Minute)
	ctx := context.Background()

	_ = kv.Set(ctx, UserKey, []byte("{not json"), 0)
	_ = kv.Set(ctx, ProfileKey, []byte(`{"id":"1","user_id":"1"}`), 0)

	s := NewStore(repo.Users(), repo.Profiles(), kv, Options{})
	st := s.Restore(ctx)
	if st.Status != StatusUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", st.Status)
	}
	if _, ok, _ := kv.Get(ctx, UserKey); ok {
		t.Fatalf("expected user entry removed")
	}
	if _, ok, _ := kv.Get(ctx, ProfileKey); ok {
		t.Fatalf("expected profile entry removed")
	}
}

func TestStore_LogoutClearsStorage(t *testing.T) {
	s, _, kv := newTestStore(t, Options{AllowDemoAccounts: true})
	ctx := context.Background()

	if _, err := s.Login(ctx, "emma.creator@example.com", ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	st := s.Logout(ctx)
	if st.Status != StatusUnauthenticated || st.User != nil {
		t.Fatalf("unexpected state %+v", st)
	}
	if _, ok, _ := kv.Get(ctx, UserKey); ok {
		t.Fatalf("expected user entry removed")
	}

	// Logging out twice is harmless.
	if st := s.Logout(ctx); st.Status != StatusUnauthenticated {
		t.Fatalf("unexpected state %+v", st)
	}
}

func TestStore_UpdateProfileRequiresAuthentication(t *testing.T) {
	s, repo, _ := newTestStore(t, Options{})
	ctx := context.Background()

	bio := "changed"
	_, err := s.UpdateProfile(ctx, user.ProfileUpdate{Bio: &bio})
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	profiles, _ := repo.Profiles().List(ctx)
	for _, p := range profiles {
		if p.Bio == bio {
			t.Fatalf("profile %s mutated", p.ID)
		}
	}
}

func TestStore_UpdateProfileMergesAndPersists(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s, repo, kv := newTestStore(t, Options{AllowDemoAccounts: true, Now: func() time.Time { return fixed }})
	ctx := context.Background()

	if _, err := s.Login(ctx, "alex.music@example.com", ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	loc := "Berlin, DE"
	skills := []string{"Piano", "Mixing"}
	p, err := s.UpdateProfile(ctx, user.ProfileUpdate{Location: &loc, Skills: &skills})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Location != loc || len(p.Skills) != 2 || p.FullName != "Alex Martinez" {
		t.Fatalf("unexpected profile %+v", p)
	}
	if !p.UpdatedAt.Equal(fixed) {
		t.Fatalf("expected updated_at refreshed, got %s", p.UpdatedAt)
	}

	stored, _ := repo.Profiles().GetByUserID(ctx, "1")
	if stored.Location != loc {
		t.Fatalf("expected collection updated, got %q", stored.Location)
	}
	if s.State().Profile.Location != loc {
		t.Fatalf("expected state updated")
	}

	reloaded := NewStore(repo.Users(), repo.Profiles(), kv, Options{}).Restore(ctx)
	if !reloaded.IsAuthenticated() || reloaded.Profile.Location != loc {
		t.Fatalf("expected persisted profile, got %+v", reloaded.Profile)
	}
}

func TestStore_UpdateProfileAfterLogoutDuringDelay(t *testing.T) {
	s, repo, _ := newTestStore(t, Options{AllowDemoAccounts: true, UpdateDelay: 50 * time.Millisecond})
	ctx := context.Background()

	if _, err := s.Login(ctx, "alex.music@example.com", ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	done := make(chan error, 1)
	bio := "mid-flight"
	go func() {
		_, err := s.UpdateProfile(ctx, user.ProfileUpdate{Bio: &bio})
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	s.Logout(ctx)

	if err := <-done; !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	stored, _ := repo.Profiles().GetByUserID(ctx, "1")
	if stored.Bio == bio {
		t.Fatalf("expected no mutation")
	}
}

func TestStore_RejectsConcurrentOperations(t *testing.T) {
	s, _, _ := newTestStore(t, Options{AllowDemoAccounts: true, LoginDelay: 50 * time.Millisecond})
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Login(ctx, "alex.music@example.com", "")
		}(i)
	}
	wg.Wait()

	busy := 0
	for _, err := range errs {
		if errors.Is(err, ErrOperationInProgress) {
			busy++
		} else if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if busy != 1 {
		t.Fatalf("expected exactly one rejected call, got %d", busy)
	}
}

func TestStore_LoginHonoursContext(t *testing.T) {
	s, _, _ := newTestStore(t, Options{AllowDemoAccounts: true, LoginDelay: time.Second})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Login(ctx, "alex.music@example.com", ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if s.State().Status != StatusUnauthenticated || s.State().Pending {
		t.Fatalf("unexpected state %+v", s.State())
	}
}

func TestStore_PersistFailureDoesNotFailLogin(t *testing.T) {
	repo := memory.NewSeededStore()
	s := NewStore(repo.Users(), repo.Profiles(), failingKV{}, Options{AllowDemoAccounts: true})
	ctx := context.Background()

	if st := s.Restore(ctx); st.Status != StatusUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", st.Status)
	}
	st, err := s.Login(ctx, "alex.music@example.com", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !st.IsAuthenticated() {
		t.Fatalf("expected authenticated")
	}
}

func TestStore_SubscribersSeeEveryChange(t *testing.T) {
	s, _, _ := newTestStore(t, Options{AllowDemoAccounts: true})
	ctx := context.Background()

	var mu sync.Mutex
	var seen []State
	unsubscribe := s.Subscribe(func(st State) {
		mu.Lock()
		seen = append(seen, st)
		mu.Unlock()
	})

	if _, err := s.Login(ctx, "alex.music@example.com", ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	unsubscribe()
	s.Logout(ctx)

	mu.Lock()
	defer mu.Unlock()
	// pending on, authenticated, pending off
	if len(seen) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(seen))
	}
	if !seen[0].Pending || seen[1].Status != StatusAuthenticated || seen[2].Pending {
		t.Fatalf("unexpected sequence %+v", seen)
	}
}
