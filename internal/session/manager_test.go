package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"middlebeat/internal/infrastructure/cache"
	"middlebeat/internal/repository/memory"
)

func TestManager_OpenRejectsMalformedIDs(t *testing.T) {
	repo := memory.NewSeededStore()
	m := NewManager(repo.Users(), repo.Profiles(), cache.NewMemory(time.Minute), Options{})

	for _, sid := range []string{"", "abc", "../session"} {
		if _, err := m.Open(context.Background(), sid); !errors.Is(err, ErrInvalidSession) {
			t.Fatalf("sid %q: expected ErrInvalidSession, got %v", sid, err)
		}
	}
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	repo := memory.NewSeededStore()
	m := NewManager(repo.Users(), repo.Profiles(), cache.NewMemory(time.Minute), Options{AllowDemoAccounts: true})
	ctx := context.Background()

	a, _ := m.Open(ctx, NewSessionID())
	b, _ := m.Open(ctx, NewSessionID())

	if _, err := a.Login(ctx, "alex.music@example.com", ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if b.State().IsAuthenticated() {
		t.Fatalf("expected second session untouched")
	}
}

func TestManager_ForgetThenOpenRestores(t *testing.T) {
	repo := memory.NewSeededStore()
	kv := cache.NewMemory(time.Minute)
	m := NewManager(repo.Users(), repo.Profiles(), kv, Options{AllowDemoAccounts: true})
	ctx := context.Background()
	sid := NewSessionID()

	s, err := m.Open(ctx, sid)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := s.Login(ctx, "carlos.beats@example.com", ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	m.Forget(sid)
	if m.Len() != 0 {
		t.Fatalf("expected no open sessions")
	}

	again, _ := m.Open(ctx, sid)
	if again == s {
		t.Fatalf("expected a fresh store")
	}
	st := again.State()
	if !st.IsAuthenticated() || st.User.ID != "7" {
		t.Fatalf("expected restored session, got %+v", st)
	}

	if _, ok, _ := kv.Get(ctx, "session:"+sid+":"+UserKey); !ok {
		t.Fatalf("expected namespaced user entry")
	}
}

func TestManager_ConcurrentOpenSharesStore(t *testing.T) {
	repo := memory.NewSeededStore()
	m := NewManager(repo.Users(), repo.Profiles(), cache.NewMemory(time.Minute), Options{})
	sid := NewSessionID()

	var wg sync.WaitGroup
	stores := make([]*Store, 8)
	for i := range stores {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stores[i], _ = m.Open(context.Background(), sid)
		}(i)
	}
	wg.Wait()

	for _, s := range stores[1:] {
		if s != stores[0] {
			t.Fatalf("expected one store per session id")
		}
	}
}

func TestManager_OnChange(t *testing.T) {
	repo := memory.NewSeededStore()
	m := NewManager(repo.Users(), repo.Profiles(), cache.NewMemory(time.Minute), Options{AllowDemoAccounts: true})
	ctx := context.Background()
	sid := NewSessionID()

	var mu sync.Mutex
	var last State
	m.OnChange(func(got string, st State) {
		if got != sid {
			return
		}
		mu.Lock()
		last = st
		mu.Unlock()
	})

	s, _ := m.Open(ctx, sid)
	if _, err := s.Login(ctx, "lisa.manager@agency.com", ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	s.Logout(ctx)

	mu.Lock()
	defer mu.Unlock()
	if last.Status != StatusUnauthenticated {
		t.Fatalf("expected last change to be logout, got %s", last.Status)
	}
}

func TestManager_SweepsIdleStores(t *testing.T) {
	repo := memory.NewSeededStore()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(repo.Users(), repo.Profiles(), cache.NewMemory(time.Hour), Options{
		AllowDemoAccounts: true,
		TTL:               time.Minute,
		Now:               func() time.Time { return now },
	})
	ctx := context.Background()

	var evicted []string
	m.OnEvict(func(sid string) { evicted = append(evicted, sid) })

	sids := []string{NewSessionID(), NewSessionID(), NewSessionID()}
	for _, sid := range sids {
		s, _ := m.Open(ctx, sid)
		if _, err := s.Login(ctx, "alex.music@example.com", ""); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}

	now = now.Add(2 * time.Minute)
	if _, err := m.Open(ctx, NewSessionID()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if m.Len() != 1 {
		t.Fatalf("expected idle stores dropped, %d held", m.Len())
	}
	if len(evicted) != 3 {
		t.Fatalf("expected 3 evictions, got %v", evicted)
	}

	again, _ := m.Open(ctx, sids[0])
	if !again.State().IsAuthenticated() {
		t.Fatalf("expected evicted session restored from storage")
	}
}

func TestManager_RevalidatesAgainstStorage(t *testing.T) {
	repo := memory.NewSeededStore()
	kv := cache.NewMemory(time.Hour)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(repo.Users(), repo.Profiles(), kv, Options{
		AllowDemoAccounts: true,
		TTL:               time.Minute,
		Now:               func() time.Time { return now },
	})
	ctx := context.Background()

	expired, kept := NewSessionID(), NewSessionID()
	stores := map[string]*Store{}
	for _, sid := range []string{expired, kept} {
		s, _ := m.Open(ctx, sid)
		if _, err := s.Login(ctx, "maya.vocalist@example.com", ""); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		stores[sid] = s
	}

	now = now.Add(30 * time.Second)
	for _, sid := range []string{expired, kept} {
		if s, _ := m.Open(ctx, sid); !s.State().IsAuthenticated() {
			t.Fatalf("expected session still signed in")
		}
	}

	_ = kv.Delete(ctx, "session:"+expired+":"+UserKey, "session:"+expired+":"+ProfileKey)

	now = now.Add(31 * time.Second)
	s, _ := m.Open(ctx, expired)
	if s != stores[expired] {
		t.Fatalf("expected the same store to be revalidated")
	}
	if s.State().IsAuthenticated() {
		t.Fatalf("expected expired session signed out")
	}

	s, _ = m.Open(ctx, kept)
	if s != stores[kept] || !s.State().IsAuthenticated() {
		t.Fatalf("expected intact session to stay signed in")
	}
}
