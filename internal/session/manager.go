package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"middlebeat/internal/domain/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultIdleTimeout = 30 * time.Minute
	maxRevalidateEvery = time.Minute
)

// Manager keeps one Store per session id. Stores it has not seen yet, or has
// forgotten, are rebuilt from the key-value storage on first use.
//
// Stores unused for longer than the persisted entry TTL are dropped, and a
// store in use is re-read from storage at least once per revalidation
// interval, so an expired session is signed out here as it would be on a
// fresh instance.
type Manager struct {
	users    user.Repository
	profiles user.ProfileRepository
	kv       KV
	opts     Options
	logger   *zap.Logger

	idle       time.Duration
	revalidate time.Duration

	mu        sync.Mutex
	entries   map[string]*entry
	lastSweep time.Time

	onChange func(sid string, st State)
	onEvict  func(sid string)
}

type entry struct {
	once  sync.Once
	store *Store

	lastUsed  time.Time
	checkedAt time.Time
}

func NewManager(users user.Repository, profiles user.ProfileRepository, kv KV, opts Options) *Manager {
	opts = opts.withDefaults()
	m := &Manager{
		users:    users,
		profiles: profiles,
		kv:       kv,
		opts:     opts,
		logger:   opts.Logger,
		idle:     defaultIdleTimeout,
		entries:  map[string]*entry{},
	}
	if opts.TTL > 0 {
		m.idle = opts.TTL
		m.revalidate = min(opts.TTL, maxRevalidateEvery)
	}
	return m
}

// OnChange installs a callback fired for every state change of every store
// opened after the call.
func (m *Manager) OnChange(fn func(sid string, st State)) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

// OnEvict installs a callback fired when a store is dropped from memory,
// either by Forget or by the idle sweep.
func (m *Manager) OnEvict(fn func(sid string)) {
	m.mu.Lock()
	m.onEvict = fn
	m.mu.Unlock()
}

func NewSessionID() string {
	return uuid.NewString()
}

// Open returns the store of sid, restoring it from storage the first time.
func (m *Manager) Open(ctx context.Context, sid string) (*Store, error) {
	sid = strings.TrimSpace(sid)
	if _, err := uuid.Parse(sid); err != nil {
		return nil, ErrInvalidSession
	}

	now := m.opts.Now()

	m.mu.Lock()
	evicted := m.sweepLocked(now)
	e, ok := m.entries[sid]
	if !ok {
		e = &entry{checkedAt: now}
		m.entries[sid] = e
	}
	e.lastUsed = now
	stale := ok && m.revalidate > 0 && now.Sub(e.checkedAt) >= m.revalidate
	if stale {
		e.checkedAt = now
	}
	onChange := m.onChange
	onEvict := m.onEvict
	m.mu.Unlock()

	if onEvict != nil {
		for _, id := range evicted {
			onEvict(id)
		}
	}

	e.once.Do(func() {
		s := NewStore(m.users, m.profiles, namespaced(m.kv, sid), m.opts)
		if onChange != nil {
			s.Subscribe(func(st State) { onChange(sid, st) })
		}
		s.Restore(ctx)
		e.store = s
	})
	if stale {
		e.store.revalidate(ctx)
	}
	return e.store, nil
}

// sweepLocked drops idle stores. It runs at most once per idle period.
func (m *Manager) sweepLocked(now time.Time) []string {
	if now.Sub(m.lastSweep) < m.idle {
		return nil
	}
	m.lastSweep = now

	var evicted []string
	for sid, e := range m.entries {
		if now.Sub(e.lastUsed) > m.idle {
			delete(m.entries, sid)
			evicted = append(evicted, sid)
		}
	}
	return evicted
}

// Forget drops the in-memory store of sid. Its persisted entries stay, so the
// next Open restores it.
func (m *Manager) Forget(sid string) {
	m.mu.Lock()
	_, ok := m.entries[sid]
	delete(m.entries, sid)
	onEvict := m.onEvict
	m.mu.Unlock()

	if ok && onEvict != nil {
		onEvict(sid)
	}
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
