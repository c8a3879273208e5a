// Package session owns the authenticated identity of a client session: the
// login, registration, logout and profile update flows, and the persisted
// copy of the identity that lets a session survive a reload.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"middlebeat/internal/domain/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

type Options struct {
	LoginDelay    time.Duration
	RegisterDelay time.Duration
	UpdateDelay   time.Duration

	// AllowDemoAccounts admits fixture accounts, which carry no password
	// hash, without checking the password.
	AllowDemoAccounts bool

	// TTL of the persisted entries; zero keeps them until logout.
	TTL time.Duration

	Now    func() time.Time
	NewID  func() string
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

type RegisterInput struct {
	Email    string
	Password string
	Role     user.Role
	FullName string
}

type Store struct {
	users    user.Repository
	profiles user.ProfileRepository
	kv       KV
	opts     Options
	logger   *zap.Logger

	mu    sync.RWMutex
	state State

	busy atomic.Bool

	subsMu  sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

// NewStore returns a store in the loading state. Call Restore to resolve it.
func NewStore(users user.Repository, profiles user.ProfileRepository, kv KV, opts Options) *Store {
	opts = opts.withDefaults()
	return &Store{
		users:    users,
		profiles: profiles,
		kv:       kv,
		opts:     opts,
		logger:   opts.Logger,
		state:    State{Status: StatusLoading},
		subs:     map[int]func(State){},
	}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Subscribe registers fn to receive every state change. The returned func
// removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	if fn == nil {
		return func() {}
	}
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

// Restore reads the persisted identity. Unreadable or undecodable entries
// resolve to an unauthenticated session; corrupt entries are removed.
func (s *Store) Restore(ctx context.Context) State {
	u, p, ok := s.readPersisted(ctx)
	if !ok {
		return s.setState(State{Status: StatusUnauthenticated})
	}
	return s.setState(authenticated(u, p))
}

// revalidate re-reads the persisted identity unless an operation is in
// flight, signing the store out once its entries have expired.
func (s *Store) revalidate(ctx context.Context) {
	if !s.busy.CompareAndSwap(false, true) {
		return
	}
	defer s.busy.Store(false)

	if cur := s.State(); cur.IsAuthenticated() {
		if u, p, ok := s.readPersisted(ctx); !ok || u.ID != cur.User.ID {
			s.logger.Info("session expired", zap.String("user_id", cur.User.ID))
			s.setState(State{Status: StatusUnauthenticated})
		} else if p.UpdatedAt.After(cur.Profile.UpdatedAt) {
			s.setState(authenticated(u, p))
		}
	}
}

func (s *Store) readPersisted(ctx context.Context) (user.User, user.Profile, bool) {
	ub, uok, uerr := s.kv.Get(ctx, UserKey)
	pb, pok, perr := s.kv.Get(ctx, ProfileKey)
	if uerr != nil || perr != nil {
		s.logger.Warn("session restore: storage read failed", zap.NamedError("user_err", uerr), zap.NamedError("profile_err", perr))
		return user.User{}, user.Profile{}, false
	}
	if !uok || !pok {
		return user.User{}, user.Profile{}, false
	}

	var u user.User
	var p user.Profile
	err := json.Unmarshal(ub, &u)
	if err == nil {
		err = json.Unmarshal(pb, &p)
	}
	if err == nil && (u.ID == "" || p.UserID != u.ID) {
		err = errors.New("persisted user and profile do not match")
	}
	if err != nil {
		s.logger.Warn("session restore: discarding persisted session", zap.Error(err))
		s.clearPersisted(ctx)
		return user.User{}, user.Profile{}, false
	}
	return u, p, true
}

// Login authenticates by email, ignoring case. On failure the previous state
// is kept.
func (s *Store) Login(ctx context.Context, email, password string) (State, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return s.State(), ErrOperationInProgress
	}
	defer s.busy.Store(false)

	s.setPending(true)
	defer s.setPending(false)

	if err := wait(ctx, s.opts.LoginDelay); err != nil {
		return s.State(), err
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return s.State(), ErrInvalidCredentials
		}
		s.logger.Error("login: user lookup failed", zap.Error(err))
		return s.State(), ErrInternal
	}

	if !s.passwordMatches(u, password) {
		return s.State(), ErrInvalidCredentials
	}

	p, err := s.profiles.GetByUserID(ctx, u.ID)
	if err != nil {
		if errors.Is(err, user.ErrProfileNotFound) {
			s.logger.Warn("login: user has no profile", zap.String("user_id", u.ID))
			return s.State(), ErrInvalidCredentials
		}
		s.logger.Error("login: profile lookup failed", zap.Error(err))
		return s.State(), ErrInternal
	}

	s.persist(ctx, &u, &p)
	return s.setState(authenticated(u, p)), nil
}

func (s *Store) passwordMatches(u user.User, password string) bool {
	if u.PasswordHash == "" {
		if !s.opts.AllowDemoAccounts {
			return false
		}
		s.logger.Warn("login: demo account admitted without password verification", zap.String("user_id", u.ID))
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Register creates a user and an empty profile and signs the session in.
func (s *Store) Register(ctx context.Context, in RegisterInput) (State, error) {
	email := strings.TrimSpace(in.Email)
	fullName := strings.TrimSpace(in.FullName)
	if email == "" || fullName == "" || !in.Role.Valid() || len(in.Password) < minPasswordLen {
		return s.State(), ErrInvalidInput
	}

	if !s.busy.CompareAndSwap(false, true) {
		return s.State(), ErrOperationInProgress
	}
	defer s.busy.Store(false)

	s.setPending(true)
	defer s.setPending(false)

	if err := wait(ctx, s.opts.RegisterDelay); err != nil {
		return s.State(), err
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("register: email lookup failed", zap.Error(err))
		return s.State(), ErrInternal
	}
	if exists {
		return s.State(), ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return s.State(), ErrInternal
	}

	now := s.opts.Now().UTC()
	u := user.User{
		ID:           s.opts.NewID(),
		Email:        email,
		Role:         in.Role,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	p := user.Profile{
		ID:        s.opts.NewID(),
		UserID:    u.ID,
		FullName:  fullName,
		Skills:    []string{},
		Genres:    []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.CreateAccount(ctx, u, p); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return s.State(), ErrEmailAlreadyRegistered
		}
		s.logger.Error("register: create account failed", zap.Error(err))
		return s.State(), ErrInternal
	}

	s.persist(ctx, &u, &p)
	return s.setState(authenticated(u, p)), nil
}

// Logout clears the persisted identity and resets the session. It never
// fails; storage errors are logged.
func (s *Store) Logout(ctx context.Context) State {
	s.clearPersisted(ctx)
	return s.setState(State{Status: StatusUnauthenticated})
}

// UpdateProfile merges upd into the authenticated profile. It fails with
// ErrNotAuthenticated, without touching anything, when no profile is signed
// in when the call starts or when it completes.
func (s *Store) UpdateProfile(ctx context.Context, upd user.ProfileUpdate) (user.Profile, error) {
	cur := s.State()
	if !cur.IsAuthenticated() {
		return user.Profile{}, ErrNotAuthenticated
	}

	if !s.busy.CompareAndSwap(false, true) {
		return user.Profile{}, ErrOperationInProgress
	}
	defer s.busy.Store(false)

	s.setPending(true)
	defer s.setPending(false)

	if err := wait(ctx, s.opts.UpdateDelay); err != nil {
		return user.Profile{}, err
	}

	now := s.State()
	if !now.IsAuthenticated() || now.User.ID != cur.User.ID {
		return user.Profile{}, ErrNotAuthenticated
	}

	updated := upd.Apply(now.Profile.Clone())
	updated.UpdatedAt = s.opts.Now().UTC()

	if err := s.profiles.Update(ctx, updated); err != nil {
		if !errors.Is(err, user.ErrProfileNotFound) {
			s.logger.Error("update profile: write failed", zap.Error(err))
			return user.Profile{}, ErrInternal
		}
		s.logger.Warn("update profile: profile missing from collection", zap.String("profile_id", updated.ID))
	}

	s.persist(ctx, nil, &updated)

	s.mu.Lock()
	s.state.Profile = &updated
	st := s.state.clone()
	s.mu.Unlock()
	s.notify(st)

	return updated.Clone(), nil
}

// persist writes the given records. A failed write only costs the session
// its ability to survive a reload, so it is logged and not returned.
func (s *Store) persist(ctx context.Context, u *user.User, p *user.Profile) {
	write := func(key string, v any) {
		b, err := json.Marshal(v)
		if err == nil {
			err = s.kv.Set(ctx, key, b, s.opts.TTL)
		}
		if err != nil {
			s.logger.Error("session persist failed", zap.String("key", key), zap.Error(err))
		}
	}
	if u != nil {
		write(UserKey, u)
	}
	if p != nil {
		write(ProfileKey, p)
	}
}

func (s *Store) clearPersisted(ctx context.Context) {
	if err := s.kv.Delete(ctx, UserKey, ProfileKey); err != nil {
		s.logger.Error("session clear failed", zap.Error(err))
	}
}

func (s *Store) setState(st State) State {
	s.mu.Lock()
	st.Pending = s.state.Pending
	s.state = st
	out := s.state.clone()
	s.mu.Unlock()

	s.notify(out)
	return out
}

func (s *Store) setPending(p bool) {
	s.mu.Lock()
	s.state.Pending = p
	out := s.state.clone()
	s.mu.Unlock()

	s.notify(out)
}

func (s *Store) notify(st State) {
	s.subsMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(st.clone())
	}
}
