package usecase

import (
	"context"
	"errors"
	"strings"

	"middlebeat/internal/pkg/jwt"
	"middlebeat/internal/session"

	"go.uber.org/zap"
)

// Sessions resolves session ids to session stores.
type Sessions interface {
	Open(ctx context.Context, sid string) (*session.Store, error)
	Forget(sid string)
}

type AuthResult struct {
	SessionID    string
	State        session.State
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	Register(ctx context.Context, in session.RegisterInput) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (AuthResult, error)
	Logout(ctx context.Context, sid string) error
	Authenticate(ctx context.Context, accessToken string) (jwt.Claims, *session.Store, error)
}

type Auth struct {
	sessions Sessions
	jwt      jwt.Service
	discover DiscoverUsecase
	logger   *zap.Logger
}

func NewAuthUsecase(sessions Sessions, jwtSvc jwt.Service, discover DiscoverUsecase, logger *zap.Logger) *Auth {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auth{sessions: sessions, jwt: jwtSvc, discover: discover, logger: logger}
}

// Register signs a new account into a fresh session.
func (u *Auth) Register(ctx context.Context, in session.RegisterInput) (AuthResult, error) {
	sid := session.NewSessionID()
	store, err := u.sessions.Open(ctx, sid)
	if err != nil {
		return AuthResult{}, ErrInternal
	}

	st, err := store.Register(ctx, in)
	if err != nil {
		u.sessions.Forget(sid)
		return AuthResult{}, err
	}
	if u.discover != nil {
		u.discover.Invalidate(ctx)
	}
	u.logger.Info("account registered", zap.String("user_id", st.User.ID), zap.String("role", string(st.User.Role)))

	return u.issue(sid, st)
}

// Login signs an existing account into a fresh session.
func (u *Auth) Login(ctx context.Context, email, password string) (AuthResult, error) {
	sid := session.NewSessionID()
	store, err := u.sessions.Open(ctx, sid)
	if err != nil {
		return AuthResult{}, ErrInternal
	}

	st, err := store.Login(ctx, email, password)
	if err != nil {
		u.sessions.Forget(sid)
		return AuthResult{}, err
	}

	return u.issue(sid, st)
}

// Refresh rotates both tokens of a session that is still signed in.
func (u *Auth) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return AuthResult{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return AuthResult{}, ErrRefreshTokenExpired
		}
		return AuthResult{}, ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return AuthResult{}, ErrInvalidRefreshToken
	}

	store, err := u.sessions.Open(ctx, claims.SessionID)
	if err != nil {
		return AuthResult{}, ErrInvalidRefreshToken
	}
	st := store.State()
	if !st.IsAuthenticated() || st.User.ID != claims.UserID {
		u.sessions.Forget(claims.SessionID)
		return AuthResult{}, ErrUnauthorized
	}

	return u.issue(claims.SessionID, st)
}

func (u *Auth) Logout(ctx context.Context, sid string) error {
	store, err := u.sessions.Open(ctx, sid)
	if err != nil {
		return ErrUnauthorized
	}
	store.Logout(ctx)
	u.sessions.Forget(sid)
	return nil
}

// Authenticate resolves an access token to its signed-in session.
func (u *Auth) Authenticate(ctx context.Context, accessToken string) (jwt.Claims, *session.Store, error) {
	claims, err := u.jwt.ValidateToken(accessToken)
	if err != nil || u.jwt.IsRefreshToken(claims) {
		return jwt.Claims{}, nil, ErrUnauthorized
	}

	store, err := u.sessions.Open(ctx, claims.SessionID)
	if err != nil {
		return jwt.Claims{}, nil, ErrUnauthorized
	}
	st := store.State()
	if !st.IsAuthenticated() || st.User.ID != claims.UserID {
		// signed out elsewhere; do not keep an empty store around
		u.sessions.Forget(claims.SessionID)
		return jwt.Claims{}, nil, ErrUnauthorized
	}
	return claims, store, nil
}

func (u *Auth) issue(sid string, st session.State) (AuthResult, error) {
	access, err := u.jwt.GenerateAccessToken(st.User.ID, sid, st.User.Email)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(st.User.ID, sid)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	return AuthResult{SessionID: sid, State: st, AccessToken: access, RefreshToken: refresh}, nil
}
