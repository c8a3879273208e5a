package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	issuer = "middlebeat"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims binds a token to a user and to the server-side session that holds
// the user's identity.
type Claims struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"sid"`
	Email     string `json:"email,omitempty"`
	TokenType string `json:"token_type"`

	jwtlib.RegisteredClaims
}

type Service interface {
	GenerateAccessToken(userID, sessionID, email string) (string, error)
	GenerateRefreshToken(userID, sessionID string) (string, error)
	ValidateToken(tokenString string) (Claims, error)
	IsRefreshToken(claims Claims) bool
}

type signingKey struct {
	secret []byte
	ttl    time.Duration
}

// HMACService signs each token type with its own secret.
type HMACService struct {
	keys map[string]signingKey
	now  func() time.Time
}

func NewHMACService(accessSecret, refreshSecret string, accessExpiresIn, refreshExpiresIn time.Duration) *HMACService {
	return &HMACService{
		keys: map[string]signingKey{
			TokenTypeAccess:  {secret: []byte(accessSecret), ttl: accessExpiresIn},
			TokenTypeRefresh: {secret: []byte(refreshSecret), ttl: refreshExpiresIn},
		},
		now: time.Now,
	}
}

func (s *HMACService) GenerateAccessToken(userID, sessionID, email string) (string, error) {
	return s.sign(TokenTypeAccess, userID, sessionID, email)
}

func (s *HMACService) GenerateRefreshToken(userID, sessionID string) (string, error) {
	return s.sign(TokenTypeRefresh, userID, sessionID, "")
}

// ValidateToken verifies the token against the secret of the type it
// declares. Callers decide which types they accept.
func (s *HMACService) ValidateToken(tokenString string) (Claims, error) {
	var peek Claims
	if _, _, err := jwtlib.NewParser().ParseUnverified(tokenString, &peek); err != nil {
		return Claims{}, ErrTokenInvalid
	}
	key, ok := s.key(peek.TokenType)
	if !ok {
		return Claims{}, ErrTokenInvalid
	}

	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
		jwtlib.WithIssuer(issuer),
		jwtlib.WithExpirationRequired(),
	)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(*jwtlib.Token) (any, error) {
		return key.secret, nil
	})
	switch {
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return Claims{}, ErrTokenExpired
	case err != nil, tok == nil, !tok.Valid:
		return Claims{}, ErrTokenInvalid
	}

	if c.TokenType != peek.TokenType || c.UserID == "" || c.SessionID == "" {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}

func (s *HMACService) IsRefreshToken(claims Claims) bool {
	return claims.TokenType == TokenTypeRefresh
}

func (s *HMACService) sign(tokenType, userID, sessionID, email string) (string, error) {
	if userID == "" || sessionID == "" {
		return "", ErrTokenInvalid
	}
	key, ok := s.key(tokenType)
	if !ok {
		return "", ErrTokenInvalid
	}

	now := s.now().UTC()
	c := Claims{
		UserID:    userID,
		SessionID: sessionID,
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(key.ttl)),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(key.secret)
}

// key returns the usable signing key of tokenType.
func (s *HMACService) key(tokenType string) (signingKey, bool) {
	k, ok := s.keys[tokenType]
	if !ok || len(k.secret) == 0 || k.ttl <= 0 {
		return signingKey{}, false
	}
	return k, true
}
