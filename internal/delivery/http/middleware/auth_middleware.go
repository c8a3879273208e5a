package middleware

import (
	"context"
	"strings"

	"middlebeat/internal/pkg/jwt"
	"middlebeat/internal/session"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxUserIDKey    = "user_id"
	CtxSessionIDKey = "session_id"
	CtxSessionKey   = "session"
)

// Authenticator resolves an access token to a signed-in session.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (jwt.Claims, *session.Store, error)
}

type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, store, err := m.auth.Authenticate(c.Context(), token)
		if err != nil {
			return NewAppError(fiber.StatusUnauthorized, "Invalid or expired session", nil, err)
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxSessionIDKey, claims.SessionID)
		c.Locals(CtxSessionKey, store)

		return c.Next()
	}
}

// SessionFrom returns the store the auth middleware attached, or nil.
func SessionFrom(c fiber.Ctx) *session.Store {
	s, _ := c.Locals(CtxSessionKey).(*session.Store)
	return s
}

func SessionIDFrom(c fiber.Ctx) string {
	s, _ := c.Locals(CtxSessionIDKey).(string)
	return s
}

func BearerToken(c fiber.Ctx) (string, bool) {
	return bearerTokenFromHeader(c.Get("Authorization"))
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
