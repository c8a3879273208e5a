package jwt

import (
	"errors"
	"testing"
	"time"
)

func TestHMACService_AccessRoundTrip(t *testing.T) {
	s := NewHMACService("access", "refresh", time.Minute, time.Hour)

	tok, err := s.GenerateAccessToken("1", "sid-1", "alex.music@example.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	c, err := s.ValidateToken(tok)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.UserID != "1" || c.SessionID != "sid-1" || c.TokenType != TokenTypeAccess {
		t.Fatalf("unexpected claims %+v", c)
	}
	if s.IsRefreshToken(c) {
		t.Fatalf("expected access token")
	}
}

func TestHMACService_RefreshToken(t *testing.T) {
	s := NewHMACService("access", "refresh", time.Minute, time.Hour)

	tok, err := s.GenerateRefreshToken("1", "sid-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	c, err := s.ValidateToken(tok)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !s.IsRefreshToken(c) {
		t.Fatalf("expected refresh token")
	}
}

func TestHMACService_Expired(t *testing.T) {
	s := NewHMACService("access", "refresh", time.Minute, time.Hour)
	base := time.Now()
	s.now = func() time.Time { return base }

	tok, err := s.GenerateAccessToken("1", "sid-1", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := s.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_ForeignSecret(t *testing.T) {
	a := NewHMACService("access", "refresh", time.Minute, time.Hour)
	b := NewHMACService("other", "other-refresh", time.Minute, time.Hour)

	tok, _ := b.GenerateAccessToken("1", "sid-1", "")
	if _, err := a.ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestHMACService_RequiresSession(t *testing.T) {
	s := NewHMACService("access", "refresh", time.Minute, time.Hour)
	if _, err := s.GenerateAccessToken("1", "", ""); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestHMACService_AccessSecretCannotSignRefresh(t *testing.T) {
	s := NewHMACService("access", "refresh", time.Minute, time.Hour)
	forged := NewHMACService("refresh", "access", time.Minute, time.Hour)

	tok, _ := forged.GenerateAccessToken("1", "sid-1", "")
	if _, err := s.ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}

	a, _ := s.GenerateAccessToken("1", "sid-1", "")
	b, _ := s.GenerateAccessToken("1", "sid-1", "")
	if a == b {
		t.Fatalf("expected distinct token ids")
	}
}
