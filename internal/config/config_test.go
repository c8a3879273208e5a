package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingSecrets(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "JWT_ACCESS_SECRET") || !strings.Contains(err.Error(), "JWT_REFRESH_SECRET") {
		t.Fatalf("expected both secrets reported, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "a")
	t.Setenv("JWT_REFRESH_SECRET", "r")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("SESSION_LOGIN_DELAY", "")
	t.Setenv("SESSION_REGISTER_DELAY", "")
	t.Setenv("SESSION_UPDATE_DELAY", "")
	t.Setenv("AUTH_ALLOW_DEMO_ACCOUNTS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.App.StoreDriver != StoreDriverMemory {
		t.Fatalf("expected memory driver, got %q", cfg.App.StoreDriver)
	}
	if cfg.Session.LoginDelay != time.Second {
		t.Fatalf("unexpected login delay %s", cfg.Session.LoginDelay)
	}
	if cfg.Session.RegisterDelay != 1500*time.Millisecond {
		t.Fatalf("unexpected register delay %s", cfg.Session.RegisterDelay)
	}
	if cfg.Session.UpdateDelay != 800*time.Millisecond {
		t.Fatalf("unexpected update delay %s", cfg.Session.UpdateDelay)
	}
	if !cfg.Session.AllowDemoAccounts {
		t.Fatalf("expected demo accounts allowed by default")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "a")
	t.Setenv("JWT_REFRESH_SECRET", "r")
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("SESSION_LOGIN_DELAY", "soon")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "STORE_DRIVER") || !strings.Contains(err.Error(), "SESSION_LOGIN_DELAY") {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "a")
	t.Setenv("JWT_REFRESH_SECRET", "r")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://middlebeat.app,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(cfg.App.CORSOrigins) != 2 || cfg.App.CORSOrigins[1] != "https://middlebeat.app" {
		t.Fatalf("unexpected origins %v", cfg.App.CORSOrigins)
	}
}
