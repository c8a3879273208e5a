package app

import (
	"testing"

	"middlebeat/internal/domain/user"
	"middlebeat/internal/session"
	"middlebeat/internal/ws"
)

func TestSessionRelay_ForgetDropsEntry(t *testing.T) {
	r := newSessionRelay(ws.NewNotifier(nil))

	st := session.State{
		Status:  session.StatusAuthenticated,
		User:    &user.User{ID: "1"},
		Profile: &user.Profile{ID: "p1", UserID: "1"},
	}
	r.changed("a", st)
	r.changed("b", st)
	if len(r.last) != 2 {
		t.Fatalf("expected 2 tracked sessions, got %d", len(r.last))
	}

	r.forget("a")
	if _, ok := r.last["a"]; ok || len(r.last) != 1 {
		t.Fatalf("expected only b tracked, got %v", r.last)
	}

	r.changed("b", session.State{Status: session.StatusUnauthenticated})
	if len(r.last) != 0 {
		t.Fatalf("expected sign-out to drop the entry")
	}
}
