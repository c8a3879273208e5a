package app

import (
	"sync"

	"middlebeat/internal/session"
	"middlebeat/internal/ws"
)

// sessionRelay forwards sign-in and sign-out transitions of every session to
// the owning user's websocket topic. Pending toggles are not forwarded.
type sessionRelay struct {
	notifier *ws.Notifier

	mu   sync.Mutex
	last map[string]relayed
}

type relayed struct {
	userID string
	status session.Status
}

func newSessionRelay(n *ws.Notifier) *sessionRelay {
	return &sessionRelay{notifier: n, last: map[string]relayed{}}
}

func (r *sessionRelay) changed(sid string, st session.State) {
	r.mu.Lock()
	prev := r.last[sid]
	var userID string
	switch {
	case st.IsAuthenticated():
		userID = st.User.ID
		r.last[sid] = relayed{userID: userID, status: st.Status}
	case st.Status == session.StatusUnauthenticated:
		userID = prev.userID
		delete(r.last, sid)
	}
	r.mu.Unlock()

	if userID == "" || (prev.userID == userID && prev.status == st.Status) {
		return
	}
	r.notifier.SessionChanged(userID, string(st.Status))
}

// forget drops what was last relayed for sid once its store leaves memory.
func (r *sessionRelay) forget(sid string) {
	r.mu.Lock()
	delete(r.last, sid)
	r.mu.Unlock()
}
