package session

import "middlebeat/internal/domain/user"

type Status string

const (
	StatusLoading         Status = "loading"
	StatusUnauthenticated Status = "unauthenticated"
	StatusAuthenticated   Status = "authenticated"
)

// State is a snapshot of a store. User and Profile are set only when Status
// is StatusAuthenticated. Pending is true while a login, registration or
// profile update is waiting on its simulated round trip.
type State struct {
	Status  Status        `json:"status"`
	User    *user.User    `json:"user"`
	Profile *user.Profile `json:"profile"`
	Pending bool          `json:"pending"`
}

func (s State) IsAuthenticated() bool {
	return s.Status == StatusAuthenticated && s.User != nil && s.Profile != nil
}

func (s State) IsLoading() bool {
	return s.Status == StatusLoading || s.Pending
}

func (s State) clone() State {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	if s.Profile != nil {
		p := s.Profile.Clone()
		s.Profile = &p
	}
	return s
}

func authenticated(u user.User, p user.Profile) State {
	pc := p.Clone()
	return State{Status: StatusAuthenticated, User: &u, Profile: &pc}
}
