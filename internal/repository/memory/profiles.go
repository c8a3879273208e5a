package memory

import (
	"context"

	"middlebeat/internal/domain/user"
)

type ProfileRepository struct {
	s *Store
}

var _ user.ProfileRepository = (*ProfileRepository)(nil)

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (user.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.profiles {
		if p.UserID == userID {
			return p.Clone(), nil
		}
	}
	return user.Profile{}, user.ErrProfileNotFound
}

func (r *ProfileRepository) Update(ctx context.Context, p user.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.profiles {
		if r.s.profiles[i].ID == p.ID {
			r.s.profiles[i] = p.Clone()
			return nil
		}
	}
	return user.ErrProfileNotFound
}

func (r *ProfileRepository) List(ctx context.Context) ([]user.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]user.Profile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		out = append(out, p.Clone())
	}
	return out, nil
}
