package memory

import (
	"context"

	"middlebeat/internal/domain/user"
)

type UserRepository struct {
	s *Store
}

var _ user.Repository = (*UserRepository)(nil)

func (r *UserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i := r.s.indexByEmail(email)
	if i < 0 {
		return user.User{}, user.ErrNotFound
	}
	return r.s.users[i], nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.indexByEmail(email) >= 0, nil
}

func (r *UserRepository) CreateAccount(ctx context.Context, u user.User, p user.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.indexByEmail(u.Email) >= 0 {
		return user.ErrEmailTaken
	}
	r.s.users = append(r.s.users, u)
	r.s.profiles = append(r.s.profiles, p.Clone())
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return len(r.s.users), nil
}

// indexByEmail must be called with the lock held.
func (s *Store) indexByEmail(email string) int {
	key := user.NormalizeEmail(email)
	if key == "" {
		return -1
	}
	for i, u := range s.users {
		if user.NormalizeEmail(u.Email) == key {
			return i
		}
	}
	return -1
}
