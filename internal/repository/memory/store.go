// Package memory keeps the collections in process memory. A single Store
// guards users and profiles with one lock so an account is created
// atomically.
package memory

import (
	"sync"
	"time"

	"middlebeat/internal/domain/message"
	"middlebeat/internal/domain/project"
	"middlebeat/internal/domain/user"
	"middlebeat/internal/seed"
)

type Store struct {
	mu       sync.RWMutex
	users    []user.User
	profiles []user.Profile
	projects []project.Project
	convs    []message.Conversation
	messages []message.Message

	now func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// NewSeededStore returns a store holding the fixture collections.
func NewSeededStore() *Store {
	return &Store{
		users:    seed.Users(),
		profiles: seed.Profiles(),
		projects: seed.Projects(),
		convs:    seed.Conversations(),
		messages: seed.Messages(),
		now:      time.Now,
	}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

func (s *Store) Profiles() *ProfileRepository {
	return &ProfileRepository{s: s}
}

func (s *Store) Projects() *ProjectRepository {
	return &ProjectRepository{s: s}
}

func (s *Store) Messages() *MessageRepository {
	return &MessageRepository{s: s}
}
