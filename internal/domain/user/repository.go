package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrEmailTaken      = errors.New("email already taken")
)

// Repository is the user collection. Email lookups ignore case.
type Repository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// CreateAccount stores a user and its profile together, failing with
	// ErrEmailTaken when the email is already present.
	CreateAccount(ctx context.Context, u User, p Profile) error
	Count(ctx context.Context) (int, error)
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (Profile, error)
	// Update replaces the profile with the same id.
	Update(ctx context.Context, p Profile) error
	// List returns every profile in collection order.
	List(ctx context.Context) ([]Profile, error)
}
