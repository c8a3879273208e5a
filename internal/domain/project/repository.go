package project

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("project not found")

type Repository interface {
	// List returns every project in collection order.
	List(ctx context.Context) ([]Project, error)
	GetByID(ctx context.Context, id string) (Project, error)
	Create(ctx context.Context, p Project) error
	// AddApplicant appends userID unless already present and reports whether
	// the set grew.
	AddApplicant(ctx context.Context, id, userID string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}
