package memory

import (
	"context"

	"middlebeat/internal/domain/project"
)

type ProjectRepository struct {
	s *Store
}

var _ project.Repository = (*ProjectRepository)(nil)

func (r *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]project.Project, 0, len(r.s.projects))
	for _, p := range r.s.projects {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (project.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i := r.s.projectIndex(id)
	if i < 0 {
		return project.Project{}, project.ErrNotFound
	}
	return r.s.projects[i].Clone(), nil
}

func (r *ProjectRepository) Create(ctx context.Context, p project.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.projects = append(r.s.projects, p.Clone())
	return nil
}

func (r *ProjectRepository) AddApplicant(ctx context.Context, id, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.projectIndex(id)
	if i < 0 {
		return false, project.ErrNotFound
	}
	if r.s.projects[i].HasApplicant(userID) {
		return false, nil
	}
	r.s.projects[i].Applicants = append(r.s.projects[i].Applicants, userID)
	r.s.projects[i].UpdatedAt = r.s.now().UTC()
	return true, nil
}

func (r *ProjectRepository) UpdateStatus(ctx context.Context, id string, status project.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.projectIndex(id)
	if i < 0 {
		return project.ErrNotFound
	}
	r.s.projects[i].Status = status
	r.s.projects[i].UpdatedAt = r.s.now().UTC()
	return nil
}

func (s *Store) projectIndex(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}
