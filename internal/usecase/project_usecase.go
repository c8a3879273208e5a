package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"middlebeat/internal/domain/project"
	"middlebeat/internal/domain/user"
	"middlebeat/internal/pkg/sanitize"
	"middlebeat/internal/query"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProjectListParams struct {
	Query  string
	Status string
	Sort   string
}

type CreateProjectInput struct {
	Title          string
	Description    string
	RequiredSkills []string
	Genres         []string
	Budget         *project.Budget
	Deadline       *time.Time
}

type ProjectUsecase interface {
	List(ctx context.Context, params ProjectListParams) ([]project.Project, error)
	Create(ctx context.Context, creator user.Profile, in CreateProjectInput) (project.Project, error)
	Apply(ctx context.Context, projectID, userID string) (project.Project, error)
	UpdateStatus(ctx context.Context, projectID, userID string, status project.Status) (project.Project, error)
}

type Projects struct {
	projects project.Repository
	now      func() time.Time
	logger   *zap.Logger
}

func NewProjectUsecase(projects project.Repository, logger *zap.Logger) *Projects {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Projects{projects: projects, now: time.Now, logger: logger}
}

func (u *Projects) List(ctx context.Context, params ProjectListParams) ([]project.Project, error) {
	status, err := query.ParseStatusFilter(params.Status)
	if err != nil {
		return nil, ErrInvalidInput
	}
	sortKey, err := query.ParseSortKey(params.Sort)
	if err != nil {
		return nil, ErrInvalidInput
	}

	all, err := u.projects.List(ctx)
	if err != nil {
		u.logger.Error("projects: list failed", zap.Error(err))
		return nil, ErrInternal
	}
	return query.FilterProjects(all, params.Query, status, sortKey), nil
}

// Create opens a project owned by creator.
func (u *Projects) Create(ctx context.Context, creator user.Profile, in CreateProjectInput) (project.Project, error) {
	title := sanitize.Text(in.Title)
	desc := sanitize.Text(in.Description)
	if title == "" || desc == "" {
		return project.Project{}, ErrInvalidInput
	}
	if b := in.Budget; b != nil && (b.Min < 0 || b.Max < 0 || b.Min > b.Max) {
		return project.Project{}, ErrInvalidInput
	}

	now := u.now().UTC()
	if in.Deadline != nil && in.Deadline.Before(now) {
		return project.Project{}, ErrInvalidInput
	}

	skills := sanitize.Tags(in.RequiredSkills)
	if skills == nil {
		skills = []string{}
	}
	genres := sanitize.Tags(in.Genres)
	if genres == nil {
		genres = []string{}
	}

	p := project.Project{
		ID:             uuid.NewString(),
		Title:          title,
		Description:    desc,
		CreatorID:      creator.UserID,
		CreatorName:    creator.FullName,
		RequiredSkills: skills,
		Genres:         genres,
		Budget:         in.Budget,
		Deadline:       in.Deadline,
		Status:         project.StatusOpen,
		Applicants:     []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := u.projects.Create(ctx, p); err != nil {
		u.logger.Error("projects: create failed", zap.Error(err))
		return project.Project{}, ErrInternal
	}
	u.logger.Info("project created", zap.String("project_id", p.ID), zap.String("creator_id", p.CreatorID))
	return p.Clone(), nil
}

// Apply adds userID to an open project's applicants. Applying twice is a
// no-op; creators cannot apply to their own project.
func (u *Projects) Apply(ctx context.Context, projectID, userID string) (project.Project, error) {
	p, err := u.get(ctx, projectID)
	if err != nil {
		return project.Project{}, err
	}
	if p.CreatorID == userID {
		return project.Project{}, ErrForbidden
	}
	if p.Status != project.StatusOpen {
		return project.Project{}, ErrConflict
	}

	if _, err := u.projects.AddApplicant(ctx, projectID, userID); err != nil {
		u.logger.Error("projects: apply failed", zap.String("project_id", projectID), zap.Error(err))
		return project.Project{}, ErrInternal
	}
	return u.get(ctx, projectID)
}

// UpdateStatus moves a project along its lifecycle. Only the creator may.
func (u *Projects) UpdateStatus(ctx context.Context, projectID, userID string, status project.Status) (project.Project, error) {
	status = project.Status(strings.ToLower(strings.TrimSpace(string(status))))
	if !status.Valid() {
		return project.Project{}, ErrInvalidInput
	}

	p, err := u.get(ctx, projectID)
	if err != nil {
		return project.Project{}, err
	}
	if p.CreatorID != userID {
		return project.Project{}, ErrForbidden
	}
	if !p.Status.CanTransition(status) {
		return project.Project{}, ErrConflict
	}

	if err := u.projects.UpdateStatus(ctx, projectID, status); err != nil {
		u.logger.Error("projects: status update failed", zap.String("project_id", projectID), zap.Error(err))
		return project.Project{}, ErrInternal
	}
	return u.get(ctx, projectID)
}

func (u *Projects) get(ctx context.Context, id string) (project.Project, error) {
	p, err := u.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			return project.Project{}, ErrNotFound
		}
		return project.Project{}, ErrInternal
	}
	return p, nil
}
