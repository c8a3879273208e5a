package usecase

import (
	"context"

	"middlebeat/internal/domain/project"
	"middlebeat/internal/domain/user"

	"go.uber.org/zap"
)

const (
	dashboardRecentProjects   = 3
	dashboardSuggestedMembers = 4
)

type Dashboard struct {
	FollowerCount      int               `json:"follower_count"`
	ActiveProjectCount int               `json:"active_project_count"`
	RecentProjects     []project.Project `json:"recent_projects"`
	SuggestedProfiles  []user.Profile    `json:"suggested_profiles"`
}

type DashboardUsecase interface {
	Get(ctx context.Context, me user.Profile) (Dashboard, error)
}

type DashboardService struct {
	profiles user.ProfileRepository
	projects project.Repository
	logger   *zap.Logger
}

func NewDashboardUsecase(profiles user.ProfileRepository, projects project.Repository, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{profiles: profiles, projects: projects, logger: logger}
}

// Get summarizes the collections for me: active means open or in progress;
// recent projects and suggested profiles are taken in collection order.
func (u *DashboardService) Get(ctx context.Context, me user.Profile) (Dashboard, error) {
	projects, err := u.projects.List(ctx)
	if err != nil {
		u.logger.Error("dashboard: list projects failed", zap.Error(err))
		return Dashboard{}, ErrInternal
	}
	profiles, err := u.profiles.List(ctx)
	if err != nil {
		u.logger.Error("dashboard: list profiles failed", zap.Error(err))
		return Dashboard{}, ErrInternal
	}

	d := Dashboard{
		FollowerCount:     me.FollowerCount,
		RecentProjects:    make([]project.Project, 0, dashboardRecentProjects),
		SuggestedProfiles: make([]user.Profile, 0, dashboardSuggestedMembers),
	}
	for _, p := range projects {
		if p.Status == project.StatusOpen || p.Status == project.StatusInProgress {
			d.ActiveProjectCount++
		}
		if len(d.RecentProjects) < dashboardRecentProjects {
			d.RecentProjects = append(d.RecentProjects, p.Clone())
		}
	}
	for _, p := range profiles {
		if len(d.SuggestedProfiles) == dashboardSuggestedMembers {
			break
		}
		if p.UserID == me.UserID {
			continue
		}
		d.SuggestedProfiles = append(d.SuggestedProfiles, p.Clone())
	}
	return d, nil
}
