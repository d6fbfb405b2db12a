package analytics

import (
	"context"
	"fmt"
	"time"

	"vfx-dashboard/internal/common/models"
	"vfx-dashboard/internal/config"
	"vfx-dashboard/internal/userstats"
)

// UserLister loads every member of an organization.
type UserLister interface {
	ListByOrganization(ctx context.Context, organization string) ([]models.User, error)
}

// AnalyticsService serves the dashboard tables. Each call reads the
// organization's users once and aggregates them in memory.
type AnalyticsService interface {
	Overview(ctx context.Context, organization string) (*Overview, error)
	Roles(ctx context.Context, organization string) ([]userstats.Count, error)
	Experience(ctx context.Context, organization string) ([]userstats.Count, error)
	Skills(ctx context.Context, organization string) ([]userstats.SkillCount, error)
	WorkPreferences(ctx context.Context, organization string) ([]userstats.WorkPreferenceCount, error)
	DislikedAreas(ctx context.Context, organization string) ([]userstats.Count, error)
	Departments(ctx context.Context, organization string) (*userstats.DepartmentReport, error)
	UsersByRole(ctx context.Context, organization, role string) ([]userstats.UserSummary, error)
	Export(ctx context.Context, organization string) ([]byte, string, error)
	History(ctx context.Context, organization string, limit int64) ([]StatsSnapshot, error)
}

type AnalyticsServiceImpl struct {
	Users        UserLister
	Snapshots    SnapshotRepository
	ActiveWindow time.Duration
	now          func() time.Time
}

func NewAnalyticsService(users UserLister, snapshots SnapshotRepository, cfg *config.Config) AnalyticsService {
	return &AnalyticsServiceImpl{
		Users:        users,
		Snapshots:    snapshots,
		ActiveWindow: cfg.ActiveWindow,
		now:          time.Now,
	}
}

func (s *AnalyticsServiceImpl) load(ctx context.Context, organization string) ([]models.User, error) {
	users, err := s.Users.ListByOrganization(ctx, organization)
	if err != nil {
		return nil, fmt.Errorf("load users for %s: %w", organization, err)
	}
	return users, nil
}

func (s *AnalyticsServiceImpl) Overview(ctx context.Context, organization string) (*Overview, error) {
	users, err := s.load(ctx, organization)
	if err != nil {
		return nil, err
	}
	return &Overview{
		Summary:     userstats.Summarize(users, s.now(), s.ActiveWindow),
		Departments: userstats.DepartmentOverview(users),
	}, nil
}

func (s *AnalyticsServiceImpl) Roles(ctx context.Context, organization string) ([]userstats.Count, error) {
	users, err := s.load(ctx, organization)
	if err != nil {
		return nil, err
	}
	return userstats.RoleDistribution(users), nil
}

func (s *AnalyticsServiceImpl) Experience(ctx context.Context, organization string) ([]userstats.Count, error) {
	users, err := s.load(ctx, organization)
	if err != nil {
		return nil, err
	}
	return userstats.ExperienceDistribution(users), nil
}

func (s *AnalyticsServiceImpl) Skills(ctx context.Context, organization string) ([]userstats.SkillCount, error) {
	users, err := s.load(ctx, organization)
	if err != nil {
		return nil, err
	}
	return userstats.SkillDistribution(users), nil
}

func (s *AnalyticsServiceImpl) WorkPreferences(ctx context.Context, organization string) ([]userstats.WorkPreferenceCount, error) {
	users, err := s.load(ctx, organization)
	if err != nil {
		return nil, err
	}
	return userstats.WorkPreferenceDistribution(users), nil
}

func (s *AnalyticsServiceImpl) DislikedAreas(ctx context.Context, organization string) ([]userstats.Count, error) {
	users, err := s.load(ctx, organization)
	if err != nil {
		return nil, err
	}
	return userstats.DislikedAreaDistribution(users), nil
}

func (s *AnalyticsServiceImpl) Departments(ctx context.Context, organization string) (*userstats.DepartmentReport, error) {
	users, err := s.load(ctx, organization)
	if err != nil {
		return nil, err
	}
	overview := userstats.DepartmentOverview(users)
	return &overview, nil
}

func (s *AnalyticsServiceImpl) UsersByRole(ctx context.Context, organization, role string) ([]userstats.UserSummary, error) {
	users, err := s.load(ctx, organization)
	if err != nil {
		return nil, err
	}
	return userstats.UsersByRole(users, role), nil
}

func (s *AnalyticsServiceImpl) Export(ctx context.Context, organization string) ([]byte, string, error) {
	users, err := s.load(ctx, organization)
	if err != nil {
		return nil, "", err
	}
	now := s.now()
	data, err := BuildWorkbook(users, now, s.ActiveWindow)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("%s-team-stats-%s.xlsx", organization, now.Format("2006-01-02"))
	return data, filename, nil
}

func (s *AnalyticsServiceImpl) History(ctx context.Context, organization string, limit int64) ([]StatsSnapshot, error) {
	if limit <= 0 || limit > 365 {
		limit = 30
	}
	return s.Snapshots.List(ctx, organization, limit)
}
