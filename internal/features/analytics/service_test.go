package analytics

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"vfx-dashboard/internal/common/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type MockUserLister struct {
	Users map[string][]models.User
	Calls int
	Err   error
}

func (m *MockUserLister) ListByOrganization(ctx context.Context, organization string) ([]models.User, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Users[organization], nil
}

type MockSnapshotRepo struct {
	Snapshots     []StatsSnapshot
	CapturedLimit int64
}

func (m *MockSnapshotRepo) Create(ctx context.Context, s *StatsSnapshot) error {
	m.Snapshots = append(m.Snapshots, *s)
	return nil
}
func (m *MockSnapshotRepo) List(ctx context.Context, organization string, limit int64) ([]StatsSnapshot, error) {
	m.CapturedLimit = limit
	out := []StatsSnapshot{}
	for i := len(m.Snapshots) - 1; i >= 0; i-- {
		if m.Snapshots[i].Organization == organization {
			out = append(out, m.Snapshots[i])
		}
	}
	return out, nil
}
func (m *MockSnapshotRepo) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	kept := m.Snapshots[:0]
	var removed int64
	for _, s := range m.Snapshots {
		if s.TakenAt.Before(before) {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	m.Snapshots = kept
	return removed, nil
}
func (m *MockSnapshotRepo) EnsureIndexes(ctx context.Context) error { return nil }

type MockOrgLister struct {
	Orgs []models.Organization
}

func (m *MockOrgLister) List(ctx context.Context) ([]models.Organization, error) {
	return m.Orgs, nil
}

var testNow = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

func studioUsers() []models.User {
	recent := testNow.Add(-24 * time.Hour)
	return []models.User{
		{
			FirstName: "Ana", LastName: "Silva", Email: "ana@studio.test",
			Role: models.RoleCompositor, ExperienceLevel: models.LevelExpert,
			Skills:              []models.Skill{{Name: "Nuke", Level: models.LevelExpert}},
			WorkPreferences:     []models.WorkPreference{{Name: "Remote Work", Value: models.PreferenceTrue}},
			DislikedWorkAreas:   []string{"Roto"},
			OnboardingCompleted: true,
			LastLogin:           &recent,
		},
		{
			FirstName: "Ben", LastName: "Okafor", Email: "ben@studio.test",
			Role: models.RoleAnimator, ExperienceLevel: models.LevelIntermediate,
			Skills:          []models.Skill{{Name: "Maya", Level: models.LevelAdvanced}},
			WorkPreferences: []models.WorkPreference{{Name: "Remote Work", Value: models.PreferenceFalse}},
		},
		{
			FirstName: "Cy", LastName: "Park", Email: "cy@studio.test",
			Role: models.RoleCompositor, ExperienceLevel: models.LevelAdvanced,
		},
	}
}

func newService(users *MockUserLister, snapshots *MockSnapshotRepo) *AnalyticsServiceImpl {
	return &AnalyticsServiceImpl{
		Users:        users,
		Snapshots:    snapshots,
		ActiveWindow: 30 * 24 * time.Hour,
		now:          func() time.Time { return testNow },
	}
}

func TestOverview(t *testing.T) {
	users := &MockUserLister{Users: map[string][]models.User{"pixel-forge": studioUsers()}}
	svc := newService(users, &MockSnapshotRepo{})

	overview, err := svc.Overview(context.Background(), "pixel-forge")
	require.NoError(t, err)

	assert.Equal(t, 3, overview.Summary.TotalUsers)
	assert.Equal(t, 1, overview.Summary.ActiveUsers)
	assert.Equal(t, 33.3, overview.Summary.ActiveUsersPercentage)
	assert.Equal(t, models.RoleCompositor, overview.Summary.MostCommonRole)
	assert.Equal(t, 66.7, overview.Summary.MostCommonRolePercentage)
	require.Len(t, overview.Departments.Departments, 2)
	assert.Equal(t, "Compositing", overview.Departments.Departments[0].Key)
	assert.Equal(t, 1, users.Calls, "users are loaded once per request")
}

func TestTablesAreOrganizationScoped(t *testing.T) {
	users := &MockUserLister{Users: map[string][]models.User{"pixel-forge": studioUsers()}}
	svc := newService(users, &MockSnapshotRepo{})

	roles, err := svc.Roles(context.Background(), "other-studio")
	require.NoError(t, err)
	assert.Empty(t, roles)

	byRole, err := svc.UsersByRole(context.Background(), "pixel-forge", models.RoleCompositor)
	require.NoError(t, err)
	require.Len(t, byRole, 2)
	assert.Equal(t, "Ana", byRole[0].FirstName)
	assert.Equal(t, "Cy", byRole[1].FirstName)

	prefs, err := svc.WorkPreferences(context.Background(), "pixel-forge")
	require.NoError(t, err)
	require.Len(t, prefs, 1)
	assert.Equal(t, 1, prefs[0].TrueCount)
	assert.Equal(t, 1, prefs[0].FalseCount)
}

func TestLoadErrorIsWrapped(t *testing.T) {
	boom := errors.New("connection reset")
	svc := newService(&MockUserLister{Err: boom}, &MockSnapshotRepo{})

	_, err := svc.Skills(context.Background(), "pixel-forge")
	assert.ErrorIs(t, err, boom)
}

func TestHistoryClampsLimit(t *testing.T) {
	snapshots := &MockSnapshotRepo{}
	svc := newService(&MockUserLister{}, snapshots)

	_, err := svc.History(context.Background(), "pixel-forge", 0)
	require.NoError(t, err)
	assert.EqualValues(t, 30, snapshots.CapturedLimit)

	_, err = svc.History(context.Background(), "pixel-forge", 7)
	require.NoError(t, err)
	assert.EqualValues(t, 7, snapshots.CapturedLimit)
}

func TestExportWorkbook(t *testing.T) {
	users := &MockUserLister{Users: map[string][]models.User{"pixel-forge": studioUsers()}}
	svc := newService(users, &MockSnapshotRepo{})

	data, filename, err := svc.Export(context.Background(), "pixel-forge")
	require.NoError(t, err)
	assert.Equal(t, "pixel-forge-team-stats-2026-10-01.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		"Summary", "Roles", "Experience", "Skills", "Work Preferences", "Disliked Areas", "Departments",
	}, f.GetSheetList())

	roles, err := f.GetRows("Roles")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Role", "Count"}, {"Compositor", "2"}, {"Animator", "1"}}, roles)

	depts, err := f.GetRows("Departments")
	require.NoError(t, err)
	assert.Equal(t, []string{"Compositing", "2", "Compositor: 2"}, depts[1])
}

func TestExportEmptyOrganization(t *testing.T) {
	data, err := BuildWorkbook(nil, testNow, time.Hour)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Skills")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Skill", "Level", "Count"}}, rows)
}

func TestSnapshotJobRun(t *testing.T) {
	users := &MockUserLister{Users: map[string][]models.User{"pixel-forge": studioUsers()}}
	snapshots := &MockSnapshotRepo{}
	orgs := &MockOrgLister{Orgs: []models.Organization{{Slug: "pixel-forge"}, {Slug: "empty-studio"}}}

	job := &SnapshotJob{
		orgs:         orgs,
		users:        users,
		snapshots:    snapshots,
		logger:       zap.NewNop(),
		activeWindow: 30 * 24 * time.Hour,
		now:          func() time.Time { return testNow },
	}
	require.NoError(t, job.Run(context.Background()))

	require.Len(t, snapshots.Snapshots, 2)
	forge := snapshots.Snapshots[0]
	assert.Equal(t, "pixel-forge", forge.Organization)
	assert.Equal(t, testNow, forge.TakenAt)
	assert.Equal(t, 3, forge.Summary.TotalUsers)
	assert.Equal(t, "Compositing", forge.Departments[0].Key)

	empty := snapshots.Snapshots[1]
	assert.Equal(t, 0, empty.Summary.TotalUsers)
	assert.NotNil(t, empty.Departments)
}

func TestSnapshotJobDisabledWithoutSchedule(t *testing.T) {
	job := &SnapshotJob{logger: zap.NewNop()}
	require.NoError(t, job.Start())
	assert.Nil(t, job.scheduler)
	job.Stop()
}

func TestSnapshotJobRejectsBadSchedule(t *testing.T) {
	job := &SnapshotJob{logger: zap.NewNop(), schedule: "every day"}
	assert.Error(t, job.Start())
}
