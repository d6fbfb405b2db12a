package project

import (
	"context"
	"errors"
	"testing"
	"time"

	"vfx-dashboard/internal/common/models"
	"vfx-dashboard/internal/features/realtime"
	"vfx-dashboard/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type MockProjectRepo struct {
	Projects map[primitive.ObjectID]Project
}

func (m *MockProjectRepo) Create(ctx context.Context, p *Project) error {
	m.Projects[p.ID] = *p
	return nil
}
func (m *MockProjectRepo) FindByID(ctx context.Context, organization string, id primitive.ObjectID) (*Project, error) {
	p, ok := m.Projects[id]
	if !ok || p.Organization != organization {
		return nil, models.ErrNotFound
	}
	return &p, nil
}
func (m *MockProjectRepo) List(ctx context.Context, organization string, filter map[string]string, limit, offset int64) ([]Project, int64, error) {
	out := []Project{}
	for _, p := range m.Projects {
		if p.Organization == organization {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}
func (m *MockProjectRepo) Replace(ctx context.Context, p *Project) error {
	if existing, ok := m.Projects[p.ID]; !ok || existing.Organization != p.Organization {
		return models.ErrNotFound
	}
	m.Projects[p.ID] = *p
	return nil
}
func (m *MockProjectRepo) Delete(ctx context.Context, organization string, id primitive.ObjectID) error {
	if p, ok := m.Projects[id]; !ok || p.Organization != organization {
		return models.ErrNotFound
	}
	delete(m.Projects, id)
	return nil
}
func (m *MockProjectRepo) EnsureIndexes(ctx context.Context) error { return nil }

type MockTaskCleaner struct {
	Deleted []primitive.ObjectID
}

func (m *MockTaskCleaner) DeleteByProject(ctx context.Context, organization string, projectID primitive.ObjectID) (int64, error) {
	m.Deleted = append(m.Deleted, projectID)
	return 3, nil
}

type MockMemberFinder struct {
	Users map[string]models.User
	Err   error
}

func (m *MockMemberFinder) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

type MockAuditService struct {
	Actions []models.AuditAction
}

func (m *MockAuditService) LogChange(ctx context.Context, actor *utils.UserClaims, action models.AuditAction, module string, recordID string, changes map[string]models.Change) error {
	m.Actions = append(m.Actions, action)
	return nil
}
func (m *MockAuditService) ListLogs(ctx context.Context, organization string, filters map[string]string, page, limit int64) ([]models.AuditLog, int64, error) {
	return nil, 0, nil
}

type MockPublisher struct {
	Events map[string][]realtime.Event
}

func (m *MockPublisher) Publish(organization string, ev realtime.Event) {
	m.Events[organization] = append(m.Events[organization], ev)
}

type fixture struct {
	svc   ProjectService
	repo  *MockProjectRepo
	tasks *MockTaskCleaner
	users *MockMemberFinder
	audit *MockAuditService
	pub   *MockPublisher
}

func newFixture() *fixture {
	f := &fixture{
		repo:  &MockProjectRepo{Projects: map[primitive.ObjectID]Project{}},
		tasks: &MockTaskCleaner{},
		users: &MockMemberFinder{Users: map[string]models.User{}},
		audit: &MockAuditService{},
		pub:   &MockPublisher{Events: map[string][]realtime.Event{}},
	}
	f.svc = NewProjectService(f.repo, f.tasks, f.users, f.audit, f.pub, zap.NewNop())
	return f
}

func caller(org string) *utils.UserClaims {
	return &utils.UserClaims{UserID: primitive.NewObjectID().Hex(), Organization: org}
}

func TestCreateProject(t *testing.T) {
	f := newFixture()
	ana := caller("pixel-forge")

	p, err := f.svc.CreateProject(context.Background(), ana, &ProjectRequest{Name: "Nebula <i>S2</i>", Client: "Orbit Pictures"})
	require.NoError(t, err)

	assert.Equal(t, "Nebula S2", p.Name)
	assert.Equal(t, StatusPlanning, p.Status)
	assert.Equal(t, "pixel-forge", p.Organization)
	assert.Equal(t, ana.UserID, p.CreatedBy.Hex())
	assert.Equal(t, []models.AuditAction{models.AuditActionCreate}, f.audit.Actions)
	require.Len(t, f.pub.Events["pixel-forge"], 1)
	assert.Equal(t, "project.created", f.pub.Events["pixel-forge"][0].Type)
}

func TestCreateProjectRejectsBadDates(t *testing.T) {
	f := newFixture()
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	due := start.Add(-24 * time.Hour)

	_, err := f.svc.CreateProject(context.Background(), caller("pixel-forge"), &ProjectRequest{Name: "Late", StartDate: &start, DueDate: &due})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestUpdateProjectReplacesDocument(t *testing.T) {
	f := newFixture()
	ana := caller("pixel-forge")
	p, err := f.svc.CreateProject(context.Background(), ana, &ProjectRequest{Name: "Nebula", Client: "Orbit", Status: StatusReview})
	require.NoError(t, err)

	updated, err := f.svc.UpdateProject(context.Background(), ana, p.ID.Hex(), &ProjectRequest{Name: "Nebula"})
	require.NoError(t, err)

	assert.Empty(t, updated.Client, "omitted fields are cleared")
	assert.Equal(t, StatusPlanning, updated.Status)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
	assert.Equal(t, p.CreatedBy, updated.CreatedBy)
}

func TestProjectsAreOrganizationScoped(t *testing.T) {
	f := newFixture()
	p, err := f.svc.CreateProject(context.Background(), caller("pixel-forge"), &ProjectRequest{Name: "Nebula"})
	require.NoError(t, err)

	outsider := caller("other-studio")
	_, err = f.svc.GetProject(context.Background(), outsider, p.ID.Hex())
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = f.svc.UpdateProject(context.Background(), outsider, p.ID.Hex(), &ProjectRequest{Name: "Hijacked"})
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, f.svc.DeleteProject(context.Background(), outsider, p.ID.Hex()), models.ErrNotFound)
	assert.Empty(t, f.tasks.Deleted)

	_, err = f.svc.GetProject(context.Background(), outsider, "zzz")
	assert.ErrorIs(t, err, models.ErrInvalidID)
}

func TestDeleteProjectCascadesToTasks(t *testing.T) {
	f := newFixture()
	ana := caller("pixel-forge")
	p, err := f.svc.CreateProject(context.Background(), ana, &ProjectRequest{Name: "Nebula"})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteProject(context.Background(), ana, p.ID.Hex()))

	assert.Equal(t, []primitive.ObjectID{p.ID}, f.tasks.Deleted)
	assert.Empty(t, f.repo.Projects)
	events := f.pub.Events["pixel-forge"]
	assert.Equal(t, "project.deleted", events[len(events)-1].Type)
}

func TestProjectMembersMustBelongToOrganization(t *testing.T) {
	f := newFixture()
	member := models.User{ID: primitive.NewObjectID(), Organization: "pixel-forge"}
	outsider := models.User{ID: primitive.NewObjectID(), Organization: "other-studio"}
	f.users.Users[member.ID.Hex()] = member
	f.users.Users[outsider.ID.Hex()] = outsider
	ana := caller("pixel-forge")

	p, err := f.svc.CreateProject(context.Background(), ana, &ProjectRequest{Name: "Nebula", Members: []string{member.ID.Hex()}})
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{member.ID}, p.Members)

	_, err = f.svc.CreateProject(context.Background(), ana, &ProjectRequest{Name: "Leak", Members: []string{outsider.ID.Hex()}})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = f.svc.UpdateProject(context.Background(), ana, p.ID.Hex(), &ProjectRequest{Name: "Nebula", Members: []string{primitive.NewObjectID().Hex()}})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Equal(t, []primitive.ObjectID{member.ID}, f.repo.Projects[p.ID].Members)
}

func TestProjectMemberLookupFailureIsNotInvalidInput(t *testing.T) {
	f := newFixture()
	boom := errors.New("connection reset")
	f.users.Err = boom

	_, err := f.svc.CreateProject(context.Background(), caller("pixel-forge"), &ProjectRequest{Name: "Nebula", Members: []string{primitive.NewObjectID().Hex()}})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, models.ErrInvalidInput)
}
