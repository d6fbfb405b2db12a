package user

import (
	"context"
	"testing"
	"time"

	"vfx-dashboard/internal/common/models"
	"vfx-dashboard/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockUserRepo struct {
	Users      map[string]*models.User
	Replaced   *models.User
	AdminSet   map[string]bool
	DeletedIDs []primitive.ObjectID
	ListFilter map[string]string
}

func newMockUserRepo(users ...models.User) *MockUserRepo {
	m := &MockUserRepo{Users: map[string]*models.User{}, AdminSet: map[string]bool{}}
	for i := range users {
		u := users[i]
		m.Users[u.ID.Hex()] = &u
	}
	return m
}

func (m *MockUserRepo) Create(ctx context.Context, user *models.User) error {
	m.Users[user.ID.Hex()] = user
	return nil
}
func (m *MockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.Users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *u
	return &cp, nil
}
func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, models.ErrNotFound
}
func (m *MockUserRepo) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	return nil, nil
}
func (m *MockUserRepo) ListByOrganization(ctx context.Context, organization string) ([]models.User, error) {
	return nil, nil
}
func (m *MockUserRepo) List(ctx context.Context, organization string, filter map[string]string, limit, offset int64) ([]models.User, int64, error) {
	m.ListFilter = filter
	return []models.User{}, 0, nil
}
func (m *MockUserRepo) Replace(ctx context.Context, user *models.User) error {
	cp := *user
	m.Replaced = &cp
	return nil
}
func (m *MockUserRepo) SetLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return nil
}
func (m *MockUserRepo) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	return nil
}
func (m *MockUserRepo) SetAdmin(ctx context.Context, organization string, id primitive.ObjectID, isAdmin bool) error {
	m.AdminSet[id.Hex()] = isAdmin
	return nil
}
func (m *MockUserRepo) Delete(ctx context.Context, organization string, id primitive.ObjectID) error {
	m.DeletedIDs = append(m.DeletedIDs, id)
	return nil
}
func (m *MockUserRepo) EnsureIndexes(ctx context.Context) error { return nil }

type MockAuditService struct {
	Actions []models.AuditAction
}

func (m *MockAuditService) LogChange(ctx context.Context, actor *utils.UserClaims, action models.AuditAction, module string, recordID string, changes map[string]models.Change) error {
	m.Actions = append(m.Actions, action)
	return nil
}

func (m *MockAuditService) ListLogs(ctx context.Context, organization string, filters map[string]string, page, limit int64) ([]models.AuditLog, int64, error) {
	return []models.AuditLog{}, 0, nil
}

func member(org string) models.User {
	return models.User{
		ID:           primitive.NewObjectID(),
		Email:        "artist@studio.test",
		Password:     "$2a$12$hash",
		FirstName:    "Old",
		LastName:     "Name",
		Organization: org,
	}
}

func claimsFor(u models.User, admin bool) *utils.UserClaims {
	return &utils.UserClaims{UserID: u.ID.Hex(), Organization: u.Organization, IsAdmin: admin}
}

func TestCompleteOnboarding(t *testing.T) {
	u := member("pixel-forge")
	repo := newMockUserRepo(u)
	auditSvc := &MockAuditService{}
	svc := NewUserService(repo, auditSvc)

	req := &ProfileRequest{
		FirstName:         "Ana <b>",
		LastName:          "Silva",
		Role:              models.RoleCompositor,
		ExperienceLevel:   models.LevelExpert,
		Bio:               "<script>alert(1)</script>Nuke lead",
		Skills:            []SkillInput{{Name: "Nuke", Level: models.LevelExpert}},
		WorkPreferences:   []WorkPreferenceInput{{Name: "Remote Work", Value: models.PreferenceTrue}},
		DislikedWorkAreas: []string{"Roto", "  "},
	}

	got, err := svc.CompleteOnboarding(context.Background(), claimsFor(u, false), req)
	require.NoError(t, err)

	assert.True(t, got.OnboardingCompleted)
	assert.Empty(t, got.Password)
	require.NotNil(t, repo.Replaced)
	assert.Equal(t, "$2a$12$hash", repo.Replaced.Password, "stored hash is kept")
	assert.Equal(t, "Ana", repo.Replaced.FirstName)
	assert.Equal(t, "Nuke lead", repo.Replaced.Bio)
	assert.Equal(t, []string{"Roto"}, repo.Replaced.DislikedWorkAreas)
	assert.Equal(t, []models.AuditAction{models.AuditActionUpdate}, auditSvc.Actions)
}

func TestProfileHidesOtherOrganizations(t *testing.T) {
	u := member("pixel-forge")
	repo := newMockUserRepo(u)
	svc := NewUserService(repo, &MockAuditService{})

	outsider := &utils.UserClaims{UserID: u.ID.Hex(), Organization: "other-studio"}
	_, err := svc.GetProfile(context.Background(), outsider)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.GetUser(context.Background(), &utils.UserClaims{UserID: "x", Organization: "other-studio"}, u.ID.Hex())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAdminCannotDemoteOrDeleteSelf(t *testing.T) {
	admin := member("pixel-forge")
	other := member("pixel-forge")
	repo := newMockUserRepo(admin, other)
	svc := NewUserService(repo, &MockAuditService{})
	caller := claimsFor(admin, true)

	assert.ErrorIs(t, svc.SetAdmin(context.Background(), caller, admin.ID.Hex(), false), models.ErrForbidden)
	assert.ErrorIs(t, svc.DeleteUser(context.Background(), caller, admin.ID.Hex()), models.ErrForbidden)
	assert.ErrorIs(t, svc.DeleteUser(context.Background(), caller, "not-an-id"), models.ErrInvalidID)

	require.NoError(t, svc.SetAdmin(context.Background(), caller, other.ID.Hex(), true))
	assert.True(t, repo.AdminSet[other.ID.Hex()])

	require.NoError(t, svc.DeleteUser(context.Background(), caller, other.ID.Hex()))
	assert.Equal(t, []primitive.ObjectID{other.ID}, repo.DeletedIDs)
}

func TestListUsersFiltersByRole(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo, &MockAuditService{})

	_, _, err := svc.ListUsers(context.Background(), &utils.UserClaims{Organization: "pixel-forge"}, models.RoleAnimator, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"role": models.RoleAnimator}, repo.ListFilter)
}
