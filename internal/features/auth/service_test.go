package auth

import (
	"context"
	"testing"
	"time"

	"vfx-dashboard/internal/common/models"
	"vfx-dashboard/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type MockUserRepo struct {
	ByID      map[string]*models.User
	LastLogin map[string]time.Time
	Passwords map[string]string
}

func newMockUserRepo() *MockUserRepo {
	return &MockUserRepo{ByID: map[string]*models.User{}, LastLogin: map[string]time.Time{}, Passwords: map[string]string{}}
}

func (m *MockUserRepo) Create(ctx context.Context, u *models.User) error {
	for _, existing := range m.ByID {
		if existing.Email == u.Email {
			return models.ErrEmailTaken
		}
	}
	cp := *u
	m.ByID[u.ID.Hex()] = &cp
	return nil
}
func (m *MockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.ByID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, models.ErrNotFound
}
func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.ByID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}
func (m *MockUserRepo) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	return nil, nil
}
func (m *MockUserRepo) ListByOrganization(ctx context.Context, organization string) ([]models.User, error) {
	return nil, nil
}
func (m *MockUserRepo) List(ctx context.Context, organization string, filter map[string]string, limit, offset int64) ([]models.User, int64, error) {
	return nil, 0, nil
}
func (m *MockUserRepo) Replace(ctx context.Context, u *models.User) error { return nil }
func (m *MockUserRepo) SetLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	m.LastLogin[id.Hex()] = at
	return nil
}
func (m *MockUserRepo) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	m.ByID[id.Hex()].Password = hash
	return nil
}
func (m *MockUserRepo) SetAdmin(ctx context.Context, organization string, id primitive.ObjectID, isAdmin bool) error {
	return nil
}
func (m *MockUserRepo) Delete(ctx context.Context, organization string, id primitive.ObjectID) error {
	return nil
}
func (m *MockUserRepo) EnsureIndexes(ctx context.Context) error { return nil }

type MockOrganizationRepo struct {
	Orgs map[string]models.Organization
}

func (m *MockOrganizationRepo) Create(ctx context.Context, org *models.Organization) error {
	m.Orgs[org.Slug] = *org
	return nil
}
func (m *MockOrganizationRepo) FindBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	if org, ok := m.Orgs[slug]; ok {
		return &org, nil
	}
	return nil, models.ErrNotFound
}
func (m *MockOrganizationRepo) List(ctx context.Context) ([]models.Organization, error) {
	return nil, nil
}
func (m *MockOrganizationRepo) EnsureIndexes(ctx context.Context) error { return nil }

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

func newTestService() (*AuthServiceImpl, *MockUserRepo, *MockOrganizationRepo) {
	utils.SetSecret("auth-test")
	users := newMockUserRepo()
	orgs := &MockOrganizationRepo{Orgs: map[string]models.Organization{}}
	svc := NewAuthService(users, orgs, &MockAuditService{}, zap.NewNop()).(*AuthServiceImpl)
	return svc, users, orgs
}

func registerReq(email string) *RegisterRequest {
	return &RegisterRequest{
		Email:        email,
		Password:     "correct horse",
		FirstName:    "Ana",
		LastName:     "Silva",
		Organization: "Pixel Forge",
	}
}

func TestRegisterFirstUserBecomesAdmin(t *testing.T) {
	svc, _, orgs := newTestService()
	ctx := context.Background()

	first, err := svc.Register(ctx, registerReq("ana@studio.test"))
	require.NoError(t, err)
	assert.True(t, first.User.IsAdmin)
	assert.Equal(t, "pixel-forge", first.User.Organization)
	assert.Empty(t, first.User.Password)
	assert.Equal(t, first.User.ID, orgs.Orgs["pixel-forge"].OwnerID)

	claims, err := utils.ValidateToken(first.Token)
	require.NoError(t, err)
	assert.Equal(t, "pixel-forge", claims.Organization)
	assert.True(t, claims.IsAdmin)

	second, err := svc.Register(ctx, registerReq("ben@studio.test"))
	require.NoError(t, err)
	assert.False(t, second.User.IsAdmin)

	_, err = svc.Register(ctx, registerReq("ana@studio.test"))
	assert.ErrorIs(t, err, models.ErrEmailTaken)

	bad := registerReq("cy@studio.test")
	bad.Organization = "!!!"
	_, err = svc.Register(ctx, bad)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	svc, users, _ := newTestService()
	fixed := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerReq("ana@studio.test"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ana@studio.test", "wrong password")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@studio.test", "correct horse")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	res, err := svc.Login(ctx, "ana@studio.test", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, fixed, users.LastLogin[reg.User.ID.Hex()])
	require.NotNil(t, res.User.LastLogin)
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerReq("ana@studio.test"))
	require.NoError(t, err)
	caller := &utils.UserClaims{UserID: reg.User.ID.Hex(), Organization: reg.User.Organization}

	assert.ErrorIs(t, svc.ChangePassword(ctx, caller, "wrong password", "new secret 123"), models.ErrInvalidCredentials)
	require.NoError(t, svc.ChangePassword(ctx, caller, "correct horse", "new secret 123"))

	_, err = svc.Login(ctx, "ana@studio.test", "new secret 123")
	assert.NoError(t, err)
}
