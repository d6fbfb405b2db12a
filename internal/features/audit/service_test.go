package audit

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

type MockAuditRepo struct {
	Created       []models.AuditLog
	Logs          []models.AuditLog
	CapturedOrg   string
	CapturedLimit int64
	CapturedSkip  int64
}

func (m *MockAuditRepo) Create(ctx context.Context, log models.AuditLog) error {
	m.Created = append(m.Created, log)
	return nil
}

func (m *MockAuditRepo) List(ctx context.Context, organization string, filters map[string]string, limit, offset int64) ([]models.AuditLog, int64, error) {
	m.CapturedOrg = organization
	m.CapturedLimit = limit
	m.CapturedSkip = offset
	return m.Logs, int64(len(m.Logs)), nil
}

func (m *MockAuditRepo) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}
func (m *MockAuditRepo) EnsureIndexes(ctx context.Context) error { return nil }

type MockUserFinder struct {
	Users []models.User
}

func (m *MockUserFinder) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	return m.Users, nil
}

func TestLogChangeRecordsActor(t *testing.T) {
	repo := &MockAuditRepo{}
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := &AuditServiceImpl{Repo: repo, UserRepo: &MockUserFinder{}, now: func() time.Time { return fixed }}

	actor := &utils.UserClaims{UserID: "u1", Organization: "pixel-forge"}
	err := svc.LogChange(context.Background(), actor, models.AuditActionCreate, "projects", "p1", map[string]models.Change{"name": {New: "Nebula"}})
	require.NoError(t, err)

	require.Len(t, repo.Created, 1)
	log := repo.Created[0]
	assert.Equal(t, "u1", log.ActorID)
	assert.Equal(t, "pixel-forge", log.Organization)
	assert.Equal(t, fixed, log.Timestamp)

	require.NoError(t, svc.LogChange(context.Background(), nil, models.AuditActionDelete, "users", "u2", nil))
	assert.Equal(t, systemActor, repo.Created[1].ActorID)
}

func TestListLogsResolvesActorNames(t *testing.T) {
	known := primitive.NewObjectID()
	repo := &MockAuditRepo{Logs: []models.AuditLog{
		{ActorID: known.Hex()},
		{ActorID: systemActor},
		{ActorID: primitive.NewObjectID().Hex()},
	}}
	users := &MockUserFinder{Users: []models.User{{ID: known, FirstName: "Ana", LastName: "Silva"}}}
	svc := NewAuditService(repo, users)

	logs, total, err := svc.ListLogs(context.Background(), "pixel-forge", nil, 3, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(3), total)
	assert.Equal(t, "pixel-forge", repo.CapturedOrg)
	assert.Equal(t, int64(20), repo.CapturedSkip)
	assert.Equal(t, "Ana Silva", logs[0].ActorName)
	assert.Equal(t, "System", logs[1].ActorName)
	assert.Equal(t, "Unknown User", logs[2].ActorName)
}
