package audit

import (
	"context"
	"time"

	"vfx-dashboard/internal/common/models"
	"vfx-dashboard/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const systemActor = "system"

type UserFinder interface {
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)
}

type AuditService interface {
	LogChange(ctx context.Context, actor *utils.UserClaims, action models.AuditAction, module string, recordID string, changes map[string]models.Change) error
	ListLogs(ctx context.Context, organization string, filters map[string]string, page, limit int64) ([]models.AuditLog, int64, error)
}

type AuditServiceImpl struct {
	Repo     AuditRepository
	UserRepo UserFinder
	now      func() time.Time
}

func NewAuditService(repo AuditRepository, userRepo UserFinder) AuditService {
	return &AuditServiceImpl{
		Repo:     repo,
		UserRepo: userRepo,
		now:      time.Now,
	}
}

// LogChange records a mutation. A nil actor is recorded as the system.
func (s *AuditServiceImpl) LogChange(ctx context.Context, actor *utils.UserClaims, action models.AuditAction, module string, recordID string, changes map[string]models.Change) error {
	actorID := systemActor
	organization := ""
	if actor != nil {
		actorID = actor.UserID
		organization = actor.Organization
	}

	log := models.AuditLog{
		ID:           primitive.NewObjectID(),
		Organization: organization,
		Action:       action,
		Module:       module,
		RecordID:     recordID,
		ActorID:      actorID,
		Changes:      changes,
		Timestamp:    s.now(),
	}

	return s.Repo.Create(ctx, log)
}

func (s *AuditServiceImpl) ListLogs(ctx context.Context, organization string, filters map[string]string, page, limit int64) ([]models.AuditLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit
	logs, total, err := s.Repo.List(ctx, organization, filters, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	// Collect actor IDs
	actorIDs := make([]string, 0)
	seen := make(map[string]bool)
	for _, log := range logs {
		if log.ActorID != systemActor && log.ActorID != "" && !seen[log.ActorID] {
			seen[log.ActorID] = true
			actorIDs = append(actorIDs, log.ActorID)
		}
	}

	names := make(map[string]string)
	if len(actorIDs) > 0 {
		users, err := s.UserRepo.FindByIDs(ctx, actorIDs)
		if err == nil {
			for i := range users {
				names[users[i].ID.Hex()] = users[i].FullName()
			}
		}
	}

	for i, log := range logs {
		switch {
		case log.ActorID == systemActor || log.ActorID == "":
			logs[i].ActorName = "System"
		case names[log.ActorID] != "":
			logs[i].ActorName = names[log.ActorID]
		default:
			logs[i].ActorName = "Unknown User"
		}
	}

	return logs, total, nil
}
