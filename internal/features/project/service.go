package project

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vfx-dashboard/internal/common/models"
	"vfx-dashboard/internal/features/audit"
	"vfx-dashboard/internal/features/realtime"
	"vfx-dashboard/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const auditModule = "projects"

// TaskCleaner removes the tasks of a deleted project.
type TaskCleaner interface {
	DeleteByProject(ctx context.Context, organization string, projectID primitive.ObjectID) (int64, error)
}

// MemberFinder resolves project members.
type MemberFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type ProjectService interface {
	ListProjects(ctx context.Context, caller *utils.UserClaims, status string, page, limit int64) ([]Project, int64, error)
	GetProject(ctx context.Context, caller *utils.UserClaims, id string) (*Project, error)
	CreateProject(ctx context.Context, caller *utils.UserClaims, req *ProjectRequest) (*Project, error)
	UpdateProject(ctx context.Context, caller *utils.UserClaims, id string, req *ProjectRequest) (*Project, error)
	DeleteProject(ctx context.Context, caller *utils.UserClaims, id string) error
}

type ProjectServiceImpl struct {
	Repo         ProjectRepository
	Tasks        TaskCleaner
	Members      MemberFinder
	AuditService audit.AuditService
	Publisher    realtime.Publisher
	Logger       *zap.Logger
	now          func() time.Time
}

func NewProjectService(repo ProjectRepository, tasks TaskCleaner, members MemberFinder, auditService audit.AuditService, publisher realtime.Publisher, logger *zap.Logger) ProjectService {
	return &ProjectServiceImpl{
		Repo:         repo,
		Tasks:        tasks,
		Members:      members,
		AuditService: auditService,
		Publisher:    publisher,
		Logger:       logger,
		now:          time.Now,
	}
}

func (s *ProjectServiceImpl) ListProjects(ctx context.Context, caller *utils.UserClaims, status string, page, limit int64) ([]Project, int64, error) {
	if page < 1 {
		page = 1
	}
	return s.Repo.List(ctx, caller.Organization, map[string]string{"status": status}, limit, (page-1)*limit)
}

func (s *ProjectServiceImpl) GetProject(ctx context.Context, caller *utils.UserClaims, id string) (*Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidID
	}
	return s.Repo.FindByID(ctx, caller.Organization, oid)
}

// fill copies the request onto p, leaving identity and ownership alone.
// Every member must belong to the caller's organization.
func (s *ProjectServiceImpl) fill(ctx context.Context, caller *utils.UserClaims, p *Project, req *ProjectRequest) error {
	if req.StartDate != nil && req.DueDate != nil && req.DueDate.Before(*req.StartDate) {
		return fmt.Errorf("%w: dueDate is before startDate", models.ErrInvalidInput)
	}

	members := make([]primitive.ObjectID, 0, len(req.Members))
	for _, m := range req.Members {
		oid, err := primitive.ObjectIDFromHex(m)
		if err != nil {
			return models.ErrInvalidID
		}
		u, err := s.Members.FindByID(ctx, m)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return fmt.Errorf("%w: member %s does not exist", models.ErrInvalidInput, m)
			}
			return err
		}
		if u.Organization != caller.Organization {
			return fmt.Errorf("%w: member %s is not part of this organization", models.ErrInvalidInput, m)
		}
		members = append(members, oid)
	}

	p.Name = utils.SanitizeText(req.Name)
	p.Description = utils.SanitizeText(req.Description)
	p.Client = utils.SanitizeText(req.Client)
	p.Status = req.Status
	if p.Status == "" {
		p.Status = StatusPlanning
	}
	p.StartDate = req.StartDate
	p.DueDate = req.DueDate
	p.Members = members
	return nil
}

func (s *ProjectServiceImpl) CreateProject(ctx context.Context, caller *utils.UserClaims, req *ProjectRequest) (*Project, error) {
	creator, err := caller.ObjectID()
	if err != nil {
		return nil, models.ErrInvalidID
	}

	now := s.now()
	p := &Project{
		ID:           primitive.NewObjectID(),
		Organization: caller.Organization,
		CreatedBy:    creator,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.fill(ctx, caller, p, req); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.record(ctx, caller, models.AuditActionCreate, p.ID, map[string]models.Change{"name": {New: p.Name}})
	return p, nil
}

func (s *ProjectServiceImpl) UpdateProject(ctx context.Context, caller *utils.UserClaims, id string, req *ProjectRequest) (*Project, error) {
	existing, err := s.GetProject(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	updated := &Project{
		ID:           existing.ID,
		Organization: existing.Organization,
		CreatedBy:    existing.CreatedBy,
		CreatedAt:    existing.CreatedAt,
		UpdatedAt:    s.now(),
	}
	if err := s.fill(ctx, caller, updated, req); err != nil {
		return nil, err
	}
	if err := s.Repo.Replace(ctx, updated); err != nil {
		return nil, err
	}

	changes := map[string]models.Change{}
	if existing.Name != updated.Name {
		changes["name"] = models.Change{Old: existing.Name, New: updated.Name}
	}
	if existing.Status != updated.Status {
		changes["status"] = models.Change{Old: existing.Status, New: updated.Status}
	}
	s.record(ctx, caller, models.AuditActionUpdate, updated.ID, changes)
	return updated, nil
}

// DeleteProject removes the project and every task that belongs to it.
func (s *ProjectServiceImpl) DeleteProject(ctx context.Context, caller *utils.UserClaims, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidID
	}
	if err := s.Repo.Delete(ctx, caller.Organization, oid); err != nil {
		return err
	}

	removed, err := s.Tasks.DeleteByProject(ctx, caller.Organization, oid)
	if err != nil {
		s.Logger.Error("failed to delete project tasks", zap.String("project_id", id), zap.Error(err))
	}

	s.record(ctx, caller, models.AuditActionDelete, oid, map[string]models.Change{"tasks": {Old: removed, New: 0}})
	return nil
}

func (s *ProjectServiceImpl) record(ctx context.Context, caller *utils.UserClaims, action models.AuditAction, id primitive.ObjectID, changes map[string]models.Change) {
	if err := s.AuditService.LogChange(ctx, caller, action, auditModule, id.Hex(), changes); err != nil {
		s.Logger.Warn("failed to write audit log", zap.String("module", auditModule), zap.Error(err))
	}
	s.Publisher.Publish(caller.Organization, realtime.Event{
		Type:    realtime.EventType("project", action),
		ID:      id.Hex(),
		ActorID: caller.UserID,
		At:      s.now(),
	})
}
