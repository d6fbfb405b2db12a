package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vfx-dashboard/internal/common/models"
	"vfx-dashboard/internal/features/audit"
	"vfx-dashboard/internal/features/project"
	"vfx-dashboard/internal/features/realtime"
	"vfx-dashboard/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const auditModule = "tasks"

// MemberFinder resolves assignees.
type MemberFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// Query is the raw listing filter taken from the request.
type Query struct {
	Project  string
	Assignee string
	Status   string
}

type TaskService interface {
	ListTasks(ctx context.Context, caller *utils.UserClaims, q Query, page, limit int64) ([]Task, int64, error)
	ListProjectTasks(ctx context.Context, caller *utils.UserClaims, projectID string) ([]Task, error)
	MyTasks(ctx context.Context, caller *utils.UserClaims, status string) ([]Task, error)
	GetTask(ctx context.Context, caller *utils.UserClaims, id string) (*Task, error)
	CreateTask(ctx context.Context, caller *utils.UserClaims, req *TaskRequest) (*Task, error)
	UpdateTask(ctx context.Context, caller *utils.UserClaims, id string, req *TaskRequest) (*Task, error)
	UpdateStatus(ctx context.Context, caller *utils.UserClaims, id, status string) error
	DeleteTask(ctx context.Context, caller *utils.UserClaims, id string) error
}

type TaskServiceImpl struct {
	Repo         TaskRepository
	Projects     project.ProjectRepository
	Members      MemberFinder
	AuditService audit.AuditService
	Publisher    realtime.Publisher
	Logger       *zap.Logger
	now          func() time.Time
}

func NewTaskService(repo TaskRepository, projects project.ProjectRepository, members MemberFinder, auditService audit.AuditService, publisher realtime.Publisher, logger *zap.Logger) TaskService {
	return &TaskServiceImpl{
		Repo:         repo,
		Projects:     projects,
		Members:      members,
		AuditService: auditService,
		Publisher:    publisher,
		Logger:       logger,
		now:          time.Now,
	}
}

func parseOptionalID(s string) (*primitive.ObjectID, error) {
	if s == "" {
		return nil, nil
	}
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return nil, models.ErrInvalidID
	}
	return &oid, nil
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context, caller *utils.UserClaims, q Query, page, limit int64) ([]Task, int64, error) {
	projectID, err := parseOptionalID(q.Project)
	if err != nil {
		return nil, 0, err
	}
	assignee, err := parseOptionalID(q.Assignee)
	if err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	filter := Filter{Project: projectID, Assignee: assignee, Status: q.Status}
	return s.Repo.List(ctx, caller.Organization, filter, limit, (page-1)*limit)
}

func (s *TaskServiceImpl) ListProjectTasks(ctx context.Context, caller *utils.UserClaims, projectID string) ([]Task, error) {
	oid, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, models.ErrInvalidID
	}
	if _, err := s.Projects.FindByID(ctx, caller.Organization, oid); err != nil {
		return nil, err
	}
	tasks, _, err := s.Repo.List(ctx, caller.Organization, Filter{Project: &oid}, 0, 0)
	return tasks, err
}

func (s *TaskServiceImpl) MyTasks(ctx context.Context, caller *utils.UserClaims, status string) ([]Task, error) {
	me, err := caller.ObjectID()
	if err != nil {
		return nil, models.ErrInvalidID
	}
	tasks, _, err := s.Repo.List(ctx, caller.Organization, Filter{Assignee: &me, Status: status}, 0, 0)
	return tasks, err
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, caller *utils.UserClaims, id string) (*Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidID
	}
	return s.Repo.FindByID(ctx, caller.Organization, oid)
}

// fill validates references against the caller's organization and copies
// the request onto t.
func (s *TaskServiceImpl) fill(ctx context.Context, caller *utils.UserClaims, t *Task, req *TaskRequest) error {
	projectID, err := primitive.ObjectIDFromHex(req.Project)
	if err != nil {
		return models.ErrInvalidID
	}
	if _, err := s.Projects.FindByID(ctx, caller.Organization, projectID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("%w: project does not exist in this organization", models.ErrInvalidInput)
		}
		return err
	}

	assignee, err := parseOptionalID(req.Assignee)
	if err != nil {
		return err
	}
	if assignee != nil {
		u, err := s.Members.FindByID(ctx, assignee.Hex())
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return err
		}
		if err != nil || u.Organization != caller.Organization {
			return fmt.Errorf("%w: assignee is not a member of this organization", models.ErrInvalidInput)
		}
	}

	t.Title = utils.SanitizeText(req.Title)
	t.Description = utils.SanitizeText(req.Description)
	t.Project = projectID
	t.Assignee = assignee
	t.Status = req.Status
	if t.Status == "" {
		t.Status = StatusTodo
	}
	t.Priority = req.Priority
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	t.DueDate = req.DueDate
	t.EstimatedHours = req.EstimatedHours
	return nil
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, caller *utils.UserClaims, req *TaskRequest) (*Task, error) {
	creator, err := caller.ObjectID()
	if err != nil {
		return nil, models.ErrInvalidID
	}

	now := s.now()
	t := &Task{
		ID:           primitive.NewObjectID(),
		Organization: caller.Organization,
		CreatedBy:    creator,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.fill(ctx, caller, t, req); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.record(ctx, caller, models.AuditActionCreate, t.ID, map[string]models.Change{"title": {New: t.Title}})
	return t, nil
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, caller *utils.UserClaims, id string, req *TaskRequest) (*Task, error) {
	existing, err := s.GetTask(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	updated := &Task{
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
	if existing.Status != updated.Status {
		changes["status"] = models.Change{Old: existing.Status, New: updated.Status}
	}
	if existing.Title != updated.Title {
		changes["title"] = models.Change{Old: existing.Title, New: updated.Title}
	}
	s.record(ctx, caller, models.AuditActionUpdate, updated.ID, changes)
	return updated, nil
}

func (s *TaskServiceImpl) UpdateStatus(ctx context.Context, caller *utils.UserClaims, id, status string) error {
	existing, err := s.GetTask(ctx, caller, id)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdateStatus(ctx, caller.Organization, existing.ID, status, s.now()); err != nil {
		return err
	}
	s.record(ctx, caller, models.AuditActionUpdate, existing.ID, map[string]models.Change{
		"status": {Old: existing.Status, New: status},
	})
	return nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, caller *utils.UserClaims, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidID
	}
	if err := s.Repo.Delete(ctx, caller.Organization, oid); err != nil {
		return err
	}
	s.record(ctx, caller, models.AuditActionDelete, oid, nil)
	return nil
}

func (s *TaskServiceImpl) record(ctx context.Context, caller *utils.UserClaims, action models.AuditAction, id primitive.ObjectID, changes map[string]models.Change) {
	if err := s.AuditService.LogChange(ctx, caller, action, auditModule, id.Hex(), changes); err != nil {
		s.Logger.Warn("failed to write audit log", zap.String("module", auditModule), zap.Error(err))
	}
	s.Publisher.Publish(caller.Organization, realtime.Event{
		Type:    realtime.EventType("task", action),
		ID:      id.Hex(),
		ActorID: caller.UserID,
		At:      s.now(),
	})
}
