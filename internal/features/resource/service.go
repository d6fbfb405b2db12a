package resource

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

const auditModule = "resources"

// MemberFinder resolves the user a resource is assigned to.
type MemberFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type ResourceService interface {
	ListResources(ctx context.Context, caller *utils.UserClaims, resourceType string, page, limit int64) ([]Resource, int64, error)
	GetResource(ctx context.Context, caller *utils.UserClaims, id string) (*Resource, error)
	CreateResource(ctx context.Context, caller *utils.UserClaims, req *ResourceRequest) (*Resource, error)
	UpdateResource(ctx context.Context, caller *utils.UserClaims, id string, req *ResourceRequest) (*Resource, error)
	DeleteResource(ctx context.Context, caller *utils.UserClaims, id string) error
}

type ResourceServiceImpl struct {
	Repo         ResourceRepository
	Members      MemberFinder
	AuditService audit.AuditService
	Publisher    realtime.Publisher
	Logger       *zap.Logger
	now          func() time.Time
}

func NewResourceService(repo ResourceRepository, members MemberFinder, auditService audit.AuditService, publisher realtime.Publisher, logger *zap.Logger) ResourceService {
	return &ResourceServiceImpl{
		Repo:         repo,
		Members:      members,
		AuditService: auditService,
		Publisher:    publisher,
		Logger:       logger,
		now:          time.Now,
	}
}

func (s *ResourceServiceImpl) ListResources(ctx context.Context, caller *utils.UserClaims, resourceType string, page, limit int64) ([]Resource, int64, error) {
	if page < 1 {
		page = 1
	}
	return s.Repo.List(ctx, caller.Organization, resourceType, limit, (page-1)*limit)
}

func (s *ResourceServiceImpl) GetResource(ctx context.Context, caller *utils.UserClaims, id string) (*Resource, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidID
	}
	return s.Repo.FindByID(ctx, caller.Organization, oid)
}

func (s *ResourceServiceImpl) fill(ctx context.Context, caller *utils.UserClaims, r *Resource, req *ResourceRequest) error {
	r.AssignedTo = nil
	if req.AssignedTo != "" {
		oid, err := primitive.ObjectIDFromHex(req.AssignedTo)
		if err != nil {
			return models.ErrInvalidID
		}
		u, err := s.Members.FindByID(ctx, req.AssignedTo)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return err
		}
		if err != nil || u.Organization != caller.Organization {
			return fmt.Errorf("%w: assignedTo is not a member of this organization", models.ErrInvalidInput)
		}
		r.AssignedTo = &oid
	}

	r.Name = utils.SanitizeText(req.Name)
	r.Type = req.Type
	if r.Type == "" {
		r.Type = TypeOther
	}
	r.Description = utils.SanitizeText(req.Description)
	r.URL = req.URL
	r.Quantity = req.Quantity
	if r.Quantity == 0 {
		r.Quantity = 1
	}
	return nil
}

func (s *ResourceServiceImpl) CreateResource(ctx context.Context, caller *utils.UserClaims, req *ResourceRequest) (*Resource, error) {
	creator, err := caller.ObjectID()
	if err != nil {
		return nil, models.ErrInvalidID
	}

	now := s.now()
	r := &Resource{
		ID:           primitive.NewObjectID(),
		Organization: caller.Organization,
		CreatedBy:    creator,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.fill(ctx, caller, r, req); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, r); err != nil {
		return nil, err
	}

	s.record(ctx, caller, models.AuditActionCreate, r.ID, map[string]models.Change{"name": {New: r.Name}})
	return r, nil
}

func (s *ResourceServiceImpl) UpdateResource(ctx context.Context, caller *utils.UserClaims, id string, req *ResourceRequest) (*Resource, error) {
	existing, err := s.GetResource(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	updated := &Resource{
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
	if existing.Quantity != updated.Quantity {
		changes["quantity"] = models.Change{Old: existing.Quantity, New: updated.Quantity}
	}
	s.record(ctx, caller, models.AuditActionUpdate, updated.ID, changes)
	return updated, nil
}

func (s *ResourceServiceImpl) DeleteResource(ctx context.Context, caller *utils.UserClaims, id string) error {
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

func (s *ResourceServiceImpl) record(ctx context.Context, caller *utils.UserClaims, action models.AuditAction, id primitive.ObjectID, changes map[string]models.Change) {
	if err := s.AuditService.LogChange(ctx, caller, action, auditModule, id.Hex(), changes); err != nil {
		s.Logger.Warn("failed to write audit log", zap.String("module", auditModule), zap.Error(err))
	}
	s.Publisher.Publish(caller.Organization, realtime.Event{
		Type:    realtime.EventType("resource", action),
		ID:      id.Hex(),
		ActorID: caller.UserID,
		At:      s.now(),
	})
}
