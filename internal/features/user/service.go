package user

import (
	"context"
	"fmt"
	"time"

	"vfx-dashboard/internal/common/models"
	"vfx-dashboard/internal/features/audit"
	"vfx-dashboard/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const auditModule = "users"

type UserService interface {
	GetProfile(ctx context.Context, caller *utils.UserClaims) (*models.User, error)
	UpdateProfile(ctx context.Context, caller *utils.UserClaims, req *ProfileRequest) (*models.User, error)
	CompleteOnboarding(ctx context.Context, caller *utils.UserClaims, req *ProfileRequest) (*models.User, error)
	ListUsers(ctx context.Context, caller *utils.UserClaims, role string, page, limit int64) ([]models.User, int64, error)
	GetUser(ctx context.Context, caller *utils.UserClaims, id string) (*models.User, error)
	SetAdmin(ctx context.Context, caller *utils.UserClaims, id string, isAdmin bool) error
	DeleteUser(ctx context.Context, caller *utils.UserClaims, id string) error
}

type UserServiceImpl struct {
	UserRepo     UserRepository
	AuditService audit.AuditService
	now          func() time.Time
}

func NewUserService(userRepo UserRepository, auditService audit.AuditService) UserService {
	return &UserServiceImpl{
		UserRepo:     userRepo,
		AuditService: auditService,
		now:          time.Now,
	}
}

// memberOf loads a user and hides members of other organizations.
func (s *UserServiceImpl) memberOf(ctx context.Context, organization, id string) (*models.User, error) {
	u, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Organization != organization {
		return nil, models.ErrNotFound
	}
	return u, nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, caller *utils.UserClaims) (*models.User, error) {
	return s.memberOf(ctx, caller.Organization, caller.UserID)
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, caller *utils.UserClaims, req *ProfileRequest) (*models.User, error) {
	return s.saveProfile(ctx, caller, req, false)
}

func (s *UserServiceImpl) CompleteOnboarding(ctx context.Context, caller *utils.UserClaims, req *ProfileRequest) (*models.User, error) {
	return s.saveProfile(ctx, caller, req, true)
}

func (s *UserServiceImpl) saveProfile(ctx context.Context, caller *utils.UserClaims, req *ProfileRequest, onboarding bool) (*models.User, error) {
	u, err := s.memberOf(ctx, caller.Organization, caller.UserID)
	if err != nil {
		return nil, err
	}

	before := *u
	req.apply(u)
	if onboarding {
		u.OnboardingCompleted = true
	}
	u.UpdatedAt = s.now()

	if err := s.UserRepo.Replace(ctx, u); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	changes := map[string]models.Change{}
	if before.Role != u.Role {
		changes["role"] = models.Change{Old: before.Role, New: u.Role}
	}
	if before.ExperienceLevel != u.ExperienceLevel {
		changes["experienceLevel"] = models.Change{Old: before.ExperienceLevel, New: u.ExperienceLevel}
	}
	if before.OnboardingCompleted != u.OnboardingCompleted {
		changes["onboardingCompleted"] = models.Change{Old: before.OnboardingCompleted, New: u.OnboardingCompleted}
	}
	_ = s.AuditService.LogChange(ctx, caller, models.AuditActionUpdate, auditModule, u.ID.Hex(), changes)

	u.Password = ""
	return u, nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, caller *utils.UserClaims, role string, page, limit int64) ([]models.User, int64, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	return s.UserRepo.List(ctx, caller.Organization, map[string]string{"role": role}, limit, offset)
}

func (s *UserServiceImpl) GetUser(ctx context.Context, caller *utils.UserClaims, id string) (*models.User, error) {
	return s.memberOf(ctx, caller.Organization, id)
}

// SetAdmin grants or revokes admin rights. Admins cannot demote themselves.
func (s *UserServiceImpl) SetAdmin(ctx context.Context, caller *utils.UserClaims, id string, isAdmin bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidID
	}
	if id == caller.UserID && !isAdmin {
		return fmt.Errorf("%w: cannot revoke your own admin rights", models.ErrForbidden)
	}
	if err := s.UserRepo.SetAdmin(ctx, caller.Organization, oid, isAdmin); err != nil {
		return err
	}
	_ = s.AuditService.LogChange(ctx, caller, models.AuditActionUpdate, auditModule, id, map[string]models.Change{
		"isAdmin": {Old: !isAdmin, New: isAdmin},
	})
	return nil
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, caller *utils.UserClaims, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidID
	}
	if id == caller.UserID {
		return fmt.Errorf("%w: cannot delete yourself", models.ErrForbidden)
	}
	if err := s.UserRepo.Delete(ctx, caller.Organization, oid); err != nil {
		return err
	}
	_ = s.AuditService.LogChange(ctx, caller, models.AuditActionDelete, auditModule, id, nil)
	return nil
}
