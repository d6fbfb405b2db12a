package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vfx-dashboard/internal/common/models"
	"vfx-dashboard/internal/features/audit"
	"vfx-dashboard/internal/features/organization"
	"vfx-dashboard/internal/features/user"
	"vfx-dashboard/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	Me(ctx context.Context, caller *utils.UserClaims) (*models.User, error)
	ChangePassword(ctx context.Context, caller *utils.UserClaims, current, next string) error
}

type AuthServiceImpl struct {
	UserRepo         user.UserRepository
	OrganizationRepo organization.OrganizationRepository
	AuditService     audit.AuditService
	Logger           *zap.Logger
	now              func() time.Time
}

func NewAuthService(userRepo user.UserRepository, orgRepo organization.OrganizationRepository, auditService audit.AuditService, logger *zap.Logger) AuthService {
	return &AuthServiceImpl{
		UserRepo:         userRepo,
		OrganizationRepo: orgRepo,
		AuditService:     auditService,
		Logger:           logger,
		now:              time.Now,
	}
}

// Register creates the account and, when the organization is new, the
// organization itself. The first member of a new organization is its admin.
func (s *AuthServiceImpl) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	slug := utils.Slugify(req.Organization)
	if slug == "" {
		return nil, fmt.Errorf("%w: organization name has no usable characters", models.ErrInvalidInput)
	}

	if _, err := s.UserRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, models.ErrEmailTaken
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	newUserID := primitive.NewObjectID()
	isAdmin := false

	_, err = s.OrganizationRepo.FindBySlug(ctx, slug)
	switch {
	case errors.Is(err, models.ErrNotFound):
		org := models.Organization{
			ID:        primitive.NewObjectID(),
			Name:      utils.SanitizeText(req.Organization),
			Slug:      slug,
			OwnerID:   newUserID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		// A concurrent registration may have won the unique slug
		if err := s.OrganizationRepo.Create(ctx, &org); err == nil {
			isAdmin = true
		} else if _, lookupErr := s.OrganizationRepo.FindBySlug(ctx, slug); lookupErr != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	newUser := models.User{
		ID:                newUserID,
		Email:             req.Email,
		Password:          hashedPassword,
		FirstName:         utils.SanitizeText(req.FirstName),
		LastName:          utils.SanitizeText(req.LastName),
		Skills:            []models.Skill{},
		WorkPreferences:   []models.WorkPreference{},
		DislikedWorkAreas: []string{},
		IsAdmin:           isAdmin,
		Organization:      slug,
		LastLogin:         &now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.UserRepo.Create(ctx, &newUser); err != nil {
		return nil, err
	}

	actor := &utils.UserClaims{UserID: newUserID.Hex(), Organization: slug}
	_ = s.AuditService.LogChange(ctx, actor, models.AuditActionCreate, "users", newUserID.Hex(), map[string]models.Change{
		"email":        {New: newUser.Email},
		"organization": {New: slug},
		"isAdmin":      {New: isAdmin},
	})
	s.Logger.Info("user registered", zap.String("user_id", newUserID.Hex()), zap.String("organization", slug), zap.Bool("admin", isAdmin))

	return s.issue(&newUser)
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	usr, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(usr.Password, password) {
		return nil, models.ErrInvalidCredentials
	}

	now := s.now()
	if err := s.UserRepo.SetLastLogin(ctx, usr.ID, now); err != nil {
		s.Logger.Warn("failed to record last login", zap.String("user_id", usr.ID.Hex()), zap.Error(err))
	} else {
		usr.LastLogin = &now
	}

	actor := &utils.UserClaims{UserID: usr.ID.Hex(), Organization: usr.Organization}
	_ = s.AuditService.LogChange(ctx, actor, models.AuditActionLogin, "users", usr.ID.Hex(), nil)

	return s.issue(usr)
}

func (s *AuthServiceImpl) issue(u *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, u.Organization, u.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	u.Password = ""
	return &AuthResponse{Token: token, User: u}, nil
}

func (s *AuthServiceImpl) Me(ctx context.Context, caller *utils.UserClaims) (*models.User, error) {
	u, err := s.UserRepo.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if u.Organization != caller.Organization {
		return nil, models.ErrNotFound
	}
	u.Password = ""
	return u, nil
}

func (s *AuthServiceImpl) ChangePassword(ctx context.Context, caller *utils.UserClaims, current, next string) error {
	u, err := s.UserRepo.FindByID(ctx, caller.UserID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(u.Password, current) {
		return models.ErrInvalidCredentials
	}

	hash, err := utils.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.UserRepo.SetPassword(ctx, u.ID, hash); err != nil {
		return err
	}

	_ = s.AuditService.LogChange(ctx, caller, models.AuditActionUpdate, "users", u.ID.Hex(), map[string]models.Change{
		"password": {New: "changed"},
	})
	return nil
}
