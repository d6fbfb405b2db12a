package user

import (
	"vfx-dashboard/internal/common/models"
	"vfx-dashboard/pkg/utils"
)

type SkillInput struct {
	Name  string `json:"name" validate:"required,max=100"`
	Level string `json:"level" validate:"required,level"`
}

type WorkPreferenceInput struct {
	Name  string                 `json:"name" validate:"required,max=100"`
	Value models.PreferenceValue `json:"value" validate:"oneof=true false"`
}

// ProfileRequest is the editable part of a user document. Updates replace
// every field, so omitted fields are cleared.
type ProfileRequest struct {
	FirstName         string                `json:"firstName" validate:"required,max=100"`
	LastName          string                `json:"lastName" validate:"required,max=100"`
	Role              string                `json:"role" validate:"omitempty,studiorole"`
	ExperienceLevel   string                `json:"experienceLevel" validate:"omitempty,level"`
	Department        string                `json:"department" validate:"omitempty,max=100"`
	Bio               string                `json:"bio" validate:"omitempty,max=2000"`
	Portfolio         string                `json:"portfolio" validate:"omitempty,url"`
	Skills            []SkillInput          `json:"skills" validate:"max=50,dive"`
	WorkPreferences   []WorkPreferenceInput `json:"workPreferences" validate:"max=50,dive"`
	DislikedWorkAreas []string              `json:"dislikedWorkAreas" validate:"max=50,dive,max=100"`
}

type SetAdminRequest struct {
	IsAdmin *bool `json:"isAdmin" validate:"required"`
}

// apply copies the sanitized profile onto u.
func (p *ProfileRequest) apply(u *models.User) {
	u.FirstName = utils.SanitizeText(p.FirstName)
	u.LastName = utils.SanitizeText(p.LastName)
	u.Role = p.Role
	u.ExperienceLevel = p.ExperienceLevel
	u.Department = utils.SanitizeText(p.Department)
	u.Bio = utils.SanitizeText(p.Bio)
	u.Portfolio = p.Portfolio

	u.Skills = make([]models.Skill, 0, len(p.Skills))
	for _, s := range p.Skills {
		u.Skills = append(u.Skills, models.Skill{Name: utils.SanitizeText(s.Name), Level: s.Level})
	}
	u.WorkPreferences = make([]models.WorkPreference, 0, len(p.WorkPreferences))
	for _, wp := range p.WorkPreferences {
		u.WorkPreferences = append(u.WorkPreferences, models.WorkPreference{Name: utils.SanitizeText(wp.Name), Value: wp.Value})
	}
	u.DislikedWorkAreas = utils.SanitizeList(p.DislikedWorkAreas)
}
