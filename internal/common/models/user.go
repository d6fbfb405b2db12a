package models

import (
	"bytes"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// Studio roles a user can hold.
const (
	Role3DArtist       = "3D Artist"
	RoleAnimator       = "Animator"
	RoleCompositor     = "Compositor"
	RoleFXArtist       = "FX Artist"
	RoleLightingArtist = "Lighting Artist"
	RoleModeler        = "Modeler"
	RoleRigger         = "Rigger"
	RoleTextureArtist  = "Texture Artist"
	RoleMattePainter   = "Matte Painter"
	RolePipelineTD     = "Pipeline TD"
	RoleVFXSupervisor  = "VFX Supervisor"
	RoleProducer       = "Producer"
)

var Roles = []string{
	Role3DArtist, RoleAnimator, RoleCompositor, RoleFXArtist, RoleLightingArtist, RoleModeler,
	RoleRigger, RoleTextureArtist, RoleMattePainter, RolePipelineTD, RoleVFXSupervisor, RoleProducer,
}

// Experience levels, lowest first. Skill levels use the same scale.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelExpert       = "Expert"
)

var ExperienceLevels = []string{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}

// LevelRank returns the ordinal of an experience level, or -1 when unknown.
func LevelRank(level string) int {
	for i, l := range ExperienceLevels {
		if l == level {
			return i
		}
	}
	return -1
}

type Skill struct {
	Name  string `bson:"name" json:"name"`
	Level string `bson:"level" json:"level"`
}

// PreferenceValue holds a work preference flag exactly as stored: the strings
// "true" and "false". Non-string BSON values decode to the empty value.
type PreferenceValue string

const (
	PreferenceTrue  PreferenceValue = "true"
	PreferenceFalse PreferenceValue = "false"
)

func (v *PreferenceValue) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t != bsontype.String {
		*v = ""
		return nil
	}
	s, ok := bsoncore.Value{Type: t, Data: data}.StringValueOK()
	if !ok {
		*v = ""
		return nil
	}
	*v = PreferenceValue(s)
	return nil
}

// UnmarshalJSON accepts a JSON string or boolean. Booleans are stored as
// their string form so every stored value stays a string.
func (v *PreferenceValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true":
		*v = PreferenceTrue
		return nil
	case "false":
		*v = PreferenceFalse
		return nil
	case "null":
		*v = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = PreferenceValue(s)
	return nil
}

type WorkPreference struct {
	Name  string          `bson:"name" json:"name"`
	Value PreferenceValue `bson:"value" json:"value"`
}

// User is a studio member. Empty strings mean the field was never filled in.
type User struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email               string             `bson:"email" json:"email"`
	Password            string             `bson:"password" json:"-"`
	FirstName           string             `bson:"firstName" json:"firstName"`
	LastName            string             `bson:"lastName" json:"lastName"`
	Role                string             `bson:"role,omitempty" json:"role,omitempty"`
	ExperienceLevel     string             `bson:"experienceLevel,omitempty" json:"experienceLevel,omitempty"`
	Department          string             `bson:"department,omitempty" json:"department,omitempty"`
	Bio                 string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Portfolio           string             `bson:"portfolio,omitempty" json:"portfolio,omitempty"`
	Skills              []Skill            `bson:"skills" json:"skills"`
	WorkPreferences     []WorkPreference   `bson:"workPreferences" json:"workPreferences"`
	DislikedWorkAreas   []string           `bson:"dislikedWorkAreas" json:"dislikedWorkAreas"`
	OnboardingCompleted bool               `bson:"onboardingCompleted" json:"onboardingCompleted"`
	IsAdmin             bool               `bson:"isAdmin" json:"isAdmin"`
	Organization        string             `bson:"organization" json:"organization"`
	LastLogin           *time.Time         `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
