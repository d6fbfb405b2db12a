package resource

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TypeSoftware     = "software"
	TypeHardware     = "hardware"
	TypeLicense      = "license"
	TypeRenderNode   = "render-node"
	TypeAssetLibrary = "asset-library"
	TypeOther        = "other"
)

type Resource struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name         string              `bson:"name" json:"name"`
	Type         string              `bson:"type" json:"type"`
	Description  string              `bson:"description,omitempty" json:"description,omitempty"`
	URL          string              `bson:"url,omitempty" json:"url,omitempty"`
	Quantity     int                 `bson:"quantity" json:"quantity"`
	AssignedTo   *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Organization string              `bson:"organization" json:"organization"`
	CreatedBy    primitive.ObjectID  `bson:"createdBy" json:"createdBy"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}

type ResourceRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Type        string `json:"type" validate:"omitempty,oneof=software hardware license render-node asset-library other"`
	Description string `json:"description" validate:"max=5000"`
	URL         string `json:"url" validate:"omitempty,url"`
	Quantity    int    `json:"quantity" validate:"gte=0"`
	AssignedTo  string `json:"assignedTo" validate:"omitempty,mongodb"`
}
