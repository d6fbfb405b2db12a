package project

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPlanning   = "planning"
	StatusInProgress = "in-progress"
	StatusReview     = "review"
	StatusCompleted  = "completed"
	StatusOnHold     = "on-hold"
)

type Project struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name         string               `bson:"name" json:"name"`
	Description  string               `bson:"description,omitempty" json:"description,omitempty"`
	Client       string               `bson:"client,omitempty" json:"client,omitempty"`
	Status       string               `bson:"status" json:"status"`
	StartDate    *time.Time           `bson:"startDate,omitempty" json:"startDate,omitempty"`
	DueDate      *time.Time           `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	Members      []primitive.ObjectID `bson:"members" json:"members"`
	Organization string               `bson:"organization" json:"organization"`
	CreatedBy    primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// ProjectRequest is the body of create and update. Update replaces the whole
// document, so omitted optional fields are cleared.
type ProjectRequest struct {
	Name        string     `json:"name" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=5000"`
	Client      string     `json:"client" validate:"max=200"`
	Status      string     `json:"status" validate:"omitempty,oneof=planning in-progress review completed on-hold"`
	StartDate   *time.Time `json:"startDate"`
	DueDate     *time.Time `json:"dueDate"`
	Members     []string   `json:"members" validate:"max=200,dive,mongodb"`
}
