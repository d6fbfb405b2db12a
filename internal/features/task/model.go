package task

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusReview     = "review"
	StatusDone       = "done"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

type Task struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title          string              `bson:"title" json:"title"`
	Description    string              `bson:"description,omitempty" json:"description,omitempty"`
	Project        primitive.ObjectID  `bson:"project" json:"project"`
	Assignee       *primitive.ObjectID `bson:"assignee,omitempty" json:"assignee,omitempty"`
	Status         string              `bson:"status" json:"status"`
	Priority       string              `bson:"priority" json:"priority"`
	DueDate        *time.Time          `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	EstimatedHours float64             `bson:"estimatedHours" json:"estimatedHours"`
	Organization   string              `bson:"organization" json:"organization"`
	CreatedBy      primitive.ObjectID  `bson:"createdBy" json:"createdBy"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// Filter narrows task listings. Nil and empty fields match everything.
type Filter struct {
	Project  *primitive.ObjectID
	Assignee *primitive.ObjectID
	Status   string
}

type TaskRequest struct {
	Title          string     `json:"title" validate:"required,max=200"`
	Description    string     `json:"description" validate:"max=5000"`
	Project        string     `json:"project" validate:"required,mongodb"`
	Assignee       string     `json:"assignee" validate:"omitempty,mongodb"`
	Status         string     `json:"status" validate:"omitempty,oneof=todo in-progress review done"`
	Priority       string     `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	DueDate        *time.Time `json:"dueDate"`
	EstimatedHours float64    `json:"estimatedHours" validate:"gte=0,lte=10000"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=todo in-progress review done"`
}
