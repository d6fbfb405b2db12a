package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
	AuditActionLogin  AuditAction = "LOGIN"
)

type Change struct {
	Old interface{} `bson:"old" json:"old"`
	New interface{} `bson:"new" json:"new"`
}

type AuditLog struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Organization string             `bson:"organization" json:"organization"`
	Action       AuditAction        `bson:"action" json:"action"`
	Module       string             `bson:"module" json:"module"`     // projects, tasks, resources, users
	RecordID     string             `bson:"recordId" json:"recordId"` // The ID of the record being modified
	ActorID      string             `bson:"actorId" json:"actorId"`   // User ID who performed the action
	ActorName    string             `bson:"-" json:"actorName,omitempty"`
	Changes      map[string]Change  `bson:"changes" json:"changes"`
	Timestamp    time.Time          `bson:"timestamp" json:"timestamp"`
}

type Organization struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Slug      string             `bson:"slug" json:"slug"`
	OwnerID   primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Log struct {
	AppID     string    `bson:"appId" json:"appId"`
	Level     string    `bson:"level" json:"level"`
	Message   string    `bson:"message" json:"message"`
	Caller    string    `bson:"caller,omitempty" json:"caller,omitempty"`
	RequestID string    `bson:"requestId,omitempty" json:"requestId,omitempty"`
	UserID    string    `bson:"userId,omitempty" json:"userId,omitempty"`
	IpAddress string    `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
