package analytics

import (
	"time"

	"vfx-dashboard/internal/userstats"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatsSnapshot is a dated copy of an organization's dashboard summary.
type StatsSnapshot struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Organization string             `bson:"organization" json:"organization"`
	Summary      userstats.Summary  `bson:"summary" json:"summary"`
	Departments  []userstats.Count  `bson:"departments" json:"departments"`
	TakenAt      time.Time          `bson:"takenAt" json:"takenAt"`
}

type Overview struct {
	Summary     userstats.Summary            `json:"summary"`
	Departments userstats.DepartmentReport `json:"departments"`
}
