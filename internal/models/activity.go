package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity is one entry of a team's audit trail.
type Activity struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID string             `bson:"userId" json:"userId"`
	TeamID string             `bson:"teamId" json:"teamId"`
	Action string             `bson:"action" json:"action"` // e.g. "patient.add", "schedule.generate"
	Target string             `bson:"target,omitempty" json:"target,omitempty"`
	At     time.Time          `bson:"at" json:"at"`
}
