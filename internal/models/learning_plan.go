package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LearningPlan is a named, user-owned collection of steps.
type LearningPlan struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description" json:"description"`
	UserID      string               `bson:"user_id" json:"user_id"`
	CreatedAt   time.Time            `bson:"created_at" json:"created_at"` // date only, UTC midnight
	Steps       []primitive.ObjectID `bson:"steps" json:"steps"`           // ordered step references
}

// Today returns the current UTC date truncated to midnight.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
