package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// LearningStep belongs to exactly one plan. PlanID is a reference, not an embedded plan.
type LearningStep struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Completed bool               `bson:"completed" json:"completed"`
	PlanID    primitive.ObjectID `bson:"plan_id" json:"plan_id"`
}
