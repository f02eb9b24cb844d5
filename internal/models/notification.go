package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notification struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID               string             `bson:"user_id" json:"user_id"`     // recipient
	SenderID             string             `bson:"sender_id" json:"sender_id"` // user who triggered it
	SenderUsername       string             `bson:"sender_username" json:"sender_username"`
	SenderProfilePicture string             `bson:"sender_profile_picture" json:"sender_profile_picture"`
	Type                 string             `bson:"type" json:"type"`               // e.g. "FOLLOW", "LIKE", "COMMENT"
	Message              string             `bson:"message" json:"message"`         // Human-readable text
	ResourceID           string             `bson:"resource_id" json:"resource_id"` // post, comment, plan...
	Read                 bool               `bson:"read" json:"read"`
	CreatedAt            time.Time          `bson:"created_at" json:"created_at"`
}
