package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dias221467/SkillSharing_Backend/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{
		collection: db.Collection("notifications"),
	}
}

// CreateNotification inserts a new notification
func (r *NotificationRepository) CreateNotification(ctx context.Context, notif *models.Notification) (*models.Notification, error) {
	result, err := r.collection.InsertOne(ctx, notif)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert notification")
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		notif.ID = id
	}
	return notif, nil
}

// GetUserNotifications returns all notifications for a user, newest first
func (r *NotificationRepository) GetUserNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

// GetUserNotificationsByRead returns a user's read or unread notifications, newest first
func (r *NotificationRepository) GetUserNotificationsByRead(ctx context.Context, userID string, read bool) ([]models.Notification, error) {
	return r.find(ctx, bson.M{"user_id": userID, "read": read})
}

func (r *NotificationRepository) find(ctx context.Context, filter bson.M) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, nil
}

// CountByUserAndRead counts a user's notifications in the given read state
func (r *NotificationRepository) CountByUserAndRead(ctx context.Context, userID string, read bool) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID, "read": read})
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}

// SetRead changes the read flag of a notification addressed to userID.
// It returns mongo.ErrNoDocuments when there is no such notification.
func (r *NotificationRepository) SetRead(ctx context.Context, id primitive.ObjectID, userID string, read bool) (*models.Notification, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	filter := bson.M{"_id": id, "user_id": userID}

	var notif models.Notification
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": bson.M{"read": read}}, opts).Decode(&notif)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			logrus.WithError(err).WithField("notification_id", id.Hex()).Error("Failed to update notification")
		}
		return nil, err
	}
	return &notif, nil
}
