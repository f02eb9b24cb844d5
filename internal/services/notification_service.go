package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Dias221467/SkillSharing_Backend/internal/dto"
	"github.com/Dias221467/SkillSharing_Backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notif *models.Notification) (*models.Notification, error)
	GetUserNotifications(ctx context.Context, userID string) ([]models.Notification, error)
	GetUserNotificationsByRead(ctx context.Context, userID string, read bool) ([]models.Notification, error)
	CountByUserAndRead(ctx context.Context, userID string, read bool) (int64, error)
	SetRead(ctx context.Context, id primitive.ObjectID, userID string, read bool) (*models.Notification, error)
}

// NotificationService stores and reads notification records. It does not deliver them.
type NotificationService struct {
	repo NotificationRepository
	now  func() time.Time
}

func NewNotificationService(repo NotificationRepository) *NotificationService {
	return &NotificationService{
		repo: repo,
		now:  time.Now,
	}
}

// CreateNotification records an event sent by senderID to the user named in the request
func (s *NotificationService) CreateNotification(ctx context.Context, senderID string, req dto.CreateNotificationRequest) (*models.Notification, error) {
	recipient := strings.TrimSpace(req.UserID)
	if recipient == "" {
		return nil, &ValidationError{Message: "notification recipient is required"}
	}
	notifType := strings.TrimSpace(req.Type)
	if notifType == "" {
		return nil, &ValidationError{Message: "notification type is required"}
	}

	notif := &models.Notification{
		UserID:               recipient,
		SenderID:             senderID,
		SenderUsername:       req.SenderUsername,
		SenderProfilePicture: req.SenderProfilePicture,
		Type:                 notifType,
		Message:              req.Message,
		ResourceID:           req.ResourceID,
		Read:                 false,
		CreatedAt:            s.now().UTC(),
	}

	created, err := s.repo.CreateNotification(ctx, notif)
	if err != nil {
		return nil, fmt.Errorf("failed to store notification: %w", err)
	}
	return created, nil
}

// GetUserNotifications returns a user's notifications newest first, optionally filtered by read state
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID string, read *bool) ([]models.Notification, error) {
	if read != nil {
		return s.repo.GetUserNotificationsByRead(ctx, userID, *read)
	}
	return s.repo.GetUserNotifications(ctx, userID)
}

func (s *NotificationService) CountUnread(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountByUserAndRead(ctx, userID, false)
}

// SetRead toggles the read flag of one of the user's notifications
func (s *NotificationService) SetRead(ctx context.Context, userID, notificationID string, read bool) (*models.Notification, error) {
	objID, ok := parseID(notificationID)
	if !ok {
		return nil, notFound("notification", notificationID)
	}

	notif, err := s.repo.SetRead(ctx, objID, userID, read)
	if err != nil {
		return nil, translate(err, "notification", notificationID)
	}
	return notif, nil
}
