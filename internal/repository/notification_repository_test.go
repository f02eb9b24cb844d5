package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/Dias221467/SkillSharing_Backend/internal/models"
)

func notificationDoc(id primitive.ObjectID, userID, kind string, read bool) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "user_id", Value: userID},
		{Key: "sender_id", Value: "sender"},
		{Key: "type", Value: kind},
		{Key: "message", Value: "hello"},
		{Key: "read", Value: read},
		{Key: "created_at", Value: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
	}
}

func TestNotificationRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create", func(mt *mtest.T) {
		repo := NewNotificationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		notif, err := repo.CreateNotification(ctx, &models.Notification{UserID: "bob", Type: "LIKE"})
		require.NoError(mt, err)
		assert.False(mt, notif.ID.IsZero())
	})

	mt.Run("list by read state", func(mt *mtest.T) {
		repo := NewNotificationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, "notifications"), mtest.FirstBatch,
			notificationDoc(primitive.NewObjectID(), "bob", "FOLLOW", false),
			notificationDoc(primitive.NewObjectID(), "bob", "LIKE", false),
		))

		list, err := repo.GetUserNotificationsByRead(ctx, "bob", false)
		require.NoError(mt, err)
		require.Len(mt, list, 2)
		assert.Equal(mt, "FOLLOW", list[0].Type)
		assert.Equal(mt, "sender", list[0].SenderID)
	})

	mt.Run("list failure is wrapped", func(mt *mtest.T) {
		repo := NewNotificationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 13, Name: "Unauthorized", Message: "not authorized",
		}))

		_, err := repo.GetUserNotifications(ctx, "bob")
		assert.ErrorContains(mt, err, "failed to fetch notifications")
	})

	mt.Run("count unread", func(mt *mtest.T) {
		repo := NewNotificationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, "notifications"), mtest.FirstBatch,
			bson.D{{Key: "n", Value: int64(5)}},
		))

		n, err := repo.CountByUserAndRead(ctx, "bob", false)
		require.NoError(mt, err)
		assert.EqualValues(mt, 5, n)
	})

	mt.Run("set read", func(mt *mtest.T) {
		repo := NewNotificationRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: notificationDoc(id, "bob", "LIKE", true)},
		})

		notif, err := repo.SetRead(ctx, id, "bob", true)
		require.NoError(mt, err)
		assert.True(mt, notif.Read)
	})

	mt.Run("set read for another recipient", func(mt *mtest.T) {
		repo := NewNotificationRepository(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		_, err := repo.SetRead(ctx, primitive.NewObjectID(), "mallory", true)
		assert.ErrorIs(mt, err, mongo.ErrNoDocuments)
	})
}
