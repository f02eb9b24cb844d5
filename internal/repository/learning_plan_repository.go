package repository

import (
	"context"
	"errors"

	"github.com/Dias221467/SkillSharing_Backend/internal/models"
	"github.com/Dias221467/SkillSharing_Backend/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LearningPlanRepository handles database operations related to learning plans
type LearningPlanRepository struct {
	collection *mongo.Collection
}

// NewLearningPlanRepository creates a new instance of LearningPlanRepository
func NewLearningPlanRepository(db *mongo.Database) *LearningPlanRepository {
	return &LearningPlanRepository{
		collection: db.Collection("learning_plans"),
	}
}

// CreatePlan inserts the plan and assigns the generated ID to it.
func (r *LearningPlanRepository) CreatePlan(ctx context.Context, plan *models.LearningPlan) (*models.LearningPlan, error) {
	if plan.Steps == nil {
		plan.Steps = []primitive.ObjectID{}
	}

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert learning plan")
		return nil, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted plan ID")
		return nil, errors.New("unexpected inserted id type")
	}
	plan.ID = insertedID

	logger.Log.WithField("plan_id", plan.ID.Hex()).Info("Learning plan created successfully")
	return plan, nil
}

// GetPlanByID returns mongo.ErrNoDocuments when no plan matches.
func (r *LearningPlanRepository) GetPlanByID(ctx context.Context, id primitive.ObjectID) (*models.LearningPlan, error) {
	var plan models.LearningPlan

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		logMissOrError(err, "plan_id", id, "Failed to find learning plan by ID")
		return nil, err
	}

	return &plan, nil
}

// UpdatePlanFields overwrites title and description and returns the stored plan.
func (r *LearningPlanRepository) UpdatePlanFields(ctx context.Context, id primitive.ObjectID, title, description string) (*models.LearningPlan, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{
		"title":       title,
		"description": description,
	}}

	var plan models.LearningPlan
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&plan)
	if err != nil {
		logMissOrError(err, "plan_id", id, "Failed to update learning plan")
		return nil, err
	}

	logger.Log.WithField("plan_id", id.Hex()).Info("Learning plan updated successfully")
	return &plan, nil
}

// DeletePlan removes the plan. Deleting a missing plan is not an error.
func (r *LearningPlanRepository) DeletePlan(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("plan_id", id.Hex()).Error("Failed to delete learning plan")
		return err
	}

	logger.Log.WithFields(map[string]interface{}{
		"plan_id": id.Hex(),
		"deleted": result.DeletedCount,
	}).Info("Learning plan delete processed")
	return nil
}

// GetPlansByUser fetches every plan owned by userID in natural order.
func (r *LearningPlanRepository) GetPlansByUser(ctx context.Context, userID string) ([]models.LearningPlan, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to fetch user plans")
		return nil, err
	}
	defer cursor.Close(ctx)

	plans := []models.LearningPlan{}
	if err := cursor.All(ctx, &plans); err != nil {
		logger.Log.WithError(err).Error("Failed to decode user plans")
		return nil, err
	}

	logger.Log.WithFields(map[string]interface{}{
		"user_id": userID,
		"count":   len(plans),
	}).Info("User plans fetched successfully")
	return plans, nil
}

// AppendStep adds a step reference to the end of the plan's step list.
func (r *LearningPlanRepository) AppendStep(ctx context.Context, planID, stepID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": planID},
		bson.M{"$push": bson.M{"steps": stepID}},
	)
	if err != nil {
		logger.Log.WithError(err).WithFields(map[string]interface{}{
			"plan_id": planID.Hex(),
			"step_id": stepID.Hex(),
		}).Error("Failed to append step to plan")
		return err
	}
	return nil
}

// RemoveStep drops a step reference from whichever plan holds it.
func (r *LearningPlanRepository) RemoveStep(ctx context.Context, stepID primitive.ObjectID) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"steps": stepID},
		bson.M{"$pull": bson.M{"steps": stepID}},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("step_id", stepID.Hex()).Error("Failed to remove step from plans")
		return err
	}
	return nil
}

// ExistingPlanIDs returns the subset of ids that still have a plan document.
func (r *LearningPlanRepository) ExistingPlanIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]struct{}, error) {
	existing := make(map[primitive.ObjectID]struct{}, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to look up plan ids")
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		existing[doc.ID] = struct{}{}
	}
	return existing, cursor.Err()
}

func logMissOrError(err error, field string, id primitive.ObjectID, msg string) {
	entry := logger.Log.WithError(err).WithField(field, id.Hex())
	if errors.Is(err, mongo.ErrNoDocuments) {
		entry.Debug("Document not found")
		return
	}
	entry.Error(msg)
}
