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

// LearningStepRepository handles database operations related to plan steps
type LearningStepRepository struct {
	collection *mongo.Collection
}

func NewLearningStepRepository(db *mongo.Database) *LearningStepRepository {
	return &LearningStepRepository{
		collection: db.Collection("learning_steps"),
	}
}

// CreateStep inserts a step and assigns the generated ID to it.
func (r *LearningStepRepository) CreateStep(ctx context.Context, step *models.LearningStep) (*models.LearningStep, error) {
	result, err := r.collection.InsertOne(ctx, step)
	if err != nil {
		logger.Log.WithError(err).WithField("plan_id", step.PlanID.Hex()).Error("Failed to insert learning step")
		return nil, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted step ID")
		return nil, errors.New("unexpected inserted id type")
	}
	step.ID = insertedID

	logger.Log.WithFields(map[string]interface{}{
		"step_id": step.ID.Hex(),
		"plan_id": step.PlanID.Hex(),
	}).Info("Learning step created successfully")
	return step, nil
}

// GetStepByID returns mongo.ErrNoDocuments when no step matches.
func (r *LearningStepRepository) GetStepByID(ctx context.Context, id primitive.ObjectID) (*models.LearningStep, error) {
	var step models.LearningStep
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&step); err != nil {
		logMissOrError(err, "step_id", id, "Failed to find learning step by ID")
		return nil, err
	}
	return &step, nil
}

// SetCompleted overwrites the completed flag and returns the stored step.
func (r *LearningStepRepository) SetCompleted(ctx context.Context, id primitive.ObjectID, completed bool) (*models.LearningStep, error) {
	return r.findAndSet(ctx, id, bson.M{"completed": completed})
}

// UpdateStepFields overwrites title and content and returns the stored step.
func (r *LearningStepRepository) UpdateStepFields(ctx context.Context, id primitive.ObjectID, title, content string) (*models.LearningStep, error) {
	return r.findAndSet(ctx, id, bson.M{"title": title, "content": content})
}

func (r *LearningStepRepository) findAndSet(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.LearningStep, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var step models.LearningStep
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&step)
	if err != nil {
		logMissOrError(err, "step_id", id, "Failed to update learning step")
		return nil, err
	}

	logger.Log.WithField("step_id", id.Hex()).Info("Learning step updated successfully")
	return &step, nil
}

// DeleteStep removes the step. Deleting a missing step is not an error.
func (r *LearningStepRepository) DeleteStep(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		logger.Log.WithError(err).WithField("step_id", id.Hex()).Error("Failed to delete learning step")
		return err
	}

	logger.Log.WithField("step_id", id.Hex()).Info("Learning step delete processed")
	return nil
}

// GetStepsByPlan fetches all steps referencing planID in natural order.
func (r *LearningStepRepository) GetStepsByPlan(ctx context.Context, planID primitive.ObjectID) ([]models.LearningStep, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"plan_id": planID})
	if err != nil {
		logger.Log.WithError(err).WithField("plan_id", planID.Hex()).Error("Failed to fetch plan steps")
		return nil, err
	}
	defer cursor.Close(ctx)

	steps := []models.LearningStep{}
	if err := cursor.All(ctx, &steps); err != nil {
		logger.Log.WithError(err).Error("Failed to decode plan steps")
		return nil, err
	}
	return steps, nil
}

// DistinctPlanIDs lists every plan id referenced by at least one step.
func (r *LearningStepRepository) DistinctPlanIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	values, err := r.collection.Distinct(ctx, "plan_id", bson.M{})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to list referenced plan ids")
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// CountByPlanIDs counts steps referencing any of the given plans.
func (r *LearningStepRepository) CountByPlanIDs(ctx context.Context, planIDs []primitive.ObjectID) (int64, error) {
	if len(planIDs) == 0 {
		return 0, nil
	}
	return r.collection.CountDocuments(ctx, bson.M{"plan_id": bson.M{"$in": planIDs}})
}
