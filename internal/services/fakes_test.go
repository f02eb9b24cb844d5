package services

import (
	"context"
	"errors"

	"github.com/Dias221467/SkillSharing_Backend/internal/models"
	"github.com/Dias221467/SkillSharing_Backend/internal/repository/memory"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errStoreDown = errors.New("connection refused")

// flakyPlans wraps the in-memory plan store to inject write failures.
type flakyPlans struct {
	*memory.PlanStore
	failWrite  bool
	failAppend bool
}

func (f *flakyPlans) AppendStep(ctx context.Context, planID, stepID primitive.ObjectID) error {
	if f.failAppend {
		return errStoreDown
	}
	return f.PlanStore.AppendStep(ctx, planID, stepID)
}

func (f *flakyPlans) CreatePlan(ctx context.Context, plan *models.LearningPlan) (*models.LearningPlan, error) {
	if f.failWrite {
		return nil, errStoreDown
	}
	return f.PlanStore.CreatePlan(ctx, plan)
}

// flakySteps can fail listings or run afterList once a listing has been read,
// standing in for a writer that lands mid-request.
type flakySteps struct {
	*memory.StepStore
	failList  bool
	afterList func()
}

func (f *flakySteps) GetStepsByPlan(ctx context.Context, planID primitive.ObjectID) ([]models.LearningStep, error) {
	if f.failList {
		return nil, errStoreDown
	}
	steps, err := f.StepStore.GetStepsByPlan(ctx, planID)
	if f.afterList != nil {
		f.afterList()
	}
	return steps, err
}
