package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dias221467/SkillSharing_Backend/internal/dto"
	"github.com/Dias221467/SkillSharing_Backend/internal/models"
	"github.com/Dias221467/SkillSharing_Backend/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

// PlanRepository is the learning_plans storage used by LearningPlanService.
type PlanRepository interface {
	CreatePlan(ctx context.Context, plan *models.LearningPlan) (*models.LearningPlan, error)
	GetPlanByID(ctx context.Context, id primitive.ObjectID) (*models.LearningPlan, error)
	UpdatePlanFields(ctx context.Context, id primitive.ObjectID, title, description string) (*models.LearningPlan, error)
	DeletePlan(ctx context.Context, id primitive.ObjectID) error
	GetPlansByUser(ctx context.Context, userID string) ([]models.LearningPlan, error)
	AppendStep(ctx context.Context, planID, stepID primitive.ObjectID) error
	RemoveStep(ctx context.Context, stepID primitive.ObjectID) error
}

// StepRepository is the learning_steps storage used by LearningPlanService.
type StepRepository interface {
	CreateStep(ctx context.Context, step *models.LearningStep) (*models.LearningStep, error)
	GetStepByID(ctx context.Context, id primitive.ObjectID) (*models.LearningStep, error)
	SetCompleted(ctx context.Context, id primitive.ObjectID, completed bool) (*models.LearningStep, error)
	UpdateStepFields(ctx context.Context, id primitive.ObjectID, title, content string) (*models.LearningStep, error)
	DeleteStep(ctx context.Context, id primitive.ObjectID) error
	GetStepsByPlan(ctx context.Context, planID primitive.ObjectID) ([]models.LearningStep, error)
}

// LearningPlanService encapsulates the business logic for plans and their steps.
type LearningPlanService struct {
	plans PlanRepository
	steps StepRepository
}

// NewLearningPlanService creates a new instance of LearningPlanService.
func NewLearningPlanService(plans PlanRepository, steps StepRepository) *LearningPlanService {
	return &LearningPlanService{
		plans: plans,
		steps: steps,
	}
}

// CreatePlan validates the request and stores a new plan owned by userID.
func (s *LearningPlanService) CreatePlan(ctx context.Context, req dto.CreateLearningPlanRequest, userID string) (*models.LearningPlan, error) {
	fields, err := normalizePlan(req.Title, req.Description)
	if err != nil {
		return nil, err
	}

	plan := &models.LearningPlan{
		Title:       fields.Title,
		Description: fields.Description,
		UserID:      userID,
		CreatedAt:   models.Today(),
		Steps:       []primitive.ObjectID{},
	}

	created, err := s.plans.CreatePlan(ctx, plan)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Service failed to create plan")
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}
	return created, nil
}

// GetPlan retrieves a plan by its ID.
func (s *LearningPlanService) GetPlan(ctx context.Context, planID string) (*models.LearningPlan, error) {
	objID, ok := parseID(planID)
	if !ok {
		return nil, notFound("plan", planID)
	}

	plan, err := s.plans.GetPlanByID(ctx, objID)
	if err != nil {
		return nil, translate(err, "plan", planID)
	}
	return plan, nil
}

// UpdatePlan overwrites title and description; owner and creation date stay as stored.
func (s *LearningPlanService) UpdatePlan(ctx context.Context, planID string, req dto.CreateLearningPlanRequest) (*models.LearningPlan, error) {
	fields, err := normalizePlan(req.Title, req.Description)
	if err != nil {
		return nil, err
	}

	objID, ok := parseID(planID)
	if !ok {
		return nil, notFound("plan", planID)
	}

	plan, err := s.plans.UpdatePlanFields(ctx, objID, fields.Title, fields.Description)
	if err != nil {
		return nil, translate(err, "plan", planID)
	}
	return plan, nil
}

// DeletePlan removes a plan if it exists. Its steps are left in place.
func (s *LearningPlanService) DeletePlan(ctx context.Context, planID string) error {
	objID, ok := parseID(planID)
	if !ok {
		return nil
	}

	if err := s.plans.DeletePlan(ctx, objID); err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	return nil
}

// GetPlansByUser lists the plans owned by userID.
func (s *LearningPlanService) GetPlansByUser(ctx context.Context, userID string) ([]models.LearningPlan, error) {
	plans, err := s.plans.GetPlansByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch plans: %w", err)
	}
	if plans == nil {
		plans = []models.LearningPlan{}
	}
	return plans, nil
}

// CalculateProgress returns the percentage of completed steps, 0 for a plan without steps.
// Both counts come from one read of the step list, so the result stays within [0, 100].
func (s *LearningPlanService) CalculateProgress(ctx context.Context, planID string) (float64, error) {
	objID, ok := parseID(planID)
	if !ok {
		return 0, notFound("plan", planID)
	}

	var (
		planErr error
		steps   []models.LearningStep
	)
	var g errgroup.Group
	g.Go(func() error {
		if _, err := s.plans.GetPlanByID(ctx, objID); err != nil {
			planErr = translate(err, "plan", planID)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		steps, err = s.steps.GetStepsByPlan(ctx, objID)
		if err != nil {
			return fmt.Errorf("failed to fetch steps: %w", err)
		}
		return nil
	})
	stepsErr := g.Wait()

	if planErr != nil {
		return 0, planErr
	}
	if stepsErr != nil {
		return 0, stepsErr
	}
	if len(steps) == 0 {
		return 0.0, nil
	}

	var completed int
	for _, step := range steps {
		if step.Completed {
			completed++
		}
	}
	return float64(completed) / float64(len(steps)) * 100.0, nil
}

// AddStep validates the request and appends a new incomplete step to the plan.
func (s *LearningPlanService) AddStep(ctx context.Context, planID string, req dto.AddStepRequest) (*models.LearningStep, error) {
	fields, err := normalizeStep(req.Title, req.Content)
	if err != nil {
		return nil, err
	}

	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	step, err := s.steps.CreateStep(ctx, &models.LearningStep{
		Title:     fields.Title,
		Content:   fields.Content,
		Completed: false,
		PlanID:    plan.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create step: %w", err)
	}

	// No rollback: on failure the step stays stored and still lists under the plan.
	if err := s.plans.AppendStep(ctx, plan.ID, step.ID); err != nil {
		return nil, fmt.Errorf("failed to link step to plan: %w", err)
	}
	return step, nil
}

// GetStep retrieves a step by its ID.
func (s *LearningPlanService) GetStep(ctx context.Context, stepID string) (*models.LearningStep, error) {
	objID, ok := parseID(stepID)
	if !ok {
		return nil, notFound("step", stepID)
	}

	step, err := s.steps.GetStepByID(ctx, objID)
	if err != nil {
		return nil, translate(err, "step", stepID)
	}
	return step, nil
}

// UpdateStepStatus sets the completed flag. Both directions are allowed.
func (s *LearningPlanService) UpdateStepStatus(ctx context.Context, stepID string, req dto.UpdateStepStatusRequest) (*models.LearningStep, error) {
	objID, ok := parseID(stepID)
	if !ok {
		return nil, notFound("step", stepID)
	}

	step, err := s.steps.SetCompleted(ctx, objID, req.Completed)
	if err != nil {
		return nil, translate(err, "step", stepID)
	}
	return step, nil
}

// UpdateStep overwrites title and content; completion and plan reference are untouched.
func (s *LearningPlanService) UpdateStep(ctx context.Context, stepID string, req dto.AddStepRequest) (*models.LearningStep, error) {
	fields, err := normalizeStep(req.Title, req.Content)
	if err != nil {
		return nil, err
	}

	objID, ok := parseID(stepID)
	if !ok {
		return nil, notFound("step", stepID)
	}

	step, err := s.steps.UpdateStepFields(ctx, objID, fields.Title, fields.Content)
	if err != nil {
		return nil, translate(err, "step", stepID)
	}
	return step, nil
}

// DeleteStep removes a step if it exists and unlinks it from its plan.
func (s *LearningPlanService) DeleteStep(ctx context.Context, stepID string) error {
	objID, ok := parseID(stepID)
	if !ok {
		return nil
	}

	if err := s.steps.DeleteStep(ctx, objID); err != nil {
		return fmt.Errorf("failed to delete step: %w", err)
	}
	if err := s.plans.RemoveStep(ctx, objID); err != nil {
		return fmt.Errorf("failed to unlink step: %w", err)
	}
	return nil
}

// GetStepsByPlan lists the steps of an existing plan.
func (s *LearningPlanService) GetStepsByPlan(ctx context.Context, planID string) ([]models.LearningStep, error) {
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	steps, err := s.steps.GetStepsByPlan(ctx, plan.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch steps: %w", err)
	}
	if steps == nil {
		steps = []models.LearningStep{}
	}
	return steps, nil
}

// parseID reports false for identifiers that cannot name any stored document.
func parseID(id string) (primitive.ObjectID, bool) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return objID, true
}

// translate turns a missing document into NotFoundError and wraps anything else.
func translate(err error, resource, id string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return notFound(resource, id)
	}
	return fmt.Errorf("failed to load %s: %w", resource, err)
}
