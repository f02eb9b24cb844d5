package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Dias221467/SkillSharing_Backend/internal/models"
)

type StoreSuite struct {
	suite.Suite
	ctx   context.Context
	plans *PlanStore
	steps *StepStore
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.plans = NewPlanStore()
	s.steps = NewStepStore()
}

func (s *StoreSuite) TestPlanLifecycle() {
	plan, err := s.plans.CreatePlan(s.ctx, &models.LearningPlan{Title: "Go", UserID: "u1"})
	s.Require().NoError(err)
	s.False(plan.ID.IsZero())
	s.NotNil(plan.Steps)

	updated, err := s.plans.UpdatePlanFields(s.ctx, plan.ID, "Rust", "d")
	s.Require().NoError(err)
	s.Equal("Rust", updated.Title)
	s.Equal("u1", updated.UserID)

	s.Require().NoError(s.plans.DeletePlan(s.ctx, plan.ID))
	s.Require().NoError(s.plans.DeletePlan(s.ctx, plan.ID))

	_, err = s.plans.GetPlanByID(s.ctx, plan.ID)
	s.ErrorIs(err, mongo.ErrNoDocuments)
	_, err = s.plans.UpdatePlanFields(s.ctx, plan.ID, "x", "")
	s.ErrorIs(err, mongo.ErrNoDocuments)
}

func (s *StoreSuite) TestReturnedPlansAreCopies() {
	plan, err := s.plans.CreatePlan(s.ctx, &models.LearningPlan{Title: "Go", UserID: "u1"})
	s.Require().NoError(err)

	fetched, err := s.plans.GetPlanByID(s.ctx, plan.ID)
	s.Require().NoError(err)
	fetched.Title = "mutated"
	fetched.Steps = append(fetched.Steps, primitive.NewObjectID())

	again, err := s.plans.GetPlanByID(s.ctx, plan.ID)
	s.Require().NoError(err)
	s.Equal("Go", again.Title)
	s.Empty(again.Steps)
}

func (s *StoreSuite) TestPlansByUserKeepInsertionOrder() {
	for _, title := range []string{"a", "b", "c"} {
		_, err := s.plans.CreatePlan(s.ctx, &models.LearningPlan{Title: title, UserID: "u1"})
		s.Require().NoError(err)
	}
	_, err := s.plans.CreatePlan(s.ctx, &models.LearningPlan{Title: "x", UserID: "u2"})
	s.Require().NoError(err)

	plans, err := s.plans.GetPlansByUser(s.ctx, "u1")
	s.Require().NoError(err)
	s.Require().Len(plans, 3)
	s.Equal("a", plans[0].Title)
	s.Equal("c", plans[2].Title)

	none, err := s.plans.GetPlansByUser(s.ctx, "ghost")
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}

func (s *StoreSuite) TestStepReferences() {
	plan, err := s.plans.CreatePlan(s.ctx, &models.LearningPlan{Title: "Go", UserID: "u1"})
	s.Require().NoError(err)

	first, second := primitive.NewObjectID(), primitive.NewObjectID()
	s.Require().NoError(s.plans.AppendStep(s.ctx, plan.ID, first))
	s.Require().NoError(s.plans.AppendStep(s.ctx, plan.ID, second))
	s.Require().NoError(s.plans.RemoveStep(s.ctx, first))

	fetched, err := s.plans.GetPlanByID(s.ctx, plan.ID)
	s.Require().NoError(err)
	s.Equal([]primitive.ObjectID{second}, fetched.Steps)
}

func (s *StoreSuite) TestStepListingAndAudit() {
	planA, planB := primitive.NewObjectID(), primitive.NewObjectID()
	for i, planID := range []primitive.ObjectID{planA, planA, planA, planB} {
		step, err := s.steps.CreateStep(s.ctx, &models.LearningStep{Title: "s", PlanID: planID})
		s.Require().NoError(err)
		if i == 0 {
			_, err = s.steps.SetCompleted(s.ctx, step.ID, true)
			s.Require().NoError(err)
		}
	}

	listed, err := s.steps.GetStepsByPlan(s.ctx, planA)
	s.Require().NoError(err)
	s.Require().Len(listed, 3)
	s.True(listed[0].Completed)
	s.False(listed[1].Completed)

	ids, err := s.steps.DistinctPlanIDs(s.ctx)
	s.Require().NoError(err)
	s.Equal([]primitive.ObjectID{planA, planB}, ids)

	n, err := s.steps.CountByPlanIDs(s.ctx, []primitive.ObjectID{planB})
	s.Require().NoError(err)
	s.EqualValues(1, n)
}

func (s *StoreSuite) TestDeleteForgetsInsertionOrder() {
	var planIDs, stepIDs []primitive.ObjectID
	for _, title := range []string{"a", "b", "c"} {
		plan, err := s.plans.CreatePlan(s.ctx, &models.LearningPlan{Title: title, UserID: "u1"})
		s.Require().NoError(err)
		planIDs = append(planIDs, plan.ID)

		step, err := s.steps.CreateStep(s.ctx, &models.LearningStep{Title: title, PlanID: plan.ID})
		s.Require().NoError(err)
		stepIDs = append(stepIDs, step.ID)
	}

	s.Require().NoError(s.plans.DeletePlan(s.ctx, planIDs[1]))
	s.Require().NoError(s.steps.DeleteStep(s.ctx, stepIDs[0]))
	s.Require().NoError(s.steps.DeleteStep(s.ctx, stepIDs[0]))

	s.Equal([]primitive.ObjectID{planIDs[0], planIDs[2]}, s.plans.order)
	s.Equal([]primitive.ObjectID{stepIDs[1], stepIDs[2]}, s.steps.order)

	plans, err := s.plans.GetPlansByUser(s.ctx, "u1")
	s.Require().NoError(err)
	s.Require().Len(plans, 2)
	s.Equal("a", plans[0].Title)
	s.Equal("c", plans[1].Title)
}

func (s *StoreSuite) TestStepMissing() {
	id := primitive.NewObjectID()

	_, err := s.steps.GetStepByID(s.ctx, id)
	s.ErrorIs(err, mongo.ErrNoDocuments)
	_, err = s.steps.SetCompleted(s.ctx, id, true)
	s.ErrorIs(err, mongo.ErrNoDocuments)
	_, err = s.steps.UpdateStepFields(s.ctx, id, "t", "c")
	s.ErrorIs(err, mongo.ErrNoDocuments)
	s.NoError(s.steps.DeleteStep(s.ctx, id))
}

func TestNotificationStoreOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewNotificationStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, kind := range []string{"LIKE", "COMMENT", "FOLLOW"} {
		_, err := store.CreateNotification(ctx, &models.Notification{
			UserID:    "bob",
			Type:      kind,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	list, err := store.GetUserNotifications(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "FOLLOW", list[0].Type)
	assert.Equal(t, "LIKE", list[2].Type)

	_, err = store.SetRead(ctx, list[0].ID, "alice", true)
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)

	_, err = store.SetRead(ctx, list[0].ID, "bob", true)
	require.NoError(t, err)

	unread, err := store.CountByUserAndRead(ctx, "bob", false)
	require.NoError(t, err)
	assert.EqualValues(t, 2, unread)
}
