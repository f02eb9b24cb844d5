// Package memory holds map-backed stores with the same contracts as the MongoDB
// repositories. Misses are reported as mongo.ErrNoDocuments so callers translate them
// exactly as they do for the real store. Listing follows insertion order.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/Dias221467/SkillSharing_Backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PlanStore struct {
	mu    sync.RWMutex
	plans map[primitive.ObjectID]models.LearningPlan
	order []primitive.ObjectID
}

func NewPlanStore() *PlanStore {
	return &PlanStore{plans: make(map[primitive.ObjectID]models.LearningPlan)}
}

func (s *PlanStore) CreatePlan(_ context.Context, plan *models.LearningPlan) (*models.LearningPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan.ID = primitive.NewObjectID()
	if plan.Steps == nil {
		plan.Steps = []primitive.ObjectID{}
	}
	s.plans[plan.ID] = clonePlan(*plan)
	s.order = append(s.order, plan.ID)
	return plan, nil
}

func (s *PlanStore) GetPlanByID(_ context.Context, id primitive.ObjectID) (*models.LearningPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plan, ok := s.plans[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	out := clonePlan(plan)
	return &out, nil
}

func (s *PlanStore) UpdatePlanFields(_ context.Context, id primitive.ObjectID, title, description string) (*models.LearningPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan, ok := s.plans[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	plan.Title = title
	plan.Description = description
	s.plans[id] = plan
	out := clonePlan(plan)
	return &out, nil
}

func (s *PlanStore) DeletePlan(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plans[id]; ok {
		delete(s.plans, id)
		s.order = dropID(s.order, id)
	}
	return nil
}

func (s *PlanStore) GetPlansByUser(_ context.Context, userID string) ([]models.LearningPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.LearningPlan{}
	for _, id := range s.order {
		if plan, ok := s.plans[id]; ok && plan.UserID == userID {
			out = append(out, clonePlan(plan))
		}
	}
	return out, nil
}

// AppendStep is a no-op for a missing plan, like an UpdateOne that matches nothing.
func (s *PlanStore) AppendStep(_ context.Context, planID, stepID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan, ok := s.plans[planID]
	if !ok {
		return nil
	}
	plan.Steps = append(append([]primitive.ObjectID{}, plan.Steps...), stepID)
	s.plans[planID] = plan
	return nil
}

func (s *PlanStore) RemoveStep(_ context.Context, stepID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, plan := range s.plans {
		kept := make([]primitive.ObjectID, 0, len(plan.Steps))
		for _, ref := range plan.Steps {
			if ref != stepID {
				kept = append(kept, ref)
			}
		}
		plan.Steps = kept
		s.plans[id] = plan
	}
	return nil
}

func (s *PlanStore) ExistingPlanIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	existing := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := s.plans[id]; ok {
			existing[id] = struct{}{}
		}
	}
	return existing, nil
}

// dropID removes id from an insertion-order list.
func dropID(order []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	if i := slices.Index(order, id); i >= 0 {
		return slices.Delete(order, i, i+1)
	}
	return order
}

func clonePlan(p models.LearningPlan) models.LearningPlan {
	p.Steps = append([]primitive.ObjectID{}, p.Steps...)
	return p
}

type StepStore struct {
	mu    sync.RWMutex
	steps map[primitive.ObjectID]models.LearningStep
	order []primitive.ObjectID
}

func NewStepStore() *StepStore {
	return &StepStore{steps: make(map[primitive.ObjectID]models.LearningStep)}
}

func (s *StepStore) CreateStep(_ context.Context, step *models.LearningStep) (*models.LearningStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	step.ID = primitive.NewObjectID()
	s.steps[step.ID] = *step
	s.order = append(s.order, step.ID)
	return step, nil
}

func (s *StepStore) GetStepByID(_ context.Context, id primitive.ObjectID) (*models.LearningStep, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	step, ok := s.steps[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &step, nil
}

func (s *StepStore) SetCompleted(_ context.Context, id primitive.ObjectID, completed bool) (*models.LearningStep, error) {
	return s.mutate(id, func(step *models.LearningStep) { step.Completed = completed })
}

func (s *StepStore) UpdateStepFields(_ context.Context, id primitive.ObjectID, title, content string) (*models.LearningStep, error) {
	return s.mutate(id, func(step *models.LearningStep) {
		step.Title = title
		step.Content = content
	})
}

func (s *StepStore) mutate(id primitive.ObjectID, apply func(*models.LearningStep)) (*models.LearningStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	step, ok := s.steps[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	apply(&step)
	s.steps[id] = step
	return &step, nil
}

func (s *StepStore) DeleteStep(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.steps[id]; ok {
		delete(s.steps, id)
		s.order = dropID(s.order, id)
	}
	return nil
}

func (s *StepStore) GetStepsByPlan(_ context.Context, planID primitive.ObjectID) ([]models.LearningStep, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.LearningStep{}
	for _, id := range s.order {
		if step, ok := s.steps[id]; ok && step.PlanID == planID {
			out = append(out, step)
		}
	}
	return out, nil
}

func (s *StepStore) DistinctPlanIDs(_ context.Context) ([]primitive.ObjectID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[primitive.ObjectID]struct{})
	ids := []primitive.ObjectID{}
	for _, id := range s.order {
		step, ok := s.steps[id]
		if !ok {
			continue
		}
		if _, dup := seen[step.PlanID]; !dup {
			seen[step.PlanID] = struct{}{}
			ids = append(ids, step.PlanID)
		}
	}
	return ids, nil
}

func (s *StepStore) CountByPlanIDs(_ context.Context, planIDs []primitive.ObjectID) (int64, error) {
	wanted := make(map[primitive.ObjectID]struct{}, len(planIDs))
	for _, id := range planIDs {
		wanted[id] = struct{}{}
	}
	return s.count(func(step models.LearningStep) bool {
		_, ok := wanted[step.PlanID]
		return ok
	}), nil
}

func (s *StepStore) count(match func(models.LearningStep) bool) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, step := range s.steps {
		if match(step) {
			n++
		}
	}
	return n
}

type NotificationStore struct {
	mu            sync.RWMutex
	notifications map[primitive.ObjectID]models.Notification
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{notifications: make(map[primitive.ObjectID]models.Notification)}
}

func (s *NotificationStore) CreateNotification(_ context.Context, notif *models.Notification) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	notif.ID = primitive.NewObjectID()
	s.notifications[notif.ID] = *notif
	return notif, nil
}

func (s *NotificationStore) GetUserNotifications(_ context.Context, userID string) ([]models.Notification, error) {
	return s.newestFirst(func(n models.Notification) bool { return n.UserID == userID }), nil
}

func (s *NotificationStore) GetUserNotificationsByRead(_ context.Context, userID string, read bool) ([]models.Notification, error) {
	return s.newestFirst(func(n models.Notification) bool { return n.UserID == userID && n.Read == read }), nil
}

func (s *NotificationStore) CountByUserAndRead(_ context.Context, userID string, read bool) (int64, error) {
	return int64(len(s.newestFirst(func(n models.Notification) bool { return n.UserID == userID && n.Read == read }))), nil
}

func (s *NotificationStore) SetRead(_ context.Context, id primitive.ObjectID, userID string, read bool) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	notif, ok := s.notifications[id]
	if !ok || notif.UserID != userID {
		return nil, mongo.ErrNoDocuments
	}
	notif.Read = read
	s.notifications[id] = notif
	return &notif, nil
}

func (s *NotificationStore) newestFirst(match func(models.Notification) bool) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Notification{}
	for _, n := range s.notifications {
		if match(n) {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.Hex() > out[j].ID.Hex()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
