package jobs

import (
	"context"
	"fmt"

	"github.com/Dias221467/SkillSharing_Backend/pkg/metrics"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StepRefSource reports which plans are referenced by stored steps.
type StepRefSource interface {
	DistinctPlanIDs(ctx context.Context) ([]primitive.ObjectID, error)
	CountByPlanIDs(ctx context.Context, planIDs []primitive.ObjectID) (int64, error)
}

// PlanLookup tells which of the given plan ids still exist.
type PlanLookup interface {
	ExistingPlanIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]struct{}, error)
}

// StepAuditor counts steps left behind by deleted plans. Plan deletion does
// not cascade, so these accumulate; the auditor only reports them.
type StepAuditor struct {
	Steps   StepRefSource
	Plans   PlanLookup
	Metrics *metrics.Metrics
}

// NewStepAuditor creates a new instance of StepAuditor. m may be nil.
func NewStepAuditor(steps StepRefSource, plans PlanLookup, m *metrics.Metrics) *StepAuditor {
	return &StepAuditor{
		Steps:   steps,
		Plans:   plans,
		Metrics: m,
	}
}

// Run returns the number of steps whose plan no longer exists.
func (a *StepAuditor) Run(ctx context.Context) (int64, error) {
	referenced, err := a.Steps.DistinctPlanIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list referenced plans: %w", err)
	}
	if len(referenced) == 0 {
		a.report(0, 0)
		return 0, nil
	}

	existing, err := a.Plans.ExistingPlanIDs(ctx, referenced)
	if err != nil {
		return 0, fmt.Errorf("failed to look up plans: %w", err)
	}

	var missing []primitive.ObjectID
	for _, id := range referenced {
		if _, ok := existing[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		a.report(0, 0)
		return 0, nil
	}

	dangling, err := a.Steps.CountByPlanIDs(ctx, missing)
	if err != nil {
		return 0, fmt.Errorf("failed to count dangling steps: %w", err)
	}

	a.report(dangling, len(missing))
	return dangling, nil
}

func (a *StepAuditor) report(dangling int64, plans int) {
	if a.Metrics != nil {
		a.Metrics.DanglingSteps.Set(float64(dangling))
	}

	entry := logrus.WithFields(logrus.Fields{
		"danglingSteps": dangling,
		"missingPlans":  plans,
	})
	if dangling > 0 {
		entry.Warn("Step audit found steps of deleted plans")
		return
	}
	entry.Info("Step audit completed")
}
