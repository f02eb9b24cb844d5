package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// auditTimeout bounds a single audit run.
const auditTimeout = 5 * time.Minute

// Auditor is a periodic consistency check.
type Auditor interface {
	Run(ctx context.Context) (int64, error)
}

// StartAuditCron schedules auditor on the given cron spec and starts the
// scheduler. An empty spec disables the job and returns a nil scheduler.
func StartAuditCron(spec string, auditor Auditor) (*cron.Cron, error) {
	if spec == "" {
		logrus.Info("Step audit disabled")
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
		defer cancel()

		if _, err := auditor.Run(ctx); err != nil {
			logrus.WithError(err).Error("Step audit failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid audit schedule %q: %w", spec, err)
	}

	c.Start()
	logrus.WithField("schedule", spec).Info("Step audit scheduled")
	return c, nil
}
