package scheduler

import (
	"context"
	"time"

	"github.com/learnhub/learnhub-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// DefaultPurgeSchedule runs the purge daily at 3:00.
const DefaultPurgeSchedule = "0 3 * * *"

const purgeTimeout = 5 * time.Minute

// AuditPurger deletes password reset audit rows past their retention.
type AuditPurger interface {
	PurgeAudit(ctx context.Context) (int64, error)
}

// ResetAuditScheduler periodically purges old password reset audit rows.
type ResetAuditScheduler struct {
	cron     *cron.Cron
	purger   AuditPurger
	schedule string
}

func NewResetAuditScheduler(purger AuditPurger, schedule string) *ResetAuditScheduler {
	if schedule == "" {
		schedule = DefaultPurgeSchedule
	}
	return &ResetAuditScheduler{
		cron:     cron.New(),
		purger:   purger,
		schedule: schedule,
	}
}

// Start registers the purge job and starts the cron runner
func (s *ResetAuditScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runPurge); err != nil {
		logger.Error("Failed to add cron job for reset audit purge", err, map[string]interface{}{
			"schedule": s.schedule,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Reset audit scheduler started", map[string]interface{}{
		"schedule": s.schedule,
	})
	return nil
}

// Stop waits for a running purge to finish
func (s *ResetAuditScheduler) Stop() {
	logger.Info("Stopping reset audit scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Reset audit scheduler stopped")
}

func (s *ResetAuditScheduler) runPurge() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	logger.Info("Starting scheduled reset audit purge")
	deleted, err := s.purger.PurgeAudit(ctx)
	if err != nil {
		logger.Error("Failed to purge reset audits from scheduler", err)
		return
	}
	logger.Info("Scheduled reset audit purge finished", map[string]interface{}{
		"deleted": deleted,
	})
}
