package jobs

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	cashClosingAuditJob *CashClosingAuditJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	auditHandler auditHandler,
	auditSpec string,
	location *time.Location,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		cashClosingAuditJob: NewCashClosingAuditJob(auditHandler, auditSpec, location, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.cashClosingAuditJob.Start(); err != nil {
		return fmt.Errorf("failed to start cash closing audit job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.cashClosingAuditJob.Stop()
}
