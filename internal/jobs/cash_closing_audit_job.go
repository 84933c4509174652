package jobs

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type auditHandler interface {
	Handle(ctx context.Context, cmd commands.AuditCashClosingsCommand) (commands.AuditResult, error)
}

// CashClosingAuditJob recomputes the previous business day's closings on a
// schedule.
type CashClosingAuditJob struct {
	handler  auditHandler
	spec     string
	location *time.Location
	cron     *cron.Cron
	logger   *zap.Logger
	now      func() time.Time
}

// NewCashClosingAuditJob creates the audit job. spec is a six-field cron
// expression with seconds.
func NewCashClosingAuditJob(
	handler auditHandler,
	spec string,
	location *time.Location,
	logger *zap.Logger,
) *CashClosingAuditJob {
	if location == nil {
		location = time.UTC
	}
	return &CashClosingAuditJob{
		handler:  handler,
		spec:     spec,
		location: location,
		cron:     cron.New(cron.WithSeconds(), cron.WithLocation(location)),
		logger:   logger.With(zap.String("component", "cash_closing_audit_job")),
		now:      time.Now,
	}
}

func (j *CashClosingAuditJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() {
		_ = j.RunOnce(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("cash closing audit job started", zap.String("spec", j.spec))
	return nil
}

// Stop waits for a running audit to finish.
func (j *CashClosingAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("cash closing audit job stopped")
}

// RunOnce audits the business day before now.
func (j *CashClosingAuditJob) RunOnce(ctx context.Context) error {
	day := j.now().In(j.location).AddDate(0, 0, -1)
	cmd, err := commands.NewAuditCashClosingsCommand(day)
	if err != nil {
		return err
	}

	result, err := j.handler.Handle(ctx, cmd)
	metrics.CashClosingsAuditedTotal.Add(float64(result.Checked))
	metrics.CashClosingsCorrectedTotal.Add(float64(len(result.Corrected)))
	if err != nil {
		j.logger.Error("cash closing audit failed",
			zap.String("date", cmd.Date().Format(time.DateOnly)),
			zap.Int("checked", result.Checked),
			zap.Error(err),
		)
		return err
	}

	for _, id := range result.Corrected {
		j.logger.Warn("cash closing totals corrected",
			zap.String("date", cmd.Date().Format(time.DateOnly)),
			zap.String("cash_closing_id", id.String()),
		)
	}
	j.logger.Info("cash closing audit finished",
		zap.String("date", cmd.Date().Format(time.DateOnly)),
		zap.Int("checked", result.Checked),
		zap.Int("corrected", len(result.Corrected)),
	)
	return nil
}
