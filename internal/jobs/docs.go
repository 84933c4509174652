// Package jobs provides scheduled background tasks of the fulfillment service.
//
// Jobs are built on github.com/robfig/cron/v3 and started together through
// JobManager:
//
//	jobManager, err := jobs.NewJobManager(auditHandler, "0 15 2 * * *", location, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// CashClosingAuditJob recomputes the cash closings of the previous business
// day from their details and reports the ones whose stored totals had drifted.
//
// # Scheduling
//
// Cron specs include a leading seconds field. The business day is computed in
// the configured location, so a run shortly after midnight audits the day that
// just ended.
package jobs
