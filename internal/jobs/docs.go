// Package jobs provides scheduled background tasks for the pharmacy
// delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the delivery workflow.
//
// # Available Jobs
//
// 1. DriverAssignmentJob - Runs every second to pair the oldest order
// waiting for pickup with an available driver
// 2. NotificationDispatchJob - Drains the notification outbox every few
// seconds and hands pending rows to the delivery transport
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(assignDriverHandler, outbox, sender, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The assignment job ignores expected business errors (no waiting
//   order, no available driver)
// - The dispatch job logs per-row delivery failures and leaves failed
//   rows pending; they are retried on the next tick
package jobs
