package jobs

import (
	"fmt"
	"log/slog"

	"pharmadelivery/internal/core/application/usecases/commands"
	"pharmadelivery/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	driverAssignmentJob     *DriverAssignmentJob
	notificationDispatchJob *NotificationDispatchJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the assignment handler and the outbox surface as dependencies.
func NewJobManager(
	assignDriverHandler commands.AssignDriverCommandHandler,
	outbox ports.NotificationOutbox,
	sender ports.NotificationSender,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		driverAssignmentJob:     NewDriverAssignmentJob(assignDriverHandler, logger),
		notificationDispatchJob: NewNotificationDispatchJob(outbox, sender, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.driverAssignmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start driver assignment job: %w", err)
	}

	if err := jm.notificationDispatchJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.driverAssignmentJob.Stop()
		return fmt.Errorf("failed to start notification dispatch job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.notificationDispatchJob.Stop()
	jm.driverAssignmentJob.Stop()
}
