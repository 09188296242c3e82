package jobs

import (
	"context"
	"errors"
	"log/slog"

	"pharmadelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DriverAssignmentJob pairs orders waiting for pickup with available
// drivers. Runs every second so a driver going online is claimed
// quickly.
type DriverAssignmentJob struct {
	handler commands.AssignDriverCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDriverAssignmentJob creates a new job for assigning drivers.
// Uses AssignDriverCommandHandler to process one assignment per tick.
func NewDriverAssignmentJob(handler commands.AssignDriverCommandHandler, logger *slog.Logger) *DriverAssignmentJob {
	return &DriverAssignmentJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "driver_assignment_job"),
	}
}

// Start begins the driver assignment job to run every second.
func (j *DriverAssignmentJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewAssignDriverCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An empty queue and an empty driver pool are normal states.
			if !errors.Is(err, commands.ErrNoOrderWaiting) && !errors.Is(err, commands.ErrNoDriverAvailable) {
				j.logger.ErrorContext(ctx, "Driver assignment job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Driver assignment job started (running every second)")
	return nil
}

// Stop stops the driver assignment job.
func (j *DriverAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Driver assignment job stopped")
}
