package jobs

import (
	"context"
	"log/slog"
	"time"

	"pharmadelivery/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// dispatchBatchSize bounds how many outbox rows one tick processes.
const dispatchBatchSize = 50

// NotificationDispatchJob drains the notification outbox. Delivery is
// best-effort: a failed row stays pending and is retried on the next
// tick, it never blocks or rolls back the mutation that enqueued it.
type NotificationDispatchJob struct {
	outbox ports.NotificationOutbox
	sender ports.NotificationSender
	cron   *cron.Cron
	logger *slog.Logger
}

// NewNotificationDispatchJob creates a new job draining the outbox.
func NewNotificationDispatchJob(
	outbox ports.NotificationOutbox,
	sender ports.NotificationSender,
	logger *slog.Logger,
) *NotificationDispatchJob {
	return &NotificationDispatchJob{
		outbox: outbox,
		sender: sender,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "notification_dispatch_job"),
	}
}

// Start begins the dispatch job to run every five seconds.
func (j *NotificationDispatchJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		j.Dispatch(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification dispatch job started (running every 5 seconds)")
	return nil
}

// Dispatch processes one batch of pending rows.
func (j *NotificationDispatchJob) Dispatch(ctx context.Context) {
	pending, err := j.outbox.FetchPending(ctx, dispatchBatchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to fetch pending notifications", "error", err)
		return
	}

	for _, row := range pending {
		if err := j.sender.Send(ctx, row); err != nil {
			j.logger.WarnContext(ctx, "Notification delivery failed",
				"notification_id", row.ID().String(),
				"kind", row.Kind().String(),
				"error", err)
			continue
		}

		if err := j.outbox.MarkSent(ctx, row.ID(), time.Now()); err != nil {
			j.logger.ErrorContext(ctx, "Failed to mark notification sent",
				"notification_id", row.ID().String(),
				"error", err)
		}
	}
}

// Stop stops the dispatch job.
func (j *NotificationDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification dispatch job stopped")
}
