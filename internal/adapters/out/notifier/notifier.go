// Package notifier provides the default delivery transport for
// notifications and driver location pings: structured log lines. It
// stands in until a push or web-socket integration is configured, and
// keeps the outbox draining in every environment.
package notifier

import (
	"context"
	"log/slog"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/notification"
)

// SlogNotificationSender writes each notification to the log.
type SlogNotificationSender struct {
	logger *slog.Logger
}

// NewSlogNotificationSender creates a log-backed notification sender.
func NewSlogNotificationSender(logger *slog.Logger) *SlogNotificationSender {
	return &SlogNotificationSender{logger: logger.With("component", "notification_sender")}
}

// Send logs the notification. It never fails.
func (s *SlogNotificationSender) Send(ctx context.Context, n *notification.Notification) error {
	s.logger.InfoContext(ctx, "Notification delivered",
		"notification_id", n.ID().String(),
		"order_id", n.OrderID().String(),
		"recipient_type", n.RecipientType().String(),
		"recipient_id", n.RecipientID().String(),
		"kind", n.Kind().String(),
		"title", n.Title(),
	)
	return nil
}

// SlogLocationBroadcaster writes driver location pings to the log.
type SlogLocationBroadcaster struct {
	logger *slog.Logger
}

// NewSlogLocationBroadcaster creates a log-backed location broadcaster.
func NewSlogLocationBroadcaster(logger *slog.Logger) *SlogLocationBroadcaster {
	return &SlogLocationBroadcaster{logger: logger.With("component", "location_broadcaster")}
}

// Broadcast logs the ping. It never fails.
func (b *SlogLocationBroadcaster) Broadcast(ctx context.Context, driverID kernel.UUID, location kernel.Location) error {
	b.logger.InfoContext(ctx, "Driver location",
		"driver_id", driverID.String(),
		"lat", location.Lat(),
		"lng", location.Lng(),
	)
	return nil
}
