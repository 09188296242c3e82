package ports

import (
	"context"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/notification"
)

// NotificationOutbox persists notifications next to the order mutation
// that triggered them. Enqueue runs inside the mutation's transaction;
// the fetch and mark methods are used by the dispatch job outside of it.
type NotificationOutbox interface {
	// Enqueue persists an unsent notification row.
	Enqueue(ctx context.Context, n *notification.Notification) error

	// FetchPending returns up to limit unsent rows, oldest first.
	FetchPending(ctx context.Context, limit int) ([]*notification.Notification, error)

	// MarkSent stamps a row as delivered.
	MarkSent(ctx context.Context, id kernel.UUID, at time.Time) error
}

// NotificationSender delivers a notification to its recipient through an
// external transport (push, e-mail, web socket). Delivery is best-effort:
// callers log failures and retry later, they never roll anything back.
type NotificationSender interface {
	Send(ctx context.Context, n *notification.Notification) error
}

// LocationBroadcaster publishes driver location pings to live
// subscribers, a map view for example. Fire-and-forget: callers ignore
// failures beyond logging.
type LocationBroadcaster interface {
	Broadcast(ctx context.Context, driverID kernel.UUID, location kernel.Location) error
}
