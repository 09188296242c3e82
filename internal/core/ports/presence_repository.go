package ports

import (
	"context"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/presence"
)

// PresenceRepository defines the persistence contract for driver presence
// records. There is at most one record per driver.
type PresenceRepository interface {
	// Add persists the first presence record of a driver.
	Add(ctx context.Context, aggregate *presence.Presence) error

	// Update persists changes to an existing presence record.
	Update(ctx context.Context, aggregate *presence.Presence) error

	// Get retrieves a driver's presence record.
	// Returns errs.ObjectNotFoundError when the driver never reported.
	Get(ctx context.Context, driverID kernel.UUID) (*presence.Presence, error)

	// ClaimFirstAvailable locks and returns the first driver that is
	// online and holds no order. The row stays locked until the
	// surrounding transaction ends, so two concurrent claims can never
	// pick the same driver: the loser skips the locked row and takes the
	// next candidate, or gets errs.ObjectNotFoundError when none is
	// left.
	ClaimFirstAvailable(ctx context.Context) (*presence.Presence, error)

	// ListAvailableDriverIDs returns the IDs of every driver that is
	// online and holds no order. Used for the ready-for-pickup
	// broadcast; no locks are taken.
	ListAvailableDriverIDs(ctx context.Context) ([]kernel.UUID, error)
}
