// Package ports defines the contracts between the domain layer and
// infrastructure. Repositories, the notification outbox and the outbound
// event interfaces live here, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates
// and their status-history ledger.
type OrderRepository interface {
	// Add persists a new order aggregate together with its items.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetFirstReadyForPickup retrieves the oldest order waiting for a
	// driver: status ready_for_pickup and no driver assigned yet.
	// Returns errs.ObjectNotFoundError when none is waiting.
	GetFirstReadyForPickup(ctx context.Context) (*order.Order, error)

	// AppendHistory adds a ledger entry. Entries are append-only; past
	// entries are never rewritten through this method.
	AppendHistory(ctx context.Context, entry *order.HistoryEntry) error

	// GetNewestHistory retrieves the most recent ledger entry of an
	// order. Only this entry's note may still be amended.
	GetNewestHistory(ctx context.Context, orderID kernel.UUID) (*order.HistoryEntry, error)

	// UpdateHistoryNotes persists an amended note on an existing ledger
	// entry. All other columns stay untouched.
	UpdateHistoryNotes(ctx context.Context, entry *order.HistoryEntry) error
}
