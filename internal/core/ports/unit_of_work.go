package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each
// request/command. This ensures proper isolation between concurrent
// operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and hands out repositories bound to
// the same transaction. Client code must explicitly manage transaction
// lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// PresenceRepository returns a PresenceRepository bound to the
	// current transaction.
	PresenceRepository() PresenceRepository

	// StaffRepository returns a StaffRepository bound to the current
	// transaction.
	StaffRepository() StaffRepository

	// BranchRepository returns a BranchRepository bound to the current
	// transaction.
	BranchRepository() BranchRepository

	// NotificationOutbox returns a NotificationOutbox bound to the
	// current transaction.
	NotificationOutbox() NotificationOutbox
}
