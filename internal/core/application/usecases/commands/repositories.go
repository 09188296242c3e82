// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"pharmadelivery/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler declares the smallest composition it needs.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PresenceRepoFactory provides access to the presence repository
	// within a transaction.
	PresenceRepoFactory interface {
		PresenceRepository() ports.PresenceRepository
	}

	// StaffRepoFactory provides access to the staff repository within a
	// transaction.
	StaffRepoFactory interface {
		StaffRepository() ports.StaffRepository
	}

	// BranchRepoFactory provides access to the branch repository within
	// a transaction.
	BranchRepoFactory interface {
		BranchRepository() ports.BranchRepository
	}

	// OutboxFactory provides access to the notification outbox within a
	// transaction.
	OutboxFactory interface {
		NotificationOutbox() ports.NotificationOutbox
	}

	// CreateOrderUoW manages transactions for order creation: the order
	// itself, reference checks and the pharmacist auto-assignment.
	CreateOrderUoW interface {
		TxManager
		OrderRepoFactory
		StaffRepoFactory
		BranchRepoFactory
		OutboxFactory
	}

	// CreateOrderUoWFactory creates new CreateOrderUoW instances.
	CreateOrderUoWFactory interface {
		Create() CreateOrderUoW
	}

	// TransitionUoW manages transactions for status changes: order
	// mutation, ledger append, presence release and outbox fan-out.
	TransitionUoW interface {
		TxManager
		OrderRepoFactory
		PresenceRepoFactory
		OutboxFactory
	}

	// TransitionUoWFactory creates new TransitionUoW instances.
	TransitionUoWFactory interface {
		Create() TransitionUoW
	}

	// PresenceUoW manages transactions for presence-only operations.
	PresenceUoW interface {
		TxManager
		PresenceRepoFactory
	}

	// PresenceUoWFactory creates new PresenceUoW instances.
	PresenceUoWFactory interface {
		Create() PresenceUoW
	}

	// OrderUoW manages transactions for order-only operations, such as
	// amending the newest ledger note.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new OrderUoW instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)
