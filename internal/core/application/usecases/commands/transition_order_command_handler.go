package commands

import (
	"context"
	"errors"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/order"
	"pharmadelivery/internal/core/domain/services"
	"pharmadelivery/internal/pkg/errs"
)

// TransitionOrderCommandHandler handles validated order status changes.
// Applies the role gate, mutates the aggregate, appends the ledger entry,
// fans out notifications through the outbox and releases the driver on
// terminal statuses, all within one transaction.
//
// Example:
//
//	handler := NewTransitionOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("transition failed: %w", err)
//	}
type TransitionOrderCommandHandler struct {
	uowFactory TransitionUoWFactory
	policy     services.TransitionPolicy
	planner    services.NotificationPlanner
}

// NewTransitionOrderCommandHandler creates a handler for status change
// operations. Requires a TransitionUoWFactory for coordinating
// transactional updates across repositories.
func NewTransitionOrderCommandHandler(uowFactory TransitionUoWFactory) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewTransitionPolicy(),
		planner:    services.NewNotificationPlanner(),
	}
}

// Handle processes the transition command. Authorization and edge
// validation failures surface unchanged; on success the status write,
// ledger append, outbox rows and presence release commit atomically.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.policy.Authorize(aggregate, cmd.Target(), cmd.Actor()); err != nil {
		return err
	}

	now := time.Now()
	from := aggregate.Status()
	if err = aggregate.TransitionTo(cmd.Target(), now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	entry, err := order.NewHistoryEntry(
		aggregate.ID(), from, cmd.Target(), cmd.Actor().ID(), cmd.Notes(), nil, now,
	)
	if err != nil {
		return err
	}
	if err = orderRepo.AppendHistory(ctx, entry); err != nil {
		return err
	}

	if err = h.fanOut(ctx, uow, aggregate, cmd.Target(), now); err != nil {
		return err
	}

	if cmd.Target().IsTerminal() {
		if err = h.releaseDriver(ctx, uow, aggregate, now); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h TransitionOrderCommandHandler) fanOut(
	ctx context.Context,
	uow TransitionUoW,
	aggregate *order.Order,
	target order.Status,
	now time.Time,
) error {
	var availableDriverIDs []kernel.UUID
	if target == order.StatusReadyForPickup {
		ids, err := uow.PresenceRepository().ListAvailableDriverIDs(ctx)
		if err != nil {
			return err
		}
		availableDriverIDs = ids
	}

	rows, err := h.planner.Plan(aggregate, target, availableDriverIDs, now)
	if err != nil {
		return err
	}

	outbox := uow.NotificationOutbox()
	for _, row := range rows {
		if err = outbox.Enqueue(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

// releaseDriver frees the assigned driver when the order reaches a
// terminal status. A driver that already went offline has no held order
// left, which is fine.
func (h TransitionOrderCommandHandler) releaseDriver(
	ctx context.Context,
	uow TransitionUoW,
	aggregate *order.Order,
	now time.Time,
) error {
	if aggregate.DriverID() == nil {
		return nil
	}

	presenceRepo := uow.PresenceRepository()
	driverPresence, err := presenceRepo.Get(ctx, *aggregate.DriverID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if driverPresence.CurrentOrderID() == nil ||
		!driverPresence.CurrentOrderID().IsEqual(aggregate.ID()) {
		return nil
	}

	driverPresence.ReleaseOrder(now)
	return presenceRepo.Update(ctx, driverPresence)
}
