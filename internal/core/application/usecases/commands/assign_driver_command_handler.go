package commands

import (
	"context"
	"errors"
	"time"

	"pharmadelivery/internal/core/domain/model/order"
	"pharmadelivery/internal/core/domain/services"
	"pharmadelivery/internal/pkg/errs"
)

var (
	// ErrNoOrderWaiting is returned when no order is in
	// ready_for_pickup without a driver.
	ErrNoOrderWaiting = errors.New("no order waiting for pickup")

	// ErrNoDriverAvailable is returned when every driver is busy,
	// offline or on break.
	ErrNoDriverAvailable = errors.New("no driver available")
)

// AssignDriverCommandHandler orchestrates the driver assignment process.
// Both the order and the driver row are fetched under transaction-scoped
// locks, so two concurrent assignments can never pick the same order or
// the same driver: the loser skips the locked rows and takes the next
// candidates or reports ErrNoOrderWaiting / ErrNoDriverAvailable.
//
// Example:
//
//	handler := NewAssignDriverCommandHandler(uowFactory)
//	err := handler.Handle(ctx, NewAssignDriverCommand())
//	if err != nil && !errors.Is(err, ErrNoOrderWaiting) && !errors.Is(err, ErrNoDriverAvailable) {
//	    log.Printf("assignment failed: %v", err)
//	}
type AssignDriverCommandHandler struct {
	uowFactory TransitionUoWFactory
	planner    services.NotificationPlanner
}

// NewAssignDriverCommandHandler creates a handler for driver assignment
// operations. Requires a TransitionUoWFactory for coordinating
// transactional updates across order, presence and outbox.
func NewAssignDriverCommandHandler(uowFactory TransitionUoWFactory) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewNotificationPlanner(),
	}
}

// Handle processes the driver assignment command. Takes the oldest
// ready_for_pickup order, claims the first available driver, marks them
// busy with the order, advances the order to assigned_driver and records
// the change in the ledger, all atomically.
func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
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
	aggregate, err := orderRepo.GetFirstReadyForPickup(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoOrderWaiting
	}
	if err != nil {
		return err
	}

	presenceRepo := uow.PresenceRepository()
	driverPresence, err := presenceRepo.ClaimFirstAvailable(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoDriverAvailable
	}
	if err != nil {
		return err
	}

	now := time.Now()
	if err = driverPresence.ClaimOrder(aggregate.ID(), now); err != nil {
		return err
	}
	if err = aggregate.AssignDriver(driverPresence.DriverID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = presenceRepo.Update(ctx, driverPresence); err != nil {
		return err
	}

	entry, err := order.NewHistoryEntry(
		aggregate.ID(), order.StatusReadyForPickup, order.StatusAssignedDriver,
		driverPresence.DriverID(), "",
		map[string]string{"driver_id": driverPresence.DriverID().String()}, now,
	)
	if err != nil {
		return err
	}
	if err = orderRepo.AppendHistory(ctx, entry); err != nil {
		return err
	}

	rows, err := h.planner.Plan(aggregate, order.StatusAssignedDriver, nil, now)
	if err != nil {
		return err
	}
	outbox := uow.NotificationOutbox()
	for _, row := range rows {
		if err = outbox.Enqueue(ctx, row); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
