package commands

import (
	"errors"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/order"
	"pharmadelivery/internal/core/domain/model/staff"
	"pharmadelivery/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand represents a request to move an order to a new
// status on behalf of an actor. Whether the edge is legal and whether the
// actor may request it is decided by the domain during handling.
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand(orderID, order.StatusPreparing, actor, "")
//	if err != nil {
//	    return err
//	}
//	handler := NewTransitionOrderCommandHandler(uowFactory)
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrForbidden):
//	    // actor may not perform this change
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // edge not allowed from the current status
//	}
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	actor   staff.Actor
	notes   string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to change an order's
// status. Validates the order ID, the target status and the actor.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	target order.Status,
	actor staff.Actor,
	notes string,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setActor(actor),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTransitionOrderCommandIsNotConstructed if validation fails.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

// Actor returns who requested the change.
func (c TransitionOrderCommand) Actor() staff.Actor {
	return c.actor
}

// Notes returns the free-text note to attach to the ledger entry.
func (c TransitionOrderCommand) Notes() string {
	return c.notes
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *TransitionOrderCommand) setActor(actor staff.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
