package commands

import (
	"errors"

	"pharmadelivery/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand triggers the assignment of an available driver to
// the oldest order waiting for pickup. Selection is first-available: the
// first online driver without a held order wins, with no proximity
// ranking.
//
// Example:
//
//	cmd := NewAssignDriverCommand()
//	handler := NewAssignDriverCommandHandler(uowFactory)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNoOrderWaiting):
//	    log.Println("no order waiting for pickup")
//	case errors.Is(err, ErrNoDriverAvailable):
//	    log.Println("all drivers are busy or offline")
//	}
type AssignDriverCommand struct {
	guard guard.ConstructorGuard
}

// NewAssignDriverCommand creates a new command to trigger driver
// assignment. This is a parameterless command that initiates the
// driver-order matching process.
func NewAssignDriverCommand() AssignDriverCommand {
	return AssignDriverCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignDriverCommandIsNotConstructed if validation fails.
func (c *AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}
