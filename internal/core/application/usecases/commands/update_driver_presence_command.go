package commands

import (
	"errors"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/presence"
	"pharmadelivery/internal/pkg/guard"
)

var ErrUpdateDriverPresenceCommandIsNotConstructed = errors.New(
	"UpdateDriverPresenceCommand must be created via NewUpdateDriverPresenceCommand constructor",
)

// UpdateDriverPresenceCommand represents a driver's status report:
// availability and, optionally, a location ping.
//
// Example:
//
//	cmd, err := NewUpdateDriverPresenceCommand(driverID, presence.StatusOnline, &location)
//	if err != nil {
//	    return err
//	}
//	handler := NewUpdateDriverPresenceCommandHandler(uowFactory, broadcaster, logger)
//	return handler.Handle(ctx, cmd)
type UpdateDriverPresenceCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	status   presence.Status
	location *kernel.Location

	guard guard.ConstructorGuard
}

// NewUpdateDriverPresenceCommand creates a command carrying a driver's
// status report. The location is optional.
func NewUpdateDriverPresenceCommand(
	driverID kernel.UUID,
	status presence.Status,
	location *kernel.Location,
) (UpdateDriverPresenceCommand, error) {
	cmd := UpdateDriverPresenceCommand{
		location: location,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDriverID(driverID),
		cmd.setStatus(status),
	); err != nil {
		return UpdateDriverPresenceCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateDriverPresenceCommandIsNotConstructed if validation
// fails.
func (c UpdateDriverPresenceCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverPresenceCommandIsNotConstructed)
}

// DriverID returns the reporting driver.
func (c UpdateDriverPresenceCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Status returns the reported availability.
func (c UpdateDriverPresenceCommand) Status() presence.Status {
	return c.status
}

// Location returns the reported location, or nil when the report carried
// none.
func (c UpdateDriverPresenceCommand) Location() *kernel.Location {
	return c.location
}

func (c *UpdateDriverPresenceCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *UpdateDriverPresenceCommand) setStatus(status presence.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
