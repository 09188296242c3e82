package commands

import (
	"errors"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/staff"
	"pharmadelivery/internal/pkg/errs"
	"pharmadelivery/internal/pkg/guard"
)

var ErrAmendHistoryNoteCommandIsNotConstructed = errors.New(
	"AmendHistoryNoteCommand must be created via NewAmendHistoryNoteCommand constructor",
)

// AmendHistoryNoteCommand represents a request to replace the note on an
// order's most recent ledger entry, for late-arriving context. Older
// entries stay immutable.
type AmendHistoryNoteCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   staff.Actor
	notes   string

	guard guard.ConstructorGuard
}

// NewAmendHistoryNoteCommand creates a command to amend the newest
// ledger note of an order. The note must be non-empty.
func NewAmendHistoryNoteCommand(
	orderID kernel.UUID,
	actor staff.Actor,
	notes string,
) (AmendHistoryNoteCommand, error) {
	cmd := AmendHistoryNoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setNotes(notes),
	); err != nil {
		return AmendHistoryNoteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAmendHistoryNoteCommandIsNotConstructed if validation fails.
func (c AmendHistoryNoteCommand) Validate() error {
	return c.guard.Validate(ErrAmendHistoryNoteCommandIsNotConstructed)
}

// OrderID returns the order whose newest ledger note is amended.
func (c AmendHistoryNoteCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who requested the amendment.
func (c AmendHistoryNoteCommand) Actor() staff.Actor {
	return c.actor
}

// Notes returns the replacement note.
func (c AmendHistoryNoteCommand) Notes() string {
	return c.notes
}

func (c *AmendHistoryNoteCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AmendHistoryNoteCommand) setActor(actor staff.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *AmendHistoryNoteCommand) setNotes(notes string) error {
	if notes == "" {
		return errs.NewValueIsRequiredError("notes")
	}

	c.notes = notes
	return nil
}
