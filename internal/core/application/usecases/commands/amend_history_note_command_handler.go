package commands

import (
	"context"

	"pharmadelivery/internal/core/domain/services"
)

// AmendHistoryNoteCommandHandler replaces the note on the most recent
// ledger entry of an order. Only the note column changes; the entry's
// statuses, actor and timestamp are append-only. Amendment is gated to
// the order's creator, its assigned staff and privileged roles.
type AmendHistoryNoteCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.TransitionPolicy
}

// NewAmendHistoryNoteCommandHandler creates a handler for ledger note
// amendments.
func NewAmendHistoryNoteCommandHandler(uowFactory OrderUoWFactory) AmendHistoryNoteCommandHandler {
	return AmendHistoryNoteCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewTransitionPolicy(),
	}
}

// Handle processes the amendment. Fails with errs.ErrForbidden when the
// actor has no relationship to the order, and errs.ObjectNotFoundError
// when the order has no ledger entries.
func (h AmendHistoryNoteCommandHandler) Handle(ctx context.Context, cmd AmendHistoryNoteCommand) error {
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

	if err = h.policy.AuthorizeAmend(aggregate, cmd.Actor()); err != nil {
		return err
	}

	entry, err := orderRepo.GetNewestHistory(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	entry.AmendNotes(cmd.Notes())
	if err = orderRepo.UpdateHistoryNotes(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
