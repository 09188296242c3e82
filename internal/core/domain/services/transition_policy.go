package services

import (
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/order"
	"pharmadelivery/internal/core/domain/model/staff"
	"pharmadelivery/internal/pkg/errs"
)

// TransitionPolicy is a domain service deciding whether an actor may
// request a given order status change. It gates on role and ownership
// only; whether the edge itself is legal stays with the Order aggregate.
//
// Business rules:
//   - admins and super admins bypass all gating
//   - pharmacists may act only on orders assigned to them, while the
//     order is in the preparation half of the workflow
//   - drivers may act only on orders assigned to them, while the order
//     is in the delivery half of the workflow
//   - feeders may only cancel orders they created themselves
//   - assignment statuses are entered through the assignment engine,
//     never through a plain status update (admins excepted)
//   - everyone else is rejected
//
// Example usage:
//
//	policy := services.NewTransitionPolicy()
//	if err := policy.Authorize(ord, order.StatusPreparing, actor); err != nil {
//	    // errs.ErrForbidden: actor may not request this change
//	    return err
//	}
//	// proceed with ord.TransitionTo(...)
type TransitionPolicy struct{}

// NewTransitionPolicy creates a new TransitionPolicy instance.
func NewTransitionPolicy() TransitionPolicy {
	return TransitionPolicy{}
}

// Authorize returns nil when the actor may request moving the order to
// target, and a Forbidden error otherwise.
func (p TransitionPolicy) Authorize(o *order.Order, target order.Status, actor staff.Actor) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	if actor.Role().IsPrivileged() {
		return nil
	}

	if target.IsAssignmentStatus() {
		return errs.NewForbiddenError(actor.Role().String(), "set assignment status directly")
	}

	switch actor.Role() {
	case staff.RolePharmacist:
		return p.authorizeOwner(o.PharmacistID(), actor, o.Status().IsPharmacistStage(), target)
	case staff.RoleDriver:
		return p.authorizeOwner(o.DriverID(), actor, o.Status().IsDriverStage(), target)
	case staff.RoleFeeder:
		return p.authorizeCreatorCancel(o, target, actor)
	default:
		return errs.NewForbiddenError(actor.Role().String(), "change order status")
	}
}

// AuthorizeAmend returns nil when the actor may rewrite the newest
// ledger note of the order: its creator, the assigned pharmacist or
// driver, and privileged roles. Everyone else is rejected.
func (p TransitionPolicy) AuthorizeAmend(o *order.Order, actor staff.Actor) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	if actor.Role().IsPrivileged() {
		return nil
	}
	if o.CreatedBy().IsEqual(actor.ID()) {
		return nil
	}
	if o.PharmacistID() != nil && o.PharmacistID().IsEqual(actor.ID()) {
		return nil
	}
	if o.DriverID() != nil && o.DriverID().IsEqual(actor.ID()) {
		return nil
	}

	return errs.NewForbiddenError(actor.Role().String(), "amend ledger notes of this order")
}

// authorizeCreatorCancel lets an order's creator cancel it; any other
// status change stays off limits. Whether the cancel edge is still open
// is the aggregate's call.
func (p TransitionPolicy) authorizeCreatorCancel(o *order.Order, target order.Status, actor staff.Actor) error {
	if target != order.StatusCancelled {
		return errs.NewForbiddenError(actor.Role().String(), "change status "+target.String())
	}
	if !o.CreatedBy().IsEqual(actor.ID()) {
		return errs.NewForbiddenError(actor.Role().String(), "cancel an order created by someone else")
	}
	return nil
}

func (p TransitionPolicy) authorizeOwner(
	assignedID *kernel.UUID,
	actor staff.Actor,
	inStage bool,
	target order.Status,
) error {
	if assignedID == nil || !assignedID.IsEqual(actor.ID()) {
		return errs.NewForbiddenError(actor.Role().String(), "change an order assigned to someone else")
	}
	if !inStage {
		return errs.NewForbiddenError(actor.Role().String(), "change status "+target.String()+" at this stage")
	}
	return nil
}
