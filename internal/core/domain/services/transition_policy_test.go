package services_test

import (
	"testing"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/order"
	"pharmadelivery/internal/core/domain/model/staff"
	"pharmadelivery/internal/core/domain/services"
	"pharmadelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActor(t *testing.T, role staff.Role) staff.Actor {
	t.Helper()
	actor, err := staff.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return actor
}

func actorWithID(t *testing.T, id kernel.UUID, role staff.Role) staff.Actor {
	t.Helper()
	actor, err := staff.NewActor(id, role)
	require.NoError(t, err)
	return actor
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewItem("Ibuprofen 400mg", "IBU-400", 1, decimal.RequireFromString("5.00"))
	require.NoError(t, err)
	destination := kernel.NewUUID()
	o, err := order.NewOrder(
		kernel.NewUUID(), "INV-77", kernel.NewUUID(), order.BranchToBranch,
		&destination, nil, "", kernel.NewUUID(), []order.Item{item}, time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestTransitionPolicy_Authorize(t *testing.T) {
	policy := services.NewTransitionPolicy()

	t.Run("admin bypasses all gating", func(t *testing.T) {
		o := newTestOrder(t)

		err := policy.Authorize(o, order.StatusCancelled, newActor(t, staff.RoleAdmin))

		require.NoError(t, err)
	})

	t.Run("super admin may set assignment statuses directly", func(t *testing.T) {
		o := newTestOrder(t)

		err := policy.Authorize(o, order.StatusAssignedPharmacist, newActor(t, staff.RoleSuperAdmin))

		require.NoError(t, err)
	})

	t.Run("assigned pharmacist may advance preparation", func(t *testing.T) {
		o := newTestOrder(t)
		pharmacistID := kernel.NewUUID()
		require.NoError(t, o.AssignPharmacist(pharmacistID))

		err := policy.Authorize(o, order.StatusPreparing, actorWithID(t, pharmacistID, staff.RolePharmacist))

		require.NoError(t, err)
	})

	t.Run("pharmacist not assigned to the order is rejected", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AssignPharmacist(kernel.NewUUID()))

		err := policy.Authorize(o, order.StatusPreparing, newActor(t, staff.RolePharmacist))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("pharmacist on an unassigned order is rejected", func(t *testing.T) {
		o := newTestOrder(t)

		err := policy.Authorize(o, order.StatusCancelled, newActor(t, staff.RolePharmacist))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("pharmacist cannot act in the delivery half", func(t *testing.T) {
		o := newTestOrder(t)
		pharmacistID := kernel.NewUUID()
		require.NoError(t, o.AssignPharmacist(pharmacistID))
		require.NoError(t, o.TransitionTo(order.StatusPreparing, time.Now()))
		require.NoError(t, o.TransitionTo(order.StatusReadyForPickup, time.Now()))
		require.NoError(t, o.AssignDriver(kernel.NewUUID()))

		err := policy.Authorize(o, order.StatusPickedUp, actorWithID(t, pharmacistID, staff.RolePharmacist))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("assigned driver may advance delivery", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AssignPharmacist(kernel.NewUUID()))
		require.NoError(t, o.TransitionTo(order.StatusPreparing, time.Now()))
		require.NoError(t, o.TransitionTo(order.StatusReadyForPickup, time.Now()))
		driverID := kernel.NewUUID()
		require.NoError(t, o.AssignDriver(driverID))

		err := policy.Authorize(o, order.StatusPickedUp, actorWithID(t, driverID, staff.RoleDriver))

		require.NoError(t, err)
	})

	t.Run("driver cannot act before being assigned", func(t *testing.T) {
		o := newTestOrder(t)

		err := policy.Authorize(o, order.StatusPickedUp, newActor(t, staff.RoleDriver))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("assignment statuses are reserved for the assignment engine", func(t *testing.T) {
		o := newTestOrder(t)
		pharmacistID := kernel.NewUUID()
		require.NoError(t, o.AssignPharmacist(pharmacistID))

		err := policy.Authorize(o, order.StatusAssignedDriver, actorWithID(t, pharmacistID, staff.RolePharmacist))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("feeder may cancel their own order", func(t *testing.T) {
		o := newTestOrder(t)

		err := policy.Authorize(o, order.StatusCancelled, actorWithID(t, o.CreatedBy(), staff.RoleFeeder))

		require.NoError(t, err)
	})

	t.Run("feeder cannot cancel someone else's order", func(t *testing.T) {
		o := newTestOrder(t)

		err := policy.Authorize(o, order.StatusCancelled, newActor(t, staff.RoleFeeder))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("feeder cannot advance their own order", func(t *testing.T) {
		o := newTestOrder(t)

		err := policy.Authorize(o, order.StatusPreparing, actorWithID(t, o.CreatedBy(), staff.RoleFeeder))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("unconstructed order is rejected", func(t *testing.T) {
		err := policy.Authorize(&order.Order{}, order.StatusPreparing, newActor(t, staff.RoleAdmin))

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})
}

func TestTransitionPolicy_AuthorizeAmend(t *testing.T) {
	policy := services.NewTransitionPolicy()

	t.Run("admin may amend any order", func(t *testing.T) {
		o := newTestOrder(t)

		err := policy.AuthorizeAmend(o, newActor(t, staff.RoleAdmin))

		require.NoError(t, err)
	})

	t.Run("creator may amend", func(t *testing.T) {
		o := newTestOrder(t)

		err := policy.AuthorizeAmend(o, actorWithID(t, o.CreatedBy(), staff.RoleFeeder))

		require.NoError(t, err)
	})

	t.Run("assigned pharmacist may amend", func(t *testing.T) {
		o := newTestOrder(t)
		pharmacistID := kernel.NewUUID()
		require.NoError(t, o.AssignPharmacist(pharmacistID))

		err := policy.AuthorizeAmend(o, actorWithID(t, pharmacistID, staff.RolePharmacist))

		require.NoError(t, err)
	})

	t.Run("assigned driver may amend", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AssignPharmacist(kernel.NewUUID()))
		require.NoError(t, o.TransitionTo(order.StatusPreparing, time.Now()))
		require.NoError(t, o.TransitionTo(order.StatusReadyForPickup, time.Now()))
		driverID := kernel.NewUUID()
		require.NoError(t, o.AssignDriver(driverID))

		err := policy.AuthorizeAmend(o, actorWithID(t, driverID, staff.RoleDriver))

		require.NoError(t, err)
	})

	t.Run("unrelated staff is rejected", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AssignPharmacist(kernel.NewUUID()))

		err := policy.AuthorizeAmend(o, newActor(t, staff.RoleDriver))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}
