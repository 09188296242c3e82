package order

import (
	"fmt"

	"pharmadelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state
// machine with defined transitions to ensure orders follow the delivery
// workflow.
//
// State transitions:
//
//	pending -> assigned_pharmacist -> preparing -> ready_for_pickup
//	        -> assigned_driver -> picked_up -> in_transit -> delivered
//
// cancelled and returned are reachable as side exits from any non-terminal
// state. delivered, cancelled, and returned are terminal: no outgoing
// transitions. Re-applying the current status is rejected so duplicate
// history rows cannot be produced.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status. It is also the
	// from-status of the creation history entry, persisted as an empty string.
	StatusUnknown Status = iota

	// StatusPending is the initial status: the order exists but no pharmacist
	// has been assigned yet.
	StatusPending

	// StatusAssignedPharmacist indicates a pharmacist was assigned to prepare
	// the order.
	StatusAssignedPharmacist

	// StatusPreparing indicates the pharmacist is picking and packing items.
	StatusPreparing

	// StatusReadyForPickup indicates the order awaits a driver.
	StatusReadyForPickup

	// StatusAssignedDriver indicates a driver was claimed for the order.
	StatusAssignedDriver

	// StatusPickedUp indicates the driver collected the order at the source
	// branch.
	StatusPickedUp

	// StatusInTransit indicates the order is on the way to its destination.
	StatusInTransit

	// StatusDelivered indicates successful delivery. Terminal.
	StatusDelivered

	// StatusCancelled indicates the order was cancelled before delivery.
	// Terminal.
	StatusCancelled

	// StatusReturned indicates the order came back to the source branch.
	// Terminal.
	StatusReturned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:            "unknown",
		StatusPending:            "pending",
		StatusAssignedPharmacist: "assigned_pharmacist",
		StatusPreparing:          "preparing",
		StatusReadyForPickup:     "ready_for_pickup",
		StatusAssignedDriver:     "assigned_driver",
		StatusPickedUp:           "picked_up",
		StatusInTransit:          "in_transit",
		StatusDelivered:          "delivered",
		StatusCancelled:          "cancelled",
		StatusReturned:           "returned",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:            "pending",
		StatusAssignedPharmacist: "assigned_pharmacist",
		StatusPreparing:          "preparing",
		StatusReadyForPickup:     "ready_for_pickup",
		StatusAssignedDriver:     "assigned_driver",
		StatusPickedUp:           "picked_up",
		StatusInTransit:          "in_transit",
		StatusDelivered:          "delivered",
		StatusCancelled:          "cancelled",
		StatusReturned:           "returned",
	}
}

// getSuccessor maps each status to the next step of the main workflow.
// Side exits to cancelled/returned are handled separately.
func getSuccessor() map[Status]Status {
	return map[Status]Status{
		StatusPending:            StatusAssignedPharmacist,
		StatusAssignedPharmacist: StatusPreparing,
		StatusPreparing:          StatusReadyForPickup,
		StatusReadyForPickup:     StatusAssignedDriver,
		StatusAssignedDriver:     StatusPickedUp,
		StatusPickedUp:           StatusInTransit,
		StatusInTransit:          StatusDelivered,
	}
}

// StatusFromString parses the persisted/API representation of a status.
// Returns an error for unrecognized values; the empty string is not a valid
// status here (the history ledger handles its own "" sentinel).
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name of the status, or "unknown".
// Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusReturned
}

// IsPharmacistStage reports whether pharmacists own advancing from this
// status.
func (s Status) IsPharmacistStage() bool {
	switch s {
	case StatusPending, StatusAssignedPharmacist, StatusPreparing, StatusReadyForPickup:
		return true
	default:
		return false
	}
}

// IsDriverStage reports whether drivers own advancing from this status.
func (s Status) IsDriverStage() bool {
	switch s {
	case StatusAssignedDriver, StatusPickedUp, StatusInTransit:
		return true
	default:
		return false
	}
}

// IsAssignmentStatus reports whether the status is only entered through an
// assignment side effect (pharmacist or driver being set), never through a
// plain status update by non-privileged staff.
func (s Status) IsAssignmentStatus() bool {
	return s == StatusAssignedPharmacist || s == StatusAssignedDriver
}

// CanTransitionTo reports whether target is a legal next state.
//
// Rules:
//   - terminal states have no outgoing edges
//   - the current status is never a legal target (no duplicate history rows)
//   - cancelled and returned are reachable from every non-terminal state
//   - otherwise target must be the workflow successor
func (s Status) CanTransitionTo(target Status) bool {
	if s.IsTerminal() || target == s {
		return false
	}

	if target == StatusCancelled || target == StatusReturned {
		return true
	}

	return getSuccessor()[s] == target
}

// TransitionTo returns the target status if the edge is legal, or an
// InvalidTransitionError leaving the caller's state untouched.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return StatusUnknown, err
	}

	if !s.CanTransitionTo(target) {
		return StatusUnknown, errs.NewInvalidTransitionError(s.String(), target.String())
	}

	return target, nil
}
