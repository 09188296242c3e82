package presence

import (
	"errors"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/errs"
)

var (
	// ErrPresenceIsNotConstructed is returned when a Presence instance was
	// not created through NewPresence or RestorePresence.
	ErrPresenceIsNotConstructed = errors.New("Presence must be created via NewPresence constructor")
)

// Presence is the aggregate tracking one driver's availability. The driver
// ID doubles as the aggregate identity: there is exactly one presence row
// per driver.
type Presence struct {
	driverID       kernel.UUID
	status         Status
	location       *kernel.Location
	currentOrderID *kernel.UUID
	lastSeenAt     time.Time

	isConstructed bool
}

// NewPresence creates the first presence record for a driver. Drivers
// start offline and without a held order; the first status report flips
// them online.
func NewPresence(driverID kernel.UUID, now time.Time) (*Presence, error) {
	if err := driverID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}

	return &Presence{
		driverID:      driverID,
		status:        StatusOffline,
		lastSeenAt:    now,
		isConstructed: true,
	}, nil
}

// RestorePresence reconstructs a presence record from persistence.
func RestorePresence(
	driverID kernel.UUID,
	status Status,
	location *kernel.Location,
	currentOrderID *kernel.UUID,
	lastSeenAt time.Time,
) (*Presence, error) {
	if err := driverID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if currentOrderID != nil && status != StatusBusy {
		return nil, errs.NewValueIsInvalidError("status: driver holding an order must be busy")
	}

	return &Presence{
		driverID:       driverID,
		status:         status,
		location:       location,
		currentOrderID: currentOrderID,
		lastSeenAt:     lastSeenAt,
		isConstructed:  true,
	}, nil
}

// Validate ensures the Presence instance was properly constructed.
func (p *Presence) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPresenceIsNotConstructed
	}
	return nil
}

// DriverID returns the owning driver's identifier.
func (p *Presence) DriverID() kernel.UUID {
	return p.driverID
}

// Status returns the current availability status.
func (p *Presence) Status() Status {
	return p.status
}

// Location returns the last reported location, or nil if the driver never
// reported one.
func (p *Presence) Location() *kernel.Location {
	return p.location
}

// CurrentOrderID returns the held order's ID, or nil when the driver is
// free.
func (p *Presence) CurrentOrderID() *kernel.UUID {
	return p.currentOrderID
}

// LastSeenAt returns when the driver last reported status or location.
func (p *Presence) LastSeenAt() time.Time {
	return p.lastSeenAt
}

// IsAvailable reports whether the dispatcher may hand this driver a new
// order.
func (p *Presence) IsAvailable() bool {
	return p.status.IsDispatchable() && p.currentOrderID == nil
}

// SetStatus applies a driver-reported status change. Going offline drops
// the held order so it can be re-dispatched. While an order is held the
// only reachable states are busy (no-op) and offline.
func (p *Presence) SetStatus(status Status, now time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}

	if p.currentOrderID != nil && status != StatusBusy && status != StatusOffline {
		return errs.NewConflictError("driver holds an active order")
	}

	if status == StatusOffline {
		p.currentOrderID = nil
	}
	p.status = status
	p.lastSeenAt = now
	return nil
}

// UpdateLocation records a location ping.
func (p *Presence) UpdateLocation(location kernel.Location, now time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}

	p.location = &location
	p.lastSeenAt = now
	return nil
}

// ClaimOrder hands the driver an order and marks them busy. It fails when
// the driver is not available.
func (p *Presence) ClaimOrder(orderID kernel.UUID, now time.Time) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	if !p.IsAvailable() {
		return errs.NewConflictError("driver is not available")
	}

	p.currentOrderID = &orderID
	p.status = StatusBusy
	p.lastSeenAt = now
	return nil
}

// ReleaseOrder drops the held order after delivery or cancellation and
// puts the driver back online. Releasing an idle driver is a no-op.
func (p *Presence) ReleaseOrder(now time.Time) {
	if p.currentOrderID == nil {
		return
	}

	p.currentOrderID = nil
	if p.status == StatusBusy {
		p.status = StatusOnline
	}
	p.lastSeenAt = now
}
