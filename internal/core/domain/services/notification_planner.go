package services

import (
	"fmt"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/notification"
	"pharmadelivery/internal/core/domain/model/order"
)

// NotificationPlanner is a domain service computing the recipient fan-out
// for a committed order transition. It only builds the outbox rows; the
// caller persists them in the same transaction as the transition and a
// relay job delivers them later.
//
// Fan-out rules:
//   - pharmacist assigned: notify the pharmacist
//   - driver assigned: notify the driver
//   - ready_for_pickup: broadcast to every available driver
//   - picked_up and delivered: notify the order creator
//   - cancelled: notify whichever of pharmacist and driver is assigned
//
// Example usage:
//
//	planner := services.NewNotificationPlanner()
//	rows, err := planner.Plan(ord, order.StatusReadyForPickup, driverIDs, time.Now())
//	if err != nil {
//	    return err
//	}
//	for _, row := range rows {
//	    _ = outbox.Enqueue(ctx, row)
//	}
type NotificationPlanner struct{}

// NewNotificationPlanner creates a new NotificationPlanner instance.
func NewNotificationPlanner() NotificationPlanner {
	return NotificationPlanner{}
}

// Plan returns the notifications triggered by the order entering target.
// availableDriverIDs is only consulted for the ready_for_pickup
// broadcast; pass nil otherwise.
func (p NotificationPlanner) Plan(
	o *order.Order,
	target order.Status,
	availableDriverIDs []kernel.UUID,
	now time.Time,
) ([]*notification.Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	var out []*notification.Notification
	add := func(
		recipientType notification.RecipientType,
		recipientID kernel.UUID,
		kind notification.Kind,
		title, message string,
	) error {
		n, err := notification.NewNotification(
			o.ID(), recipientType, recipientID, kind, title, message, now)
		if err != nil {
			return err
		}
		out = append(out, n)
		return nil
	}

	switch target {
	case order.StatusAssignedPharmacist:
		if o.PharmacistID() != nil {
			if err := add(
				notification.RecipientStaff, *o.PharmacistID(),
				notification.KindPharmacistAssigned,
				"New order assigned",
				fmt.Sprintf("Order %s is waiting for preparation", o.Code()),
			); err != nil {
				return nil, err
			}
		}

	case order.StatusAssignedDriver:
		if o.DriverID() != nil {
			if err := add(
				notification.RecipientDriver, *o.DriverID(),
				notification.KindDriverAssigned,
				"New order assigned",
				fmt.Sprintf("Order %s is ready for pickup", o.Code()),
			); err != nil {
				return nil, err
			}
		}

	case order.StatusReadyForPickup:
		for _, driverID := range availableDriverIDs {
			if err := add(
				notification.RecipientDriver, driverID,
				notification.KindOrderReady,
				"Order available for pickup",
				fmt.Sprintf("Order %s is ready at the source branch", o.Code()),
			); err != nil {
				return nil, err
			}
		}

	case order.StatusPickedUp:
		if err := add(
			notification.RecipientStaff, o.CreatedBy(),
			notification.KindOrderPickedUp,
			"Order picked up",
			fmt.Sprintf("Order %s left the branch", o.Code()),
		); err != nil {
			return nil, err
		}

	case order.StatusDelivered:
		if err := add(
			notification.RecipientStaff, o.CreatedBy(),
			notification.KindOrderDelivered,
			"Order delivered",
			fmt.Sprintf("Order %s was delivered", o.Code()),
		); err != nil {
			return nil, err
		}

	case order.StatusCancelled:
		if o.PharmacistID() != nil {
			if err := add(
				notification.RecipientStaff, *o.PharmacistID(),
				notification.KindOrderCancelled,
				"Order cancelled",
				fmt.Sprintf("Order %s was cancelled", o.Code()),
			); err != nil {
				return nil, err
			}
		}
		if o.DriverID() != nil {
			if err := add(
				notification.RecipientDriver, *o.DriverID(),
				notification.KindOrderCancelled,
				"Order cancelled",
				fmt.Sprintf("Order %s was cancelled", o.Code()),
			); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
