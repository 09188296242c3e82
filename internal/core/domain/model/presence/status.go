package presence

import (
	"slices"
	"strings"

	"pharmadelivery/internal/pkg/errs"
)

// Status is a driver's availability state.
type Status int

const (
	// StatusUnknown is the zero value and never valid.
	StatusUnknown Status = iota

	// StatusOnline means the driver accepts new deliveries.
	StatusOnline

	// StatusOffline means the driver is off shift.
	StatusOffline

	// StatusBusy means the driver currently holds an order.
	StatusBusy

	// StatusOnBreak means the driver is on shift but paused.
	StatusOnBreak
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		StatusOnline:  "online",
		StatusOffline: "offline",
		StatusBusy:    "busy",
		StatusOnBreak: "on_break",
	}
}

func getValidStatuses() []Status {
	return []Status{StatusOnline, StatusOffline, StatusBusy, StatusOnBreak}
}

// StatusFromString parses the snake_case wire representation of a status.
func StatusFromString(raw string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != StatusUnknown && name == strings.ToLower(raw) {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidError("status")
}

// Validate reports whether the status is one of the declared values.
func (s Status) Validate() error {
	if !slices.Contains(getValidStatuses(), s) {
		return errs.NewValueIsInvalidError("status")
	}
	return nil
}

// String returns the snake_case representation used in storage and on the
// wire.
func (s Status) String() string {
	return getStatusStrings()[s]
}

// IsDispatchable reports whether a driver in this status may be handed a
// new order. Only online drivers are dispatchable; busy drivers already
// hold one and on_break or offline drivers opted out.
func (s Status) IsDispatchable() bool {
	return s == StatusOnline
}
