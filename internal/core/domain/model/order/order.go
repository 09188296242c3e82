package order

import (
	"errors"
	"strings"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// orderCodeLength is the length of the random suffix of an order code.
const orderCodeLength = 13

// Order represents a pharmacy delivery order. It is the aggregate root that
// manages the order lifecycle from creation through pharmacist preparation
// and driver delivery to completion.
//
// Order follows these invariants:
//   - The order code is generated at creation and never changes
//   - The delivery type is immutable after creation and selects exactly one
//     of destination branch / customer block
//   - Status transitions follow the lifecycle graph in Status
//   - Milestone timestamps are set at most once, monotonically forward
//   - At least one line item exists and the total is derived from the items
//   - Can only be created through NewOrder / RestoreOrder
//
// Pharmacist and driver references are weak: the aggregate stores their IDs
// for lookup, it does not own the staff entities.
type Order struct {
	id            kernel.UUID
	code          string
	invoiceNumber string

	sourceBranchID      kernel.UUID
	destinationBranchID *kernel.UUID
	customer            *Customer
	deliveryType        DeliveryType

	notes  string
	status Status
	items  []Item

	pharmacistID *kernel.UUID
	driverID     *kernel.UUID
	createdBy    kernel.UUID

	createdAt   time.Time
	preparedAt  *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time

	isConstructed bool
}

// NewOrder creates a new Order in the pending status with validation. This
// is the only way to create a valid new Order; persistence reconstruction
// goes through RestoreOrder.
//
// Parameters:
//   - id: unique identifier for the order
//   - invoiceNumber: the invoice this order fulfils (must be non-empty)
//   - sourceBranchID: the branch preparing the order
//   - deliveryType: selects the required destination fields
//   - destinationBranchID: required unless deliveryType is branch_to_customer
//   - customer: required iff deliveryType is branch_to_customer
//   - notes: optional free text
//   - createdBy: the staff member registering the order
//   - items: at least one validated line item
//   - now: creation timestamp
//
// The order code ("ORD-" plus a random suffix) is generated here and is
// immutable afterwards.
func NewOrder(
	id kernel.UUID,
	invoiceNumber string,
	sourceBranchID kernel.UUID,
	deliveryType DeliveryType,
	destinationBranchID *kernel.UUID,
	customer *Customer,
	notes string,
	createdBy kernel.UUID,
	items []Item,
	now time.Time,
) (*Order, error) {
	o := &Order{
		code:          generateOrderCode(),
		notes:         notes,
		status:        StatusPending,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setInvoiceNumber(invoiceNumber),
		o.setSourceBranchID(sourceBranchID),
		o.setDeliveryType(deliveryType),
		o.setCreatedBy(createdBy),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	if err := o.setDestination(destinationBranchID, customer); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without re-running
// creation-time side effects (code generation, initial status). The caller
// is the storage adapter; all values must come from a previously valid order.
func RestoreOrder(
	id kernel.UUID,
	code string,
	invoiceNumber string,
	sourceBranchID kernel.UUID,
	deliveryType DeliveryType,
	destinationBranchID *kernel.UUID,
	customer *Customer,
	notes string,
	status Status,
	pharmacistID *kernel.UUID,
	driverID *kernel.UUID,
	createdBy kernel.UUID,
	items []Item,
	createdAt time.Time,
	preparedAt, pickedUpAt, deliveredAt *time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		code:          code,
		notes:         notes,
		status:        status,
		pharmacistID:  pharmacistID,
		driverID:      driverID,
		createdAt:     createdAt,
		preparedAt:    preparedAt,
		pickedUpAt:    pickedUpAt,
		deliveredAt:   deliveredAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setInvoiceNumber(invoiceNumber),
		o.setSourceBranchID(sourceBranchID),
		o.setDeliveryType(deliveryType),
		o.setCreatedBy(createdBy),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	if err := o.setDestination(destinationBranchID, customer); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through one
// of the factory methods. Call it when reconstructing orders from
// persistence.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Code returns the immutable human-readable order code.
func (o *Order) Code() string {
	return o.code
}

// InvoiceNumber returns the invoice the order fulfils.
func (o *Order) InvoiceNumber() string {
	return o.invoiceNumber
}

// SourceBranchID returns the branch preparing the order.
func (o *Order) SourceBranchID() kernel.UUID {
	return o.sourceBranchID
}

// DestinationBranchID returns the receiving branch, or nil for home
// deliveries.
func (o *Order) DestinationBranchID() *kernel.UUID {
	return o.destinationBranchID
}

// Customer returns the customer block, or nil unless the order is a home
// delivery.
func (o *Order) Customer() *Customer {
	return o.customer
}

// DeliveryType returns the order's delivery type.
func (o *Order) DeliveryType() DeliveryType {
	return o.deliveryType
}

// IsHomeDelivery reports whether the order goes to a customer address.
func (o *Order) IsHomeDelivery() bool {
	return o.deliveryType == BranchToCustomer
}

// Notes returns the free-text notes supplied at creation.
func (o *Order) Notes() string {
	return o.notes
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// PharmacistID returns the assigned pharmacist's ID, or nil if unassigned.
func (o *Order) PharmacistID() *kernel.UUID {
	return o.pharmacistID
}

// DriverID returns the assigned driver's ID, or nil if unassigned.
func (o *Order) DriverID() *kernel.UUID {
	return o.driverID
}

// CreatedBy returns the staff member who registered the order.
func (o *Order) CreatedBy() kernel.UUID {
	return o.createdBy
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalAmount returns the sum of all line item totals. The value is derived
// on every call so it can never diverge from the items.
func (o *Order) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.TotalPrice())
	}
	return total
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// PreparedAt returns when the order became ready for pickup, or nil.
func (o *Order) PreparedAt() *time.Time {
	return o.preparedAt
}

// PickedUpAt returns when the driver collected the order, or nil.
func (o *Order) PickedUpAt() *time.Time {
	return o.pickedUpAt
}

// DeliveredAt returns when the order was delivered, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// AssignPharmacist assigns the order to a pharmacist.
//
// Allowed while the order is pending or already assigned to a pharmacist
// (reassignment). Assigning from pending advances the status to
// assigned_pharmacist; reassignment keeps the current status so no duplicate
// history row is produced.
func (o *Order) AssignPharmacist(pharmacistID kernel.UUID) error {
	if err := pharmacistID.Validate(); err != nil {
		return err
	}

	if o.status != StatusPending && o.status != StatusAssignedPharmacist {
		return errs.NewInvalidTransitionError(o.status.String(), StatusAssignedPharmacist.String())
	}

	if o.status == StatusPending {
		o.status = StatusAssignedPharmacist
	}
	o.pharmacistID = &pharmacistID
	return nil
}

// AssignDriver assigns the order to a driver and advances the status to
// assigned_driver. Only legal while the order is ready_for_pickup and has no
// driver yet; the presence claim that makes the assignment exclusive happens
// in the application layer, inside the same transaction.
func (o *Order) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	if o.status != StatusReadyForPickup || o.driverID != nil {
		return errs.NewInvalidTransitionError(o.status.String(), StatusAssignedDriver.String())
	}

	o.status = StatusAssignedDriver
	o.driverID = &driverID
	return nil
}

// TransitionTo moves the order to target along a legal edge of the status
// graph and stamps the corresponding milestone timestamp, if any. Each
// milestone is set at most once; a timestamp already present is never
// overwritten.
//
// Returns an InvalidTransitionError and leaves the order untouched when the
// edge is illegal (including target == current status and any transition out
// of a terminal state).
func (o *Order) TransitionTo(target Status, now time.Time) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.stampMilestone(target, now)
	return nil
}

// stampMilestone records the first time the order reaches a milestone
// status.
func (o *Order) stampMilestone(status Status, now time.Time) {
	switch status { //nolint:exhaustive // only milestone statuses carry timestamps
	case StatusReadyForPickup:
		if o.preparedAt == nil {
			o.preparedAt = &now
		}
	case StatusPickedUp:
		if o.pickedUpAt == nil {
			o.pickedUpAt = &now
		}
	case StatusDelivered:
		if o.deliveredAt == nil {
			o.deliveredAt = &now
		}
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setInvoiceNumber(invoiceNumber string) error {
	if invoiceNumber == "" {
		return errs.NewValueIsRequiredError("invoiceNumber")
	}
	o.invoiceNumber = invoiceNumber
	return nil
}

func (o *Order) setSourceBranchID(sourceBranchID kernel.UUID) error {
	if err := sourceBranchID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("sourceBranchId", err)
	}
	o.sourceBranchID = sourceBranchID
	return nil
}

func (o *Order) setDeliveryType(deliveryType DeliveryType) error {
	if err := deliveryType.Validate(); err != nil {
		return err
	}
	o.deliveryType = deliveryType
	return nil
}

func (o *Order) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("createdBy", err)
	}
	o.createdBy = createdBy
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

// setDestination enforces the delivery-type invariant: exactly one of
// destination branch / customer block, selected by the delivery type.
func (o *Order) setDestination(destinationBranchID *kernel.UUID, customer *Customer) error {
	if o.deliveryType.RequiresCustomer() {
		if customer == nil {
			return errs.NewValueIsRequiredError("customer")
		}
		if err := customer.Validate(); err != nil {
			return err
		}
		if destinationBranchID != nil {
			return errs.NewValueIsInvalidErrorWithCause("destinationBranchId",
				errors.New("home deliveries must not reference a destination branch"))
		}
		o.customer = customer
		return nil
	}

	if destinationBranchID == nil {
		return errs.NewValueIsRequiredError("destinationBranchId")
	}
	if err := destinationBranchID.Validate(); err != nil {
		return err
	}
	if customer != nil {
		return errs.NewValueIsInvalidErrorWithCause("customer",
			errors.New("branch deliveries must not carry a customer block"))
	}
	o.destinationBranchID = destinationBranchID
	return nil
}

// generateOrderCode produces the immutable "ORD-" code for a new order.
func generateOrderCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(kernel.NewUUID().String(), "-", ""))
	return "ORD-" + raw[:orderCodeLength]
}
