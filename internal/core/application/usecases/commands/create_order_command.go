package commands

import (
	"errors"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/order"
	"pharmadelivery/internal/core/domain/model/staff"
	"pharmadelivery/internal/pkg/errs"
	"pharmadelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderItem carries one line item of an order creation request.
// Quantity and price bounds are enforced by the order domain when the
// handler builds the aggregate.
type CreateOrderItem struct {
	ProductName string
	ProductCode string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// CreateOrderCustomer carries the recipient block for home deliveries.
// Lat and Lng are optional; when both are present they become the
// delivery coordinates.
type CreateOrderCustomer struct {
	Name    string
	Address string
	Phone   string
	Lat     *float64
	Lng     *float64
}

// CreateOrderCommand represents a request to register a new pharmacy
// delivery order. Exactly one of destination branch and customer block
// must be present, selected by the delivery type; the order domain
// enforces that pairing.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(), "INV-2041", sourceBranchID, order.BranchToBranch,
//	    &destinationBranchID, nil, "fragile", actor, items,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	invoiceNumber       string
	sourceBranchID      kernel.UUID
	deliveryType        order.DeliveryType
	destinationBranchID *kernel.UUID
	customer            *CreateOrderCustomer
	notes               string
	actor               staff.Actor
	items               []CreateOrderItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates identifiers, the invoice number, the delivery type and that
// at least one item is present. Returns an error if any validation
// fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	invoiceNumber string,
	sourceBranchID kernel.UUID,
	deliveryType order.DeliveryType,
	destinationBranchID *kernel.UUID,
	customer *CreateOrderCustomer,
	notes string,
	actor staff.Actor,
	items []CreateOrderItem,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		destinationBranchID: destinationBranchID,
		customer:            customer,
		notes:               notes,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setInvoiceNumber(invoiceNumber),
		cmd.setSourceBranchID(sourceBranchID),
		cmd.setDeliveryType(deliveryType),
		cmd.setActor(actor),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// InvoiceNumber returns the upstream invoice reference.
func (c CreateOrderCommand) InvoiceNumber() string {
	return c.invoiceNumber
}

// SourceBranchID returns the branch the order ships from.
func (c CreateOrderCommand) SourceBranchID() kernel.UUID {
	return c.sourceBranchID
}

// DeliveryType returns the requested delivery type.
func (c CreateOrderCommand) DeliveryType() order.DeliveryType {
	return c.deliveryType
}

// DestinationBranchID returns the receiving branch, or nil for home
// deliveries.
func (c CreateOrderCommand) DestinationBranchID() *kernel.UUID {
	return c.destinationBranchID
}

// Customer returns the recipient block, or nil for branch deliveries.
func (c CreateOrderCommand) Customer() *CreateOrderCustomer {
	return c.customer
}

// Notes returns the free-text note attached at creation.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

// Actor returns who requested the creation.
func (c CreateOrderCommand) Actor() staff.Actor {
	return c.actor
}

// Items returns the requested line items.
func (c CreateOrderCommand) Items() []CreateOrderItem {
	return c.items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setInvoiceNumber(invoiceNumber string) error {
	if invoiceNumber == "" {
		return errs.NewValueIsRequiredError("invoiceNumber")
	}

	c.invoiceNumber = invoiceNumber
	return nil
}

func (c *CreateOrderCommand) setSourceBranchID(sourceBranchID kernel.UUID) error {
	if err := sourceBranchID.Validate(); err != nil {
		return err
	}

	c.sourceBranchID = sourceBranchID
	return nil
}

func (c *CreateOrderCommand) setDeliveryType(deliveryType order.DeliveryType) error {
	if err := deliveryType.Validate(); err != nil {
		return err
	}

	c.deliveryType = deliveryType
	return nil
}

func (c *CreateOrderCommand) setActor(actor staff.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setItems(items []CreateOrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	c.items = items
	return nil
}
