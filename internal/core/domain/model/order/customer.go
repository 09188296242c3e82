package order

import (
	"errors"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/errs"
	"pharmadelivery/internal/pkg/guard"
)

// ErrCustomerIsNotConstructed is returned when a Customer was not created
// through NewCustomer.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Customer is the delivery block carried by branch_to_customer orders: name,
// address, phone, and optional geographic coordinates. Orders of other
// delivery types carry no customer block.
type Customer struct { //nolint:recvcheck //using for validation
	name        string
	address     string
	phone       string
	coordinates *kernel.Location

	guard guard.ConstructorGuard
}

// NewCustomer creates a customer block. Name, address, and phone are
// required; coordinates are optional and validated when present.
func NewCustomer(name, address, phone string, coordinates *kernel.Location) (Customer, error) {
	customer := Customer{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		customer.setName(name),
		customer.setAddress(address),
		customer.setPhone(phone),
		customer.setCoordinates(coordinates),
	); err != nil {
		return Customer{}, err
	}

	return customer, nil
}

// Validate ensures the Customer was created through NewCustomer.
func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// Name returns the customer's name.
func (c Customer) Name() string {
	return c.name
}

// Address returns the free-text delivery address.
func (c Customer) Address() string {
	return c.address
}

// Phone returns the customer's phone number.
func (c Customer) Phone() string {
	return c.phone
}

// Coordinates returns the customer's geographic coordinates, or nil when the
// address was registered without them.
func (c Customer) Coordinates() *kernel.Location {
	return c.coordinates
}

func (c *Customer) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	c.name = name
	return nil
}

func (c *Customer) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("customerAddress")
	}
	c.address = address
	return nil
}

func (c *Customer) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("customerPhone")
	}
	c.phone = phone
	return nil
}

func (c *Customer) setCoordinates(coordinates *kernel.Location) error {
	if coordinates != nil {
		if err := coordinates.Validate(); err != nil {
			return err
		}
	}
	c.coordinates = coordinates
	return nil
}
