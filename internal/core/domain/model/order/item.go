package order

import (
	"errors"
	"fmt"

	"pharmadelivery/internal/pkg/errs"
	"pharmadelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned when an Item was not created through
// NewItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// minUnitPrice is the smallest allowed unit price for a line item.
var minUnitPrice = decimal.RequireFromString("0.01")

// Item is a line item owned exclusively by an Order. Its total price is
// always derived from quantity and unit price; it is never stored without
// being recomputed from its inputs.
//
// Example:
//
//	price := decimal.RequireFromString("12.50")
//	item, err := order.NewItem("Paracetamol 500mg", "PARA-500", 3, price)
//	if err != nil {
//	    return err
//	}
//	item.TotalPrice() // 37.50
type Item struct { //nolint:recvcheck //using for validation
	productName string
	productCode string
	quantity    int
	unitPrice   decimal.Decimal

	guard guard.ConstructorGuard
}

// NewItem creates a line item. The product name must be non-empty, quantity
// at least 1, and unit price at least 0.01.
func NewItem(productName, productCode string, quantity int, unitPrice decimal.Decimal) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductName(productName),
		item.setProductCode(productCode),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductName returns the display name of the product.
func (i Item) ProductName() string {
	return i.productName
}

// ProductCode returns the internal product code.
func (i Item) ProductCode() string {
	return i.productCode
}

// Quantity returns the number of units ordered.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price per unit.
func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// TotalPrice returns quantity times unit price. It is computed on every call
// so the derived value can never drift from its inputs.
func (i Item) TotalPrice() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

// WithQuantity returns a copy of the item with a new quantity; the total is
// derived, so no separate recompute step exists to forget.
func (i Item) WithQuantity(quantity int) (Item, error) {
	updated := i
	if err := updated.setQuantity(quantity); err != nil {
		return Item{}, err
	}
	return updated, nil
}

func (i *Item) setProductName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	i.productName = name
	return nil
}

func (i *Item) setProductCode(code string) error {
	i.productCode = code
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(price decimal.Decimal) error {
	if price.LessThan(minUnitPrice) {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%s is less than %s", price, minUnitPrice))
	}
	i.unitPrice = price
	return nil
}
