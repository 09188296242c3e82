package order

import (
	"fmt"

	"pharmadelivery/internal/pkg/errs"
)

// DeliveryType determines where an order is headed and therefore which
// destination fields are required: a customer block for home deliveries, a
// destination branch for everything else. It is immutable after creation.
type DeliveryType int

const (
	// DeliveryTypeUnknown is the zero value and is invalid.
	DeliveryTypeUnknown DeliveryType = iota
	// BranchToBranch moves stock between two pharmacy branches.
	BranchToBranch
	// BranchToCustomer delivers to a customer's home address.
	BranchToCustomer
	// WarehouseToBranch replenishes a branch from a warehouse.
	WarehouseToBranch
)

func getDeliveryTypeStrings() map[DeliveryType]string {
	return map[DeliveryType]string{
		DeliveryTypeUnknown: "unknown",
		BranchToBranch:      "branch_to_branch",
		BranchToCustomer:    "branch_to_customer",
		WarehouseToBranch:   "warehouse_to_branch",
	}
}

func getValidDeliveryTypeStrings() map[DeliveryType]string {
	//nolint:exhaustive // DeliveryTypeUnknown is intentionally excluded as it's invalid
	return map[DeliveryType]string{
		BranchToBranch:    "branch_to_branch",
		BranchToCustomer:  "branch_to_customer",
		WarehouseToBranch: "warehouse_to_branch",
	}
}

// DeliveryTypeFromString parses the persisted/API representation of a
// delivery type.
func DeliveryTypeFromString(s string) (DeliveryType, error) {
	for dt, str := range getValidDeliveryTypeStrings() {
		if str == s {
			return dt, nil
		}
	}
	return DeliveryTypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"deliveryType", fmt.Errorf("%q is not a valid delivery type", s))
}

// Validate checks that the DeliveryType is one of the defined types.
func (d DeliveryType) Validate() error {
	if _, ok := getValidDeliveryTypeStrings()[d]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveryType", fmt.Errorf("%d is not a valid delivery type", d))
	}
	return nil
}

// String returns the snake_case name of the delivery type, or "unknown".
func (d DeliveryType) String() string {
	if str, ok := getDeliveryTypeStrings()[d]; ok {
		return str
	}
	return "unknown"
}

// RequiresCustomer reports whether orders of this type must carry a customer
// block instead of a destination branch.
func (d DeliveryType) RequiresCustomer() bool {
	return d == BranchToCustomer
}
