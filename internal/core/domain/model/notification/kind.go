package notification

import (
	"slices"
	"strings"

	"pharmadelivery/internal/pkg/errs"
)

// Kind classifies what happened to the order the notification is about.
type Kind int

const (
	KindUnknown Kind = iota
	KindOrderCreated
	KindPharmacistAssigned
	KindDriverAssigned
	KindOrderReady
	KindOrderPickedUp
	KindOrderDelivered
	KindOrderCancelled
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown:            "unknown",
		KindOrderCreated:       "order_created",
		KindPharmacistAssigned: "pharmacist_assigned",
		KindDriverAssigned:     "driver_assigned",
		KindOrderReady:         "order_ready",
		KindOrderPickedUp:      "order_picked_up",
		KindOrderDelivered:     "order_delivered",
		KindOrderCancelled:     "order_cancelled",
	}
}

func getValidKinds() []Kind {
	return []Kind{
		KindOrderCreated, KindPharmacistAssigned, KindDriverAssigned,
		KindOrderReady, KindOrderPickedUp, KindOrderDelivered, KindOrderCancelled,
	}
}

// KindFromString parses the snake_case wire representation of a kind.
func KindFromString(raw string) (Kind, error) {
	for kind, name := range getKindStrings() {
		if kind != KindUnknown && name == strings.ToLower(raw) {
			return kind, nil
		}
	}
	return KindUnknown, errs.NewValueIsInvalidError("kind")
}

// Validate reports whether the kind is one of the declared values.
func (k Kind) Validate() error {
	if !slices.Contains(getValidKinds(), k) {
		return errs.NewValueIsInvalidError("kind")
	}
	return nil
}

// String returns the snake_case representation used in storage.
func (k Kind) String() string {
	return getKindStrings()[k]
}

// RecipientType tells the delivery transport what kind of endpoint the
// recipient ID addresses.
type RecipientType int

const (
	RecipientUnknown RecipientType = iota
	RecipientStaff
	RecipientDriver
	RecipientBranch
	RecipientCustomer
)

func getRecipientTypeStrings() map[RecipientType]string {
	return map[RecipientType]string{
		RecipientUnknown:  "unknown",
		RecipientStaff:    "staff",
		RecipientDriver:   "driver",
		RecipientBranch:   "branch",
		RecipientCustomer: "customer",
	}
}

// RecipientTypeFromString parses the snake_case wire representation.
func RecipientTypeFromString(raw string) (RecipientType, error) {
	for recipientType, name := range getRecipientTypeStrings() {
		if recipientType != RecipientUnknown && name == strings.ToLower(raw) {
			return recipientType, nil
		}
	}
	return RecipientUnknown, errs.NewValueIsInvalidError("recipientType")
}

// Validate reports whether the recipient type is one of the declared
// values.
func (r RecipientType) Validate() error {
	if !slices.Contains([]RecipientType{
		RecipientStaff, RecipientDriver, RecipientBranch, RecipientCustomer,
	}, r) {
		return errs.NewValueIsInvalidError("recipientType")
	}
	return nil
}

// String returns the snake_case representation used in storage.
func (r RecipientType) String() string {
	return getRecipientTypeStrings()[r]
}
