// Package staff provides identity primitives for the people acting on
// orders: roles and the Actor value object. Every state-changing operation in
// the core takes an explicit Actor instead of reading an ambient
// authentication context, so authorization decisions are always made against
// the caller the collaborator actually resolved.
package staff

import (
	"fmt"

	"pharmadelivery/internal/pkg/errs"
)

// Role classifies a staff member for authorization purposes.
//
// Roles map onto the order lifecycle:
//   - Feeder creates orders at a branch and may cancel their own.
//   - Pharmacist prepares orders assigned to them.
//   - Driver delivers orders assigned to them.
//   - Admin and SuperAdmin bypass ownership and stage gating.
type Role int

const (
	// RoleUnknown is the zero value and never authorizes anything.
	RoleUnknown Role = iota
	// RoleFeeder is branch staff who register incoming orders.
	RoleFeeder
	// RolePharmacist prepares orders at the source branch.
	RolePharmacist
	// RoleDriver carries orders to their destination.
	RoleDriver
	// RoleAdmin manages day-to-day operations without gating.
	RoleAdmin
	// RoleSuperAdmin has unrestricted access.
	RoleSuperAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "unknown",
		RoleFeeder:     "feeder",
		RolePharmacist: "pharmacist",
		RoleDriver:     "driver",
		RoleAdmin:      "admin",
		RoleSuperAdmin: "super_admin",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleFeeder:     "feeder",
		RolePharmacist: "pharmacist",
		RoleDriver:     "driver",
		RoleAdmin:      "admin",
		RoleSuperAdmin: "super_admin",
	}
}

// RoleFromString parses the persisted/API representation of a role.
// Returns an error for unrecognized values.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks that the role is one of the defined staff roles.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the snake_case name of the role, or "unknown".
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// IsPrivileged reports whether the role bypasses ownership and stage gating.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}
