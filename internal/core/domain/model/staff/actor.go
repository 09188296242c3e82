package staff

import (
	"errors"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned when an Actor was not created through
// NewActor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor identifies who is performing a state-changing operation: a staff
// member's ID plus their role. It is passed explicitly into every transition
// and assignment call.
//
// Example:
//
//	actor, err := staff.NewActor(pharmacistID, staff.RolePharmacist)
//	if err != nil {
//	    return err
//	}
type Actor struct { //nolint:recvcheck //using for validation
	id    kernel.UUID
	role  Role
	guard guard.ConstructorGuard
}

// NewActor creates an Actor with a validated identity and role.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	actor := Actor{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(actor.setID(id), actor.setRole(role)); err != nil {
		return Actor{}, err
	}

	return actor, nil
}

// Validate ensures the Actor was created through NewActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the staff member's identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the staff member's role.
func (a Actor) Role() Role {
	return a.role
}

func (a *Actor) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Actor) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}
