package queries

import (
	"errors"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/guard"
)

var ErrGetDriverCurrentOrderQueryIsNotConstructed = errors.New(
	"GetDriverCurrentOrderQuery must be created via NewGetDriverCurrentOrderQuery constructor",
)

// GetDriverCurrentOrderQuery retrieves the order a driver currently
// holds, resolved through the driver's presence record.
//
// Example:
//
//	query, err := NewGetDriverCurrentOrderQuery(driverID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetDriverCurrentOrderQueryHandler(db)
//	current, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // driver holds no order
//	}
type GetDriverCurrentOrderQuery struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDriverCurrentOrderQuery creates a query for a driver's held
// order. Validates the driver ID.
func NewGetDriverCurrentOrderQuery(driverID kernel.UUID) (GetDriverCurrentOrderQuery, error) {
	query := GetDriverCurrentOrderQuery{guard: guard.NewConstructorGuard()}

	if err := query.setDriverID(driverID); err != nil {
		return GetDriverCurrentOrderQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDriverCurrentOrderQueryIsNotConstructed if validation
// fails.
func (q GetDriverCurrentOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverCurrentOrderQueryIsNotConstructed)
}

// DriverID returns the driver whose held order is requested.
func (q GetDriverCurrentOrderQuery) DriverID() kernel.UUID {
	return q.driverID
}

func (q *GetDriverCurrentOrderQuery) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	q.driverID = driverID
	return nil
}
