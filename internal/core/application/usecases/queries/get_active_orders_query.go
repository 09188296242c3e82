// Package queries contains read-only operations in the CQRS
// architecture. Query handlers read the database directly with raw SQL
// and return flat response structs, bypassing the aggregate mapping used
// by the write side.
package queries

import (
	"errors"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves every order that has not reached a
// terminal status. Used by dispatch and branch dashboards.
//
// Example:
//
//	query := NewGetActiveOrdersQuery()
//	handler := NewGetActiveOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get active orders: %w", err)
//	}
//	fmt.Printf("%d orders in flight\n", len(orders))
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query to retrieve in-flight orders.
// This is a parameterless query.
func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveOrdersQueryIsNotConstructed if validation fails.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse is one in-flight order row. TotalAmount
// is computed from the line items at read time.
type GetActiveOrdersQueryResponse struct {
	ID                  kernel.UUID
	Code                string
	InvoiceNumber       string
	Status              string
	DeliveryType        string
	SourceBranchID      kernel.UUID
	DestinationBranchID *kernel.UUID
	PharmacistID        *kernel.UUID
	DriverID            *kernel.UUID
	TotalAmount         decimal.Decimal
	CreatedAt           time.Time
}
