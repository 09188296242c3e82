package queries

import (
	"context"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler retrieves in-flight orders from the
// database. Terminal orders (delivered, cancelled, returned) are
// excluded.
//
// Example:
//
//	handler := NewGetActiveOrdersQueryHandler(db)
//	orders, err := handler.Handle(ctx, NewGetActiveOrdersQuery())
//	if err != nil {
//	    log.Printf("failed to get active orders: %v", err)
//	}
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order
// queries. Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted oldest first so dispatch
// screens surface the longest-waiting orders on top.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.code,
			o.invoice_number,
			o.status,
			o.delivery_type,
			o.source_branch_id,
			o.destination_branch_id,
			o.pharmacist_id,
			o.driver_id,
			COALESCE(SUM(i.quantity * i.unit_price), 0) AS total_amount,
			o.created_at
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.status NOT IN (?, ?, ?)
		GROUP BY o.id
		ORDER BY o.created_at
	`,
		order.StatusDelivered.String(),
		order.StatusCancelled.String(),
		order.StatusReturned.String(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveOrdersQueryResponse
		var id uuid.UUID
		var sourceBranchID uuid.UUID
		var destinationBranchID, pharmacistID, driverID uuid.NullUUID
		var totalAmount decimal.Decimal

		err = rows.Scan(
			&id,
			&resp.Code,
			&resp.InvoiceNumber,
			&resp.Status,
			&resp.DeliveryType,
			&sourceBranchID,
			&destinationBranchID,
			&pharmacistID,
			&driverID,
			&totalAmount,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.SourceBranchID, err = kernel.UUIDFromBytes(sourceBranchID[:]); err != nil {
			return nil, err
		}
		if resp.DestinationBranchID, err = optionalUUID(destinationBranchID); err != nil {
			return nil, err
		}
		if resp.PharmacistID, err = optionalUUID(pharmacistID); err != nil {
			return nil, err
		}
		if resp.DriverID, err = optionalUUID(driverID); err != nil {
			return nil, err
		}
		resp.TotalAmount = totalAmount

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func optionalUUID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil
	}

	out, err := kernel.UUIDFromBytes(id.UUID[:])
	if err != nil {
		return nil, err
	}
	return &out, nil
}
