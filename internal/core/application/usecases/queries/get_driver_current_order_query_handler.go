package queries

import (
	"context"
	"database/sql"
	"errors"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetDriverCurrentOrderQueryHandler resolves the order a driver holds
// through the presence record's current order reference.
//
// Example:
//
//	handler := NewGetDriverCurrentOrderQueryHandler(db)
//	current, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // driver is idle
//	}
type GetDriverCurrentOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetDriverCurrentOrderQueryHandler creates a handler for held-order
// lookups. Requires a GORM database connection for query execution.
func NewGetDriverCurrentOrderQueryHandler(db *gorm.DB) GetDriverCurrentOrderQueryHandler {
	return GetDriverCurrentOrderQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when the
// driver never reported presence or holds no order.
func (h GetDriverCurrentOrderQueryHandler) Handle(
	ctx context.Context,
	query GetDriverCurrentOrderQuery,
) (*GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	row := h.db.WithContext(ctx).Raw(`
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
			COALESCE((
				SELECT SUM(i.quantity * i.unit_price)
				FROM order_items i
				WHERE i.order_id = o.id
			), 0) AS total_amount,
			o.created_at
		FROM driver_presences p
		JOIN orders o ON o.id = p.current_order_id
		WHERE p.driver_id = ?
	`, query.DriverID().String()).Row()

	var resp GetActiveOrdersQueryResponse
	var id, sourceBranchID uuid.UUID
	var destinationBranchID, pharmacistID, driverID uuid.NullUUID
	var totalAmount decimal.Decimal

	err := row.Scan(
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
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("currentOrder", query.DriverID())
	}
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

	return &resp, nil
}
