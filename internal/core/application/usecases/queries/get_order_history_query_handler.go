package queries

import (
	"context"
	"encoding/json"

	"pharmadelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler retrieves an order's status ledger from
// the database, most recent entry first.
//
// Example:
//
//	handler := NewGetOrderHistoryQueryHandler(db)
//	entries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("failed to get history: %v", err)
//	}
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for ledger queries.
// Requires a GORM database connection for query execution.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the query. An order without entries yields an empty
// slice, not an error; callers that need existence checks use the order
// endpoint.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			from_status,
			to_status,
			changed_by,
			notes,
			metadata,
			changed_at
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY changed_at DESC, id DESC
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOrderHistoryQueryResponse
		var id, changedBy uuid.UUID
		var metadata []byte

		err = rows.Scan(
			&id,
			&resp.FromStatus,
			&resp.ToStatus,
			&changedBy,
			&resp.Notes,
			&metadata,
			&resp.ChangedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.ChangedBy, err = kernel.UUIDFromBytes(changedBy[:]); err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			if err = json.Unmarshal(metadata, &resp.Metadata); err != nil {
				return nil, err
			}
		}

		entries = append(entries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
