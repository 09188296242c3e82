// Package orderrepo provides data transfer objects and mapping functions
// for order persistence. It implements the repository pattern for the
// order aggregate and its status-history ledger, handling the conversion
// between domain entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Status and delivery type are stored as their snake_case
// strings so raw read-side queries stay legible.
type OrderDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Code                string     `gorm:"size:32;uniqueIndex"`
	InvoiceNumber       string     `gorm:"size:64"`
	SourceBranchID      uuid.UUID  `gorm:"type:uuid;index"`
	DestinationBranchID *uuid.UUID `gorm:"type:uuid"`
	DeliveryType        string     `gorm:"size:32"`
	CustomerName        *string
	CustomerAddress     *string
	CustomerPhone       *string
	CustomerLat         *float64
	CustomerLng         *float64
	Notes               string
	Status              string     `gorm:"size:32;index"`
	PharmacistID        *uuid.UUID `gorm:"type:uuid;index"`
	DriverID            *uuid.UUID `gorm:"type:uuid;index"`
	CreatedBy           uuid.UUID  `gorm:"type:uuid"`
	CreatedAt           time.Time  `gorm:"index"`
	PreparedAt          *time.Time
	PickedUpAt          *time.Time
	DeliveredAt         *time.Time

	Items []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one line item row. Position preserves the order of
// the aggregate's item list.
type ItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;index"`
	Position    int
	ProductName string          `gorm:"size:255"`
	ProductCode string          `gorm:"size:64"`
	Quantity    int
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for line items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// HistoryDTO represents one status-history ledger row. FromStatus is the
// empty string for the creation entry.
type HistoryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	FromStatus string    `gorm:"size:32"`
	ToStatus   string    `gorm:"size:32"`
	ChangedBy  uuid.UUID `gorm:"type:uuid"`
	Notes      string
	Metadata   []byte    `gorm:"type:jsonb"`
	ChangedAt  time.Time `gorm:"index"`
}

// TableName specifies the database table name for ledger entries.
func (HistoryDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:             aggregate.ID().Bytes(),
		Code:           aggregate.Code(),
		InvoiceNumber:  aggregate.InvoiceNumber(),
		SourceBranchID: aggregate.SourceBranchID().Bytes(),
		DeliveryType:   aggregate.DeliveryType().String(),
		Notes:          aggregate.Notes(),
		Status:         aggregate.Status().String(),
		CreatedBy:      aggregate.CreatedBy().Bytes(),
		CreatedAt:      aggregate.CreatedAt(),
		PreparedAt:     aggregate.PreparedAt(),
		PickedUpAt:     aggregate.PickedUpAt(),
		DeliveredAt:    aggregate.DeliveredAt(),
	}

	if id := aggregate.DestinationBranchID(); id != nil {
		raw := id.Bytes()
		dto.DestinationBranchID = &raw
	}
	if id := aggregate.PharmacistID(); id != nil {
		raw := id.Bytes()
		dto.PharmacistID = &raw
	}
	if id := aggregate.DriverID(); id != nil {
		raw := id.Bytes()
		dto.DriverID = &raw
	}

	if customer := aggregate.Customer(); customer != nil {
		name, address, phone := customer.Name(), customer.Address(), customer.Phone()
		dto.CustomerName = &name
		dto.CustomerAddress = &address
		dto.CustomerPhone = &phone
		if coordinates := customer.Coordinates(); coordinates != nil {
			lat, lng := coordinates.Lat(), coordinates.Lng()
			dto.CustomerLat = &lat
			dto.CustomerLng = &lng
		}
	}

	for i, item := range aggregate.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			ID:          uuid.New(),
			OrderID:     dto.ID,
			Position:    i,
			ProductName: item.ProductName(),
			ProductCode: item.ProductCode(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice(),
		})
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	sourceBranchID, err := kernel.UUIDFromBytes(dto.SourceBranchID[:])
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	destinationBranchID, err := optionalUUID(dto.DestinationBranchID)
	if err != nil {
		return nil, err
	}
	pharmacistID, err := optionalUUID(dto.PharmacistID)
	if err != nil {
		return nil, err
	}
	driverID, err := optionalUUID(dto.DriverID)
	if err != nil {
		return nil, err
	}

	deliveryType, err := order.DeliveryTypeFromString(dto.DeliveryType)
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	customer, err := customerFromDTO(dto)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(
			itemDTO.ProductName, itemDTO.ProductCode, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id, dto.Code, dto.InvoiceNumber, sourceBranchID, deliveryType,
		destinationBranchID, customer, dto.Notes, status,
		pharmacistID, driverID, createdBy, items, dto.CreatedAt,
		dto.PreparedAt, dto.PickedUpAt, dto.DeliveredAt,
	)
}

func customerFromDTO(dto OrderDTO) (*order.Customer, error) {
	if dto.CustomerName == nil {
		return nil, nil
	}

	var coordinates *kernel.Location
	if dto.CustomerLat != nil && dto.CustomerLng != nil {
		location, err := kernel.NewLocation(*dto.CustomerLat, *dto.CustomerLng)
		if err != nil {
			return nil, err
		}
		coordinates = &location
	}

	address, phone := "", ""
	if dto.CustomerAddress != nil {
		address = *dto.CustomerAddress
	}
	if dto.CustomerPhone != nil {
		phone = *dto.CustomerPhone
	}

	customer, err := order.NewCustomer(*dto.CustomerName, address, phone, coordinates)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func historyFromDomain(entry *order.HistoryEntry) (HistoryDTO, error) {
	dto := HistoryDTO{
		ID:        entry.ID().Bytes(),
		OrderID:   entry.OrderID().Bytes(),
		ToStatus:  entry.To().String(),
		ChangedBy: entry.ChangedBy().Bytes(),
		Notes:     entry.Notes(),
		ChangedAt: entry.ChangedAt(),
	}

	// The creation entry has no from status and is stored as "".
	if !entry.IsCreation() {
		dto.FromStatus = entry.From().String()
	}

	if metadata := entry.Metadata(); metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return HistoryDTO{}, err
		}
		dto.Metadata = raw
	}

	return dto, nil
}

func historyToDomain(dto HistoryDTO) (*order.HistoryEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	changedBy, err := kernel.UUIDFromBytes(dto.ChangedBy[:])
	if err != nil {
		return nil, err
	}

	from := order.StatusUnknown
	if dto.FromStatus != "" {
		if from, err = order.StatusFromString(dto.FromStatus); err != nil {
			return nil, err
		}
	}
	to, err := order.StatusFromString(dto.ToStatus)
	if err != nil {
		return nil, err
	}

	var metadata map[string]string
	if len(dto.Metadata) > 0 {
		if err = json.Unmarshal(dto.Metadata, &metadata); err != nil {
			return nil, err
		}
	}

	return order.RestoreHistoryEntry(id, orderID, from, to, changedBy, dto.Notes, metadata, dto.ChangedAt)
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
