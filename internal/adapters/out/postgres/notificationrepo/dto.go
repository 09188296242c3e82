// Package notificationrepo implements the notification outbox on
// Postgres. Rows are written in the same transaction as the order
// mutation that produced them and drained later by the dispatch job.
package notificationrepo

import (
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for outbox rows.
// A NULL sent_at marks the row as pending.
type NotificationDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	RecipientType string    `gorm:"size:32"`
	RecipientID   uuid.UUID `gorm:"type:uuid;index"`
	Kind          string    `gorm:"size:64"`
	Title         string    `gorm:"size:255"`
	Message       string
	CreatedAt     time.Time `gorm:"index"`
	SentAt        *time.Time
	ReadAt        *time.Time
}

// TableName specifies the database table name for outbox rows.
func (NotificationDTO) TableName() string {
	return "order_notifications"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:            n.ID().Bytes(),
		OrderID:       n.OrderID().Bytes(),
		RecipientType: n.RecipientType().String(),
		RecipientID:   n.RecipientID().Bytes(),
		Kind:          n.Kind().String(),
		Title:         n.Title(),
		Message:       n.Message(),
		CreatedAt:     n.CreatedAt(),
		SentAt:        n.SentAt(),
		ReadAt:        n.ReadAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	recipientType, err := notification.RecipientTypeFromString(dto.RecipientType)
	if err != nil {
		return nil, err
	}
	kind, err := notification.KindFromString(dto.Kind)
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(
		id, orderID, recipientType, recipientID, kind,
		dto.Title, dto.Message, dto.CreatedAt, dto.SentAt, dto.ReadAt,
	)
}
