package notificationrepo

import (
	"context"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/notification"

	"gorm.io/gorm"
)

// GormNotificationOutbox implements NotificationOutbox using GORM.
type GormNotificationOutbox struct {
	db *gorm.DB
}

// NewGormNotificationOutbox creates a new GORM notification outbox.
func NewGormNotificationOutbox(db *gorm.DB) *GormNotificationOutbox {
	return &GormNotificationOutbox{db: db}
}

// Enqueue saves an unsent notification row to the database.
func (r *GormNotificationOutbox) Enqueue(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto := fromDomain(n)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// FetchPending returns up to limit unsent rows, oldest first.
func (r *GormNotificationOutbox) FetchPending(ctx context.Context, limit int) ([]*notification.Notification, error) {
	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Where("sent_at IS NULL").
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	notifications := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		notifications = append(notifications, n)
	}

	return notifications, nil
}

// MarkSent stamps a row as delivered.
func (r *GormNotificationOutbox) MarkSent(ctx context.Context, id kernel.UUID, at time.Time) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ? AND sent_at IS NULL", id.Bytes()).
		Update("sent_at", at)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
