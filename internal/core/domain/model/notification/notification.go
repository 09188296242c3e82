package notification

import (
	"errors"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/errs"
)

var (
	// ErrNotificationIsNotConstructed is returned when a Notification
	// instance was not created through one of the constructors.
	ErrNotificationIsNotConstructed = errors.New(
		"Notification must be created via NewNotification constructor")
)

// Notification is one outbox row: a message about an order addressed to a
// single recipient, with its delivery and read state.
type Notification struct {
	id            kernel.UUID
	orderID       kernel.UUID
	recipientType RecipientType
	recipientID   kernel.UUID
	kind          Kind
	title         string
	message       string
	createdAt     time.Time
	sentAt        *time.Time
	readAt        *time.Time

	isConstructed bool
}

// NewNotification creates an unsent, unread notification.
func NewNotification(
	orderID kernel.UUID,
	recipientType RecipientType,
	recipientID kernel.UUID,
	kind Kind,
	title string,
	message string,
	now time.Time,
) (*Notification, error) {
	if err := orderID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	if err := recipientType.Validate(); err != nil {
		return nil, err
	}
	if err := recipientID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("recipientId", err)
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, errs.NewValueIsRequiredError("title")
	}

	return &Notification{
		id:            kernel.NewUUID(),
		orderID:       orderID,
		recipientType: recipientType,
		recipientID:   recipientID,
		kind:          kind,
		title:         title,
		message:       message,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreNotification reconstructs a notification from persistence.
func RestoreNotification(
	id kernel.UUID,
	orderID kernel.UUID,
	recipientType RecipientType,
	recipientID kernel.UUID,
	kind Kind,
	title string,
	message string,
	createdAt time.Time,
	sentAt *time.Time,
	readAt *time.Time,
) (*Notification, error) {
	if err := errors.Join(
		id.Validate(), orderID.Validate(), recipientID.Validate(),
		recipientType.Validate(), kind.Validate(),
	); err != nil {
		return nil, err
	}

	return &Notification{
		id:            id,
		orderID:       orderID,
		recipientType: recipientType,
		recipientID:   recipientID,
		kind:          kind,
		title:         title,
		message:       message,
		createdAt:     createdAt,
		sentAt:        sentAt,
		readAt:        readAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Notification instance was properly constructed.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// ID returns the notification identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// OrderID returns the order the notification is about.
func (n *Notification) OrderID() kernel.UUID {
	return n.orderID
}

// RecipientType returns what kind of endpoint the recipient ID addresses.
func (n *Notification) RecipientType() RecipientType {
	return n.recipientType
}

// RecipientID returns who the notification is addressed to.
func (n *Notification) RecipientID() kernel.UUID {
	return n.recipientID
}

// Kind returns the notification classification.
func (n *Notification) Kind() Kind {
	return n.kind
}

// Title returns the short headline.
func (n *Notification) Title() string {
	return n.title
}

// Message returns the body text.
func (n *Notification) Message() string {
	return n.message
}

// CreatedAt returns when the notification was enqueued.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// SentAt returns when the dispatch job delivered the notification, or nil
// while it is pending.
func (n *Notification) SentAt() *time.Time {
	return n.sentAt
}

// ReadAt returns when the recipient opened the notification, or nil.
func (n *Notification) ReadAt() *time.Time {
	return n.readAt
}

// IsSent reports whether the dispatch job already delivered this row.
func (n *Notification) IsSent() bool {
	return n.sentAt != nil
}

// IsRead reports whether the recipient opened the notification.
func (n *Notification) IsRead() bool {
	return n.readAt != nil
}

// MarkSent stamps the delivery time. Marking twice keeps the first stamp.
func (n *Notification) MarkSent(now time.Time) {
	if n.sentAt == nil {
		n.sentAt = &now
	}
}

// MarkRead stamps the read time. Marking twice keeps the first stamp.
func (n *Notification) MarkRead(now time.Time) {
	if n.readAt == nil {
		n.readAt = &now
	}
}
