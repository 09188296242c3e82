package order

import (
	"errors"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/errs"
)

// ErrHistoryEntryIsNotConstructed is returned when a HistoryEntry was not
// created through NewHistoryEntry or RestoreHistoryEntry.
var ErrHistoryEntryIsNotConstructed = errors.New(
	"HistoryEntry must be created via NewHistoryEntry constructor")

// HistoryEntry is one record of the append-only status ledger: who moved an
// order from which status to which, when, and with what context.
//
// Entries are never mutated or deleted once written, with a single
// exception carried over from the original system: the most recent entry's
// note may be amended for late-arriving context (e.g. delivery remarks
// uploaded after the transition). AmendNotes is that narrow path; nothing
// else on the entry can change.
//
// The creation entry uses StatusUnknown as its from-status, persisted as an
// empty string.
type HistoryEntry struct {
	id        kernel.UUID
	orderID   kernel.UUID
	from      Status
	to        Status
	changedBy kernel.UUID
	notes     string
	metadata  map[string]string
	changedAt time.Time

	isConstructed bool
}

// NewHistoryEntry creates a ledger entry for a transition that just
// happened. from may be StatusUnknown only for the creation entry.
func NewHistoryEntry(
	orderID kernel.UUID,
	from Status,
	to Status,
	changedBy kernel.UUID,
	notes string,
	metadata map[string]string,
	changedAt time.Time,
) (*HistoryEntry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	if err := to.Validate(); err != nil {
		return nil, err
	}
	if from != StatusUnknown {
		if err := from.Validate(); err != nil {
			return nil, err
		}
	}
	if err := changedBy.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("changedBy", err)
	}

	return &HistoryEntry{
		id:            kernel.NewUUID(),
		orderID:       orderID,
		from:          from,
		to:            to,
		changedBy:     changedBy,
		notes:         notes,
		metadata:      copyMetadata(metadata),
		changedAt:     changedAt,
		isConstructed: true,
	}, nil
}

// RestoreHistoryEntry reconstructs a ledger entry from persistence.
func RestoreHistoryEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	from Status,
	to Status,
	changedBy kernel.UUID,
	notes string,
	metadata map[string]string,
	changedAt time.Time,
) (*HistoryEntry, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), changedBy.Validate()); err != nil {
		return nil, err
	}

	return &HistoryEntry{
		id:            id,
		orderID:       orderID,
		from:          from,
		to:            to,
		changedBy:     changedBy,
		notes:         notes,
		metadata:      copyMetadata(metadata),
		changedAt:     changedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the entry was created through a factory method.
func (h *HistoryEntry) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHistoryEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (h *HistoryEntry) ID() kernel.UUID {
	return h.id
}

// OrderID returns the order the entry belongs to.
func (h *HistoryEntry) OrderID() kernel.UUID {
	return h.orderID
}

// From returns the status the order left; StatusUnknown for the creation
// entry.
func (h *HistoryEntry) From() Status {
	return h.from
}

// IsCreation reports whether this is the initial creation entry.
func (h *HistoryEntry) IsCreation() bool {
	return h.from == StatusUnknown
}

// To returns the status the order entered.
func (h *HistoryEntry) To() Status {
	return h.to
}

// ChangedBy returns the actor who performed the transition.
func (h *HistoryEntry) ChangedBy() kernel.UUID {
	return h.changedBy
}

// Notes returns the free-text note attached to the transition.
func (h *HistoryEntry) Notes() string {
	return h.notes
}

// Metadata returns a copy of the structured metadata map.
func (h *HistoryEntry) Metadata() map[string]string {
	return copyMetadata(h.metadata)
}

// ChangedAt returns when the transition happened.
func (h *HistoryEntry) ChangedAt() time.Time {
	return h.changedAt
}

// AmendNotes replaces the entry's note. The repository only offers this for
// the newest entry of an order; older entries stay immutable.
func (h *HistoryEntry) AmendNotes(notes string) {
	h.notes = notes
}

func copyMetadata(metadata map[string]string) map[string]string {
	if metadata == nil {
		return nil
	}
	out := make(map[string]string, len(metadata))
	for k, v := range metadata {
		out[k] = v
	}
	return out
}
