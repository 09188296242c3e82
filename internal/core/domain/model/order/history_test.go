package order_test

import (
	"testing"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHistoryEntry(t *testing.T) {
	t.Run("records a transition", func(t *testing.T) {
		orderID := kernel.NewUUID()
		changedBy := kernel.NewUUID()
		changedAt := time.Now()

		entry, err := order.NewHistoryEntry(
			orderID, order.StatusPending, order.StatusAssignedPharmacist,
			changedBy, "auto-assigned", map[string]string{"pharmacist_id": "p-1"}, changedAt,
		)

		require.NoError(t, err)
		require.NoError(t, entry.Validate())
		assert.True(t, entry.OrderID().IsEqual(orderID))
		assert.Equal(t, order.StatusPending, entry.From())
		assert.Equal(t, order.StatusAssignedPharmacist, entry.To())
		assert.True(t, entry.ChangedBy().IsEqual(changedBy))
		assert.Equal(t, "auto-assigned", entry.Notes())
		assert.Equal(t, "p-1", entry.Metadata()["pharmacist_id"])
		assert.Equal(t, changedAt, entry.ChangedAt())
		assert.False(t, entry.IsCreation())
	})

	t.Run("creation entry has no from status", func(t *testing.T) {
		entry, err := order.NewHistoryEntry(
			kernel.NewUUID(), order.StatusUnknown, order.StatusPending,
			kernel.NewUUID(), "", nil, time.Now(),
		)

		require.NoError(t, err)
		assert.True(t, entry.IsCreation())
		assert.Equal(t, order.StatusUnknown, entry.From())
	})

	t.Run("rejects missing order ID", func(t *testing.T) {
		var zeroID kernel.UUID

		_, err := order.NewHistoryEntry(
			zeroID, order.StatusPending, order.StatusPreparing,
			kernel.NewUUID(), "", nil, time.Now(),
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "orderId")
	})

	t.Run("rejects unknown target status", func(t *testing.T) {
		_, err := order.NewHistoryEntry(
			kernel.NewUUID(), order.StatusPending, order.StatusUnknown,
			kernel.NewUUID(), "", nil, time.Now(),
		)

		require.Error(t, err)
	})

	t.Run("rejects missing actor", func(t *testing.T) {
		var zeroID kernel.UUID

		_, err := order.NewHistoryEntry(
			kernel.NewUUID(), order.StatusPending, order.StatusPreparing,
			zeroID, "", nil, time.Now(),
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "changedBy")
	})

	t.Run("metadata is copied, not aliased", func(t *testing.T) {
		metadata := map[string]string{"driver_id": "d-1"}

		entry, err := order.NewHistoryEntry(
			kernel.NewUUID(), order.StatusReadyForPickup, order.StatusAssignedDriver,
			kernel.NewUUID(), "", metadata, time.Now(),
		)
		require.NoError(t, err)

		metadata["driver_id"] = "mutated"
		entry.Metadata()["extra"] = "mutated"

		assert.Equal(t, "d-1", entry.Metadata()["driver_id"])
		assert.NotContains(t, entry.Metadata(), "extra")
	})
}

func TestHistoryEntry_AmendNotes(t *testing.T) {
	entry, err := order.NewHistoryEntry(
		kernel.NewUUID(), order.StatusPending, order.StatusCancelled,
		kernel.NewUUID(), "customer called", nil, time.Now(),
	)
	require.NoError(t, err)

	entry.AmendNotes("customer called, refund issued")

	assert.Equal(t, "customer called, refund issued", entry.Notes())
}

func TestRestoreHistoryEntry(t *testing.T) {
	t.Run("round-trips an entry", func(t *testing.T) {
		original, err := order.NewHistoryEntry(
			kernel.NewUUID(), order.StatusInTransit, order.StatusDelivered,
			kernel.NewUUID(), "left with guard", map[string]string{"driver_id": "d-2"}, time.Now(),
		)
		require.NoError(t, err)

		restored, err := order.RestoreHistoryEntry(
			original.ID(), original.OrderID(), original.From(), original.To(),
			original.ChangedBy(), original.Notes(), original.Metadata(), original.ChangedAt(),
		)

		require.NoError(t, err)
		require.NoError(t, restored.Validate())
		assert.True(t, restored.ID().IsEqual(original.ID()))
		assert.Equal(t, original.Notes(), restored.Notes())
		assert.Equal(t, original.Metadata(), restored.Metadata())
	})

	t.Run("rejects zero-value IDs", func(t *testing.T) {
		var zeroID kernel.UUID

		_, err := order.RestoreHistoryEntry(
			zeroID, kernel.NewUUID(), order.StatusUnknown, order.StatusPending,
			kernel.NewUUID(), "", nil, time.Now(),
		)

		require.Error(t, err)
	})
}
