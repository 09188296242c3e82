package commands_test

import (
	"context"
	"time"

	"pharmadelivery/internal/core/application/usecases/commands"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/notification"
	"pharmadelivery/internal/core/domain/model/order"
	"pharmadelivery/internal/core/domain/model/presence"
	"pharmadelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetFirstReadyForPickup(ctx context.Context) (*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) AppendHistory(ctx context.Context, entry *order.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockOrderRepository) GetNewestHistory(ctx context.Context, orderID kernel.UUID) (*order.HistoryEntry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.HistoryEntry), args.Error(1)
}
func (m *MockOrderRepository) UpdateHistoryNotes(ctx context.Context, entry *order.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockPresenceRepository struct{ mock.Mock }

func (m *MockPresenceRepository) Add(ctx context.Context, p *presence.Presence) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPresenceRepository) Update(ctx context.Context, p *presence.Presence) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPresenceRepository) Get(ctx context.Context, driverID kernel.UUID) (*presence.Presence, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*presence.Presence), args.Error(1)
}
func (m *MockPresenceRepository) ClaimFirstAvailable(ctx context.Context) (*presence.Presence, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*presence.Presence), args.Error(1)
}
func (m *MockPresenceRepository) ListAvailableDriverIDs(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockStaffRepository struct{ mock.Mock }

func (m *MockStaffRepository) FindPharmacistForBranch(ctx context.Context, branchID kernel.UUID) (kernel.UUID, error) {
	args := m.Called(ctx, branchID)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

type MockBranchRepository struct{ mock.Mock }

func (m *MockBranchRepository) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockNotificationOutbox struct{ mock.Mock }

func (m *MockNotificationOutbox) Enqueue(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationOutbox) FetchPending(ctx context.Context, limit int) ([]*notification.Notification, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}
func (m *MockNotificationOutbox) MarkSent(ctx context.Context, id kernel.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

type MockLocationBroadcaster struct{ mock.Mock }

func (m *MockLocationBroadcaster) Broadcast(ctx context.Context, driverID kernel.UUID, location kernel.Location) error {
	args := m.Called(ctx, driverID, location)
	return args.Error(0)
}

// MockUoW satisfies every composed unit of work interface used by the
// command handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockUoW) PresenceRepository() ports.PresenceRepository {
	args := m.Called()
	return args.Get(0).(ports.PresenceRepository)
}
func (m *MockUoW) StaffRepository() ports.StaffRepository {
	args := m.Called()
	return args.Get(0).(ports.StaffRepository)
}
func (m *MockUoW) BranchRepository() ports.BranchRepository {
	args := m.Called()
	return args.Get(0).(ports.BranchRepository)
}
func (m *MockUoW) NotificationOutbox() ports.NotificationOutbox {
	args := m.Called()
	return args.Get(0).(ports.NotificationOutbox)
}

type MockCreateOrderUoWFactory struct{ mock.Mock }

func (m *MockCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.CreateOrderUoW)
}

type MockTransitionUoWFactory struct{ mock.Mock }

func (m *MockTransitionUoWFactory) Create() commands.TransitionUoW {
	args := m.Called()
	return args.Get(0).(commands.TransitionUoW)
}

type MockPresenceUoWFactory struct{ mock.Mock }

func (m *MockPresenceUoWFactory) Create() commands.PresenceUoW {
	args := m.Called()
	return args.Get(0).(commands.PresenceUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}
