package commands_test

import (
	"testing"
	"time"

	"pharmadelivery/internal/core/application/usecases/commands"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/order"
	"pharmadelivery/internal/core/domain/model/presence"
	"pharmadelivery/internal/core/domain/model/staff"
	"pharmadelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewItem("Insulin pen", "INS-01", 1, decimal.RequireFromString("120.00"))
	require.NoError(t, err)
	destination := kernel.NewUUID()
	o, err := order.NewOrder(
		kernel.NewUUID(), "INV-9", kernel.NewUUID(), order.BranchToBranch,
		&destination, nil, "", kernel.NewUUID(), []order.Item{item}, time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestTransitionOrderCommandHandler_Handle_PharmacistAdvances(t *testing.T) {
	ctx := t.Context()
	aggregate := storedOrder(t)
	pharmacistID := kernel.NewUUID()
	require.NoError(t, aggregate.AssignPharmacist(pharmacistID))
	actor, err := staff.NewActor(pharmacistID, staff.RolePharmacist)
	require.NoError(t, err)
	cmd, err := commands.NewTransitionOrderCommand(aggregate.ID(), order.StatusPreparing, actor, "started packing")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	outbox := new(MockNotificationOutbox)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		repo.On("AppendHistory", mock.Anything, mock.AnythingOfType("*order.HistoryEntry")).
			Return(nil).Once(),
		uow.On("NotificationOutbox").Return(outbox).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, order.StatusPreparing, aggregate.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_ReadyForPickupBroadcasts(t *testing.T) {
	ctx := t.Context()
	aggregate := storedOrder(t)
	pharmacistID := kernel.NewUUID()
	require.NoError(t, aggregate.AssignPharmacist(pharmacistID))
	require.NoError(t, aggregate.TransitionTo(order.StatusPreparing, time.Now()))
	actor, err := staff.NewActor(pharmacistID, staff.RolePharmacist)
	require.NoError(t, err)
	cmd, err := commands.NewTransitionOrderCommand(aggregate.ID(), order.StatusReadyForPickup, actor, "")
	require.NoError(t, err)

	driverIDs := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}
	repo := new(MockOrderRepository)
	presenceRepo := new(MockPresenceRepository)
	outbox := new(MockNotificationOutbox)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		repo.On("AppendHistory", mock.Anything, mock.AnythingOfType("*order.HistoryEntry")).
			Return(nil).Once(),
		uow.On("PresenceRepository").Return(presenceRepo).Once(),
		presenceRepo.On("ListAvailableDriverIDs", mock.Anything).Return(driverIDs, nil).Once(),
		uow.On("NotificationOutbox").Return(outbox).Once(),
		outbox.On("Enqueue", mock.Anything, mock.AnythingOfType("*notification.Notification")).
			Return(nil).Twice(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, aggregate.PreparedAt())
	outbox.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_DeliveredReleasesDriver(t *testing.T) {
	ctx := t.Context()
	aggregate := storedOrder(t)
	require.NoError(t, aggregate.AssignPharmacist(kernel.NewUUID()))
	require.NoError(t, aggregate.TransitionTo(order.StatusPreparing, time.Now()))
	require.NoError(t, aggregate.TransitionTo(order.StatusReadyForPickup, time.Now()))
	driverID := kernel.NewUUID()
	require.NoError(t, aggregate.AssignDriver(driverID))
	require.NoError(t, aggregate.TransitionTo(order.StatusPickedUp, time.Now()))
	require.NoError(t, aggregate.TransitionTo(order.StatusInTransit, time.Now()))

	driverPresence, err := presence.NewPresence(driverID, time.Now())
	require.NoError(t, err)
	require.NoError(t, driverPresence.SetStatus(presence.StatusOnline, time.Now()))
	require.NoError(t, driverPresence.ClaimOrder(aggregate.ID(), time.Now()))

	actor, err := staff.NewActor(driverID, staff.RoleDriver)
	require.NoError(t, err)
	cmd, err := commands.NewTransitionOrderCommand(aggregate.ID(), order.StatusDelivered, actor, "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	presenceRepo := new(MockPresenceRepository)
	outbox := new(MockNotificationOutbox)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		repo.On("AppendHistory", mock.Anything, mock.AnythingOfType("*order.HistoryEntry")).
			Return(nil).Once(),
		uow.On("NotificationOutbox").Return(outbox).Once(),
		outbox.On("Enqueue", mock.Anything, mock.AnythingOfType("*notification.Notification")).
			Return(nil).Once(),
		uow.On("PresenceRepository").Return(presenceRepo).Once(),
		presenceRepo.On("Get", mock.Anything, driverID).Return(driverPresence, nil).Once(),
		presenceRepo.On("Update", mock.Anything, driverPresence).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, order.StatusDelivered, aggregate.Status())
	require.Equal(t, presence.StatusOnline, driverPresence.Status())
	require.Nil(t, driverPresence.CurrentOrderID())
	presenceRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_ForbiddenActor(t *testing.T) {
	ctx := t.Context()
	aggregate := storedOrder(t)
	require.NoError(t, aggregate.AssignPharmacist(kernel.NewUUID()))
	stranger, err := staff.NewActor(kernel.NewUUID(), staff.RolePharmacist)
	require.NoError(t, err)
	cmd, err := commands.NewTransitionOrderCommand(aggregate.ID(), order.StatusPreparing, stranger, "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
	require.Equal(t, order.StatusAssignedPharmacist, aggregate.Status())
	uow.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_IllegalEdge(t *testing.T) {
	ctx := t.Context()
	aggregate := storedOrder(t)
	admin, err := staff.NewActor(kernel.NewUUID(), staff.RoleAdmin)
	require.NoError(t, err)
	cmd, err := commands.NewTransitionOrderCommand(aggregate.ID(), order.StatusDelivered, admin, "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	require.Equal(t, order.StatusPending, aggregate.Status())
	uow.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	admin, err := staff.NewActor(kernel.NewUUID(), staff.RoleAdmin)
	require.NoError(t, err)
	orderID := kernel.NewUUID()
	cmd, err := commands.NewTransitionOrderCommand(orderID, order.StatusCancelled, admin, "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).
			Return(nil, errs.NewObjectNotFoundError("order", orderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
