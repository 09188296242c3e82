package commands_test

import (
	"testing"

	"pharmadelivery/internal/core/application/usecases/commands"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/order"
	"pharmadelivery/internal/core/domain/model/staff"
	"pharmadelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func feederActor(t *testing.T) staff.Actor {
	t.Helper()
	actor, err := staff.NewActor(kernel.NewUUID(), staff.RoleFeeder)
	require.NoError(t, err)
	return actor
}

func branchOrderCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()
	destination := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), "INV-2041", kernel.NewUUID(), order.BranchToBranch,
		&destination, nil, "", feederActor(t),
		[]commands.CreateOrderItem{{
			ProductName: "Amoxicillin 250mg",
			ProductCode: "AMOX-250",
			Quantity:    3,
			UnitPrice:   decimal.RequireFromString("14.00"),
		}},
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_AssignsPharmacist(t *testing.T) {
	ctx := t.Context()
	cmd := branchOrderCommand(t)
	pharmacistID := kernel.NewUUID()

	repo := new(MockOrderRepository)
	branches := new(MockBranchRepository)
	staffRepo := new(MockStaffRepository)
	outbox := new(MockNotificationOutbox)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BranchRepository").Return(branches).Once(),
		branches.On("Exists", mock.Anything, cmd.SourceBranchID()).Return(true, nil).Once(),
		branches.On("Exists", mock.Anything, *cmd.DestinationBranchID()).Return(true, nil).Once(),
		uow.On("StaffRepository").Return(staffRepo).Once(),
		staffRepo.On("FindPharmacistForBranch", mock.Anything, cmd.SourceBranchID()).
			Return(pharmacistID, nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		repo.On("AppendHistory", mock.Anything, mock.AnythingOfType("*order.HistoryEntry")).
			Return(nil).Twice(),
		uow.On("NotificationOutbox").Return(outbox).Once(),
		outbox.On("Enqueue", mock.Anything, mock.AnythingOfType("*notification.Notification")).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	branches.AssertExpectations(t)
	staffRepo.AssertExpectations(t)
	outbox.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_NoPharmacistStaysPending(t *testing.T) {
	ctx := t.Context()
	cmd := branchOrderCommand(t)

	repo := new(MockOrderRepository)
	branches := new(MockBranchRepository)
	staffRepo := new(MockStaffRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BranchRepository").Return(branches).Once(),
		branches.On("Exists", mock.Anything, mock.Anything).Return(true, nil).Twice(),
		uow.On("StaffRepository").Return(staffRepo).Once(),
		staffRepo.On("FindPharmacistForBranch", mock.Anything, cmd.SourceBranchID()).
			Return(kernel.UUID{}, errs.NewObjectNotFoundError("pharmacist", cmd.SourceBranchID())).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		repo.On("AppendHistory", mock.Anything, mock.MatchedBy(func(e *order.HistoryEntry) bool {
			return e.IsCreation() && e.Notes() == "Order created"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_UnknownSourceBranch(t *testing.T) {
	ctx := t.Context()
	cmd := branchOrderCommand(t)

	branches := new(MockBranchRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BranchRepository").Return(branches).Once(),
		branches.On("Exists", mock.Anything, cmd.SourceBranchID()).Return(false, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly

	factory := new(MockCreateOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory)

	err := h.Handle(ctx, cmd)

	require.Error(t, err)
}

func TestNewCreateOrderCommand_Validation(t *testing.T) {
	t.Run("rejects empty invoice number", func(t *testing.T) {
		destination := kernel.NewUUID()

		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "", kernel.NewUUID(), order.BranchToBranch,
			&destination, nil, "", feederActor(t),
			[]commands.CreateOrderItem{{ProductName: "x", ProductCode: "x", Quantity: 1,
				UnitPrice: decimal.RequireFromString("1.00")}},
		)

		require.Error(t, err)
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		destination := kernel.NewUUID()

		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "INV-1", kernel.NewUUID(), order.BranchToBranch,
			&destination, nil, "", feederActor(t), nil,
		)

		require.Error(t, err)
	})
}
