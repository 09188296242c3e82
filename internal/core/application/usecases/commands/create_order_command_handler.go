package commands

import (
	"context"
	"errors"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/order"
	"pharmadelivery/internal/core/domain/services"
	"pharmadelivery/internal/core/ports"
	"pharmadelivery/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order
// creation. Validates branch references, builds the aggregate, attempts
// pharmacist auto-assignment and records the creation in the status
// ledger, all within one transaction.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// Order is pending, or assigned_pharmacist when a match was found.
type CreateOrderCommandHandler struct {
	uowFactory CreateOrderUoWFactory
	planner    services.NotificationPlanner
}

// NewCreateOrderCommandHandler creates a handler for order creation
// operations. Requires a CreateOrderUoWFactory for transactional
// persistence.
func NewCreateOrderCommandHandler(uowFactory CreateOrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewNotificationPlanner(),
	}
}

// Handle processes the order creation command. The order starts pending;
// when the source branch has a pharmacist the order advances to
// assigned_pharmacist before the transaction commits, with a ledger
// entry and a notification for each step.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	items, err := buildItems(cmd.Items())
	if err != nil {
		return err
	}

	customer, err := buildCustomer(cmd.Customer())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = checkBranches(ctx, uow.BranchRepository(), cmd.SourceBranchID(), cmd.DestinationBranchID()); err != nil {
		return err
	}

	now := time.Now()
	newOrder, err := order.NewOrder(
		cmd.OrderID(), cmd.InvoiceNumber(), cmd.SourceBranchID(), cmd.DeliveryType(),
		cmd.DestinationBranchID(), customer, cmd.Notes(), cmd.Actor().ID(), items, now,
	)
	if err != nil {
		return err
	}

	pharmacistID, err := uow.StaffRepository().FindPharmacistForBranch(ctx, cmd.SourceBranchID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		// No pharmacist at the branch: the order stays pending and a
		// later assignment attempt picks it up.
	case err != nil:
		return err
	default:
		if err = newOrder.AssignPharmacist(pharmacistID); err != nil {
			return err
		}
	}

	orderRepo := uow.OrderRepository()
	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return err
	}

	// The order's own notes live on the aggregate; the creation entry
	// always carries the same note.
	creationEntry, err := order.NewHistoryEntry(
		newOrder.ID(), order.StatusUnknown, order.StatusPending,
		cmd.Actor().ID(), "Order created", nil, now,
	)
	if err != nil {
		return err
	}
	if err = orderRepo.AppendHistory(ctx, creationEntry); err != nil {
		return err
	}

	if newOrder.Status() == order.StatusAssignedPharmacist {
		assignmentEntry, err := order.NewHistoryEntry(
			newOrder.ID(), order.StatusPending, order.StatusAssignedPharmacist,
			cmd.Actor().ID(), "",
			map[string]string{"pharmacist_id": newOrder.PharmacistID().String()}, now,
		)
		if err != nil {
			return err
		}
		if err = orderRepo.AppendHistory(ctx, assignmentEntry); err != nil {
			return err
		}

		rows, err := h.planner.Plan(newOrder, order.StatusAssignedPharmacist, nil, now)
		if err != nil {
			return err
		}
		outbox := uow.NotificationOutbox()
		for _, row := range rows {
			if err = outbox.Enqueue(ctx, row); err != nil {
				return err
			}
		}
	}

	return uow.Commit(ctx)
}

func buildItems(specs []CreateOrderItem) ([]order.Item, error) {
	items := make([]order.Item, 0, len(specs))
	for _, s := range specs {
		item, err := order.NewItem(s.ProductName, s.ProductCode, s.Quantity, s.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func buildCustomer(c *CreateOrderCustomer) (*order.Customer, error) {
	if c == nil {
		return nil, nil
	}

	var coordinates *kernel.Location
	if c.Lat != nil && c.Lng != nil {
		location, err := kernel.NewLocation(*c.Lat, *c.Lng)
		if err != nil {
			return nil, err
		}
		coordinates = &location
	}

	customer, err := order.NewCustomer(c.Name, c.Address, c.Phone, coordinates)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func checkBranches(
	ctx context.Context,
	branches ports.BranchRepository,
	sourceID kernel.UUID,
	destinationID *kernel.UUID,
) error {
	exists, err := branches.Exists(ctx, sourceID)
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewObjectNotFoundError("sourceBranch", sourceID)
	}

	if destinationID != nil {
		exists, err = branches.Exists(ctx, *destinationID)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewObjectNotFoundError("destinationBranch", *destinationID)
		}
	}

	return nil
}
