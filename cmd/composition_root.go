package cmd

import (
	"log/slog"

	"pharmadelivery/internal/adapters/out/notifier"
	"pharmadelivery/internal/adapters/out/postgres"
	"pharmadelivery/internal/adapters/out/postgres/notificationrepo"
	"pharmadelivery/internal/core/application/usecases/commands"
	"pharmadelivery/internal/core/application/usecases/queries"
	"pharmadelivery/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CreateOrderUoWFactory = FuncCreateOrderUoWFactory(func() commands.CreateOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.TransitionUoWFactory = FuncTransitionUoWFactory(func() commands.TransitionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	var f commands.TransitionUoWFactory = FuncTransitionUoWFactory(func() commands.TransitionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignDriverCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateDriverPresenceCommandHandler() commands.UpdateDriverPresenceCommandHandler {
	var f commands.PresenceUoWFactory = FuncPresenceUoWFactory(func() commands.PresenceUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDriverPresenceCommandHandler(
		f, notifier.NewSlogLocationBroadcaster(c.logger), c.logger)
}

func (c *CompositionRoot) CreateAmendHistoryNoteCommandHandler() commands.AmendHistoryNoteCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAmendHistoryNoteCommandHandler(f)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriverCurrentOrderQueryHandler() queries.GetDriverCurrentOrderQueryHandler {
	return queries.NewGetDriverCurrentOrderQueryHandler(c.gormDB)
}

// CreateJobManager wires the background jobs. The dispatch job drains
// the outbox outside of any command transaction, so it gets a repository
// bound to the plain connection.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateAssignDriverCommandHandler(),
		notificationrepo.NewGormNotificationOutbox(c.gormDB),
		notifier.NewSlogNotificationSender(c.logger),
		c.logger,
	)
}

type FuncCreateOrderUoWFactory func() commands.CreateOrderUoW

func (f FuncCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	return f()
}

type FuncTransitionUoWFactory func() commands.TransitionUoW

func (f FuncTransitionUoWFactory) Create() commands.TransitionUoW {
	return f()
}

type FuncPresenceUoWFactory func() commands.PresenceUoW

func (f FuncPresenceUoWFactory) Create() commands.PresenceUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
