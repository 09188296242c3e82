// Package postgres implements the transactional unit of work over GORM.
// Repositories handed out by a unit of work share its transaction, so an
// order mutation, its ledger entry and the notifications it enqueues
// commit or roll back together.
package postgres

import (
	"context"

	"pharmadelivery/internal/adapters/out/postgres/notificationrepo"
	"pharmadelivery/internal/adapters/out/postgres/orderrepo"
	"pharmadelivery/internal/adapters/out/postgres/presencerepo"
	"pharmadelivery/internal/adapters/out/postgres/staffrepo"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates GormUnitOfWork instances.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a new unit of work factory.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a new unit of work bound to the factory's database.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make(map[kernel.UUID]any),
	}
}

// GormUnitOfWork implements the unit of work pattern using GORM
// transactions. It is not safe for concurrent use; create one per
// command.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB

	trackedAggregates map[kernel.UUID]any
}

// Begin starts a new database transaction. Calling Begin on a unit of
// work that already holds a transaction is a no-op.
func (u *GormUnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return nil
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	u.tx = tx
	return nil
}

// Commit commits the current transaction.
func (u *GormUnitOfWork) Commit(_ context.Context) error {
	if u.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := u.tx.Commit().Error; err != nil {
		return err
	}

	u.tx = nil
	u.trackedAggregates = make(map[kernel.UUID]any)
	return nil
}

// Rollback rolls back the current transaction.
func (u *GormUnitOfWork) Rollback(_ context.Context) error {
	if u.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := u.tx.Rollback().Error; err != nil {
		return err
	}

	u.tx = nil
	u.trackedAggregates = make(map[kernel.UUID]any)
	return nil
}

// TrackAggregate records an aggregate touched inside this unit of work.
func (u *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	u.trackedAggregates[id] = aggregate
}

// OrderRepository returns an OrderRepository bound to the current
// transaction, or to the plain connection when none is open.
func (u *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(u.conn(), u)
}

// PresenceRepository returns a PresenceRepository bound to the current
// transaction.
func (u *GormUnitOfWork) PresenceRepository() ports.PresenceRepository {
	return presencerepo.NewGormPresenceRepository(u.conn(), u)
}

// StaffRepository returns a StaffRepository bound to the current
// transaction.
func (u *GormUnitOfWork) StaffRepository() ports.StaffRepository {
	return staffrepo.NewGormStaffRepository(u.conn())
}

// BranchRepository returns a BranchRepository bound to the current
// transaction.
func (u *GormUnitOfWork) BranchRepository() ports.BranchRepository {
	return staffrepo.NewGormBranchRepository(u.conn())
}

// NotificationOutbox returns a NotificationOutbox bound to the current
// transaction.
func (u *GormUnitOfWork) NotificationOutbox() ports.NotificationOutbox {
	return notificationrepo.NewGormNotificationOutbox(u.conn())
}

func (u *GormUnitOfWork) conn() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}
