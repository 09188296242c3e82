package presencerepo

import (
	"context"
	"errors"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/presence"
	"pharmadelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPresenceRepository implements PresenceRepository using GORM.
type GormPresenceRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPresenceRepository creates a new GORM presence repository.
func NewGormPresenceRepository(db *gorm.DB, tracker aggregateTracker) *GormPresenceRepository {
	return &GormPresenceRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a driver's first presence record to the database.
func (r *GormPresenceRepository) Add(ctx context.Context, aggregate *presence.Presence) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.DriverID(), aggregate)
	return nil
}

// Update saves an existing presence record to the database. All columns
// are written so a cleared location or released order reaches the row.
func (r *GormPresenceRepository) Update(ctx context.Context, aggregate *presence.Presence) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&PresenceDTO{}).
		Where("driver_id = ?", dto.DriverID).
		Select("status", "lat", "lng", "current_order_id", "last_seen_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.DriverID(), aggregate)
	return nil
}

// Get retrieves a driver's presence record by driver ID.
func (r *GormPresenceRepository) Get(ctx context.Context, driverID kernel.UUID) (*presence.Presence, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dto PresenceDTO
	if err := r.db.WithContext(ctx).First(&dto, "driver_id = ?", driverID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("presence", driverID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ClaimFirstAvailable locks and returns the first online driver without
// an order. FOR UPDATE SKIP LOCKED makes concurrent claims pick
// different rows instead of blocking on each other; the lock is held
// until the surrounding transaction commits or rolls back.
func (r *GormPresenceRepository) ClaimFirstAvailable(ctx context.Context) (*presence.Presence, error) {
	var dto PresenceDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ? AND current_order_id IS NULL", presence.StatusOnline.String()).
		Order("last_seen_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("presence", "first available driver")
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListAvailableDriverIDs returns the IDs of all online drivers without
// an order. No locks are taken.
func (r *GormPresenceRepository) ListAvailableDriverIDs(ctx context.Context) ([]kernel.UUID, error) {
	var dtos []PresenceDTO
	err := r.db.WithContext(ctx).
		Select("driver_id").
		Where("status = ? AND current_order_id IS NULL", presence.StatusOnline.String()).
		Order("last_seen_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.DriverID[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}

	return ids, nil
}
