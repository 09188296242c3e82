// Package presencerepo provides data transfer objects and mapping
// functions for driver presence persistence. It implements the
// repository pattern for presence records, including the locked claim
// used by the driver assignment engine.
package presencerepo

import (
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/presence"

	"github.com/google/uuid"
)

// PresenceDTO represents the database structure for driver presence.
// DriverID doubles as the primary key: there is one row per driver.
type PresenceDTO struct {
	DriverID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Status         string     `gorm:"size:32;index"`
	Lat            *float64
	Lng            *float64
	CurrentOrderID *uuid.UUID `gorm:"type:uuid"`
	LastSeenAt     time.Time
}

// TableName specifies the database table name for presence records.
func (PresenceDTO) TableName() string {
	return "driver_presences"
}

func fromDomain(aggregate *presence.Presence) PresenceDTO {
	dto := PresenceDTO{
		DriverID:   aggregate.DriverID().Bytes(),
		Status:     aggregate.Status().String(),
		LastSeenAt: aggregate.LastSeenAt(),
	}

	if location := aggregate.Location(); location != nil {
		lat, lng := location.Lat(), location.Lng()
		dto.Lat = &lat
		dto.Lng = &lng
	}

	if orderID := aggregate.CurrentOrderID(); orderID != nil {
		raw := orderID.Bytes()
		dto.CurrentOrderID = &raw
	}

	return dto
}

func toDomain(dto PresenceDTO) (*presence.Presence, error) {
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	status, err := presence.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var location *kernel.Location
	if dto.Lat != nil && dto.Lng != nil {
		l, locErr := kernel.NewLocation(*dto.Lat, *dto.Lng)
		if locErr != nil {
			return nil, locErr
		}
		location = &l
	}

	var currentOrderID *kernel.UUID
	if dto.CurrentOrderID != nil {
		id, idErr := kernel.UUIDFromBytes((*dto.CurrentOrderID)[:])
		if idErr != nil {
			return nil, idErr
		}
		currentOrderID = &id
	}

	return presence.RestorePresence(driverID, status, location, currentOrderID, dto.LastSeenAt)
}
