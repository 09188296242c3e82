package kernel

import (
	"errors"
	"fmt"

	"pharmadelivery/internal/pkg/errs"

	"pharmadelivery/internal/pkg/guard"
)

// Geographic coordinate bounds (WGS84 decimal degrees).
const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0
)

// ErrLocationIsNotConstructed is returned when attempting to use an
// improperly initialized Location. Locations must be created via NewLocation.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location represents a geographic point with validated WGS84 coordinates.
// It is an immutable value object used for customer delivery addresses and
// for the last reported position of a driver.
//
// The zero value is invalid and will fail validation; use NewLocation.
//
// Example:
//
//	loc, err := kernel.NewLocation(24.7136, 46.6753)
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(loc) // Location(24.713600,46.675300)
type Location struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewLocation creates a Location from latitude and longitude in decimal
// degrees. Latitude must be within [-90, 90] and longitude within
// [-180, 180]; out-of-range coordinates are rejected.
func NewLocation(lat float64, lng float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLat(lat), loc.setLng(lng)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Lat returns the latitude in decimal degrees.
func (l Location) Lat() float64 {
	return l.lat
}

// Lng returns the longitude in decimal degrees.
func (l Location) Lng() float64 {
	return l.lng
}

// IsEqual compares two locations by exact coordinate equality.
func (l Location) IsEqual(other Location) bool {
	return l.lat == other.lat && l.lng == other.lng
}

// Validate returns ErrLocationIsNotConstructed for zero-value locations.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// String implements fmt.Stringer for logging and debugging.
func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.lat, l.lng)
}

func (l *Location) setLat(lat float64) error {
	if lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", lat, LatitudeMin, LatitudeMax)
	}
	l.lat = lat
	return nil
}

func (l *Location) setLng(lng float64) error {
	if lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", lng, LongitudeMin, LongitudeMax)
	}
	l.lng = lng
	return nil
}
