package kernel_test

import (
	"testing"

	"pharmadelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	t.Run("should create valid location", func(t *testing.T) {
		loc, err := kernel.NewLocation(24.7136, 46.6753)

		require.NoError(t, err)
		require.NoError(t, loc.Validate())
		assert.InDelta(t, 24.7136, loc.Lat(), 1e-9)
		assert.InDelta(t, 46.6753, loc.Lng(), 1e-9)
	})

	t.Run("should accept boundary coordinates", func(t *testing.T) {
		for _, tc := range []struct{ lat, lng float64 }{
			{kernel.LatitudeMin, kernel.LongitudeMin},
			{kernel.LatitudeMax, kernel.LongitudeMax},
			{0, 0},
		} {
			loc, err := kernel.NewLocation(tc.lat, tc.lng)
			require.NoError(t, err)
			require.NoError(t, loc.Validate())
		}
	})

	t.Run("should reject latitude out of range", func(t *testing.T) {
		_, err := kernel.NewLocation(91, 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
	})

	t.Run("should reject longitude out of range", func(t *testing.T) {
		_, err := kernel.NewLocation(0, -180.5)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "longitude")
	})

	t.Run("should join multiple validation errors", func(t *testing.T) {
		_, err := kernel.NewLocation(-100, 200)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})
}

func TestLocation_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var loc kernel.Location

		err := loc.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "location must be created")
	})
}

func TestLocation_IsEqual(t *testing.T) {
	a, _ := kernel.NewLocation(24.7136, 46.6753)
	b, _ := kernel.NewLocation(24.7136, 46.6753)
	c, _ := kernel.NewLocation(21.4858, 39.1925)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}
