package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var site = Point{Latitude: 19.213585, Longitude: 72.865429}

func TestDistanceZeroForSamePoint(t *testing.T) {
	d, err := Distance(site, site)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)
}

func TestDistanceIsSymmetric(t *testing.T) {
	other := Point{Latitude: 19.1, Longitude: 72.9}

	d1, err := Distance(site, other)
	require.NoError(t, err)
	d2, err := Distance(other, site)
	require.NoError(t, err)

	assert.Equal(t, d1, d2)
}

func TestDistanceKnownOffset(t *testing.T) {
	// 0.01 degrees of latitude is ~1.112 km on the mean-radius sphere.
	north := Point{Latitude: site.Latitude + 0.01, Longitude: site.Longitude}

	d, err := Distance(site, north)
	require.NoError(t, err)
	assert.InDelta(t, 1111.95, d, 0.5)
}

func TestDistanceRejectsInvalidCoordinates(t *testing.T) {
	tests := []struct {
		name  string
		point Point
	}{
		{"latitude too high", Point{Latitude: 90.5, Longitude: 0}},
		{"latitude too low", Point{Latitude: -91, Longitude: 0}},
		{"longitude too high", Point{Latitude: 0, Longitude: 180.1}},
		{"longitude too low", Point{Latitude: 0, Longitude: -181}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Distance(tt.point, site)
			assert.ErrorIs(t, err, ErrInvalidCoordinate)

			_, err = Distance(site, tt.point)
			assert.ErrorIs(t, err, ErrInvalidCoordinate)
		})
	}
}

func TestWithinZoneInsideRadius(t *testing.T) {
	near := Point{Latitude: site.Latitude + 0.001, Longitude: site.Longitude}

	within, err := WithinZone(near, site, 1000)
	require.NoError(t, err)
	assert.True(t, within)
}

func TestWithinZoneOutsideRadius(t *testing.T) {
	// ~2.2 km north of the site.
	far := Point{Latitude: site.Latitude + 0.02, Longitude: site.Longitude}

	within, err := WithinZone(far, site, 1000)
	require.NoError(t, err)
	assert.False(t, within)
}

func TestWithinZoneBoundaryCountsAsInside(t *testing.T) {
	point := Point{Latitude: site.Latitude + 0.005, Longitude: site.Longitude}

	d, err := Distance(point, site)
	require.NoError(t, err)

	within, err := WithinZone(point, site, d)
	require.NoError(t, err)
	assert.True(t, within)
}

func TestWithinZoneRejectsNonPositiveRadius(t *testing.T) {
	_, err := WithinZone(site, site, 0)
	assert.Error(t, err)

	_, err = WithinZone(site, site, -10)
	assert.Error(t, err)
}
