// Package geo provides great-circle distance math for geofence checks.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// Mean Earth radius in meters.
const earthRadiusMeters = 6371000.0

var ErrInvalidCoordinate = errors.New("invalid coordinate")

type Point struct {
	Latitude  float64
	Longitude float64
}

// Validate checks that the point lies within the valid WGS84 ranges.
func (p Point) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidCoordinate, p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidCoordinate, p.Longitude)
	}
	return nil
}

// Distance returns the haversine great-circle distance between two points in
// meters.
func Distance(a, b Point) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}

	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c, nil
}

// WithinZone reports whether point lies within radiusMeters of site. A point
// exactly on the boundary counts as inside.
func WithinZone(point, site Point, radiusMeters float64) (bool, error) {
	if radiusMeters <= 0 {
		return false, fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidCoordinate, radiusMeters)
	}

	d, err := Distance(point, site)
	if err != nil {
		return false, err
	}

	return d <= radiusMeters, nil
}
