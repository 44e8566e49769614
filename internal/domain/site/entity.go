package site

import "time"

// Site is the construction site's geofence reference: a center coordinate and
// a radius in meters. Exactly one active site exists; multi-site zones are not
// modeled.
type Site struct {
	ID           string
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
