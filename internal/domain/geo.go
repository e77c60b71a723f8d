package domain

import "errors"

var (
	// ErrLatOutOfRange is returned when latitude is outside [-90, 90].
	ErrLatOutOfRange = errors.New("latitude out of range")

	// ErrLngOutOfRange is returned when longitude is outside [-180, 180].
	ErrLngOutOfRange = errors.New("longitude out of range")
)

// GeoPoint is a geographic point with an optional human-readable address.
// Either both coordinates are meaningful or the point is absent entirely;
// the address may be empty when reverse geocoding failed.
type GeoPoint struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

// Validate checks the coordinate ranges.
func (p GeoPoint) Validate() error {
	if p.Lat < -90 || p.Lat > 90 {
		return ErrLatOutOfRange
	}
	if p.Lng < -180 || p.Lng > 180 {
		return ErrLngOutOfRange
	}
	return nil
}
