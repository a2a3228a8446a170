package geo

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCoordinate is returned for NaN, infinite or out-of-range coordinates
var ErrInvalidCoordinate = errors.New("invalid coordinate")

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// GeoPoint is a latitude/longitude pair in degrees
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// NewGeoPoint validates lat/lon and returns a GeoPoint
func NewGeoPoint(lat, lon float64) (GeoPoint, error) {
	p := GeoPoint{Latitude: lat, Longitude: lon}
	if !p.Valid() {
		return GeoPoint{}, fmt.Errorf("%w: lat=%v lon=%v", ErrInvalidCoordinate, lat, lon)
	}
	return p, nil
}

// Valid reports whether both components are finite and inside the GeoPoint range
func (p GeoPoint) Valid() bool {
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) ||
		math.IsInf(p.Latitude, 0) || math.IsInf(p.Longitude, 0) {
		return false
	}
	return p.Latitude >= MinLatitude && p.Latitude <= MaxLatitude &&
		p.Longitude >= MinLongitude && p.Longitude <= MaxLongitude
}

// Normalize clamps latitude into [-limit, limit] and wraps longitude into [-180, 180].
// NaN components collapse to 0.
func (p GeoPoint) Normalize(limit float64) GeoPoint {
	return GeoPoint{
		Latitude:  ClampLatitude(p.Latitude, limit),
		Longitude: WrapLongitude(p.Longitude),
	}
}

// String returns the decimal representation used in logs
func (p GeoPoint) String() string {
	return fmt.Sprintf("(%.5f, %.5f)", p.Latitude, p.Longitude)
}

// ClampLatitude limits lat to [-limit, limit]
func ClampLatitude(lat, limit float64) float64 {
	if math.IsNaN(lat) {
		return 0
	}
	if lat > limit {
		return limit
	}
	if lat < -limit {
		return -limit
	}
	return lat
}

// WrapLongitude wraps lon modulo 360 into [-180, 180]
func WrapLongitude(lon float64) float64 {
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return 0
	}
	if lon >= MinLongitude && lon <= MaxLongitude {
		return lon
	}
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

// SelectedLocation is the live pick or programmatic selection.
// It is replaced wholesale on every new selection.
type SelectedLocation struct {
	Coordinate  GeoPoint
	DisplayName string // empty when the caller did not name it
}

// Valid reports whether the location carries an in-range coordinate
func (s SelectedLocation) Valid() bool {
	return s.Coordinate.Valid()
}

// Label returns the display name, falling back to the decimal coordinate
func (s SelectedLocation) Label() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return FormatDecimal(s.Coordinate)
}
