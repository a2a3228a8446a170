package geo

import "math"

// SafeLatitude is the band the flat Mercator map is defined on. Latitudes
// outside [-SafeLatitude, SafeLatitude] are clamped before projecting.
const SafeLatitude = 85.0

// Mercator maps geographic coordinates onto a mapWidth x mapHeight plane.
// x grows eastward from the antimeridian, y grows southward from the top edge.
type Mercator struct {
	MapWidth  float64
	MapHeight float64
}

// NewMercator creates a Mercator plane of the given size in map units
func NewMercator(mapWidth, mapHeight float64) Mercator {
	return Mercator{MapWidth: mapWidth, MapHeight: mapHeight}
}

// Forward converts a GeoPoint to plane coordinates
func (m Mercator) Forward(p GeoPoint) (x, y float64) {
	lat := ClampLatitude(p.Latitude, SafeLatitude)
	lon := WrapLongitude(p.Longitude)

	x = (lon + 180) / 360 * m.MapWidth
	n := math.Log(math.Tan(math.Pi/4 + lat*math.Pi/360))
	y = m.MapHeight/2 - m.MapHeight*n/(2*math.Pi)
	return x, y
}

// Inverse converts plane coordinates back to a GeoPoint.
// The result is always valid: latitude is clamped to the safe band and
// longitude wraps when x leaves the plane.
func (m Mercator) Inverse(x, y float64) GeoPoint {
	lon := x/m.MapWidth*360 - 180
	lat := (180 / math.Pi) * (math.Pi/2 - 2*math.Atan(math.Exp((y/m.MapHeight-0.5)*2*math.Pi)))

	return GeoPoint{Latitude: lat, Longitude: lon}.Normalize(SafeLatitude)
}
