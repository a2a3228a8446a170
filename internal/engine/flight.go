package engine

import (
	"math"
	"time"

	"geopicker/internal/geo"
)

// flight is one fly-to transition. It is current only while its generation
// matches the controller's; a newer centerOn bumps the generation and the
// old flight stops applying updates.
type flight struct {
	gen      uint64
	from     geo.GeoPoint
	to       geo.GeoPoint
	fromZoom float64
	toZoom   float64
	zoom     bool
	duration time.Duration
	start    time.Time
}

// at returns the interpolated center and zoom for progress t in [0, 1]
func (f *flight) at(t float64) (geo.GeoPoint, float64) {
	k := easeInOutCubic(t)

	dLon := f.to.Longitude - f.from.Longitude
	// Take the short way across the antimeridian
	if dLon > 180 {
		dLon -= 360
	} else if dLon < -180 {
		dLon += 360
	}

	p := geo.GeoPoint{
		Latitude:  f.from.Latitude + (f.to.Latitude-f.from.Latitude)*k,
		Longitude: geo.WrapLongitude(f.from.Longitude + dLon*k),
	}
	if t >= 1 {
		p = f.to
	}

	z := f.fromZoom + (f.toZoom-f.fromZoom)*k
	return p, z
}

// progress returns how far along the flight is at now, starting the clock
// on the first call
func (f *flight) progress(now time.Time) float64 {
	if f.start.IsZero() {
		f.start = now
	}
	if f.duration <= 0 {
		return 1
	}
	t := float64(now.Sub(f.start)) / float64(f.duration)
	return math.Max(0, math.Min(1, t))
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}
