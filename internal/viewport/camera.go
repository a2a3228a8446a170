package viewport

import (
	"math"

	"geopicker/internal/geo"
)

// MaxCameraLatitude keeps the camera off the pole singularity
const MaxCameraLatitude = 85.05112878

// Camera is the camera form of the viewport. ZoomLevel is logarithmic: each
// level doubles the pixels per degree.
type Camera struct {
	Longitude float64
	Latitude  float64
	ZoomLevel float64
	Pitch     float64
	Bearing   float64

	MinZoom  float64
	MaxZoom  float64
	MaxPitch float64

	// PixelsPerDegree at zoom 0; sets how far a pixel of drag pans
	PixelsPerDegree float64
}

// NewCamera creates a camera looking at center
func NewCamera(center geo.GeoPoint, zoom, minZoom, maxZoom, pixelsPerDegree float64) *Camera {
	c := &Camera{
		Longitude:       center.Longitude,
		Latitude:        center.Latitude,
		ZoomLevel:       zoom,
		MinZoom:         minZoom,
		MaxZoom:         maxZoom,
		MaxPitch:        60,
		PixelsPerDegree: pixelsPerDegree,
	}
	c.Clamp()
	return c
}

// Center returns the point under the camera
func (c *Camera) Center() geo.GeoPoint {
	return geo.GeoPoint{Latitude: c.Latitude, Longitude: c.Longitude}
}

// SetCenter moves the camera over p, then clamps
func (c *Camera) SetCenter(p geo.GeoPoint) {
	c.Latitude = p.Latitude
	c.Longitude = p.Longitude
	c.Clamp()
}

// Scale returns pixels per degree at the current zoom
func (c *Camera) Scale() float64 {
	return c.PixelsPerDegree * math.Exp2(c.ZoomLevel)
}

// Pan moves the camera by a screen-pixel delta so content follows the
// pointer. The delta is rotated by the bearing first.
func (c *Camera) Pan(dx, dy float64) {
	if !finite(dx) || !finite(dy) || c.Scale() <= 0 {
		return
	}

	b := c.Bearing * math.Pi / 180
	east := dx*math.Cos(b) - dy*math.Sin(b)
	north := -dx*math.Sin(b) - dy*math.Cos(b)

	dpp := 1 / c.Scale()
	c.Longitude -= east * dpp
	c.Latitude -= north * dpp
	c.Clamp()
}

// Zoom scales the view; factor > 1 zooms out. A factor of 2 is one level.
func (c *Camera) Zoom(factor float64) {
	if !finite(factor) || factor <= 0 {
		return
	}
	c.ZoomLevel -= math.Log2(factor)
	c.Clamp()
}

// SetZoom sets the zoom level, clamped
func (c *Camera) SetZoom(zoom float64) {
	if !finite(zoom) {
		return
	}
	c.ZoomLevel = zoom
	c.Clamp()
}

// Rotate turns the bearing by deg, wrapping into [0, 360)
func (c *Camera) Rotate(deg float64) {
	if !finite(deg) {
		return
	}
	c.Bearing += deg
	c.Clamp()
}

// Tilt changes the pitch by deg, clamped to [0, MaxPitch]
func (c *Camera) Tilt(deg float64) {
	if !finite(deg) {
		return
	}
	c.Pitch += deg
	c.Clamp()
}

// Clamp brings every field into range. It is idempotent.
func (c *Camera) Clamp() {
	c.Longitude = geo.WrapLongitude(c.Longitude)
	c.Latitude = geo.ClampLatitude(c.Latitude, MaxCameraLatitude)

	if !finite(c.ZoomLevel) {
		c.ZoomLevel = c.MinZoom
	}
	c.ZoomLevel = clamp(c.ZoomLevel, c.MinZoom, c.MaxZoom)
	c.Pitch = clamp(c.Pitch, 0, c.MaxPitch)

	if !finite(c.Bearing) {
		c.Bearing = 0
	}
	if c.Bearing < 0 || c.Bearing >= 360 {
		c.Bearing = math.Mod(c.Bearing, 360)
		if c.Bearing < 0 {
			c.Bearing += 360
		}
		if c.Bearing >= 360 {
			c.Bearing = 0
		}
	}
}
