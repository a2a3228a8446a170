// Package engine owns the live selection and bridges pointer picks,
// programmatic selections and camera transitions over a renderer Backend.
package engine

import "geopicker/internal/geo"

// Backend is the coordinate contract every renderer variant honors.
// Screen coordinates are render-surface pixels with (0, 0) at top-left.
type Backend interface {
	// Project places a geographic point on the surface. visible is false
	// when the point is not drawable (behind a globe, off the plane).
	Project(p geo.GeoPoint) (x, y float64, visible bool)

	// Unproject resolves a surface pixel to a geographic point. ok is false
	// when the pixel does not hit the map (outside a globe's disk).
	Unproject(x, y float64) (p geo.GeoPoint, ok bool)

	Pan(dx, dy float64)
	Zoom(factor float64)

	// Center is the geographic point at the middle of the surface
	Center() geo.GeoPoint

	// CenterOn moves the view so p is centered, without animation
	CenterOn(p geo.GeoPoint)
}

// Zoomable is implemented by camera-form backends that expose a zoom level
// the controller can animate toward an overview.
type Zoomable interface {
	ZoomLevel() float64
	SetZoomLevel(z float64)
}

// Initializer acquires a backend's rendering resources
type Initializer func() (Backend, error)
