package render

import (
	"math"

	"geopicker/internal/engine"
	"geopicker/internal/geo"
	"geopicker/internal/viewport"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

var (
	_ engine.Backend  = (*Globe)(nil)
	_ engine.Zoomable = (*Globe)(nil)
)

// Globe is an orthographic virtual-globe backend. Picks are ray-sphere
// intersections: a pixel either hits the front hemisphere or misses.
type Globe struct {
	camera *viewport.Camera

	width       float64
	height      float64
	pixelAspect float64
}

// GlobeConfig sets the camera zoom limits
type GlobeConfig struct {
	MinZoom     float64
	MaxZoom     float64
	PixelAspect float64
}

// NewGlobe creates a globe backend looking at center. At zoom 0 the globe
// fills 90% of the smaller surface dimension.
func NewGlobe(cfg GlobeConfig, center geo.GeoPoint, screenWidth, screenHeight int) *Globe {
	g := &Globe{pixelAspect: cfg.PixelAspect}
	if g.pixelAspect <= 0 {
		g.pixelAspect = 1
	}
	g.camera = viewport.NewCamera(center, cfg.MinZoom, cfg.MinZoom, cfg.MaxZoom, 1)
	g.Resize(screenWidth, screenHeight)
	return g
}

// Camera returns the live camera
func (g *Globe) Camera() *viewport.Camera {
	return g.camera
}

// Resize adapts to a new surface size. Pan speed follows the base radius.
func (g *Globe) Resize(width, height int) {
	g.width = float64(max(width, 1))
	g.height = float64(max(height, 1))
	g.camera.PixelsPerDegree = g.baseRadius() * math.Pi / 180
}

func (g *Globe) baseRadius() float64 {
	return 0.45 * math.Min(g.width, g.height*g.pixelAspect)
}

// Radius returns the globe radius in horizontal pixels
func (g *Globe) Radius() float64 {
	return g.baseRadius() * math.Exp2(g.camera.ZoomLevel)
}

// basis returns the view frame: forward points at the camera center, up is
// screen-up rotated by the bearing.
func (g *Globe) basis() (right, up, forward r3.Vector) {
	lat := g.camera.Latitude * math.Pi / 180
	lon := g.camera.Longitude * math.Pi / 180

	forward = s2.PointFromLatLng(s2.LatLngFromDegrees(g.camera.Latitude, g.camera.Longitude)).Vector
	east := r3.Vector{X: -math.Sin(lon), Y: math.Cos(lon), Z: 0}
	north := r3.Vector{X: -math.Sin(lat) * math.Cos(lon), Y: -math.Sin(lat) * math.Sin(lon), Z: math.Cos(lat)}

	b := g.camera.Bearing * math.Pi / 180
	up = north.Mul(math.Cos(b)).Add(east.Mul(math.Sin(b)))
	right = east.Mul(math.Cos(b)).Sub(north.Mul(math.Sin(b)))
	return right, up, forward
}

// Project converts a point to surface pixels; points on the far side are
// not visible
func (g *Globe) Project(p geo.GeoPoint) (x, y float64, visible bool) {
	v := s2.PointFromLatLng(s2.LatLngFromDegrees(p.Latitude, p.Longitude)).Vector
	right, up, forward := g.basis()

	r := g.Radius()
	x = g.width/2 + v.Dot(right)*r
	y = g.height/2 - v.Dot(up)*r/g.pixelAspect
	return x, y, v.Dot(forward) >= 0
}

// Unproject intersects the view ray through (x, y) with the unit sphere
func (g *Globe) Unproject(x, y float64) (geo.GeoPoint, bool) {
	z, u, v, ok := g.hit(x, y)
	if !ok {
		return geo.GeoPoint{}, false
	}

	right, up, forward := g.basis()
	dir := right.Mul(u).Add(up.Mul(v)).Add(forward.Mul(z))
	ll := s2.LatLngFromPoint(s2.Point{Vector: dir.Normalize()})

	p := geo.GeoPoint{Latitude: ll.Lat.Degrees(), Longitude: ll.Lng.Degrees()}
	return p.Normalize(geo.MaxLatitude), true
}

// Depth returns how far the sphere surface under (x, y) faces the viewer,
// 1 at the disk center and 0 at the limb
func (g *Globe) Depth(x, y float64) (float64, bool) {
	z, _, _, ok := g.hit(x, y)
	return z, ok
}

// hit returns the unit-sphere coordinates under (x, y) in the view frame
func (g *Globe) hit(x, y float64) (z, u, v float64, ok bool) {
	r := g.Radius()
	if r <= 0 {
		return 0, 0, 0, false
	}
	u = (x - g.width/2) / r
	v = -(y - g.height/2) * g.pixelAspect / r

	d2 := u*u + v*v
	if d2 > 1 {
		return 0, 0, 0, false
	}
	return math.Sqrt(1 - d2), u, v, true
}

// Pan drags the globe by a pixel delta. The angular step shrinks as the
// globe grows so content stays under the pointer near the center.
func (g *Globe) Pan(dx, dy float64) {
	g.camera.Pan(dx, dy*g.pixelAspect)
}

// Zoom scales the view; factor > 1 zooms out
func (g *Globe) Zoom(factor float64) {
	g.camera.Zoom(factor)
}

// Rotate turns the bearing
func (g *Globe) Rotate(deg float64) {
	g.camera.Rotate(deg)
}

// Center returns the point under the camera
func (g *Globe) Center() geo.GeoPoint {
	return g.camera.Center()
}

// CenterOn points the camera at p
func (g *Globe) CenterOn(p geo.GeoPoint) {
	g.camera.SetCenter(p)
}

// ZoomLevel implements engine.Zoomable
func (g *Globe) ZoomLevel() float64 {
	return g.camera.ZoomLevel
}

// SetZoomLevel implements engine.Zoomable
func (g *Globe) SetZoomLevel(z float64) {
	g.camera.SetZoom(z)
}

// Bounds returns the whole world; the globe culls by visibility instead
func (g *Globe) Bounds() geo.Bounds {
	return geo.WorldBounds
}
