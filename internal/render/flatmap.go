package render

import (
	"geopicker/internal/engine"
	"geopicker/internal/geo"
	"geopicker/internal/viewport"
)

var _ engine.Backend = (*FlatMap)(nil)

// FlatMap is the planar Mercator backend
type FlatMap struct {
	mercator geo.Mercator
	view     *viewport.Planar
}

// FlatMapConfig sizes the Mercator plane and its zoom limits
type FlatMapConfig struct {
	MapWidth    float64
	MapHeight   float64
	MinExtent   float64
	MaxExtent   float64
	PixelAspect float64
}

// NewFlatMap creates a flat map backend showing the whole map width
func NewFlatMap(cfg FlatMapConfig, screenWidth, screenHeight int) *FlatMap {
	return &FlatMap{
		mercator: geo.NewMercator(cfg.MapWidth, cfg.MapHeight),
		view: viewport.NewPlanar(cfg.MapWidth, cfg.MapHeight, cfg.MinExtent, cfg.MaxExtent,
			screenWidth, screenHeight, cfg.PixelAspect),
	}
}

// Viewport returns the live planar viewport
func (f *FlatMap) Viewport() *viewport.Planar {
	return f.view
}

// Project converts a point to surface pixels
func (f *FlatMap) Project(p geo.GeoPoint) (x, y float64, visible bool) {
	mx, my := f.mercator.Forward(p)
	x, y = f.view.ViewportToScreen(mx, my)
	visible = x >= 0 && x < f.view.ScreenWidth && y >= 0 && y < f.view.ScreenHeight
	return x, y, visible
}

// Unproject converts surface pixels to a point. The flat map never misses:
// off-plane pixels clamp to the safe band and wrap in longitude.
func (f *FlatMap) Unproject(x, y float64) (geo.GeoPoint, bool) {
	mx, my := f.view.ScreenToViewport(x, y)
	return f.mercator.Inverse(mx, my), true
}

// Pan moves the view by a pixel delta
func (f *FlatMap) Pan(dx, dy float64) {
	f.view.Pan(dx, dy)
}

// Zoom scales the view about its center; factor > 1 zooms out
func (f *FlatMap) Zoom(factor float64) {
	f.view.Zoom(factor)
}

// ZoomAt scales the view keeping the point under (x, y) fixed
func (f *FlatMap) ZoomAt(factor, x, y float64) {
	f.view.ZoomAt(factor, x, y)
}

// Center returns the point at the middle of the surface
func (f *FlatMap) Center() geo.GeoPoint {
	return f.mercator.Inverse(f.view.Center())
}

// CenterOn re-centers immediately
func (f *FlatMap) CenterOn(p geo.GeoPoint) {
	f.view.SetCenter(f.mercator.Forward(p))
}

// Resize adapts to a new surface size
func (f *FlatMap) Resize(width, height int) {
	f.view.Resize(width, height)
}

// Bounds returns the geographic box visible on the surface
func (f *FlatMap) Bounds() geo.Bounds {
	tl, _ := f.Unproject(0, 0)
	br, _ := f.Unproject(f.view.ScreenWidth, f.view.ScreenHeight)

	b := geo.Bounds{
		MinLat: br.Latitude,
		MaxLat: tl.Latitude,
		MinLon: tl.Longitude,
		MaxLon: br.Longitude,
	}
	// Window hangs over the antimeridian: fall back to full width
	x0, _ := f.view.ScreenToViewport(0, 0)
	x1, _ := f.view.ScreenToViewport(f.view.ScreenWidth, 0)
	if x0 < 0 || x1 > f.view.MapWidth {
		b.MinLon, b.MaxLon = geo.MinLongitude, geo.MaxLongitude
	}
	return b
}
