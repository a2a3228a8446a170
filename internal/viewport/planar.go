// Package viewport holds the navigable window onto the map, in either the
// planar (origin + extent) or the camera (lon/lat/zoom/pitch/bearing) form.
// Every mutation clamps to the configured bounds instead of rejecting.
package viewport

import "math"

// Planar is a rectangular window onto a MapWidth x MapHeight plane.
// Screen pixels map linearly onto the window; PixelAspect is the height of
// one screen pixel relative to its width (2 for typical terminal cells).
type Planar struct {
	OriginX float64
	OriginY float64
	Width   float64
	Height  float64

	MapWidth  float64
	MapHeight float64
	MinExtent float64
	MaxExtent float64

	ScreenWidth  float64
	ScreenHeight float64
	PixelAspect  float64
}

// NewPlanar creates a planar viewport showing the full map width, centered
// on the map, with the window height fitted to the screen shape.
func NewPlanar(mapWidth, mapHeight, minExtent, maxExtent float64, screenWidth, screenHeight int, pixelAspect float64) *Planar {
	if pixelAspect <= 0 {
		pixelAspect = 1
	}

	v := &Planar{
		MapWidth:     mapWidth,
		MapHeight:    mapHeight,
		MinExtent:    minExtent,
		MaxExtent:    maxExtent,
		ScreenWidth:  float64(max(screenWidth, 1)),
		ScreenHeight: float64(max(screenHeight, 1)),
		PixelAspect:  pixelAspect,
		Width:        mapWidth,
	}
	v.Height = v.fittedHeight(v.Width)
	v.OriginX = (mapWidth - v.Width) / 2
	v.OriginY = (mapHeight - v.Height) / 2
	v.Clamp()

	return v
}

func (v *Planar) fittedHeight(width float64) float64 {
	return width * v.ScreenHeight * v.PixelAspect / v.ScreenWidth
}

// Center returns the window center in map units
func (v *Planar) Center() (x, y float64) {
	return v.OriginX + v.Width/2, v.OriginY + v.Height/2
}

// SetCenter moves the window so its center is at (x, y), then clamps
func (v *Planar) SetCenter(x, y float64) {
	v.OriginX = x - v.Width/2
	v.OriginY = y - v.Height/2
	v.Clamp()
}

// ScreenToViewport maps a screen pixel to map units
func (v *Planar) ScreenToViewport(px, py float64) (x, y float64) {
	x = v.OriginX + px*v.Width/v.ScreenWidth
	y = v.OriginY + py*v.Height/v.ScreenHeight
	return x, y
}

// ViewportToScreen maps map units to a screen pixel
func (v *Planar) ViewportToScreen(x, y float64) (px, py float64) {
	px = (x - v.OriginX) * v.ScreenWidth / v.Width
	py = (y - v.OriginY) * v.ScreenHeight / v.Height
	return px, py
}

// Pan translates the window by a screen-pixel delta. Content follows the
// pointer: dragging right moves the origin left. The map distance covered by
// one pixel scales with the current extent.
func (v *Planar) Pan(dx, dy float64) {
	if !finite(dx) || !finite(dy) {
		return
	}
	v.OriginX -= dx * v.Width / v.ScreenWidth
	v.OriginY -= dy * v.Height / v.ScreenHeight
	v.Clamp()
}

// Zoom scales the extent about the window center.
// factor > 1 widens the view (zoom out), factor < 1 narrows it.
func (v *Planar) Zoom(factor float64) {
	cx, cy := v.Center()
	v.zoomAbout(factor, cx, cy, 0.5, 0.5)
}

// ZoomAt scales the extent keeping the map point under screen pixel (px, py) fixed
func (v *Planar) ZoomAt(factor, px, py float64) {
	x, y := v.ScreenToViewport(px, py)
	v.zoomAbout(factor, x, y, px/v.ScreenWidth, py/v.ScreenHeight)
}

// zoomAbout keeps map point (x, y) at fraction (fx, fy) of the window
func (v *Planar) zoomAbout(factor, x, y, fx, fy float64) {
	if !finite(factor) || factor <= 0 {
		return
	}

	v.Width *= factor
	v.Height *= factor
	v.clampExtent()

	v.OriginX = x - fx*v.Width
	v.OriginY = y - fy*v.Height
	v.clampOrigin()
}

// Resize adapts the window to a new screen size, keeping width and center
func (v *Planar) Resize(screenWidth, screenHeight int) {
	cx, cy := v.Center()
	v.ScreenWidth = float64(max(screenWidth, 1))
	v.ScreenHeight = float64(max(screenHeight, 1))
	v.Height = v.fittedHeight(v.Width)
	v.SetCenter(cx, cy)
}

// Clamp brings extent and origin into bounds. It is idempotent.
func (v *Planar) Clamp() {
	v.clampExtent()
	v.clampOrigin()
}

// clampExtent keeps both Width and Height within [MinExtent, MaxExtent],
// scaling them by the same ratio so the window keeps its shape. When the
// shape is too elongated to satisfy both bounds, MaxExtent wins. The bound
// that applied is snapped exactly so a second pass is a no-op.
func (v *Planar) clampExtent() {
	lo, hi := math.Min(v.Width, v.Height), math.Max(v.Width, v.Height)
	if lo <= 0 {
		return
	}

	r := 1.0
	if v.MinExtent > 0 && lo < v.MinExtent {
		r = v.MinExtent / lo
	}
	capped := v.MaxExtent > 0 && hi*r > v.MaxExtent
	if capped {
		r = v.MaxExtent / hi
	}
	if r == 1 {
		return
	}

	wide := v.Width >= v.Height
	v.Width *= r
	v.Height *= r

	switch {
	case capped && wide:
		v.Width = v.MaxExtent
		v.Height = math.Min(v.Height, v.MaxExtent)
	case capped:
		v.Height = v.MaxExtent
		v.Width = math.Min(v.Width, v.MaxExtent)
	case wide:
		v.Height = v.MinExtent
		v.Width = math.Max(v.Width, v.MinExtent)
	default:
		v.Width = v.MinExtent
		v.Height = math.Max(v.Height, v.MinExtent)
	}
}

// clampOrigin keeps the window center inside the map plane
func (v *Planar) clampOrigin() {
	cx, cy := v.Center()
	if c := clamp(cx, 0, v.MapWidth); c != cx {
		v.OriginX = c - v.Width/2
	}
	if c := clamp(cy, 0, v.MapHeight); c != cy {
		v.OriginY = c - v.Height/2
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
