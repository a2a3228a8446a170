package render

import (
	"math"

	"geopicker/internal/debug"
	"geopicker/internal/engine"
	"geopicker/internal/geo"

	"github.com/gdamore/tcell/v2"
)

// Bounded backends report the geographic box they show, for culling
type Bounded interface {
	Bounds() geo.Bounds
}

// Shaded backends paint a background under the basemap (the globe disk)
type Shaded interface {
	Depth(x, y float64) (float64, bool)
}

// MapRenderer draws the basemap and selection through any engine.Backend
type MapRenderer struct {
	features geo.Basemap
	canvas   *Canvas
}

// NewMapRenderer creates a new map renderer
func NewMapRenderer(features geo.Basemap, canvas *Canvas) *MapRenderer {
	return &MapRenderer{
		features: features,
		canvas:   canvas,
	}
}

// UpdateCanvas updates the renderer's canvas
func (m *MapRenderer) UpdateCanvas(canvas *Canvas) {
	m.canvas = canvas
}

// RenderMap draws background and every layer in paint order
func (m *MapRenderer) RenderMap(backend engine.Backend) {
	if shaded, ok := backend.(Shaded); ok {
		m.renderShade(shaded)
	}

	bounds := geo.WorldBounds
	if b, ok := backend.(Bounded); ok {
		bounds = b.Bounds()
	}

	for _, ftype := range []geo.FeatureType{geo.FeatureGraticule, geo.FeatureCoastline, geo.FeatureRiver, geo.FeatureBorder} {
		m.renderLines(backend, ftype, bounds)
	}
	m.renderPlaces(backend, bounds)
}

func (m *MapRenderer) renderShade(shaded Shaded) {
	for y := 0; y < m.canvas.Height(); y++ {
		for x := 0; x < m.canvas.Width(); x++ {
			if z, ok := shaded.Depth(float64(x)+0.5, float64(y)+0.5); ok {
				m.canvas.Set(x, y, ' ', GlobeShade(z))
			}
		}
	}
}

func (m *MapRenderer) renderLines(backend engine.Backend, ftype geo.FeatureType, bounds geo.Bounds) {
	features, exists := m.features[ftype]
	if !exists {
		return
	}

	style := GetStyleForFeature(ftype)
	char := GetCharForFeature(ftype)
	maxJump := float64(m.canvas.Width()) / 2

	for _, feature := range geo.FilterByBounds(features, bounds) {
		for i := 0; i+1 < len(feature.Line); i++ {
			a, b := feature.Line[i], feature.Line[i+1]
			x0, y0, v0 := backend.Project(geo.GeoPoint{Latitude: a.Lat(), Longitude: a.Lon()})
			x1, y1, v1 := backend.Project(geo.GeoPoint{Latitude: b.Lat(), Longitude: b.Lon()})
			if !v0 && !v1 {
				continue
			}
			// Skip segments that wrap around the antimeridian or cross the limb
			if math.Abs(x1-x0) > maxJump || (v0 != v1 && isGlobe(backend)) {
				continue
			}
			m.canvas.DrawLine(int(x0), int(y0), int(x1), int(y1), char, style)
		}
	}
}

func isGlobe(backend engine.Backend) bool {
	_, ok := backend.(Shaded)
	return ok
}

// renderPlaces draws labelled places, skipping labels that would overlap
// one already drawn on the same row
func (m *MapRenderer) renderPlaces(backend engine.Backend, bounds geo.Bounds) {
	places, exists := m.features[geo.FeaturePlace]
	if !exists {
		return
	}

	type span struct{ y, x0, x1 int }
	var taken []span

	visible := geo.FilterByBounds(places, bounds)
	drawn := 0

	for _, place := range visible {
		x, y, ok := backend.Project(place.GeoPoint())
		if !ok {
			continue
		}
		px, py := int(x), int(y)

		end := px + 2 + len(place.Name)
		overlaps := false
		for _, s := range taken {
			if s.y == py && px <= s.x1 && end >= s.x0 {
				overlaps = true
				break
			}
		}

		m.canvas.Overlay(px, py, '•', StylePlace)
		if overlaps || place.Name == "" || end >= m.canvas.Width() {
			continue
		}
		m.canvas.DrawText(px+2, py, place.Name, StyleLabel)
		taken = append(taken, span{y: py, x0: px, x1: end})
		drawn++
	}

	if debug.Enabled() {
		debug.Log("rendered %d place labels (%d visible of %d)", drawn, len(visible), len(places))
	}
}

// RenderMarker draws the selection marker with its label
func (m *MapRenderer) RenderMarker(backend engine.Backend, loc geo.SelectedLocation, style tcell.Style) {
	x, y, ok := backend.Project(loc.Coordinate)
	if !ok {
		return
	}
	px, py := int(x), int(y)

	m.canvas.Overlay(px, py, 'X', style)
	m.canvas.DrawText(px+2, py, loc.Label(), style)
}

// RenderCrosshair marks the surface center
func (m *MapRenderer) RenderCrosshair() {
	cx, cy := m.canvas.Width()/2, m.canvas.Height()/2
	if m.canvas.Get(cx, cy).Char == ' ' {
		m.canvas.Overlay(cx, cy, '+', StyleCrosshair)
	}
}
