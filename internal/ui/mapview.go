package ui

import (
	"fmt"
	"time"

	"geopicker/internal/config"
	"geopicker/internal/debug"
	"geopicker/internal/engine"
	"geopicker/internal/geo"
	"geopicker/internal/gesture"
	"geopicker/internal/render"

	"github.com/gdamore/tcell/v2"
)

const (
	zoomStep   = 1.25
	rotateStep = 15.0
	panStep    = 4.0
)

// MapView hosts the selection engine on the terminal surface and turns
// tcell mouse events into gestures
type MapView struct {
	cfg      *config.Config
	renderer *render.MapRenderer
	canvas   *render.Canvas

	mode       string
	controller *engine.Controller
	gestures   *gesture.Disambiguator
	pressed    bool

	onSelect []func(geo.SelectedLocation)
	onChange []func(engine.Change)

	width  int
	height int
}

// NewMapView creates a map view and mounts the configured renderer
func NewMapView(cfg *config.Config, features geo.Basemap, width, height int) *MapView {
	canvas := render.NewCanvas(width, height)
	m := &MapView{
		cfg:      cfg,
		renderer: render.NewMapRenderer(features, canvas),
		canvas:   canvas,
		width:    width,
		height:   height,
	}
	m.mount(cfg.Renderer, geo.GeoPoint{})
	return m
}

// initializer builds the backend for mode looking at center
func (m *MapView) initializer(mode string, center geo.GeoPoint) engine.Initializer {
	width, height := m.width, m.height
	return func() (engine.Backend, error) {
		if width <= 0 || height <= 0 {
			return nil, fmt.Errorf("surface %dx%d too small", width, height)
		}
		switch mode {
		case config.RendererFlat:
			flat := render.NewFlatMap(render.FlatMapConfig{
				MapWidth:    m.cfg.Map.Width,
				MapHeight:   m.cfg.Map.Height,
				MinExtent:   m.cfg.Map.MinExtent,
				MaxExtent:   m.cfg.Map.MaxExtent,
				PixelAspect: m.cfg.Map.Aspect,
			}, width, height)
			flat.CenterOn(center)
			return flat, nil
		case config.RendererGlobe:
			return render.NewGlobe(render.GlobeConfig{
				MinZoom:     m.cfg.Camera.MinZoom,
				MaxZoom:     m.cfg.Camera.MaxZoom,
				PixelAspect: m.cfg.Map.Aspect,
			}, center, width, height), nil
		default:
			return nil, fmt.Errorf("unknown renderer %q", mode)
		}
	}
}

// mount replaces the engine with a fresh one over mode. The live selection
// survives and is restored on the new engine without moving the view.
func (m *MapView) mount(mode string, center geo.GeoPoint) {
	var carried *geo.SelectedLocation
	if m.controller != nil {
		if loc, ok := m.controller.Selected(); ok {
			carried = &loc
		}
		m.controller.Close()
	}

	m.mode = mode
	m.controller = engine.Mount(m.initializer(mode, center), engine.Options{
		FlightDuration: m.cfg.Camera.FlightDuration,
		OverviewZoom:   m.cfg.Camera.OverviewZoom,
	})
	for _, fn := range m.onSelect {
		m.controller.OnLocationSelect(fn)
	}
	for _, fn := range m.onChange {
		m.controller.Subscribe(fn)
	}

	m.gestures = gesture.New(m.controller, m.cfg.Gesture.DragThreshold, m.cfg.Gesture.ClickCooldown)
	m.pressed = false

	if carried != nil {
		m.controller.Restore(*carried)
	}

	debug.Logger().Info().Str("renderer", mode).Bool("available", m.controller.Available()).Msg("engine mounted")
}

// OnLocationSelect registers fn on this and every later engine
func (m *MapView) OnLocationSelect(fn func(geo.SelectedLocation)) {
	m.onSelect = append(m.onSelect, fn)
	m.controller.OnLocationSelect(fn)
}

// Subscribe registers fn for state changes on this and every later engine
func (m *MapView) Subscribe(fn func(engine.Change)) {
	m.onChange = append(m.onChange, fn)
	m.controller.Subscribe(fn)
}

// Controller returns the live engine
func (m *MapView) Controller() *engine.Controller {
	return m.controller
}

// Mode returns the mounted renderer name
func (m *MapView) Mode() string {
	return m.mode
}

// ToggleRenderer switches between the flat map and the globe, keeping the
// view center and the live selection. Zoom is not carried between the two
// forms.
func (m *MapView) ToggleRenderer() {
	center := geo.GeoPoint{}
	if backend := m.controller.Backend(); backend != nil {
		center = backend.Center()
	}

	next := config.RendererGlobe
	if m.mode == config.RendererGlobe {
		next = config.RendererFlat
	}
	m.mount(next, center)
}

// Draw renders the map view to the screen
func (m *MapView) Draw(screen tcell.Screen, now time.Time) {
	m.canvas.Clear()

	backend := m.controller.Backend()
	if !m.controller.Available() || backend == nil {
		msg := "map unavailable"
		if err := m.controller.Err(); err != nil {
			msg = err.Error()
		}
		m.canvas.DrawText((m.width-len(msg))/2, m.height/2, msg, render.StyleStatus)
		m.canvas.Blit(screen, 0, 0)
		return
	}

	m.renderer.RenderMap(backend)
	m.renderer.RenderCrosshair()

	if loc, ok := m.controller.Selected(); ok {
		phase := float64(now.UnixMilli()%1000) / 1000
		m.renderer.RenderMarker(backend, loc, render.MarkerStyle(phase))
	}

	m.canvas.Blit(screen, 0, 0)
}

// HandleMouse feeds a tcell mouse event to the gesture disambiguator.
// Cells are addressed by their centers.
func (m *MapView) HandleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := gesture.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		m.ZoomAt(1/zoomStep, p.X, p.Y)
	case buttons&tcell.WheelDown != 0:
		m.ZoomAt(zoomStep, p.X, p.Y)
	case buttons&tcell.Button1 != 0:
		if !m.pressed {
			m.pressed = true
			m.gestures.PointerDown(p)
		} else {
			m.gestures.PointerMove(p)
		}
	case m.pressed:
		m.pressed = false
		m.gestures.PointerUp(p, ev.When())
	}
}

// PointerLeave abandons any gesture in progress
func (m *MapView) PointerLeave() {
	m.pressed = false
	m.gestures.PointerLeave()
}

// ZoomAt zooms keeping the point under (x, y) fixed where the backend
// supports it, about the center otherwise
func (m *MapView) ZoomAt(factor, x, y float64) {
	if _, ok := m.controller.Backend().(*render.FlatMap); ok {
		m.controller.Navigate(func(b engine.Backend) {
			b.(*render.FlatMap).ZoomAt(factor, x, y)
		})
		return
	}
	m.controller.Zoom(factor)
}

// ZoomIn zooms in one step
func (m *MapView) ZoomIn() {
	m.controller.Zoom(1 / zoomStep)
}

// ZoomOut zooms out one step
func (m *MapView) ZoomOut() {
	m.controller.Zoom(zoomStep)
}

// Pan moves the view by whole steps, as the arrow keys do
func (m *MapView) Pan(dx, dy int) {
	m.controller.Pan(float64(dx)*panStep*m.cfg.Map.Aspect, float64(dy)*panStep)
}

// Rotate turns the globe; the flat map has no bearing
func (m *MapView) Rotate(dir int) {
	if _, ok := m.controller.Backend().(*render.Globe); !ok {
		return
	}
	m.controller.Navigate(func(b engine.Backend) {
		b.(*render.Globe).Rotate(float64(dir) * rotateStep)
	})
}

// UpdateDimensions updates the view dimensions when the screen is resized
func (m *MapView) UpdateDimensions(width, height int) {
	m.width = width
	m.height = height

	m.canvas.Resize(width, height)
	m.renderer.UpdateCanvas(m.canvas)

	switch b := m.controller.Backend().(type) {
	case *render.FlatMap:
		b.Resize(width, height)
	case *render.Globe:
		b.Resize(width, height)
	case nil:
		// a zero-sized terminal left the engine unavailable; retry
		m.mount(m.mode, geo.GeoPoint{})
	}
}

// Status describes the view for the status line
func (m *MapView) Status() string {
	backend := m.controller.Backend()
	if !m.controller.Available() || backend == nil {
		return fmt.Sprintf("[%s] unavailable", m.mode)
	}

	status := fmt.Sprintf("[%s] center %s", m.mode, geo.FormatDecimal(backend.Center()))
	if z, ok := backend.(engine.Zoomable); ok {
		status += fmt.Sprintf("  zoom %.1f", z.ZoomLevel())
	}
	if m.controller.Flying() {
		status += "  flying"
	}
	return status
}
