package engine

import (
	"errors"
	"fmt"
	"math"
	"time"

	"geopicker/internal/debug"
	"geopicker/internal/geo"
)

// ErrUnavailable is reported when the backend could not be initialized
var ErrUnavailable = errors.New("renderer unavailable")

// Options tune the controller
type Options struct {
	// FlightDuration is how long a fly-to takes on zoomable backends
	FlightDuration time.Duration

	// OverviewZoom is where programmatic fly-tos end. Negative keeps the
	// current zoom.
	OverviewZoom float64

	// CenterEpsilon in degrees; centerOn is a no-op when already this close
	CenterEpsilon float64

	// LatitudeLimit is the safe band picks are clamped to
	LatitudeLimit float64
}

// DefaultOptions returns the stock controller options
func DefaultOptions() Options {
	return Options{
		FlightDuration: 2 * time.Second,
		OverviewZoom:   2,
		CenterEpsilon:  1e-6,
		LatitudeLimit:  geo.SafeLatitude,
	}
}

// ChangeKind identifies what a Change notification is about
type ChangeKind int

const (
	ChangeSelected ChangeKind = iota
	ChangeCleared
	ChangeViewport
)

// Change is delivered to subscribers after state changes
type Change struct {
	Kind     ChangeKind
	Location geo.SelectedLocation // set for ChangeSelected
}

// Controller is the single authority for the live SelectedLocation.
// It is driven from one goroutine: input handlers and Tick must not run
// concurrently.
type Controller struct {
	backend Backend
	err     error
	opts    Options
	closed  bool

	selected *geo.SelectedLocation

	onSelect    []func(geo.SelectedLocation)
	subscribers []func(Change)

	gen    uint64
	flight *flight
}

// Mount acquires a backend through init. On failure the controller is
// returned in the unavailable state instead of failing the caller.
func Mount(init Initializer, opts Options) *Controller {
	backend, err := init()
	if err == nil && backend == nil {
		err = errors.New("initializer returned no backend")
	}
	if err != nil {
		debug.Logger().Error().Err(err).Msg("renderer mount failed")
		return &Controller{err: fmt.Errorf("%w: %v", ErrUnavailable, err), opts: withDefaults(opts)}
	}
	return New(backend, opts)
}

// New wraps an initialized backend. A nil backend yields an unavailable controller.
func New(backend Backend, opts Options) *Controller {
	c := &Controller{backend: backend, opts: withDefaults(opts)}
	if backend == nil {
		c.err = ErrUnavailable
	}
	return c
}

func withDefaults(opts Options) Options {
	def := DefaultOptions()
	if opts.FlightDuration < 0 {
		opts.FlightDuration = 0
	}
	if opts.CenterEpsilon <= 0 {
		opts.CenterEpsilon = def.CenterEpsilon
	}
	if opts.LatitudeLimit <= 0 || opts.LatitudeLimit > geo.MaxLatitude {
		opts.LatitudeLimit = def.LatitudeLimit
	}
	return opts
}

// Available reports whether selection and viewport operations are possible
func (c *Controller) Available() bool {
	return c.backend != nil && !c.closed
}

// Err returns the mount error, if any
func (c *Controller) Err() error {
	return c.err
}

// Backend returns the mounted backend, nil when unavailable
func (c *Controller) Backend() Backend {
	return c.backend
}

// Selected returns the live selection
func (c *Controller) Selected() (geo.SelectedLocation, bool) {
	if c.selected == nil {
		return geo.SelectedLocation{}, false
	}
	return *c.selected, true
}

// OnLocationSelect registers a listener for the public location-selected event
func (c *Controller) OnLocationSelect(fn func(geo.SelectedLocation)) {
	if fn != nil {
		c.onSelect = append(c.onSelect, fn)
	}
}

// Subscribe registers a listener for every state change
func (c *Controller) Subscribe(fn func(Change)) {
	if fn != nil {
		c.subscribers = append(c.subscribers, fn)
	}
}

// SelectFromPick resolves a surface pixel and makes it the live selection.
// It reports false when the pixel misses the map or the engine is unavailable.
func (c *Controller) SelectFromPick(x, y float64) (geo.SelectedLocation, bool) {
	if !c.Available() {
		return geo.SelectedLocation{}, false
	}

	p, ok := c.backend.Unproject(x, y)
	if !ok {
		debug.Log("pick at (%.0f, %.0f) missed the map", x, y)
		return geo.SelectedLocation{}, false
	}

	loc := geo.SelectedLocation{Coordinate: p.Normalize(c.opts.LatitudeLimit)}
	c.replace(loc)
	c.transition(loc.Coordinate, false)

	return loc, true
}

// SelectProgrammatic makes an already-resolved location live, e.g. a search
// result. Invalid coordinates are rejected and the previous selection stays.
func (c *Controller) SelectProgrammatic(loc geo.SelectedLocation) bool {
	if !c.Available() {
		return false
	}
	if !loc.Valid() {
		debug.Logger().Debug().
			Float64("lat", loc.Coordinate.Latitude).
			Float64("lon", loc.Coordinate.Longitude).
			Msg("programmatic selection rejected")
		return false
	}

	c.replace(loc)
	c.transition(loc.Coordinate, true)

	return true
}

// SetSelected mirrors an externally supplied selection: nil clears,
// anything else becomes live and is centered on. The location-selected
// event is not fired since the selection did not originate here.
func (c *Controller) SetSelected(loc *geo.SelectedLocation) bool {
	if loc == nil {
		c.ClearSelection()
		return true
	}
	if !c.Restore(*loc) {
		return false
	}
	c.transition(loc.Coordinate, false)
	return true
}

// Restore makes loc live without moving the view or firing the
// location-selected event. Hosts use it to carry a selection across a
// remount.
func (c *Controller) Restore(loc geo.SelectedLocation) bool {
	if !c.Available() || !loc.Valid() {
		return false
	}
	c.store(loc)
	c.notify(Change{Kind: ChangeSelected, Location: loc})
	return true
}

// ClearSelection drops the live selection. The viewport stays where it is.
func (c *Controller) ClearSelection() {
	if c.selected == nil {
		return
	}
	c.selected = nil
	c.notify(Change{Kind: ChangeCleared})
}

func (c *Controller) replace(loc geo.SelectedLocation) {
	c.store(loc)
	for _, fn := range c.onSelect {
		fn(loc)
	}
	c.notify(Change{Kind: ChangeSelected, Location: loc})
}

func (c *Controller) store(loc geo.SelectedLocation) {
	c.selected = &loc

	debug.Logger().Info().
		Str("location", loc.Label()).
		Float64("lat", loc.Coordinate.Latitude).
		Float64("lon", loc.Coordinate.Longitude).
		Msg("location selected")
}

// CenterOn brings p to the middle of the view, keeping the zoom level
func (c *Controller) CenterOn(p geo.GeoPoint) {
	if !c.Available() || !p.Valid() {
		return
	}
	c.transition(p, false)
}

// transition supersedes any flight in progress and heads for p. Zoomable
// backends fly over FlightDuration; others re-center at once.
func (c *Controller) transition(p geo.GeoPoint, overview bool) {
	c.gen++
	if c.flight != nil {
		debug.Log("flight %d superseded", c.flight.gen)
		c.flight = nil
	}

	zoomable, canZoom := c.backend.(Zoomable)
	wantZoom := overview && canZoom && c.opts.OverviewZoom >= 0
	zoomDone := !wantZoom || math.Abs(zoomable.ZoomLevel()-c.opts.OverviewZoom) < 1e-9

	if c.centered(p) && zoomDone {
		return
	}

	if !canZoom || c.opts.FlightDuration <= 0 {
		c.backend.CenterOn(p)
		if wantZoom {
			zoomable.SetZoomLevel(c.opts.OverviewZoom)
		}
		c.notify(Change{Kind: ChangeViewport})
		return
	}

	f := &flight{
		gen:      c.gen,
		from:     c.backend.Center(),
		to:       p,
		fromZoom: zoomable.ZoomLevel(),
		toZoom:   zoomable.ZoomLevel(),
		duration: c.opts.FlightDuration,
	}
	if wantZoom {
		f.zoom = true
		f.toZoom = c.opts.OverviewZoom
	}
	c.flight = f
}

func (c *Controller) centered(p geo.GeoPoint) bool {
	center := c.backend.Center()
	dLon := math.Abs(center.Longitude - p.Longitude)
	if dLon > 180 {
		dLon = 360 - dLon
	}
	return math.Abs(center.Latitude-p.Latitude) < c.opts.CenterEpsilon && dLon < c.opts.CenterEpsilon
}

// Flying reports whether a fly-to is in progress
func (c *Controller) Flying() bool {
	return c.flight != nil && c.flight.gen == c.gen && !c.closed
}

// Tick advances the current flight to now. The host's frame scheduler calls
// it; it reports whether the viewport changed.
func (c *Controller) Tick(now time.Time) bool {
	f := c.flight
	if f == nil || c.closed {
		return false
	}
	if f.gen != c.gen {
		c.flight = nil
		return false
	}

	t := f.progress(now)
	p, z := f.at(t)

	c.backend.CenterOn(p)
	if f.zoom {
		if zoomable, ok := c.backend.(Zoomable); ok {
			zoomable.SetZoomLevel(z)
		}
	}
	if t >= 1 {
		c.flight = nil
	}

	c.notify(Change{Kind: ChangeViewport})
	return true
}

// Pan implements gesture.Target. User navigation cancels any flight.
func (c *Controller) Pan(dx, dy float64) {
	if !c.Available() {
		return
	}
	c.cancelFlight()
	c.backend.Pan(dx, dy)
	c.notify(Change{Kind: ChangeViewport})
}

// Pick implements gesture.Target
func (c *Controller) Pick(x, y float64) {
	c.SelectFromPick(x, y)
}

// Zoom scales the view; factor > 1 zooms out
func (c *Controller) Zoom(factor float64) {
	if !c.Available() {
		return
	}
	c.cancelFlight()
	c.backend.Zoom(factor)
	c.notify(Change{Kind: ChangeViewport})
}

// Navigate runs fn against the backend as a user navigation step, e.g. a
// backend-specific rotate, cancelling any flight first.
func (c *Controller) Navigate(fn func(Backend)) {
	if !c.Available() {
		return
	}
	c.cancelFlight()
	fn(c.backend)
	c.notify(Change{Kind: ChangeViewport})
}

func (c *Controller) cancelFlight() {
	if c.flight != nil {
		c.gen++
		c.flight = nil
	}
}

// Close abandons any flight and detaches listeners. The controller is
// unavailable afterwards; late ticks are ignored.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.gen++
	c.flight = nil
	c.onSelect = nil
	c.subscribers = nil
}

func (c *Controller) notify(ch Change) {
	for _, fn := range c.subscribers {
		fn(ch)
	}
}
