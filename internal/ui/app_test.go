package ui

import (
	"math"
	"strings"
	"testing"
	"time"

	"geopicker/internal/config"
	"geopicker/internal/geo"
	"geopicker/internal/render"

	"github.com/gdamore/tcell/v2"
)

var testPlaces = []geo.Place{
	{Name: "Paris", Country: "France", Point: geo.GeoPoint{Latitude: 48.8566, Longitude: 2.3522}},
	{Name: "Tokyo", Country: "Japan", Point: geo.GeoPoint{Latitude: 35.6762, Longitude: 139.6503}},
}

func newTestApp(t *testing.T) *App {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(80, 25)
	t.Cleanup(screen.Fini)

	return newApp(screen, config.Default(), geo.Basemap{}, testPlaces)
}

func mouse(x, y int, buttons tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, buttons, tcell.ModNone)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestClickSelects(t *testing.T) {
	app := newTestApp(t)

	app.handleEvent(mouse(40, 12, tcell.Button1))
	app.handleEvent(mouse(40, 12, tcell.ButtonNone))

	loc, ok := app.mapView.Controller().Selected()
	if !ok {
		t.Fatal("click did not select")
	}
	if !app.detailView.Visible() {
		t.Error("detail panel hidden after a selection")
	}
	if !strings.Contains(app.detailView.Lines()[1], geo.FormatDecimal(loc.Coordinate)) {
		t.Errorf("detail lines = %q", app.detailView.Lines())
	}
}

func TestDragPans(t *testing.T) {
	app := newTestApp(t)
	flat := app.mapView.Controller().Backend().(*render.FlatMap)
	app.mapView.ZoomIn()
	origin := flat.Viewport().OriginX

	app.handleEvent(mouse(30, 12, tcell.Button1))
	app.handleEvent(mouse(34, 12, tcell.Button1))
	app.handleEvent(mouse(38, 12, tcell.Button1))
	app.handleEvent(mouse(38, 12, tcell.ButtonNone))

	if _, ok := app.mapView.Controller().Selected(); ok {
		t.Error("drag selected a location")
	}
	if flat.Viewport().OriginX >= origin {
		t.Errorf("OriginX = %v; want below %v after dragging right", flat.Viewport().OriginX, origin)
	}
}

func TestFocusLossAbandonsGesture(t *testing.T) {
	app := newTestApp(t)

	app.handleEvent(mouse(40, 12, tcell.Button1))
	app.handleEvent(tcell.NewEventFocus(false))
	app.handleEvent(mouse(40, 12, tcell.ButtonNone))

	if _, ok := app.mapView.Controller().Selected(); ok {
		t.Error("release after focus loss selected")
	}
}

func TestWheelZooms(t *testing.T) {
	app := newTestApp(t)
	flat := app.mapView.Controller().Backend().(*render.FlatMap)
	width := flat.Viewport().Width

	app.handleEvent(mouse(60, 5, tcell.WheelUp))
	if flat.Viewport().Width >= width {
		t.Errorf("wheel up width = %v; want below %v", flat.Viewport().Width, width)
	}

	zoomed := flat.Viewport().Width
	app.handleEvent(mouse(60, 5, tcell.WheelDown))
	if flat.Viewport().Width <= zoomed {
		t.Error("wheel down did not zoom out")
	}
}

func TestPlaceListSelects(t *testing.T) {
	app := newTestApp(t)

	// Enter without the list open does nothing
	app.handleEvent(key(tcell.KeyEnter))
	if _, ok := app.mapView.Controller().Selected(); ok {
		t.Fatal("Enter selected with the list closed")
	}

	app.handleEvent(key(tcell.KeyTab))
	app.handleEvent(key(tcell.KeyDown))
	app.handleEvent(key(tcell.KeyEnter))

	loc, ok := app.mapView.Controller().Selected()
	if !ok || loc.DisplayName != "Tokyo, Japan" {
		t.Fatalf("Selected() = %+v, %v; want Tokyo", loc, ok)
	}

	center := app.mapView.Controller().Backend().Center()
	if geo.Haversine(center, loc.Coordinate) > 1 {
		t.Errorf("flat map centered on %v; want Tokyo", center)
	}
}

func TestEscapeClearsThenQuits(t *testing.T) {
	app := newTestApp(t)
	app.Select(testPlaces[0].Location())
	app.handleEvent(key(tcell.KeyTab))

	if !app.handleEvent(key(tcell.KeyEscape)) {
		t.Fatal("first Esc quit")
	}
	if _, ok := app.mapView.Controller().Selected(); ok || app.detailView.Visible() {
		t.Error("first Esc did not clear the selection")
	}

	if !app.handleEvent(key(tcell.KeyEscape)) || app.showList {
		t.Error("second Esc should close the list")
	}
	if app.handleEvent(key(tcell.KeyEscape)) {
		t.Error("third Esc should quit")
	}
}

func TestToggleRendererKeepsSelection(t *testing.T) {
	app := newTestApp(t)
	selects := 0
	app.mapView.OnLocationSelect(func(geo.SelectedLocation) { selects++ })

	app.Select(testPlaces[1].Location())
	app.handleEvent(key(tcell.KeyLeft))
	before := app.mapView.Controller().Backend().Center()

	app.handleEvent(runeKey('g'))
	if app.mapView.Mode() != config.RendererGlobe {
		t.Fatalf("Mode() = %q; want globe", app.mapView.Mode())
	}
	if _, ok := app.mapView.Controller().Backend().(*render.Globe); !ok {
		t.Fatal("globe backend not mounted")
	}
	if selects != 1 {
		t.Errorf("location-selected fired %d times; want 1", selects)
	}
	for _, line := range app.detailView.Lines() {
		if strings.HasPrefix(line, "From last") {
			t.Errorf("detail panel measured against itself: %q", line)
		}
	}
	if app.mapView.Controller().Flying() {
		t.Error("remount started a flight")
	}
	after := app.mapView.Controller().Backend().Center()
	if math.Abs(after.Latitude-before.Latitude) > 1e-6 || math.Abs(after.Longitude-before.Longitude) > 1e-6 {
		t.Errorf("center after switch = %v; want %v", after, before)
	}

	loc, ok := app.mapView.Controller().Selected()
	if !ok || loc.DisplayName != "Tokyo, Japan" {
		t.Errorf("selection after remount = %+v, %v", loc, ok)
	}

	// listeners follow the new engine
	app.mapView.Controller().ClearSelection()
	if app.detailView.Visible() {
		t.Error("detail panel not cleared by the remounted engine")
	}

	app.handleEvent(runeKey('['))
	globe := app.mapView.Controller().Backend().(*render.Globe)
	if globe.Camera().Bearing != 360-rotateStep {
		t.Errorf("bearing = %v; want %v", globe.Camera().Bearing, 360-rotateStep)
	}

	app.handleEvent(runeKey('g'))
	if app.mapView.Mode() != config.RendererFlat {
		t.Errorf("Mode() = %q; want flat", app.mapView.Mode())
	}
}

func TestQuitKey(t *testing.T) {
	app := newTestApp(t)
	if app.handleEvent(runeKey('q')) {
		t.Error("q did not quit")
	}
	select {
	case <-app.quit:
	default:
		t.Error("quit channel still open")
	}
}

func TestRenderStatusLine(t *testing.T) {
	app := newTestApp(t)
	app.render(time.Now())

	screen := app.screen
	width, height := screen.Size()
	var row strings.Builder
	for x := 0; x < width; x++ {
		ch, _, _, _ := screen.GetContent(x, height-1)
		row.WriteRune(ch)
	}
	if !strings.Contains(row.String(), "[flat] center 0.00°, 0.00°") {
		t.Errorf("status line = %q", row.String())
	}
}

func TestResize(t *testing.T) {
	app := newTestApp(t)
	app.screen.(tcell.SimulationScreen).SetSize(120, 40)
	app.handleEvent(tcell.NewEventResize(120, 40))

	flat := app.mapView.Controller().Backend().(*render.FlatMap)
	if flat.Viewport().ScreenWidth != 120 || flat.Viewport().ScreenHeight != 39 {
		t.Errorf("viewport screen = %vx%v; want 120x39", flat.Viewport().ScreenWidth, flat.Viewport().ScreenHeight)
	}
}
