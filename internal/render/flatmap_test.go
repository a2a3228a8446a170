package render

import (
	"math"
	"testing"
	"time"

	"geopicker/internal/engine"
	"geopicker/internal/geo"
)

func newTestFlatMap() *FlatMap {
	return NewFlatMap(FlatMapConfig{
		MapWidth:    800,
		MapHeight:   600,
		MinExtent:   10,
		MaxExtent:   1600,
		PixelAspect: 1,
	}, 800, 600)
}

func TestFlatMapInitialView(t *testing.T) {
	f := newTestFlatMap()
	v := f.Viewport()
	if v.OriginX != 0 || v.OriginY != 0 || v.Width != 800 || v.Height != 600 {
		t.Fatalf("viewport = {%v, %v, %v, %v}; want {0, 0, 800, 600}", v.OriginX, v.OriginY, v.Width, v.Height)
	}

	p, ok := f.Unproject(400, 300)
	if !ok || math.Abs(p.Latitude) > 1e-9 || math.Abs(p.Longitude) > 1e-9 {
		t.Errorf("Unproject(400, 300) = %v, %v; want (0, 0)", p, ok)
	}

	top, _ := f.Unproject(400, 0)
	if top.Latitude > geo.SafeLatitude || top.Latitude < 84 {
		t.Errorf("top edge latitude = %v; want just under %v", top.Latitude, geo.SafeLatitude)
	}
}

func TestFlatMapProjectRoundTrip(t *testing.T) {
	f := newTestFlatMap()
	f.Zoom(0.5)
	f.Pan(40, -20)

	for _, p := range []geo.GeoPoint{{Latitude: 10, Longitude: 10}, {Latitude: -20, Longitude: 30}, {Latitude: 40, Longitude: -40}} {
		x, y, _ := f.Project(p)
		got, ok := f.Unproject(x, y)
		if !ok || math.Abs(got.Latitude-p.Latitude) > 1e-6 || math.Abs(got.Longitude-p.Longitude) > 1e-6 {
			t.Errorf("Unproject(Project(%v)) = %v", p, got)
		}
	}
}

func TestFlatMapVisibility(t *testing.T) {
	f := newTestFlatMap()
	f.CenterOn(geo.GeoPoint{Latitude: 48.85, Longitude: 2.35})
	f.Zoom(0.1)

	if _, _, visible := f.Project(geo.GeoPoint{Latitude: 48.85, Longitude: 2.35}); !visible {
		t.Error("center point not visible")
	}
	if _, _, visible := f.Project(geo.GeoPoint{Latitude: -33.87, Longitude: 151.21}); visible {
		t.Error("Sydney visible in a zoomed Paris view")
	}

	b := f.Bounds()
	if !b.Contains(geo.GeoPoint{Latitude: 48.85, Longitude: 2.35}) || b.Contains(geo.GeoPoint{Latitude: 0, Longitude: 100}) {
		t.Errorf("Bounds() = %+v", b)
	}
}

func TestFlatMapDragRight(t *testing.T) {
	f := newTestFlatMap()
	c := engine.New(f, engine.DefaultOptions())

	c.Pan(10, 0)
	if f.Viewport().OriginX >= 0 {
		t.Errorf("OriginX = %v; want below 0 after dragging right", f.Viewport().OriginX)
	}
}

func TestFlatMapSelectConverges(t *testing.T) {
	f := newTestFlatMap()
	c := engine.New(f, engine.DefaultOptions())
	paris := geo.SelectedLocation{
		Coordinate:  geo.GeoPoint{Latitude: 48.8566, Longitude: 2.3522},
		DisplayName: "Paris, France",
	}

	if !c.SelectProgrammatic(paris) {
		t.Fatal("SelectProgrammatic() = false")
	}
	center := f.Center()
	if math.Abs(center.Latitude-48.8566) > 1e-6 || math.Abs(center.Longitude-2.3522) > 1e-6 {
		t.Errorf("center = %v; want Paris", center)
	}

	c.ClearSelection()
	c.Pan(25, 10)
	moved := f.Center()
	for i := 1; i <= 3; i++ {
		c.Tick(time.Now().Add(time.Duration(i) * time.Second))
	}
	if f.Center() != moved {
		t.Errorf("view snapped back from %v to %v", moved, f.Center())
	}
}

func TestFlatMapPickUnderPointer(t *testing.T) {
	f := newTestFlatMap()
	c := engine.New(f, engine.DefaultOptions())

	x, y, _ := f.Project(geo.GeoPoint{Latitude: -33.87, Longitude: 151.21})
	loc, ok := c.SelectFromPick(x, y)
	if !ok {
		t.Fatal("SelectFromPick() = false")
	}
	if math.Abs(loc.Coordinate.Latitude+33.87) > 1e-6 || math.Abs(loc.Coordinate.Longitude-151.21) > 1e-6 {
		t.Errorf("picked %v; want Sydney", loc.Coordinate)
	}
}

func TestFlatMapZoomAt(t *testing.T) {
	f := newTestFlatMap()
	f.Zoom(0.5)

	before, _ := f.Unproject(500, 200)
	f.ZoomAt(0.5, 500, 200)
	after, _ := f.Unproject(500, 200)

	if math.Abs(before.Latitude-after.Latitude) > 1e-9 || math.Abs(before.Longitude-after.Longitude) > 1e-9 {
		t.Errorf("point under pointer moved %v -> %v", before, after)
	}
}
