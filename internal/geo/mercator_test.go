package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

func TestMercatorForward(t *testing.T) {
	m := NewMercator(800, 600)

	tests := []struct {
		name  string
		p     GeoPoint
		wantX float64
		wantY float64
	}{
		{"origin", GeoPoint{0, 0}, 400, 300},
		{"west edge", GeoPoint{0, -180}, 0, 300},
		{"east edge", GeoPoint{0, 180}, 800, 300},
		{"pole clamps to safe band", GeoPoint{90, 0}, 400, 300 - 600*math.Log(math.Tan(math.Pi/4+SafeLatitude*math.Pi/360))/(2*math.Pi)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := m.Forward(tt.p)
			if math.Abs(x-tt.wantX) > 1e-9 || math.Abs(y-tt.wantY) > 1e-9 {
				t.Errorf("Forward(%v) = (%v, %v); want (%v, %v)", tt.p, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestMercatorInverseCenter(t *testing.T) {
	p := NewMercator(800, 600).Inverse(400, 300)
	if math.Abs(p.Latitude) > 1e-9 || math.Abs(p.Longitude) > 1e-9 {
		t.Errorf("Inverse(400, 300) = %v; want (0, 0)", p)
	}
}

func TestMercatorInverseClamps(t *testing.T) {
	m := NewMercator(800, 600)

	tests := []struct {
		name string
		x, y float64
	}{
		{"top edge", 400, 0},
		{"bottom edge", 400, 600},
		{"far above", 400, -5000},
		{"far below", 400, 5000},
		{"left of plane", -200, 300},
		{"right of plane", 1300, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := m.Inverse(tt.x, tt.y)
			if math.Abs(p.Latitude) > SafeLatitude {
				t.Errorf("Inverse(%v, %v) latitude = %v; want within ±%v", tt.x, tt.y, p.Latitude, SafeLatitude)
			}
			if !p.Valid() {
				t.Errorf("Inverse(%v, %v) = %v; want valid point", tt.x, tt.y, p)
			}
		})
	}
}

func TestMercatorRoundTrip(t *testing.T) {
	m := NewMercator(1024, 1024)

	for lat := -SafeLatitude; lat <= SafeLatitude; lat += 5 {
		for lon := -175.0; lon <= 175; lon += 25 {
			p := GeoPoint{Latitude: lat, Longitude: lon}
			got := m.Inverse(m.Forward(p))
			if math.Abs(got.Latitude-lat) > 1e-3 || math.Abs(got.Longitude-lon) > 1e-3 {
				t.Fatalf("Inverse(Forward(%v)) = %v", p, got)
			}
		}
	}
}

// The plane must be a scaled and shifted web mercator
func TestMercatorMatchesWebMercator(t *testing.T) {
	m := NewMercator(1000, 1000)
	half := project.WGS84.ToMercator(orb.Point{180, 0})[0]

	for _, p := range []GeoPoint{{51.5, -0.12}, {-33.9, 151.2}, {64.1, -21.9}, {-54.8, -68.3}} {
		merc := project.WGS84.ToMercator(orb.Point{p.Longitude, p.Latitude})
		wantX := 500 + merc[0]/half*500
		wantY := 500 - merc[1]/half*500

		x, y := m.Forward(p)
		if math.Abs(x-wantX) > 1e-6 || math.Abs(y-wantY) > 1e-6 {
			t.Errorf("Forward(%v) = (%v, %v); want (%v, %v)", p, x, y, wantX, wantY)
		}
	}
}
