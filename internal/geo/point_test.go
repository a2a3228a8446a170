package geo

import (
	"errors"
	"math"
	"testing"
)

func TestNewGeoPoint(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lon     float64
		wantErr bool
	}{
		{"paris", 48.8566, 2.3522, false},
		{"corners", -90, 180, false},
		{"lat too high", 90.01, 0, true},
		{"lon too low", 0, -180.5, true},
		{"nan", math.NaN(), 0, true},
		{"inf", 0, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGeoPoint(tt.lat, tt.lon)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCoordinate) {
					t.Errorf("NewGeoPoint(%v, %v) err = %v; want ErrInvalidCoordinate", tt.lat, tt.lon, err)
				}
				return
			}
			if err != nil {
				t.Errorf("NewGeoPoint(%v, %v) err = %v", tt.lat, tt.lon, err)
			}
		})
	}
}

func TestWrapLongitude(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{-180, -180},
		{190, -170},
		{-190, 170},
		{540, 180},
		{725, 5},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		got := WrapLongitude(tt.in)
		if math.Abs(got-tt.want) > 1e-9 && !(math.Abs(got) == 180 && math.Abs(tt.want) == 180) {
			t.Errorf("WrapLongitude(%v) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	p := GeoPoint{Latitude: 89, Longitude: 200}.Normalize(SafeLatitude)
	if p.Latitude != SafeLatitude {
		t.Errorf("latitude = %v; want %v", p.Latitude, SafeLatitude)
	}
	if math.Abs(p.Longitude+160) > 1e-9 {
		t.Errorf("longitude = %v; want -160", p.Longitude)
	}

	p = GeoPoint{Latitude: math.NaN(), Longitude: 10}.Normalize(SafeLatitude)
	if p.Latitude != 0 {
		t.Errorf("NaN latitude normalized to %v; want 0", p.Latitude)
	}
}

func TestSelectedLocationLabel(t *testing.T) {
	named := SelectedLocation{Coordinate: GeoPoint{48.8566, 2.3522}, DisplayName: "Paris, France"}
	if got := named.Label(); got != "Paris, France" {
		t.Errorf("Label() = %q", got)
	}

	unnamed := SelectedLocation{Coordinate: GeoPoint{48.8566, 2.3522}}
	if got := unnamed.Label(); got != "48.86°, 2.35°" {
		t.Errorf("Label() = %q; want decimal fallback", got)
	}

	if (SelectedLocation{Coordinate: GeoPoint{Latitude: math.NaN()}}).Valid() {
		t.Error("NaN location should be invalid")
	}
}
