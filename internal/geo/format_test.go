package geo

import (
	"math"
	"testing"
)

func TestFormatDecimal(t *testing.T) {
	if got := FormatDecimal(GeoPoint{48.8566, 2.3522}); got != "48.86°, 2.35°" {
		t.Errorf("FormatDecimal = %q", got)
	}
	if got := FormatDecimal(GeoPoint{-33.8688, -151.2093}); got != "-33.87°, -151.21°" {
		t.Errorf("FormatDecimal = %q", got)
	}
}

func TestFormatDMS(t *testing.T) {
	tests := []struct {
		p    GeoPoint
		want string
	}{
		{GeoPoint{48.8566, 2.3522}, "48°51'N, 2°21'E"},
		{GeoPoint{-33.8688, 151.2093}, "33°52'S, 151°12'E"},
		{GeoPoint{40.7128, -74.0060}, "40°42'N, 74°0'W"},
		{GeoPoint{0, 0}, "0°0'N, 0°0'E"},
	}

	for _, tt := range tests {
		if got := FormatDMS(tt.p); got != tt.want {
			t.Errorf("FormatDMS(%v) = %q; want %q", tt.p, got, tt.want)
		}
	}
}

func TestRegionName(t *testing.T) {
	tests := []struct {
		p    GeoPoint
		want string
	}{
		{GeoPoint{-75, 0}, "Antarctica"},
		{GeoPoint{55.75, 37.62}, "Europe/Asia"},
		{GeoPoint{48.85, 2.35}, "Atlantic Ocean"},
		{GeoPoint{40.71, -74.0}, "North America"},
		{GeoPoint{-33.87, 151.21}, "Australia/Pacific"},
		{GeoPoint{-15.8, -47.9}, "South America"},
		{GeoPoint{35.68, 139.69}, "Europe/Asia"},
		{GeoPoint{6.5, 3.4}, "Africa/Middle East"},
		{GeoPoint{70, 100}, "Arctic/Siberia"},
	}

	for _, tt := range tests {
		if got := RegionName(tt.p); got != tt.want {
			t.Errorf("RegionName(%v) = %q; want %q", tt.p, got, tt.want)
		}
	}
}

func TestHaversine(t *testing.T) {
	paris := GeoPoint{48.8566, 2.3522}
	london := GeoPoint{51.5074, -0.1278}

	tests := []struct {
		name string
		a, b GeoPoint
		want float64
		tol  float64
	}{
		{"same point", paris, paris, 0, 1e-9},
		{"paris to london", paris, london, 344, 2},
		{"quarter meridian", GeoPoint{0, 0}, GeoPoint{90, 0}, math.Pi / 2 * earthRadiusKm, 1e-6},
		{"antipodes", GeoPoint{0, 0}, GeoPoint{0, 180}, math.Pi * earthRadiusKm, 1e-6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.a, tt.b)
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("Haversine = %v; want %v ± %v", got, tt.want, tt.tol)
			}
			if back := Haversine(tt.b, tt.a); math.Abs(back-got) > 1e-9 {
				t.Errorf("Haversine not symmetric: %v vs %v", got, back)
			}
		})
	}
}
