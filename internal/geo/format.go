package geo

import (
	"fmt"
	"math"
)

// FormatDecimal renders a point as "48.85°, 2.35°"
func FormatDecimal(p GeoPoint) string {
	return fmt.Sprintf("%.2f°, %.2f°", p.Latitude, p.Longitude)
}

// FormatDMS renders a point in degrees and whole minutes, e.g. 48°51'N, 2°21'E
func FormatDMS(p GeoPoint) string {
	latDir := "N"
	if p.Latitude < 0 {
		latDir = "S"
	}
	lonDir := "E"
	if p.Longitude < 0 {
		lonDir = "W"
	}

	latDeg, latMin := degMin(p.Latitude)
	lonDeg, lonMin := degMin(p.Longitude)

	return fmt.Sprintf("%d°%d'%s, %d°%d'%s", latDeg, latMin, latDir, lonDeg, lonMin, lonDir)
}

func degMin(v float64) (int, int) {
	v = math.Abs(v)
	deg := int(v)
	min := int((v - float64(deg)) * 60)
	return deg, min
}

// RegionName returns a coarse region label for a point.
// The bands are coarse and only label the detail panel.
func RegionName(p GeoPoint) string {
	lat, lon := p.Latitude, p.Longitude

	switch {
	case lat < -60:
		return "Antarctica"
	case lat < -30:
		switch {
		case lon < -60:
			return "South America"
		case lon < 20:
			return "South Atlantic"
		case lon < 150:
			return "Africa/Indian Ocean"
		default:
			return "Australia/Pacific"
		}
	case lat < 0:
		switch {
		case lon < -30:
			return "South America"
		case lon < 50:
			return "Africa"
		case lon < 150:
			return "Asia/Australia"
		default:
			return "Pacific Ocean"
		}
	case lat < 30:
		switch {
		case lon < -60:
			return "North America"
		case lon < 0:
			return "South America"
		case lon < 50:
			return "Africa/Middle East"
		case lon < 150:
			return "Asia"
		default:
			return "Pacific Ocean"
		}
	case lat < 60:
		switch {
		case lon < -60:
			return "North America"
		case lon < 20:
			return "Atlantic Ocean"
		case lon < 150:
			return "Europe/Asia"
		default:
			return "Pacific Ocean"
		}
	default:
		switch {
		case lon < -60:
			return "North America"
		case lon < 150:
			return "Arctic/Siberia"
		default:
			return "Arctic Ocean"
		}
	}
}
