package geo

import "github.com/paulmach/orb"

// FeatureType represents the type of basemap feature
type FeatureType int

const (
	FeatureCoastline FeatureType = iota
	FeatureBorder
	FeatureRiver
	FeaturePlace
	FeatureGraticule
)

// String returns a string representation of the feature type
func (f FeatureType) String() string {
	switch f {
	case FeatureCoastline:
		return "Coastline"
	case FeatureBorder:
		return "Border"
	case FeatureRiver:
		return "River"
	case FeaturePlace:
		return "Place"
	case FeatureGraticule:
		return "Graticule"
	default:
		return "Unknown"
	}
}

// Feature is a basemap line or labelled point.
// orb points are stored as [lon, lat].
type Feature struct {
	Type  FeatureType
	Line  orb.LineString // empty for point features
	Point *orb.Point     // set for point features
	Name  string
	bound orb.Bound
}

// NewLineFeature creates a polyline feature and caches its bound
func NewLineFeature(ftype FeatureType, line orb.LineString) *Feature {
	return &Feature{
		Type:  ftype,
		Line:  line,
		bound: line.Bound(),
	}
}

// NewPointFeature creates a labelled point feature
func NewPointFeature(ftype FeatureType, p GeoPoint, name string) *Feature {
	pt := orb.Point{p.Longitude, p.Latitude}
	return &Feature{
		Type:  ftype,
		Point: &pt,
		Name:  name,
		bound: pt.Bound(),
	}
}

// IsPoint returns true if this is a point feature
func (f *Feature) IsPoint() bool {
	return f.Point != nil
}

// IsLine returns true if this is a polyline feature
func (f *Feature) IsLine() bool {
	return len(f.Line) > 1
}

// GeoPoint returns the point feature's coordinate
func (f *Feature) GeoPoint() GeoPoint {
	if f.Point == nil {
		return GeoPoint{}
	}
	return GeoPoint{Latitude: f.Point.Lat(), Longitude: f.Point.Lon()}
}

// Bound returns the feature's bounding box
func (f *Feature) Bound() orb.Bound {
	return f.bound
}

// Bounds is a geographic bounding box
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// WorldBounds covers the whole globe
var WorldBounds = Bounds{MinLat: -90, MaxLat: 90, MinLon: -180, MaxLon: 180}

// Orb converts the bounds to an orb.Bound
func (b Bounds) Orb() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.MinLon, b.MinLat},
		Max: orb.Point{b.MaxLon, b.MaxLat},
	}
}

// Contains checks if a point is within the bounds
func (b Bounds) Contains(p GeoPoint) bool {
	return b.Orb().Contains(orb.Point{p.Longitude, p.Latitude})
}

// FilterByBounds keeps features whose bounding box intersects the bounds
func FilterByBounds(features []*Feature, bounds Bounds) []*Feature {
	view := bounds.Orb()
	filtered := make([]*Feature, 0, len(features))

	for _, feature := range features {
		if feature.IsPoint() {
			if view.Contains(*feature.Point) {
				filtered = append(filtered, feature)
			}
			continue
		}
		if feature.IsLine() && view.Intersects(feature.bound) {
			filtered = append(filtered, feature)
		}
	}

	return filtered
}

// Graticule builds meridians and parallels every step degrees, densified to
// one vertex per 2 degrees so they bend correctly on a globe.
// Parallels stop at the Mercator safe band.
func Graticule(step float64) []*Feature {
	if step <= 0 {
		return nil
	}
	const density = 2.0

	var features []*Feature

	for lon := -180.0; lon <= 180; lon += step {
		line := orb.LineString{}
		for lat := -SafeLatitude; lat <= SafeLatitude; lat += density {
			line = append(line, orb.Point{lon, lat})
		}
		features = append(features, NewLineFeature(FeatureGraticule, line))
	}

	for lat := -90 + step; lat < 90; lat += step {
		if lat < -SafeLatitude || lat > SafeLatitude {
			continue
		}
		line := orb.LineString{}
		for lon := -180.0; lon <= 180; lon += density {
			line = append(line, orb.Point{lon, lat})
		}
		features = append(features, NewLineFeature(FeatureGraticule, line))
	}

	return features
}
