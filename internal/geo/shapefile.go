package geo

import (
	"fmt"
	"path/filepath"
	"strings"

	"geopicker/internal/debug"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
)

// Basemap holds the loaded basemap features keyed by type
type Basemap map[FeatureType][]*Feature

// Count returns the total number of features
func (b Basemap) Count() int {
	n := 0
	for _, fs := range b {
		n += len(fs)
	}
	return n
}

// ShapefileLoader loads ESRI shapefiles from the basemap cache directory
type ShapefileLoader struct {
	dataDir string
}

// NewShapefileLoader creates a new shapefile loader
func NewShapefileLoader(dataDir string) *ShapefileLoader {
	return &ShapefileLoader{
		dataDir: dataDir,
	}
}

// LoadAll loads every basemap layer that is present.
// Missing layers are skipped; the picker works on an empty basemap.
func (s *ShapefileLoader) LoadAll() Basemap {
	features := make(Basemap)

	layers := []struct {
		base  string
		ftype FeatureType
	}{
		{"ne_110m_coastline", FeatureCoastline},
		{"ne_110m_admin_0_boundary_lines_land", FeatureBorder},
		{"ne_110m_rivers_lake_centerlines", FeatureRiver},
	}

	for _, layer := range layers {
		fs, err := s.LoadShapefile(filepath.Join(s.dataDir, layer.base+".shp"), layer.ftype)
		if err != nil {
			debug.Logger().Warn().Err(err).Str("layer", layer.ftype.String()).Msg("basemap layer skipped")
			continue
		}
		features[layer.ftype] = fs
	}

	places, err := s.LoadPlaces(filepath.Join(s.dataDir, "ne_110m_populated_places.shp"))
	if err != nil {
		debug.Logger().Warn().Err(err).Msg("populated places skipped")
	} else {
		features[FeaturePlace] = places
	}

	debug.Logger().Info().
		Int("coastlines", len(features[FeatureCoastline])).
		Int("borders", len(features[FeatureBorder])).
		Int("rivers", len(features[FeatureRiver])).
		Int("places", len(features[FeaturePlace])).
		Msg("basemap loaded")

	return features
}

// LoadShapefile loads polylines and polygon outlines as line features
func (s *ShapefileLoader) LoadShapefile(path string, ftype FeatureType) ([]*Feature, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer shape.Close()

	features := make([]*Feature, 0)

	for shape.Next() {
		_, p := shape.Shape()

		switch geom := p.(type) {
		case *shp.PolyLine:
			features = appendParts(features, ftype, geom.Points, geom.Parts)
		case *shp.Polygon:
			features = appendParts(features, ftype, geom.Points, geom.Parts)
		}
	}

	return features, nil
}

// appendParts splits a multi-part shape into one line feature per part so
// that separate rings are never joined across the map.
func appendParts(features []*Feature, ftype FeatureType, points []shp.Point, parts []int32) []*Feature {
	if len(parts) == 0 {
		parts = []int32{0}
	}

	for i, start := range parts {
		end := len(points)
		if i+1 < len(parts) {
			end = int(parts[i+1])
		}
		if int(start) >= end {
			continue
		}

		line := make(orb.LineString, 0, end-int(start))
		for _, pt := range points[start:end] {
			line = append(line, orb.Point{pt.X, pt.Y})
		}
		if len(line) > 1 {
			features = append(features, NewLineFeature(ftype, line))
		}
	}

	return features
}

// LoadPlaces loads populated places with their names
func (s *ShapefileLoader) LoadPlaces(path string) ([]*Feature, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer shape.Close()

	nameIdx := -1
	for i, field := range shape.Fields() {
		// Field names are NUL padded byte arrays
		name := strings.TrimRight(string(field.Name[:]), "\x00 ")
		if name == "NAME" || name == "NAMEASCII" || name == "NAME_EN" {
			nameIdx = i
			break
		}
	}

	features := make([]*Feature, 0)

	for shape.Next() {
		n, p := shape.Shape()

		point, ok := p.(*shp.Point)
		if !ok {
			continue
		}

		gp, err := NewGeoPoint(point.Y, point.X)
		if err != nil {
			continue
		}

		name := ""
		if nameIdx >= 0 {
			name = strings.Trim(shape.ReadAttribute(n, nameIdx), "\x00 ")
		}

		features = append(features, NewPointFeature(FeaturePlace, gp, name))
	}

	return features, nil
}
