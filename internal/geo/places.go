package geo

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Place is a named location record: the {name, country, lat, lon} shape a
// search collaborator hands to the picker.
type Place struct {
	Name    string
	Country string
	Point   GeoPoint
}

// Location converts the place to a SelectedLocation named "Name, Country"
func (p Place) Location() SelectedLocation {
	name := p.Name
	if p.Country != "" {
		name = p.Name + ", " + p.Country
	}
	return SelectedLocation{Coordinate: p.Point, DisplayName: name}
}

// PlaceLoader loads places from a CSV file with a header row containing at
// least name, lat and lon columns. country is optional.
type PlaceLoader struct {
	csvPath string
}

// NewPlaceLoader creates a new place loader
func NewPlaceLoader(csvPath string) *PlaceLoader {
	return &PlaceLoader{
		csvPath: csvPath,
	}
}

// Load reads the CSV file
func (l *PlaceLoader) Load() ([]Place, error) {
	file, err := os.Open(l.csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open places CSV: %w", err)
	}
	defer file.Close()

	return ReadPlaces(file)
}

// ReadPlaces parses place records. Rows with malformed or out-of-range
// coordinates are skipped.
func ReadPlaces(r io.Reader) ([]Place, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int)
	for i, col := range header {
		cols[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range []string{"name", "lat", "lon"} {
		if _, ok := cols[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}
	countryIdx, hasCountry := cols["country"]

	var places []Place

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}

		field := func(i int) string {
			if i < len(record) {
				return strings.TrimSpace(record[i])
			}
			return ""
		}

		lat, err := strconv.ParseFloat(field(cols["lat"]), 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(field(cols["lon"]), 64)
		if err != nil {
			continue
		}
		point, err := NewGeoPoint(lat, lon)
		if err != nil {
			continue
		}

		place := Place{Name: field(cols["name"]), Point: point}
		if hasCountry {
			place.Country = field(countryIdx)
		}
		if place.Name == "" {
			continue
		}

		places = append(places, place)
	}

	return places, nil
}

// PlacesFromFeatures turns named basemap place features into places
func PlacesFromFeatures(features []*Feature) []Place {
	places := make([]Place, 0, len(features))
	for _, f := range features {
		if !f.IsPoint() || f.Name == "" {
			continue
		}
		places = append(places, Place{Name: f.Name, Point: f.GeoPoint()})
	}
	return places
}
