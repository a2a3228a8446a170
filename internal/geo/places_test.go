package geo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadPlaces(t *testing.T) {
	data := `name,country,lat,lon
Paris,France,48.8566,2.3522
Sydney,Australia,-33.8688,151.2093
Broken,Nowhere,abc,10
Beyond,Nowhere,95,10
,Anon,1,1
Short,Row
Reykjavik,Iceland,64.1466,-21.9426
`
	places, err := ReadPlaces(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadPlaces: %v", err)
	}

	want := []string{"Paris", "Sydney", "Reykjavik"}
	if len(places) != len(want) {
		t.Fatalf("got %d places; want %d: %+v", len(places), len(want), places)
	}
	for i, name := range want {
		if places[i].Name != name {
			t.Errorf("places[%d] = %q; want %q", i, places[i].Name, name)
		}
	}

	loc := places[0].Location()
	if loc.DisplayName != "Paris, France" {
		t.Errorf("DisplayName = %q", loc.DisplayName)
	}
	if loc.Coordinate != (GeoPoint{48.8566, 2.3522}) {
		t.Errorf("Coordinate = %v", loc.Coordinate)
	}
}

func TestReadPlacesColumnOrder(t *testing.T) {
	data := "LON, LAT, NAME\n2.35,48.85,Paris\n"
	places, err := ReadPlaces(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadPlaces: %v", err)
	}
	if len(places) != 1 || places[0].Point.Latitude != 48.85 {
		t.Fatalf("places = %+v", places)
	}
	if got := places[0].Location().DisplayName; got != "Paris" {
		t.Errorf("DisplayName without country = %q", got)
	}
}

func TestReadPlacesMissingColumn(t *testing.T) {
	if _, err := ReadPlaces(strings.NewReader("name,lat\nParis,48\n")); err == nil {
		t.Error("expected missing column error")
	}
	if _, err := ReadPlaces(strings.NewReader("")); err == nil {
		t.Error("expected header error on empty input")
	}
}

func TestPlaceLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.csv")
	if err := os.WriteFile(path, []byte("name,lat,lon\nQuito,-0.18,-78.47\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	places, err := NewPlaceLoader(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(places) != 1 || places[0].Name != "Quito" {
		t.Errorf("places = %+v", places)
	}

	if _, err := NewPlaceLoader(filepath.Join(t.TempDir(), "none.csv")).Load(); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPlacesFromFeatures(t *testing.T) {
	features := []*Feature{
		NewPointFeature(FeaturePlace, GeoPoint{35.68, 139.69}, "Tokyo"),
		NewPointFeature(FeaturePlace, GeoPoint{1, 1}, ""),
		NewLineFeature(FeatureCoastline, nil),
	}

	places := PlacesFromFeatures(features)
	if len(places) != 1 || places[0].Name != "Tokyo" || places[0].Point.Longitude != 139.69 {
		t.Errorf("PlacesFromFeatures = %+v", places)
	}
}
