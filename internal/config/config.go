// Package config loads the picker configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Renderer names
const (
	RendererFlat  = "flat"
	RendererGlobe = "globe"
)

// Config represents the root configuration file structure.
type Config struct {
	Renderer string        `yaml:"renderer"`
	Map      MapConfig     `yaml:"map"`
	Camera   CameraConfig  `yaml:"camera"`
	Gesture  GestureConfig `yaml:"gesture"`
	Data     DataConfig    `yaml:"data"`
	Log      LogConfig     `yaml:"log"`
}

// MapConfig sizes the flat Mercator plane in abstract map units.
type MapConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	MinExtent float64 `yaml:"min_extent"`
	MaxExtent float64 `yaml:"max_extent"`
	// Aspect is the height of a terminal cell relative to its width
	Aspect float64 `yaml:"aspect"`
}

// CameraConfig limits the globe camera and its fly-to.
type CameraConfig struct {
	MinZoom        float64       `yaml:"min_zoom"`
	MaxZoom        float64       `yaml:"max_zoom"`
	OverviewZoom   float64       `yaml:"overview_zoom"`
	FlightDuration time.Duration `yaml:"flight_duration"`
}

// GestureConfig tunes click/drag disambiguation. Units are terminal cells.
type GestureConfig struct {
	DragThreshold float64       `yaml:"drag_threshold"`
	ClickCooldown time.Duration `yaml:"click_cooldown"`
}

// DataConfig points at basemap and place data.
type DataConfig struct {
	CacheDir  string  `yaml:"cache_dir"`
	PlacesCSV string  `yaml:"places_csv"`
	Offline   bool    `yaml:"offline"`
	Graticule float64 `yaml:"graticule"`
}

// LogConfig configures the debug log.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Default returns a configuration with every value set.
func Default() *Config {
	return &Config{
		Renderer: RendererFlat,
		Map: MapConfig{
			Width:     1024,
			Height:    1024,
			MinExtent: 8,
			MaxExtent: 2048,
			Aspect:    2.0,
		},
		Camera: CameraConfig{
			MinZoom:        0,
			MaxZoom:        6,
			OverviewZoom:   1,
			FlightDuration: 2 * time.Second,
		},
		Gesture: GestureConfig{
			DragThreshold: 1.5,
			ClickCooldown: 100 * time.Millisecond,
		},
		Data: DataConfig{
			Graticule: 30,
		},
		Log: LogConfig{
			Level: "debug",
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is
// not an error when optional is set.
func Load(path string, optional bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// Validate checks that every value is usable and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Renderer != RendererFlat && c.Renderer != RendererGlobe {
		errs = append(errs, fmt.Sprintf("renderer must be %q or %q, got %q", RendererFlat, RendererGlobe, c.Renderer))
	}
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		errs = append(errs, "map.width and map.height must be positive")
	}
	if c.Map.MinExtent <= 0 || c.Map.MaxExtent < c.Map.MinExtent {
		errs = append(errs, "map.min_extent must be positive and not above map.max_extent")
	}
	if c.Map.Aspect < 1 || c.Map.Aspect > 4 {
		errs = append(errs, fmt.Sprintf("map.aspect must be between 1.0 and 4.0, got %.2f", c.Map.Aspect))
	}
	if c.Camera.MaxZoom < c.Camera.MinZoom {
		errs = append(errs, "camera.max_zoom must not be below camera.min_zoom")
	}
	if c.Camera.MinZoom < 0 || c.Camera.MaxZoom > 20 {
		errs = append(errs, "camera zoom must stay within 0-20")
	}
	if c.Camera.FlightDuration < 0 {
		errs = append(errs, "camera.flight_duration must not be negative")
	}
	if c.Gesture.DragThreshold <= 0 {
		errs = append(errs, "gesture.drag_threshold must be positive")
	}
	if c.Gesture.ClickCooldown < 0 {
		errs = append(errs, "gesture.click_cooldown must not be negative")
	}
	if c.Data.Graticule < 0 || c.Data.Graticule > 90 {
		errs = append(errs, "data.graticule must be within 0-90 degrees")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
