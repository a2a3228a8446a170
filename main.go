package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"geopicker/internal/cache"
	"geopicker/internal/config"
	"geopicker/internal/debug"
	"geopicker/internal/geo"
	"geopicker/internal/ui"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Options are the command line flags. Unset flags leave the config file
// values alone.
type Options struct {
	ConfigFile string  `short:"c" long:"config"    env:"GEOPICKER_CONFIG"    description:"Path to YAML configuration file" default:"geopicker.yaml"`
	CacheDir   string  `long:"cache"               env:"GEOPICKER_CACHE"     description:"Cache directory for map data (default: ~/.geopicker/data)"`
	Places     string  `short:"p" long:"places"    env:"GEOPICKER_PLACES"    description:"CSV of places (name,country,lat,lon) for the place list"`
	DebugLog   string  `short:"d" long:"debug-log" env:"GEOPICKER_DEBUG_LOG" description:"Debug log file (e.g., debug.log)"`
	LogLevel   string  `long:"log-level"           env:"GEOPICKER_LOG_LEVEL" description:"Debug log level" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error"`
	Renderer   string  `short:"r" long:"renderer"  description:"Renderer to start with" choice:"flat" choice:"globe"`
	Aspect     float64 `short:"a" long:"aspect"    description:"Character aspect ratio - adjust for font width (1.0-4.0)"`
	Select     string  `short:"s" long:"select"    description:"Name of a listed place to select at startup"`
	Offline    bool    `long:"offline"             description:"Do not download missing map data"`
}

func main() {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to read .env: %v\n", err)
	}

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "geopicker"
	parser.ShortDescription = "Terminal map for picking geographic coordinates"
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Set up debug logging if requested
	if cfg.Log.File != "" {
		logFile, err := os.Create(cfg.Log.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to create debug log: %v\n", err)
		} else {
			defer logFile.Close()
			debug.SetOutput(logFile, cfg.Log.Level)
			debug.Log("geopicker debug log started")
			fmt.Printf("Debug logging enabled: %s\n", cfg.Log.File)
		}
	}

	// Initialize cache manager
	fmt.Println("Initializing map data cache...")
	cacheManager, err := cache.NewManager(cfg.Data.CacheDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize cache: %v\n", err)
		os.Exit(1)
	}

	if !cfg.Data.Offline {
		fmt.Println("Checking Natural Earth data...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		err := cacheManager.EnsureData(ctx)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to download map data: %v\n", err)
			os.Exit(1)
		}
	}

	// Load shapefiles
	fmt.Println("Loading geographic features...")
	features := geo.NewShapefileLoader(cacheManager.GetCacheDir()).LoadAll()
	if cfg.Data.Graticule > 0 {
		features[geo.FeatureGraticule] = geo.Graticule(cfg.Data.Graticule)
	}
	fmt.Printf("Loaded %d features\n", features.Count())

	places, err := loadPlaces(cfg, features)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create and run application
	fmt.Printf("Starting geopicker (%s, aspect: %.1f)...\n", cfg.Renderer, cfg.Map.Aspect)
	app, err := ui.NewApp(cfg, features, places)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create application: %v\n", err)
		os.Exit(1)
	}

	if opts.Select != "" {
		selectPlace(app, places, opts.Select)
	}

	// Run with panic recovery to ensure terminal is always restored
	func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "\nPanic: %v\n", r)
			}
		}()

		if err := app.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}()

	fmt.Println("\nGoodbye!")
}

// loadConfig reads the config file and lays explicitly set flags over it
func loadConfig(opts Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigFile, true)
	if err != nil {
		return nil, err
	}

	if opts.CacheDir != "" {
		cfg.Data.CacheDir = opts.CacheDir
	}
	if opts.Places != "" {
		cfg.Data.PlacesCSV = opts.Places
	}
	if opts.Offline {
		cfg.Data.Offline = true
	}
	if opts.DebugLog != "" {
		cfg.Log.File = opts.DebugLog
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.Renderer != "" {
		cfg.Renderer = opts.Renderer
	}
	if opts.Aspect != 0 {
		cfg.Map.Aspect = opts.Aspect
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadPlaces prefers the configured CSV and falls back to the basemap's
// populated places
func loadPlaces(cfg *config.Config, features geo.Basemap) ([]geo.Place, error) {
	if cfg.Data.PlacesCSV == "" {
		return geo.PlacesFromFeatures(features[geo.FeaturePlace]), nil
	}

	places, err := geo.NewPlaceLoader(cfg.Data.PlacesCSV).Load()
	if err != nil {
		return nil, err
	}
	fmt.Printf("Loaded %d places from %s\n", len(places), cfg.Data.PlacesCSV)
	return places, nil
}

func selectPlace(app *ui.App, places []geo.Place, name string) {
	for _, place := range places {
		if strings.EqualFold(place.Name, name) {
			app.Select(place.Location())
			return
		}
	}
	fmt.Fprintf(os.Stderr, "Warning: place %q not found\n", name)
}
