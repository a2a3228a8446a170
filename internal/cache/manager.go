package cache

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"geopicker/internal/debug"
)

// Manager handles downloading and caching Natural Earth data
type Manager struct {
	cacheDir string
	baseURL  string
	client   *http.Client
	limiter  *rate.Limiter
}

// DataFile represents a Natural Earth dataset to download
type DataFile struct {
	Name     string // Friendly name
	Path     string // Path below the Natural Earth CDN root
	Base     string // Base filename (without extension)
	Optional bool   // If true, failure to download won't stop the app
}

// DefaultBaseURL is the Natural Earth CDN root
const DefaultBaseURL = "https://naciscdn.org/naturalearth"

// Natural Earth datasets - 1:110m is plenty for a whole-world picker
var NaturalEarthFiles = []DataFile{
	{
		Name: "Coastlines",
		Path: "110m/physical/ne_110m_coastline.zip",
		Base: "ne_110m_coastline",
	},
	{
		Name:     "Country borders",
		Path:     "110m/cultural/ne_110m_admin_0_boundary_lines_land.zip",
		Base:     "ne_110m_admin_0_boundary_lines_land",
		Optional: true,
	},
	{
		Name:     "Rivers",
		Path:     "110m/physical/ne_110m_rivers_lake_centerlines.zip",
		Base:     "ne_110m_rivers_lake_centerlines",
		Optional: true,
	},
	{
		Name:     "Populated Places",
		Path:     "110m/cultural/ne_110m_populated_places.zip",
		Base:     "ne_110m_populated_places",
		Optional: true,
	},
}

// NewManager creates a new cache manager
// If cacheDir is empty, uses ~/.geopicker/data
func NewManager(cacheDir string) (*Manager, error) {
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cacheDir = filepath.Join(home, ".geopicker", "data")
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Manager{
		cacheDir: cacheDir,
		baseURL:  DefaultBaseURL,
		client:   &http.Client{Timeout: 60 * time.Second},
		// be polite to the CDN
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}, nil
}

// SetBaseURL points downloads at a different mirror
func (m *Manager) SetBaseURL(url string) {
	m.baseURL = strings.TrimRight(url, "/")
}

// Missing lists the datasets that are not cached yet
func (m *Manager) Missing() []DataFile {
	var missing []DataFile
	for _, file := range NaturalEarthFiles {
		if _, err := os.Stat(m.GetDataPath(file.Base)); err != nil {
			missing = append(missing, file)
		}
	}
	return missing
}

// EnsureData ensures all required Natural Earth data is available
// Downloads missing files automatically
// Optional files that fail to download will be skipped with a warning
func (m *Manager) EnsureData(ctx context.Context) error {
	for _, file := range m.Missing() {
		if err := m.fetch(ctx, file); err != nil {
			if file.Optional {
				debug.Logger().Warn().Err(err).Str("dataset", file.Name).Msg("skipping optional dataset")
				continue
			}
			return fmt.Errorf("failed to ensure %s: %w", file.Name, err)
		}
	}
	return nil
}

// fetch downloads one dataset and unpacks it into the cache
func (m *Manager) fetch(ctx context.Context, file DataFile) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return err
	}

	url := m.baseURL + "/" + file.Path
	debug.Logger().Info().Str("dataset", file.Name).Str("url", url).Msg("downloading")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; geopicker/1.0)")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status: %s (URL: %s)", resp.Status, url)
	}

	tmpFile, err := os.CreateTemp("", "ne_*.zip")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return fmt.Errorf("failed to save download: %w", err)
	}

	tmpFile.Close()

	if err := extractZip(tmpFile.Name(), m.cacheDir); err != nil {
		return fmt.Errorf("failed to extract: %w", err)
	}

	debug.Logger().Info().Str("dataset", file.Name).Msg("downloaded and extracted")
	return nil
}

func extractZip(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(filepath.Base(f.Name), ".") {
			continue
		}

		destPath := filepath.Join(destDir, filepath.Base(f.Name))
		rc, err := f.Open()
		if err != nil {
			return err
		}

		outFile, err := os.Create(destPath)
		if err != nil {
			rc.Close()
			return err
		}

		_, err = io.Copy(outFile, rc)
		outFile.Close()
		rc.Close()

		if err != nil {
			return err
		}
	}

	return nil
}

func (m *Manager) GetDataPath(base string) string {
	return filepath.Join(m.cacheDir, base+".shp")
}

func (m *Manager) GetCacheDir() string {
	return m.cacheDir
}
