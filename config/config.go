package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/airbusgeo/sentinel-tiler/common"
	"github.com/airbusgeo/sentinel-tiler/downloader"
	"github.com/airbusgeo/sentinel-tiler/interface/provider"
	"github.com/airbusgeo/sentinel-tiler/processor"
	"github.com/airbusgeo/sentinel-tiler/service"
	"gopkg.in/yaml.v3"
)

// Default paths
const (
	DefaultPath         = "config.yaml"
	DefaultRawDir       = "raw_data/"
	DefaultProcessedDir = "processed_data_256/"
)

// ErrInvalidConfig is returned (as a fatal error) when the configuration is missing or invalid
var ErrInvalidConfig = errors.New("invalid config")

// SentinelHub holds the credentials of the imagery service
type SentinelHub struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	BaseURL      string `yaml:"base_url"`
	TokenURL     string `yaml:"token_url"`
}

// AOI is the area of interest, either a bounding box or a geojson file
type AOI struct {
	BBox    []float64 `yaml:"bbox"`
	CRS     string    `yaml:"crs"`
	GeoJSON string    `yaml:"geojson"`
}

// Download configures the time series to be downloaded
type Download struct {
	Start      string            `yaml:"start"`
	End        string            `yaml:"end"`
	Step       common.Step       `yaml:"step"`
	Product    common.Product    `yaml:"product"`
	Mosaicking common.Mosaicking `yaml:"mosaicking"`
	OutputDir  string            `yaml:"output_dir"`
	Naming     downloader.Naming `yaml:"naming"`
	LocalPath  string            `yaml:"local_path"`
	ArchiveURI string            `yaml:"archive_uri"`
}

// Process configures the tiling and the enhancement
type Process struct {
	InputDir   string  `yaml:"input_dir"`
	OutputDir  string  `yaml:"output_dir"`
	TileWidth  int     `yaml:"tile_width"`
	TileHeight int     `yaml:"tile_height"`
	Brightness float64 `yaml:"brightness"`
	Gamma      float64 `yaml:"gamma"`
}

// Export configures the export of the tiles
type Export struct {
	StorageURI string `yaml:"storage_uri"`
	Zip        bool   `yaml:"zip"`
}

// Config is loaded once and is read-only afterwards
type Config struct {
	SentinelHub SentinelHub `yaml:"sentinelhub"`
	AOI         AOI         `yaml:"aoi"`
	Resolution  float64     `yaml:"resolution"`
	Download    Download    `yaml:"download"`
	Process     Process     `yaml:"process"`
	Export      Export      `yaml:"export"`
	Debug       bool        `yaml:"debug"`
}

// Default returns a configuration with all the optional values set
func Default() *Config {
	opts := processor.DefaultOptions()
	return &Config{
		AOI:        AOI{CRS: string(common.WGS84)},
		Resolution: 10,
		Download: Download{
			Step:       common.Monthly(),
			Product:    common.TrueColor,
			Mosaicking: common.MosaickingLeastCC,
			OutputDir:  DefaultRawDir,
			Naming:     downloader.NamingDate,
		},
		Process: Process{
			InputDir:   DefaultRawDir,
			OutputDir:  DefaultProcessedDir,
			TileWidth:  opts.TileWidth,
			TileHeight: opts.TileHeight,
			Brightness: opts.Brightness,
			Gamma:      opts.Gamma,
		},
	}
}

func invalid(format string, a ...interface{}) error {
	return service.MakeFatal(fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidConfig}, a...)...))
}

// Load reads the yaml file, applies the default values and verifies the credentials and the process options
func Load(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, invalid("%v", err)
	}
	return Parse(data)
}

// Parse decodes a yaml configuration, applies the default values and verifies it
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, invalid("%v", err)
	}
	if err := c.Verify(); err != nil {
		return nil, err
	}
	return c, nil
}

// Verify checks the credentials and the process options
func (c *Config) Verify() error {
	if strings.TrimSpace(c.SentinelHub.ClientID) == "" {
		return invalid("sentinelhub.client_id is missing")
	}
	if strings.TrimSpace(c.SentinelHub.ClientSecret) == "" {
		return invalid("sentinelhub.client_secret is missing")
	}
	if err := c.ProcessOptions().Validate(); err != nil {
		return invalid("process: %v", err)
	}
	return nil
}

// VerifyDownload checks the parameters required to download images and returns the AOI and the sub-intervals
func (c *Config) VerifyDownload() (common.AOI, []common.Interval, error) {
	aoi, err := c.AreaOfInterest()
	if err != nil {
		return common.AOI{}, nil, err
	}
	if c.Resolution <= 0 {
		return common.AOI{}, nil, invalid("resolution must be > 0")
	}
	intervals, err := c.Intervals()
	if err != nil {
		return common.AOI{}, nil, err
	}
	return aoi, intervals, nil
}

// AreaOfInterest returns the AOI from the bounding box or the geojson file
func (c *Config) AreaOfInterest() (common.AOI, error) {
	crs := common.CRS(c.AOI.CRS)
	switch {
	case c.AOI.GeoJSON != "":
		g, err := service.ReadGeometryFile(c.AOI.GeoJSON)
		if err != nil {
			return common.AOI{}, invalid("aoi.geojson: %v", err)
		}
		aoi, err := common.NewAOIFromGeometry(g, crs)
		if err != nil {
			return common.AOI{}, invalid("aoi.geojson: %v", err)
		}
		return aoi, nil
	case len(c.AOI.BBox) == 4:
		aoi, err := common.NewAOI([4]float64{c.AOI.BBox[0], c.AOI.BBox[1], c.AOI.BBox[2], c.AOI.BBox[3]}, crs)
		if err != nil {
			return common.AOI{}, invalid("aoi.bbox: %v", err)
		}
		return aoi, nil
	case len(c.AOI.BBox) == 0:
		return common.AOI{}, invalid("aoi.bbox or aoi.geojson is missing")
	}
	return common.AOI{}, invalid("aoi.bbox must be [minx, miny, maxx, maxy]")
}

// Intervals returns the sub-intervals of the download period
func (c *Config) Intervals() ([]common.Interval, error) {
	if c.Download.Start == "" || c.Download.End == "" {
		return nil, invalid("download.start and download.end are required")
	}
	start, err := common.ParseDate(c.Download.Start)
	if err != nil {
		return nil, invalid("download.start: %v", err)
	}
	end, err := common.ParseDate(c.Download.End)
	if err != nil {
		return nil, invalid("download.end: %v", err)
	}
	intervals, err := common.PlanIntervals(start, end, c.Download.Step)
	if err != nil {
		return nil, invalid("download: %v", err)
	}
	return intervals, nil
}

// DownloadOptions returns the options of the downloader
func (c *Config) DownloadOptions() downloader.Options {
	return downloader.Options{
		Resolution: c.Resolution,
		Product:    c.Download.Product,
		Mosaicking: c.Download.Mosaicking,
		Naming:     c.Download.Naming,
	}
}

// ProcessOptions returns the options of the processor
func (c *Config) ProcessOptions() processor.Options {
	return processor.Options{
		TileWidth:  c.Process.TileWidth,
		TileHeight: c.Process.TileHeight,
		Brightness: c.Process.Brightness,
		Gamma:      c.Process.Gamma,
	}
}

// ImageProviders returns the providers in the order they are tried:
// the local directory and the archive (if configured), then Sentinel Hub
func (c *Config) ImageProviders(ctx context.Context) ([]provider.ImageProvider, error) {
	var providers []provider.ImageProvider
	if c.Download.LocalPath != "" {
		providers = append(providers, provider.NewLocalImageProvider(c.Download.LocalPath))
	}
	if c.Download.ArchiveURI != "" {
		archive, err := provider.NewStorageImageProvider(ctx, c.Download.ArchiveURI)
		if err != nil {
			return nil, invalid("download.archive_uri: %v", err)
		}
		providers = append(providers, archive)
	}
	var opts []provider.SentinelHubOption
	if c.SentinelHub.BaseURL != "" {
		opts = append(opts, provider.WithBaseURL(c.SentinelHub.BaseURL))
	}
	if c.SentinelHub.TokenURL != "" {
		opts = append(opts, provider.WithTokenURL(c.SentinelHub.TokenURL))
	}
	return append(providers, provider.NewSentinelHubImageProvider(ctx, c.SentinelHub.ClientID, c.SentinelHub.ClientSecret, opts...)), nil
}
