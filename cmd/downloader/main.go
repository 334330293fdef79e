package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/airbusgeo/sentinel-tiler/common"
	appconfig "github.com/airbusgeo/sentinel-tiler/config"
	"github.com/airbusgeo/sentinel-tiler/downloader"
	"github.com/airbusgeo/sentinel-tiler/service/log"
	"go.uber.org/zap"
)

type config struct {
	ConfigPath string
	OutputDir  string
	LocalPath  string
	ArchiveURI string

	BBox       string
	CRS        string
	GeoJSON    string
	Resolution float64

	Start      string
	End        string
	Step       string
	Product    string
	Mosaicking string
	Naming     string
}

func newAppConfig() (*config, error) {
	config := config{}
	flag.StringVar(&config.ConfigPath, "config", appconfig.DefaultPath, "configuration file (sentinelhub credentials and defaults of the other flags)")
	flag.StringVar(&config.OutputDir, "output-dir", "", "directory of the raw images (default: download.output_dir)")
	flag.StringVar(&config.LocalPath, "local-path", "", "local path where images are already stored (optional). To configure a local path as a potential image Provider.")
	flag.StringVar(&config.ArchiveURI, "archive-uri", "", "storage uri (local, gs) where images are archived (optional). To configure an archive as a potential image Provider.")

	// Area of interest
	flag.StringVar(&config.BBox, "bbox", "", "bounding box minx,miny,maxx,maxy (default: aoi.bbox)")
	flag.StringVar(&config.CRS, "crs", "", "crs of the bounding box: EPSG:4326 or a UTM EPSG code (default: aoi.crs)")
	flag.StringVar(&config.GeoJSON, "geojson", "", "geojson file of the area of interest (default: aoi.geojson)")
	flag.Float64Var(&config.Resolution, "resolution", 0, "resolution in meters (default: resolution)")

	// Time series
	flag.StringVar(&config.Start, "start", "", "first day of the time series (default: download.start)")
	flag.StringVar(&config.End, "end", "", "last day of the time series (default: download.end)")
	flag.StringVar(&config.Step, "step", "", "month or <N>d (default: download.step)")
	flag.StringVar(&config.Product, "product", "", "true_color or ndvi (default: download.product)")
	flag.StringVar(&config.Mosaicking, "mosaicking", "", "leastCC, mostRecent or leastRecent (default: download.mosaicking)")
	flag.StringVar(&config.Naming, "naming", "", "date or index (default: download.naming)")
	flag.Parse()

	if config.ConfigPath == "" {
		return nil, fmt.Errorf("missing config flag")
	}
	return &config, nil
}

// apply overrides the configuration file with the flags
func (c *config) apply(cfg *appconfig.Config) error {
	if c.OutputDir != "" {
		cfg.Download.OutputDir = c.OutputDir
	}
	if c.LocalPath != "" {
		cfg.Download.LocalPath = c.LocalPath
	}
	if c.ArchiveURI != "" {
		cfg.Download.ArchiveURI = c.ArchiveURI
	}
	if c.BBox != "" {
		parts := strings.Split(c.BBox, ",")
		cfg.AOI.BBox = make([]float64, len(parts))
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return fmt.Errorf("bbox: %w", err)
			}
			cfg.AOI.BBox[i] = v
		}
		cfg.AOI.GeoJSON = ""
	}
	if c.CRS != "" {
		cfg.AOI.CRS = c.CRS
	}
	if c.GeoJSON != "" {
		cfg.AOI.GeoJSON = c.GeoJSON
	}
	if c.Resolution != 0 {
		cfg.Resolution = c.Resolution
	}
	if c.Start != "" {
		cfg.Download.Start = c.Start
	}
	if c.End != "" {
		cfg.Download.End = c.End
	}
	var err error
	if c.Step != "" {
		if cfg.Download.Step, err = common.ParseStep(c.Step); err != nil {
			return err
		}
	}
	if c.Product != "" {
		if cfg.Download.Product, err = common.ParseProduct(c.Product); err != nil {
			return err
		}
	}
	if c.Mosaicking != "" {
		if cfg.Download.Mosaicking, err = common.ParseMosaicking(c.Mosaicking); err != nil {
			return err
		}
	}
	if c.Naming != "" {
		if cfg.Download.Naming, err = downloader.ParseNaming(c.Naming); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	log.Init(false)
	ctx := context.Background()
	err := run(ctx)
	if err != nil {
		log.Fatal("error", zap.Error(err))
	}
	log.Sync()
}

func run(ctx context.Context) error {
	config, err := newAppConfig()
	if err != nil {
		return err
	}
	cfg, err := appconfig.Load(config.ConfigPath)
	if err != nil {
		return err
	}
	if cfg.Debug {
		log.Init(true)
	}
	if err := config.apply(cfg); err != nil {
		return fmt.Errorf("flags: %w", err)
	}
	aoi, intervals, err := cfg.VerifyDownload()
	if err != nil {
		return err
	}

	imageProviders, err := cfg.ImageProviders(ctx)
	if err != nil {
		return err
	}
	providerNames := make([]string, len(imageProviders))
	for i, ip := range imageProviders {
		providerNames[i] = ip.Name()
	}

	log.Logger(ctx).Debug("downloader starts downloading images from " + strings.Join(providerNames, ", ") + " to " + cfg.Download.OutputDir)
	log.Logger(ctx).Sugar().Infof("%d intervals (%s) from %s", len(intervals), cfg.Download.Step, aoi)
	summary, err := downloader.DownloadImages(ctx, imageProviders, aoi, intervals, cfg.Download.OutputDir, cfg.DownloadOptions())
	if summary != nil {
		log.Logger(ctx).Sugar().Infof("%d images downloaded, %d intervals without data", len(summary.Files()), summary.Count(common.StatusEMPTY))
	}
	return err
}
