package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	appconfig "github.com/airbusgeo/sentinel-tiler/config"
	"github.com/airbusgeo/sentinel-tiler/processor"
	"github.com/airbusgeo/sentinel-tiler/service"
	"github.com/airbusgeo/sentinel-tiler/service/log"
	"go.uber.org/zap"
)

type config struct {
	InputDir   string
	OutputDir  string
	StorageURI string
	Zip        bool
	Debug      bool

	Options processor.Options
}

func newAppConfig() (*config, error) {
	config := config{}
	defaults := processor.DefaultOptions()
	flag.StringVar(&config.InputDir, "input-dir", appconfig.DefaultRawDir, "directory of the raw images (png, jpg, jpeg, tif, tiff)")
	flag.StringVar(&config.OutputDir, "output-dir", appconfig.DefaultProcessedDir, "directory of the tiles")
	flag.StringVar(&config.StorageURI, "storage-uri", "", "storage uri (currently supported: local, gs). To export the tiles (optional).")
	flag.BoolVar(&config.Zip, "zip", false, "export the tiles as a single zip archive")
	flag.BoolVar(&config.Debug, "debug", false, "debug logs")

	// Tiling & enhancement
	flag.IntVar(&config.Options.TileWidth, "tile-width", defaults.TileWidth, "width of the tiles in pixels")
	flag.IntVar(&config.Options.TileHeight, "tile-height", defaults.TileHeight, "height of the tiles in pixels")
	flag.Float64Var(&config.Options.Brightness, "brightness", defaults.Brightness, "brightness factor (1: no change)")
	flag.Float64Var(&config.Options.Gamma, "gamma", defaults.Gamma, "gamma correction (1: no change)")
	flag.Parse()

	if config.InputDir == "" {
		return nil, fmt.Errorf("missing input-dir config flag")
	}
	if config.OutputDir == "" {
		return nil, fmt.Errorf("missing output-dir config flag")
	}
	if err := config.Options.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
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
	if config.Debug {
		log.Init(true)
	}

	// The storage is checked before processing
	var storageService service.Storage
	if config.StorageURI != "" {
		if storageService, err = service.NewStorageStrategy(ctx, config.StorageURI); err != nil {
			return fmt.Errorf("storage %s: %w", config.StorageURI, err)
		}
	}

	summary, err := processor.ProcessDirectory(ctx, config.InputDir, config.OutputDir, config.Options)
	if err != nil {
		return err
	}
	for _, f := range summary.Failed() {
		log.Logger(ctx).Sugar().Infof("failed: %s (%v)", f.Source, f.Err)
	}
	tiles := summary.Tiles()
	log.Logger(ctx).Sugar().Infof("processing completed: %d tiles saved in %s", len(tiles), config.OutputDir)

	if storageService == nil || len(tiles) == 0 {
		return nil
	}
	files := make([]string, len(tiles))
	for i, t := range tiles {
		files[i] = filepath.Base(t)
	}
	uris, err := storageService.Export(ctx, config.OutputDir, filepath.Base(filepath.Clean(config.OutputDir)), files, config.Zip)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	log.Logger(ctx).Sugar().Infof("%d files exported to %s", len(uris), config.StorageURI)
	return nil
}
