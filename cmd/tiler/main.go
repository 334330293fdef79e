package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/airbusgeo/sentinel-tiler/common"
	"github.com/airbusgeo/sentinel-tiler/config"
	"github.com/airbusgeo/sentinel-tiler/downloader"
	"github.com/airbusgeo/sentinel-tiler/processor"
	"github.com/airbusgeo/sentinel-tiler/service"
	"github.com/airbusgeo/sentinel-tiler/service/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// downloadDirUnset is the value of --download given without a path
const downloadDirUnset = "\x00"

// plan is the sequence of steps requested on the command line
type plan struct {
	download    bool
	downloadDir string // empty: download.output_dir of the config
	process     bool
	inputDir    string // empty: the download directory when downloading, process.input_dir of the config otherwise
	outputDir   string // empty: process.output_dir of the config
}

// newPlan resolves the steps from the flags and the positional arguments.
// "-d path" is parsed as "-d" followed by the argument "path", so a remaining argument is taken
// as the download path when the process flag does not claim it.
func newPlan(download bool, downloadDir string, process bool, args []string) (plan, error) {
	p := plan{download: download, process: process}
	if downloadDir != downloadDirUnset {
		p.downloadDir = downloadDir
	}
	if !download && !process {
		if len(args) != 0 {
			return plan{}, fmt.Errorf("unexpected arguments %v", args)
		}
		return plan{download: true, process: true}, nil
	}
	if download && p.downloadDir == "" && len(args) > 0 && (!process || len(args) == 3) {
		p.downloadDir, args = args[0], args[1:]
	}
	if !process {
		if len(args) != 0 {
			return plan{}, fmt.Errorf("unexpected arguments %v", args)
		}
		return p, nil
	}
	switch len(args) {
	case 2:
		p.outputDir = args[1]
		fallthrough
	case 1:
		p.inputDir = args[0]
	case 0:
	default:
		return plan{}, fmt.Errorf("--process expects at most 2 directories (raw, processed), got %v", args)
	}
	return p, nil
}

func newRootCmd() *cobra.Command {
	var (
		configPath  string
		downloadDir string
		process     bool
	)

	cmd := &cobra.Command{
		Use:   "tiler",
		Short: "Download Sentinel-2 images of an area and split them into enhanced tiles",
		Long: `Download one Sentinel-2 image of the area of interest per time interval, then split
the images into fixed-size tiles with brightness and gamma enhancement.
Without --download or --process, both steps are run with the directories of the config.`,
		Example: `  tiler -c config.yaml
  tiler --download=data/2023
  tiler -d
  tiler -p raw_data/ processed_data_256/`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPlan(cmd.Flags().Changed("download"), downloadDir, process, args)
			if err != nil {
				return err
			}
			return run(cmd.Context(), configPath, p)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to the configuration file")
	cmd.Flags().StringVarP(&downloadDir, "download", "d", "", "download the images only, to the given directory (default: download.output_dir)")
	cmd.Flags().Lookup("download").NoOptDefVal = downloadDirUnset
	cmd.Flags().BoolVarP(&process, "process", "p", false, "process the images only: [raw_dir] [processed_dir] (default: process.input_dir and process.output_dir)")
	return cmd
}

func main() {
	log.Init(false)
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.Fatal("error", zap.Error(err))
	}
	log.Sync()
}

func run(ctx context.Context, configPath string, p plan) error {
	// Credentials are checked before any network call
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Debug {
		log.Init(true)
	}

	downloadDir, inputDir, outputDir := p.directories(cfg)
	if p.download {
		if err := download(ctx, cfg, downloadDir); err != nil {
			return err
		}
	}
	if p.process {
		if err := processAndExport(ctx, cfg, inputDir, outputDir); err != nil {
			return err
		}
	}
	return nil
}

// directories returns the directories of the steps, falling back to the config.
// When both steps run, the images are processed from the directory they were downloaded to.
func (p plan) directories(cfg *config.Config) (downloadDir, inputDir, outputDir string) {
	downloadDir, inputDir, outputDir = cfg.Download.OutputDir, cfg.Process.InputDir, cfg.Process.OutputDir
	if p.downloadDir != "" {
		downloadDir = p.downloadDir
	}
	if p.download {
		inputDir = downloadDir
	}
	if p.inputDir != "" {
		inputDir = p.inputDir
	}
	if p.outputDir != "" {
		outputDir = p.outputDir
	}
	return downloadDir, inputDir, outputDir
}

func download(ctx context.Context, cfg *config.Config, outputDir string) error {
	aoi, intervals, err := cfg.VerifyDownload()
	if err != nil {
		return err
	}

	log.Logger(ctx).Sugar().Infof("downloading %d %s images of %s to %s", len(intervals), cfg.Download.Product, aoi, outputDir)
	imageProviders, err := cfg.ImageProviders(ctx)
	if err != nil {
		return err
	}
	summary, err := downloader.DownloadImages(ctx, imageProviders, aoi, intervals, outputDir, cfg.DownloadOptions())
	if summary != nil {
		log.Logger(ctx).Sugar().Infof("%d images downloaded, %d intervals without data", len(summary.Files()), summary.Count(common.StatusEMPTY))
	}
	if err != nil {
		if service.Temporary(err) {
			log.Logger(ctx).Warn("temporary failure of the imagery service, the download can be rerun")
		}
		return err
	}
	log.Logger(ctx).Sugar().Infof("all images downloaded and saved to %s", outputDir)
	return nil
}

func processAndExport(ctx context.Context, cfg *config.Config, inputDir, outputDir string) error {
	log.Logger(ctx).Sugar().Infof("processing %s to %s", inputDir, outputDir)
	summary, err := processor.ProcessDirectory(ctx, inputDir, outputDir, cfg.ProcessOptions())
	if err != nil {
		return err
	}
	tiles := summary.Tiles()
	log.Logger(ctx).Sugar().Infof("processing completed: %d files, %d failed, %d tiles saved in %s",
		len(summary.Files), len(summary.Failed()), len(tiles), outputDir)

	if cfg.Export.StorageURI == "" || len(tiles) == 0 {
		return nil
	}
	storage, err := service.NewStorageStrategy(ctx, cfg.Export.StorageURI)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	files := make([]string, len(tiles))
	for i, t := range tiles {
		files[i] = filepath.Base(t)
	}
	uris, err := storage.Export(ctx, outputDir, filepath.Base(filepath.Clean(outputDir)), files, cfg.Export.Zip)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	log.Logger(ctx).Sugar().Infof("%d files exported to %s", len(uris), cfg.Export.StorageURI)
	return nil
}
