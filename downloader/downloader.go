package downloader

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/airbusgeo/sentinel-tiler/common"
	"github.com/airbusgeo/sentinel-tiler/interface/provider"
	"github.com/airbusgeo/sentinel-tiler/service"
	"github.com/airbusgeo/sentinel-tiler/service/log"
	"go.uber.org/zap"
)

//go:generate go tool enumer -type Naming -trimprefix Naming -transform lower -text

// Naming is the naming policy of the raw images
type Naming int

const (
	NamingDate  Naming = iota // <interval start>.<ext>, e.g. 2023-01-01.png
	NamingIndex               // <interval index>.<ext>, e.g. 0.tiff
)

// ParseNaming returns the naming policy from the user input (default: date)
func ParseNaming(s string) (Naming, error) {
	if s = strings.TrimSpace(s); s == "" {
		return NamingDate, nil
	}
	n, err := NamingString(s)
	if err != nil {
		return 0, fmt.Errorf("ParseNaming: %w (expecting %s)", err, strings.Join(NamingStrings(), " or "))
	}
	return n, nil
}

// Options of the download of a time series
type Options struct {
	Resolution float64 // meters per pixel
	Product    common.Product
	Mosaicking common.Mosaicking
	Naming     Naming
}

// Result of the download of one interval
type Result struct {
	Interval common.Interval
	File     string
	Status   common.Status
	Err      error
}

// Summary of the download of a time series
type Summary struct {
	Results []Result
}

// Count returns the number of intervals having the status
func (s *Summary) Count(status common.Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// Files returns the files written
func (s *Summary) Files() []string {
	var files []string
	for _, r := range s.Results {
		if r.Status == common.StatusDONE {
			files = append(files, r.File)
		}
	}
	return files
}

// FileName returns the name of the raw image of the i-th interval
func FileName(naming Naming, i int, interval common.Interval, ext service.Extension) string {
	name := interval.Start.Format(common.DateLayout)
	if naming == NamingIndex {
		name = strconv.Itoa(i)
	}
	return name + "." + string(ext)
}

// DownloadImages fetches one image of the AOI per interval and saves it in outputDir.
// Intervals without data are skipped. Any other error stops the download and is returned
// with the summary of the intervals already processed.
func DownloadImages(ctx context.Context, imageProviders []provider.ImageProvider, aoi common.AOI, intervals []common.Interval, outputDir string, opts Options) (*Summary, error) {
	if len(imageProviders) == 0 {
		return nil, service.MakeFatal(fmt.Errorf("DownloadImages: no image providers defined"))
	}
	summary := &Summary{}
	for i, interval := range intervals {
		ctx := log.With(ctx, "interval", interval.String())
		req, err := common.NewFetchRequest(aoi, opts.Resolution, opts.Product, opts.Mosaicking, interval)
		if err != nil {
			return summary, service.MakeFatal(fmt.Errorf("DownloadImages.%w", err))
		}

		result := Result{Interval: interval, Status: common.StatusDONE}
		img, err := FetchImage(ctx, imageProviders, req)
		switch {
		case provider.IsNoData(err):
			log.Logger(ctx).Sugar().Warnf("no image for %s: skipped", interval)
			result.Status, result.Err = common.StatusEMPTY, err
		case err != nil:
			result.Status, result.Err = common.StatusFAILED, err
			summary.Results = append(summary.Results, result)
			return summary, fmt.Errorf("DownloadImages[%s].%w", interval, err)
		default:
			result.File = filepath.Join(outputDir, FileName(opts.Naming, i, interval, img.Extension()))
			if err := img.Save(result.File); err != nil {
				result.Status, result.Err = common.StatusFAILED, err
				summary.Results = append(summary.Results, result)
				return summary, fmt.Errorf("DownloadImages[%s].%w", interval, err)
			}
			log.Logger(ctx).Sugar().Infof("image saved to %s", result.File)
		}
		summary.Results = append(summary.Results, result)
	}
	return summary, nil
}

// FetchImage fetches the image with the first successful imageProvider.
// It returns an ErrNoData if no provider has data for the interval.
func FetchImage(ctx context.Context, imageProviders []provider.ImageProvider, req common.FetchRequest) (*common.RasterImage, error) {
	if len(imageProviders) == 0 {
		return nil, fmt.Errorf("FetchImage: no image providers defined")
	}
	var err, noData error
	for _, imageProvider := range imageProviders {
		img, e := imageProvider.Fetch(ctx, req)
		if e == nil {
			return img, nil
		}
		if provider.IsNoData(e) {
			log.Logger(ctx).Debug("no data", zap.String("provider", imageProvider.Name()))
			noData = e
			continue
		}
		log.Logger(ctx).Sugar().Warnf("%s: %v", imageProvider.Name(), e)
		err = service.MergeErrors(true, err, e)
	}
	if err != nil {
		return nil, fmt.Errorf("FetchImage.%w", err)
	}
	return nil, noData
}
