package provider

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/airbusgeo/sentinel-tiler/common"
)

// LocalImageProvider implements ImageProvider for images previously stored in a local directory.
// The image of an interval is <path>/<interval start>.<ext> (e.g. 2023-01-01.png)
type LocalImageProvider struct {
	path string
}

// Name implements ImageProvider
func (ip *LocalImageProvider) Name() string {
	return "FileSystem (" + ip.path + ")"
}

// NewLocalImageProvider creates a new ImageProvider from local storage
func NewLocalImageProvider(path string) *LocalImageProvider {
	return &LocalImageProvider{path: path}
}

// Fetch implements ImageProvider
func (ip *LocalImageProvider) Fetch(ctx context.Context, req common.FetchRequest) (*common.RasterImage, error) {
	src := path.Join(ip.path, req.Interval.Start.Format(common.DateLayout)+"."+string(common.ExtensionOf(req.MimeType)))
	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoData{Provider: ip.Name(), Interval: req.Interval}
		}
		return nil, fmt.Errorf("LocalImageProvider: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoData{Provider: ip.Name(), Interval: req.Interval}
	}
	return &common.RasterImage{
		AOI:      req.AOI,
		Interval: req.Interval,
		Width:    req.Width,
		Height:   req.Height,
		Bands:    req.Bands,
		MimeType: req.MimeType,
		Data:     data,
	}, nil
}
