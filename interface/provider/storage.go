package provider

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/airbusgeo/sentinel-tiler/common"
	"github.com/airbusgeo/sentinel-tiler/service"
	"github.com/google/uuid"
)

// StorageImageProvider implements ImageProvider for images archived in a storage (local or gs://).
// The image of an interval is <uri>/<interval start>.<ext>
type StorageImageProvider struct {
	storage *service.StorageStrategy
}

// NewStorageImageProvider creates a new ImageProvider from an archive of images
func NewStorageImageProvider(ctx context.Context, storageURI string) (*StorageImageProvider, error) {
	ss, err := service.NewStorageStrategy(ctx, storageURI)
	if err != nil {
		return nil, fmt.Errorf("NewStorageImageProvider.%w", err)
	}
	return &StorageImageProvider{storage: ss}, nil
}

// Name implements ImageProvider
func (ip *StorageImageProvider) Name() string {
	return "Storage (" + ip.storage.URI() + ")"
}

// Fetch implements ImageProvider
func (ip *StorageImageProvider) Fetch(ctx context.Context, req common.FetchRequest) (*common.RasterImage, error) {
	name := req.Interval.Start.Format(common.DateLayout) + "." + string(common.ExtensionOf(req.MimeType))
	tmp := filepath.Join(os.TempDir(), uuid.New().String()+"_"+name)
	defer os.Remove(tmp)

	if err := ip.storage.Import(ctx, name, tmp); err != nil {
		var notFound service.ErrFileNotFound
		if errors.As(err, &notFound) {
			return nil, ErrNoData{Provider: ip.Name(), Interval: req.Interval}
		}
		return nil, service.MakeTemporary(fmt.Errorf("StorageImageProvider.%w", err))
	}
	data, err := os.ReadFile(tmp)
	if err != nil {
		return nil, fmt.Errorf("StorageImageProvider.ReadFile: %w", err)
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
