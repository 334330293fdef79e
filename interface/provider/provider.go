package provider

import (
	"context"

	"github.com/airbusgeo/sentinel-tiler/common"
)

// ImageProvider is the interface of an imagery service
type ImageProvider interface {
	// Fetch requests one image covering req.AOI for req.Interval.
	// Raise ErrNoData if the service has no acquisition for the request
	Fetch(ctx context.Context, req common.FetchRequest) (*common.RasterImage, error)

	// Name of the provider
	Name() string
}
