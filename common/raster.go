package common

import (
	"fmt"

	"github.com/airbusgeo/sentinel-tiler/service"
)

// RasterImage is an encoded image returned by an imagery service, with its geospatial metadata
type RasterImage struct {
	AOI      AOI
	Interval Interval
	Width    int
	Height   int
	Bands    int
	MimeType string
	Data     []byte
}

// Extension returns the file extension matching the encoding of the image
func (r *RasterImage) Extension() service.Extension {
	return ExtensionOf(r.MimeType)
}

// Save writes the image to filePath in its own encoding (PNG for true color, TIFF for NDVI).
// Parent directories are created and an existing file is overwritten.
func (r *RasterImage) Save(filePath string) error {
	if len(r.Data) == 0 {
		return fmt.Errorf("RasterImage.Save: empty image")
	}
	if err := service.WriteFile(filePath, r.Data); err != nil {
		return fmt.Errorf("RasterImage.Save.%w", err)
	}
	return nil
}
