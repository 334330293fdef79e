package common

import (
	"fmt"
	"strings"

	"github.com/airbusgeo/sentinel-tiler/service"
)

//go:generate go tool enumer -type Product -transform snake -text

// Product is a kind of image computed by the imagery service from the raw sensor bands
type Product int

const (
	TrueColor Product = iota // B04, B03, B02 as an RGB PNG
	NDVI                     // (B08-B04)/(B08+B04) as a single-band FLOAT32 TIFF
)

const evalscriptTrueColor = `//VERSION=3

function setup() {
    return {
        input: [{
            bands: ["B02", "B03", "B04"]
        }],
        output: {
            bands: 3
        }
    };
}

function evaluatePixel(sample) {
    return [sample.B04, sample.B03, sample.B02];
}
`

const evalscriptNDVI = `//VERSION=3

function setup() {
    return {
        input: [{
            bands: ["B04", "B08"]
        }],
        output: {
            bands: 1,
            sampleType: "FLOAT32"
        }
    };
}

function evaluatePixel(sample) {
    return [(sample.B08 - sample.B04) / (sample.B08 + sample.B04)];
}
`

// MIME types of the responses
const (
	MimePNG  = "image/png"
	MimeTIFF = "image/tiff"
)

// ParseProduct returns the product from the user input (default: true_color)
func ParseProduct(s string) (Product, error) {
	if s = strings.TrimSpace(s); s == "" {
		return TrueColor, nil
	}
	p, err := ProductString(s)
	if err != nil {
		return 0, fmt.Errorf("ParseProduct: %w (expecting %s)", err, strings.Join(ProductStrings(), " or "))
	}
	return p, nil
}

// Evalscript returns the band-selection script of the product
func (p Product) Evalscript() string {
	if p == NDVI {
		return evalscriptNDVI
	}
	return evalscriptTrueColor
}

// Bands returns the number of bands of the product
func (p Product) Bands() int {
	if p == NDVI {
		return 1
	}
	return 3
}

// MimeType returns the encoding of the product
func (p Product) MimeType() string {
	if p == NDVI {
		return MimeTIFF
	}
	return MimePNG
}

// Extension returns the file extension of the product
func (p Product) Extension() service.Extension {
	return ExtensionOf(p.MimeType())
}

// ExtensionOf returns the file extension of a mime type
func ExtensionOf(mimeType string) service.Extension {
	if mimeType == MimeTIFF {
		return service.ExtensionTIFF
	}
	return service.ExtensionPNG
}

//go:generate go tool enumer -type Mosaicking -trimprefix Mosaicking -transform title-lower -text

// Mosaicking is the policy used to combine the acquisitions of an interval into one image
type Mosaicking int

const (
	MosaickingLeastCC Mosaicking = iota
	MosaickingMostRecent
	MosaickingLeastRecent
)

// ParseMosaicking returns the mosaicking from the user input (default: leastCC)
func ParseMosaicking(s string) (Mosaicking, error) {
	if s = strings.TrimSpace(s); s == "" {
		return MosaickingLeastCC, nil
	}
	m, err := MosaickingString(s)
	if err != nil {
		return 0, fmt.Errorf("ParseMosaicking: %w (expecting %s)", err, strings.Join(MosaickingStrings(), ", "))
	}
	return m, nil
}

// CollectionSentinel2L1C is the data collection of the requests
const CollectionSentinel2L1C = "sentinel-2-l1c"

// FetchRequest is the request of one image to an imagery service
type FetchRequest struct {
	AOI        AOI
	Width      int
	Height     int
	Collection string
	Evalscript string
	Bands      int
	MimeType   string
	Mosaicking Mosaicking
	Interval   Interval
}

// NewFetchRequest creates the request of the product over the AOI at the resolution (meters) for the interval
func NewFetchRequest(aoi AOI, resolution float64, product Product, mosaicking Mosaicking, interval Interval) (FetchRequest, error) {
	width, height, err := aoi.Size(resolution)
	if err != nil {
		return FetchRequest{}, fmt.Errorf("NewFetchRequest.%w", err)
	}
	return FetchRequest{
		AOI:        aoi,
		Width:      width,
		Height:     height,
		Collection: CollectionSentinel2L1C,
		Evalscript: product.Evalscript(),
		Bands:      product.Bands(),
		MimeType:   product.MimeType(),
		Mosaicking: mosaicking,
		Interval:   interval,
	}, nil
}
