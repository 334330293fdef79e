package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/airbusgeo/sentinel-tiler/common"
	"github.com/airbusgeo/sentinel-tiler/service"
	"github.com/airbusgeo/sentinel-tiler/service/log"
	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// Extensions of the source images, compared case-insensitively
var Extensions = service.NewStringSet(
	string(service.ExtensionPNG),
	string(service.ExtensionJPG),
	string(service.ExtensionJPEG),
	string(service.ExtensionGTiff),
	string(service.ExtensionTIFF),
)

// Options of the tiling and the enhancement
type Options struct {
	TileWidth  int
	TileHeight int
	Brightness float64 // 1: no change
	Gamma      float64 // 1: no change
}

// DefaultOptions returns 256x256 tiles with brightness 2 and gamma 0.8
func DefaultOptions() Options {
	return Options{TileWidth: 256, TileHeight: 256, Brightness: 2.0, Gamma: 0.8}
}

// Validate returns an error if an option is out of range
func (o Options) Validate() error {
	if o.TileWidth <= 0 || o.TileHeight <= 0 {
		return fmt.Errorf("invalid tile size %dx%d", o.TileWidth, o.TileHeight)
	}
	if o.Brightness <= 0 {
		return fmt.Errorf("invalid brightness factor %v (must be > 0)", o.Brightness)
	}
	if o.Gamma <= 0 {
		return fmt.Errorf("invalid gamma %v (must be > 0)", o.Gamma)
	}
	return nil
}

// FileResult is the outcome of the processing of one source image
type FileResult struct {
	Source string
	Tiles  []string
	Status common.Status
	Err    error
}

// Summary of the processing of a directory
type Summary struct {
	Files []FileResult
}

// Tiles returns all the tiles written
func (s *Summary) Tiles() []string {
	var tiles []string
	for _, f := range s.Files {
		tiles = append(tiles, f.Tiles...)
	}
	return tiles
}

// Failed returns the results of the files that could not be processed
func (s *Summary) Failed() []FileResult {
	var failed []FileResult
	for _, f := range s.Files {
		if f.Status == common.StatusFAILED {
			failed = append(failed, f)
		}
	}
	return failed
}

// ProcessDirectory splits each image of inputDir into tiles, enhances them and writes them as PNG in outputDir.
// A file that cannot be processed is logged and reported in the summary, without stopping the processing of the others.
func ProcessDirectory(ctx context.Context, inputDir, outputDir string, opts Options) (*Summary, error) {
	if err := opts.Validate(); err != nil {
		return nil, service.MakeFatal(fmt.Errorf("ProcessDirectory: %w", err))
	}
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("ProcessDirectory.ReadDir: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0766); err != nil {
		return nil, fmt.Errorf("ProcessDirectory.MkdirAll: %w", err)
	}

	summary := &Summary{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !Extensions.Exists(string(service.GetExt(entry.Name()))) {
			log.Logger(ctx).Sugar().Debugf("skipping %s (expecting %s)", entry.Name(), strings.Join(Extensions.Slice(), ", "))
			continue
		}
		src := filepath.Join(inputDir, entry.Name())
		res := ProcessFile(ctx, src, outputDir, opts)
		if res.Err != nil {
			log.Logger(ctx).Warn("error processing "+src, zap.Error(res.Err))
		} else {
			log.Logger(ctx).Sugar().Debugf("%s: %d tiles", src, len(res.Tiles))
		}
		summary.Files = append(summary.Files, res)
	}
	return summary, nil
}

// ProcessFile splits the image into tiles, enhances and writes them in outputDir
func ProcessFile(ctx context.Context, src, outputDir string, opts Options) FileResult {
	res := FileResult{Source: src, Status: common.StatusFAILED}
	img, err := imaging.Open(src)
	if err != nil {
		res.Err = fmt.Errorf("ProcessFile.Open: %w", err)
		return res
	}

	name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	for _, tile := range SplitTiles(RGB(img), opts.TileWidth, opts.TileHeight) {
		tilePath := filepath.Join(outputDir, fmt.Sprintf("%s_tile_%d_%d.png", name, tile.Row, tile.Col))
		if err := writePNG(tilePath, Enhance(tile.Image, opts.Brightness, opts.Gamma)); err != nil {
			res.Err = fmt.Errorf("ProcessFile.%w", err)
			return res
		}
		res.Tiles = append(res.Tiles, tilePath)
	}
	res.Status = common.StatusDONE
	if len(res.Tiles) == 0 {
		res.Status = common.StatusEMPTY
	}
	return res
}

// RGB converts the image to 8-bit RGB. Alpha is dropped: transparent pixels keep their color.
func RGB(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

// Tile is a crop of a source image at a position of the grid
type Tile struct {
	Row, Col int
	Image    *image.NRGBA
}

// SplitTiles crops the image into a grid of width x height tiles, row by row.
// The remainder at the right and at the bottom is dropped.
func SplitTiles(img image.Image, width, height int) []Tile {
	b := img.Bounds()
	rows, cols := b.Dy()/height, b.Dx()/width
	tiles := make([]Tile, 0, rows*cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			pt := b.Min.Add(image.Pt(col*width, row*height))
			tiles = append(tiles, Tile{
				Row:   row,
				Col:   col,
				Image: imaging.Crop(img, image.Rectangle{Min: pt, Max: pt.Add(image.Pt(width, height))}),
			})
		}
	}
	return tiles
}

// Enhance multiplies the channels by the brightness factor (truncated to [0, 255])
// and applies the gamma correction ((c/255)^(1/gamma))*255 if gamma != 1.
func Enhance(img image.Image, brightness, gamma float64) *image.NRGBA {
	var dst *image.NRGBA
	if brightness == 1 {
		dst = imaging.Clone(img)
	} else {
		lut := brightnessLUT(brightness)
		dst = imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
			return color.NRGBA{R: lut[c.R], G: lut[c.G], B: lut[c.B], A: c.A}
		})
	}
	if gamma != 1 {
		dst = imaging.AdjustGamma(dst, gamma)
	}
	return dst
}

func brightnessLUT(factor float64) [256]uint8 {
	var lut [256]uint8
	for i := range lut {
		v := float64(i) * factor
		switch {
		case v >= 255:
			lut[i] = 255
		case v > 0:
			lut[i] = uint8(v)
		}
	}
	return lut
}

func writePNG(filePath string, img image.Image) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return fmt.Errorf("writePNG.Encode: %w", err)
	}
	if err := service.WriteFile(filePath, buf.Bytes()); err != nil {
		return fmt.Errorf("writePNG.%w", err)
	}
	return nil
}
