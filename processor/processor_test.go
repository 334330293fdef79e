package processor_test

import (
	"context"
	"image"
	"image/color"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/airbusgeo/sentinel-tiler/common"
	"github.com/airbusgeo/sentinel-tiler/processor"
	"github.com/airbusgeo/sentinel-tiler/service/log"
	"github.com/disintegration/imaging"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// patternImage returns an opaque image whose pixels depend on their position
func patternImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x + y), A: 255})
		}
	}
	return img
}

func uniformImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

var _ = Describe("SplitTiles", func() {
	var (
		width, height int
		tiles         []processor.Tile
	)

	JustBeforeEach(func() {
		tiles = processor.SplitTiles(patternImage(width, height), 256, 256)
	})

	Context("512x512 image", func() {
		BeforeEach(func() {
			width, height = 512, 512
		})
		It("should return 4 tiles row by row", func() {
			Expect(tiles).To(HaveLen(4))
			positions := [][2]int{}
			for _, t := range tiles {
				positions = append(positions, [2]int{t.Row, t.Col})
				Expect(t.Image.Bounds()).To(Equal(image.Rect(0, 0, 256, 256)))
			}
			Expect(positions).To(Equal([][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}))
		})
		It("should crop the right region", func() {
			Expect(tiles[1].Image.NRGBAAt(10, 20)).To(Equal(color.NRGBA{R: 10, G: 20, B: 30, A: 255}))
			Expect(tiles[2].Image.NRGBAAt(10, 20)).To(Equal(color.NRGBA{R: 10, G: 20, B: 30, A: 255}))
		})
	})

	Context("300x300 image", func() {
		BeforeEach(func() {
			width, height = 300, 300
		})
		It("should drop the remainder", func() {
			Expect(tiles).To(HaveLen(1))
			Expect(tiles[0].Row).To(Equal(0))
			Expect(tiles[0].Col).To(Equal(0))
		})
	})

	Context("image smaller than a tile", func() {
		BeforeEach(func() {
			width, height = 255, 600
		})
		It("should return no tile", func() {
			Expect(tiles).To(BeEmpty())
		})
	})
})

var _ = Describe("Enhance", func() {
	var src *image.NRGBA

	BeforeEach(func() {
		src = patternImage(256, 256)
	})

	It("should be the identity with brightness 1 and gamma 1", func() {
		Expect(processor.Enhance(src, 1, 1).Pix).To(Equal(src.Pix))
	})

	It("should multiply then clamp the brightness", func() {
		dst := processor.Enhance(uniformImage(2, 2, color.NRGBA{R: 10, G: 100, B: 200, A: 255}), 2, 1)
		Expect(dst.NRGBAAt(1, 1)).To(Equal(color.NRGBA{R: 20, G: 200, B: 255, A: 255}))
	})

	It("should truncate the scaled values", func() {
		dst := processor.Enhance(uniformImage(1, 1, color.NRGBA{R: 3, G: 5, B: 7, A: 255}), 1.5, 1)
		Expect(dst.NRGBAAt(0, 0)).To(Equal(color.NRGBA{R: 4, G: 7, B: 10, A: 255}))
	})

	It("should apply the gamma curve", func() {
		// ((128/255)^(1/0.8))*255 = 107.74
		dst := processor.Enhance(uniformImage(1, 1, color.NRGBA{R: 0, G: 128, B: 255, A: 255}), 1, 0.8)
		Expect(dst.NRGBAAt(0, 0)).To(Equal(color.NRGBA{R: 0, G: 108, B: 255, A: 255}))
	})

	for _, g := range []float64{0.8, 1.25, 2.2} {
		gamma := g
		It("should be reverted by the inverse gamma", func() {
			dst := processor.Enhance(processor.Enhance(src, 1, gamma), 1, 1/gamma)
			for i := range src.Pix {
				diff := int(dst.Pix[i]) - int(src.Pix[i])
				Expect(diff).To(BeNumerically("~", 0, 2), "gamma %v, pixel %d", gamma, i)
			}
		})
	}
})

var _ = Describe("ProcessDirectory", func() {
	var (
		ctx                       context.Context
		root, inputDir, outputDir string
		opts                      processor.Options
		summary                   *processor.Summary
		logs                      *observer.ObservedLogs
		err                       error
	)

	BeforeEach(func() {
		ctx = context.Background()
		opts = processor.Options{TileWidth: 256, TileHeight: 256, Brightness: 1, Gamma: 1}
		root, err = ioutil.TempDir("", "tiler")
		Expect(err).NotTo(HaveOccurred())
		inputDir = filepath.Join(root, "raw_data")
		Expect(os.MkdirAll(inputDir, 0755)).To(Succeed())
		outputDir = filepath.Join(root, "processed_data_256")
		var core zapcore.Core
		core, logs = observer.New(zapcore.DebugLevel)
		log.SetLogger(zap.New(core))
	})

	AfterEach(func() {
		log.SetLogger(zap.NewNop())
		os.RemoveAll(root)
	})

	JustBeforeEach(func() {
		summary, err = processor.ProcessDirectory(ctx, inputDir, outputDir, opts)
	})

	Context("with valid, corrupt and ignored files", func() {
		BeforeEach(func() {
			Expect(imaging.Save(patternImage(512, 512), filepath.Join(inputDir, "2023-01-01.png"))).To(Succeed())
			Expect(imaging.Save(patternImage(300, 300), filepath.Join(inputDir, "2023-02-01.PNG"))).To(Succeed())
			Expect(ioutil.WriteFile(filepath.Join(inputDir, "2023-03-01.png"), []byte("not an image"), 0644)).To(Succeed())
			Expect(ioutil.WriteFile(filepath.Join(inputDir, "notes.txt"), []byte("notes"), 0644)).To(Succeed())
		})

		It("should not abort", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Files).To(HaveLen(3))
		})
		It("should report the corrupt file", func() {
			failed := summary.Failed()
			Expect(failed).To(HaveLen(1))
			Expect(failed[0].Source).To(Equal(filepath.Join(inputDir, "2023-03-01.png")))
			Expect(failed[0].Err).To(HaveOccurred())
		})
		It("should log the corrupt and the ignored files", func() {
			Expect(logs.FilterLevelExact(zapcore.WarnLevel).FilterMessageSnippet("2023-03-01.png").Len()).To(Equal(1))
			Expect(logs.FilterMessageSnippet("skipping notes.txt").Len()).To(Equal(1))
		})
		It("should write the tiles of the valid files", func() {
			Expect(summary.Tiles()).To(ConsistOf(
				filepath.Join(outputDir, "2023-01-01_tile_0_0.png"),
				filepath.Join(outputDir, "2023-01-01_tile_0_1.png"),
				filepath.Join(outputDir, "2023-01-01_tile_1_0.png"),
				filepath.Join(outputDir, "2023-01-01_tile_1_1.png"),
				filepath.Join(outputDir, "2023-02-01_tile_0_0.png"),
			))
			for _, f := range summary.Files {
				if f.Source != filepath.Join(inputDir, "2023-03-01.png") {
					Expect(f.Status).To(Equal(common.StatusDONE))
				}
			}
			for _, tile := range summary.Tiles() {
				Expect(tile).To(BeAnExistingFile())
			}
		})
		It("should write the cropped pixels unchanged", func() {
			img, err := imaging.Open(filepath.Join(outputDir, "2023-01-01_tile_1_1.png"))
			Expect(err).NotTo(HaveOccurred())
			tile := imaging.Clone(img)
			Expect(tile.Bounds()).To(Equal(image.Rect(0, 0, 256, 256)))
			Expect(tile.NRGBAAt(5, 7)).To(Equal(color.NRGBA{R: 5, G: 7, B: 12, A: 255}))
		})
	})

	Context("with a transparent image", func() {
		BeforeEach(func() {
			Expect(imaging.Save(uniformImage(256, 256, color.NRGBA{R: 50, G: 60, B: 70, A: 0}), filepath.Join(inputDir, "alpha.png"))).To(Succeed())
		})
		It("should drop the alpha channel", func() {
			Expect(err).NotTo(HaveOccurred())
			img, err := imaging.Open(filepath.Join(outputDir, "alpha_tile_0_0.png"))
			Expect(err).NotTo(HaveOccurred())
			Expect(imaging.Clone(img).NRGBAAt(0, 0)).To(Equal(color.NRGBA{R: 50, G: 60, B: 70, A: 255}))
		})
	})

	Context("with invalid options", func() {
		BeforeEach(func() {
			opts.Gamma = 0
		})
		It("should fail", func() {
			Expect(err).To(HaveOccurred())
		})
	})

	Context("with a missing input directory", func() {
		BeforeEach(func() {
			inputDir = filepath.Join(root, "missing")
		})
		It("should fail", func() {
			Expect(err).To(HaveOccurred())
		})
	})
})
