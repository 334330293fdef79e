package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/airbusgeo/sentinel-tiler/common"
	"github.com/airbusgeo/sentinel-tiler/downloader"
	"github.com/airbusgeo/sentinel-tiler/service"
)

const kaishaConfig = `
sentinelhub:
  client_id: my-id
  client_secret: my-secret
aoi:
  bbox: [120.556068, 32.003272, 120.692711, 32.078502]
download:
  start: 2023-01-01
  end: "2023-12-31"
`

func TestParseDefaults(t *testing.T) {
	c, err := Parse([]byte(kaishaConfig))
	if err != nil {
		t.Fatal(err)
	}
	if c.SentinelHub.ClientID != "my-id" || c.SentinelHub.ClientSecret != "my-secret" {
		t.Errorf("credentials: %+v", c.SentinelHub)
	}
	if c.Resolution != 10 || c.Download.Step != common.Monthly() || c.Download.Product != common.TrueColor ||
		c.Download.Mosaicking != common.MosaickingLeastCC || c.Download.OutputDir != DefaultRawDir || c.Download.Naming != downloader.NamingDate {
		t.Errorf("download defaults: %+v", c.Download)
	}
	if c.Process.InputDir != DefaultRawDir || c.Process.OutputDir != DefaultProcessedDir ||
		c.Process.TileWidth != 256 || c.Process.TileHeight != 256 || c.Process.Brightness != 2 || c.Process.Gamma != 0.8 {
		t.Errorf("process defaults: %+v", c.Process)
	}
	aoi, intervals, err := c.VerifyDownload()
	if err != nil {
		t.Fatal(err)
	}
	if len(intervals) != 12 {
		t.Errorf("expecting 12 intervals, got %d", len(intervals))
	}
	if aoi.CRS != common.WGS84 {
		t.Errorf("crs: %s", aoi.CRS)
	}
}

func TestParseOverrides(t *testing.T) {
	c, err := Parse([]byte(`
sentinelhub:
  client_id: my-id
  client_secret: my-secret
aoi:
  bbox: [500000, 4000000, 502560, 4001280]
  crs: EPSG:32633
resolution: 20
download:
  start: 2023-01-01
  end: 2023-01-31
  step: 10d
  product: ndvi
  mosaicking: mostRecent
  naming: index
process:
  tile_width: 128
  tile_height: 64
  brightness: 1
  gamma: 1
export:
  storage_uri: gs://bucket/tiles
  zip: true
debug: true
`))
	if err != nil {
		t.Fatal(err)
	}
	if c.Download.Step != common.EveryDays(10) || c.Download.Product != common.NDVI ||
		c.Download.Mosaicking != common.MosaickingMostRecent || c.Download.Naming != downloader.NamingIndex {
		t.Errorf("download: %+v", c.Download)
	}
	opts := c.ProcessOptions()
	if opts.TileWidth != 128 || opts.TileHeight != 64 || opts.Brightness != 1 || opts.Gamma != 1 {
		t.Errorf("process: %+v", opts)
	}
	if c.DownloadOptions().Resolution != 20 {
		t.Errorf("resolution: %v", c.DownloadOptions().Resolution)
	}
	if c.Export.StorageURI != "gs://bucket/tiles" || !c.Export.Zip || !c.Debug {
		t.Errorf("export: %+v", c.Export)
	}
}

func TestInvalidConfig(t *testing.T) {
	tests := map[string]string{
		"missing secret": "sentinelhub:\n  client_id: my-id\n",
		"empty id":       "sentinelhub:\n  client_id: ''\n  client_secret: s\n",
		"no sentinelhub": "resolution: 10\n",
		"bad step":       kaishaConfig + "  step: 0d\n",
		"bad product":    kaishaConfig + "  product: swir\n",
		"bad gamma":      kaishaConfig + "process:\n  gamma: 0\n",
		"not yaml":       "sentinelhub: [",
	}
	for name, yml := range tests {
		_, err := Parse([]byte(yml))
		if err == nil {
			t.Errorf("%s: expecting error", name)
			continue
		}
		if !service.Fatal(err) || !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expecting fatal ErrInvalidConfig, got %v", name, err)
		}
	}
}

func TestVerifyDownload(t *testing.T) {
	credentials := "sentinelhub:\n  client_id: id\n  client_secret: secret\n"
	tests := map[string]string{
		"no aoi":         credentials + "download:\n  start: 2023-01-01\n  end: 2023-02-01\n",
		"bad bbox":       credentials + "aoi:\n  bbox: [1, 2, 3]\ndownload:\n  start: 2023-01-01\n  end: 2023-02-01\n",
		"inverted bbox":  credentials + "aoi:\n  bbox: [3, 2, 1, 4]\ndownload:\n  start: 2023-01-01\n  end: 2023-02-01\n",
		"no dates":       credentials + "aoi:\n  bbox: [1, 2, 3, 4]\n",
		"inverted dates": credentials + "aoi:\n  bbox: [1, 2, 3, 4]\ndownload:\n  start: 2023-02-01\n  end: 2023-01-01\n",
		"bad resolution": credentials + "aoi:\n  bbox: [1, 2, 3, 4]\nresolution: -1\ndownload:\n  start: 2023-01-01\n  end: 2023-02-01\n",
		"bad crs":        credentials + "aoi:\n  bbox: [1, 2, 3, 4]\n  crs: EPSG:3857\ndownload:\n  start: 2023-01-01\n  end: 2023-02-01\n",
	}
	for name, yml := range tests {
		c, err := Parse([]byte(yml))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if _, _, err := c.VerifyDownload(); !service.Fatal(err) || !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expecting fatal ErrInvalidConfig, got %v", name, err)
		}
	}
}

func TestGeoJSONArea(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "aoi.geojson")
	g := `{"type":"Polygon","coordinates":[[[120.55,32.00],[120.69,32.00],[120.69,32.07],[120.55,32.07],[120.55,32.00]]]}`
	if err := os.WriteFile(file, []byte(g), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Parse([]byte("sentinelhub:\n  client_id: id\n  client_secret: secret\naoi:\n  geojson: " + file + "\n"))
	if err != nil {
		t.Fatal(err)
	}
	aoi, err := c.AreaOfInterest()
	if err != nil {
		t.Fatal(err)
	}
	if aoi.BBox() != [4]float64{120.55, 32.00, 120.69, 32.07} {
		t.Errorf("bbox: %v", aoi.BBox())
	}
}

func TestLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(file, []byte(kaishaConfig), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(file); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !service.Fatal(err) {
		t.Errorf("expecting fatal error, got %v", err)
	}
}

func TestImageProviders(t *testing.T) {
	c, err := Parse([]byte(kaishaConfig))
	if err != nil {
		t.Fatal(err)
	}
	providers, err := c.ImageProviders(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(providers) != 1 || providers[0].Name() != "SentinelHub" {
		t.Errorf("expecting SentinelHub only, got %d providers", len(providers))
	}

	c.Download.LocalPath = t.TempDir()
	c.Download.ArchiveURI = t.TempDir()
	c.SentinelHub.BaseURL = "http://localhost:8080"
	if providers, err = c.ImageProviders(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(providers) != 3 || providers[2].Name() != "SentinelHub" {
		t.Errorf("expecting local, archive and SentinelHub providers, got %d", len(providers))
	}
}
