package common

import (
	"strings"
	"testing"

	"github.com/go-spatial/geom"
)

func TestAOISizeUTM(t *testing.T) {
	aoi, err := NewAOI([4]float64{300000, 3540000, 302560, 3541280}, "EPSG:32651")
	if err != nil {
		t.Fatal(err)
	}
	w, h, err := aoi.Size(10)
	if err != nil {
		t.Fatal(err)
	}
	if w != 256 || h != 128 {
		t.Errorf("expected 256x128, got %dx%d", w, h)
	}
}

func TestAOISizeWGS84(t *testing.T) {
	// Centered on the central meridian of zone 31, on the equator
	aoi, err := NewAOI([4]float64{2.9, -0.05, 3.1, 0.05}, WGS84)
	if err != nil {
		t.Fatal(err)
	}
	w, h, err := aoi.Size(10)
	if err != nil {
		t.Fatal(err)
	}
	if w < 2224 || w > 2228 || h < 1103 || h > 1107 {
		t.Errorf("expected ~2226x1105, got %dx%d", w, h)
	}

	// Kaisha island
	aoi, err = NewAOI([4]float64{120.556068, 32.003272, 120.692711, 32.078502}, "epsg:4326")
	if err != nil {
		t.Fatal(err)
	}
	w, h, err = aoi.Size(10)
	if err != nil {
		t.Fatal(err)
	}
	if w < 1280 || w > 1340 || h < 780 || h > 840 {
		t.Errorf("unexpected size %dx%d", w, h)
	}
	if _, _, err := aoi.Size(0); err == nil {
		t.Error("expected an error with a null resolution")
	}
	if _, _, err := aoi.Size(100000); err == nil {
		t.Error("expected an error with an AOI smaller than a pixel")
	}
}

func TestUTMCRS(t *testing.T) {
	cases := []struct {
		lon, lat float64
		crs      CRS
	}{
		{120.62, 32.04, "EPSG:32651"},
		{3, 0, "EPSG:32631"},
		{-70.6, -33.4, "EPSG:32719"},
		{5, 60, "EPSG:32632"},
		{180, 10, "EPSG:32660"},
	}
	for _, c := range cases {
		if crs := UTMCRS(c.lon, c.lat); crs != c.crs {
			t.Errorf("UTMCRS(%v, %v) = %s, want %s", c.lon, c.lat, crs, c.crs)
		}
	}
}

func TestCRSProj4(t *testing.T) {
	cases := map[CRS]string{
		WGS84:        "+proj=longlat +ellps=WGS84 +datum=WGS84 +no_defs",
		"EPSG:32651": "+proj=utm +zone=51 +datum=WGS84 +units=m +no_defs",
		"epsg:32719": "+proj=utm +zone=19 +south +datum=WGS84 +units=m +no_defs",
		"EPSG:3857":  "",
	}
	for crs, expected := range cases {
		if p := crs.Proj4(); p != expected {
			t.Errorf("%s.Proj4() = %q, want %q", crs, p, expected)
		}
	}
}

func TestNewAOI(t *testing.T) {
	if _, err := NewAOI([4]float64{1, 1, 0, 2}, WGS84); err == nil {
		t.Error("expected an error on inverted bbox")
	}
	if _, err := NewAOI([4]float64{0, 0, 1, 1}, "EPSG:3857"); err == nil {
		t.Error("expected an error on unsupported crs")
	}
	aoi, err := NewAOI([4]float64{0, 0, 1, 1}, "")
	if err != nil {
		t.Fatal(err)
	}
	if aoi.CRS != WGS84 || aoi.CRS.URL() != "http://www.opengis.net/def/crs/EPSG/0/4326" {
		t.Errorf("unexpected crs %s", aoi.CRS)
	}
	if !strings.HasPrefix(aoi.WKT(), "POLYGON ((0 0,1 0,1 1,0 1") {
		t.Errorf("unexpected wkt %s", aoi.WKT())
	}

	aoi, err = NewAOIFromGeometry(geom.MultiPolygon{
		{{{0, 0}, {2, 0}, {2, 1}, {0, 0}}},
		{{{1, 1}, {3, 1}, {3, 4}, {1, 1}}},
	}, WGS84)
	if err != nil {
		t.Fatal(err)
	}
	if aoi.BBox() != [4]float64{0, 0, 3, 4} {
		t.Errorf("unexpected bbox %v", aoi.BBox())
	}
}
