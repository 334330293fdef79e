package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-spatial/geom"
)

func TestReadGeometryFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "aoi.geojson")
	fc := `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[120.55,32.00],[120.69,32.00],[120.69,32.07],[120.55,32.07],[120.55,32.00]]]}},
		{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[120.60,32.01],[120.70,32.01],[120.70,32.08],[120.60,32.08],[120.60,32.01]]]}}
	]}`
	if err := os.WriteFile(file, []byte(fc), 0644); err != nil {
		t.Fatal(err)
	}
	g, err := ReadGeometryFile(file)
	if err != nil {
		t.Fatal(err)
	}
	mp, ok := g.(geom.MultiPolygon)
	if !ok {
		t.Fatalf("expected a multipolygon, got %T", g)
	}
	if len(mp) != 2 {
		t.Errorf("expected 2 polygons, got %d", len(mp))
	}

	if _, err := ReadGeometryFile(filepath.Join(dir, "missing.geojson")); err == nil {
		t.Error("expected an error on missing file")
	}
}
