package common

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/wkt"
	"github.com/terrascope/geometry"
	"github.com/terrascope/proj4go"
)

// CRS is a coordinate reference system identifier, e.g. EPSG:4326
type CRS string

// WGS84 is the geographic lon/lat coordinate reference system
const WGS84 CRS = "EPSG:4326"

// EPSG returns the EPSG code of the CRS
func (c CRS) EPSG() (int, error) {
	s := strings.ToUpper(strings.TrimSpace(string(c)))
	s = strings.TrimPrefix(s, "EPSG:")
	code, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid crs %q", string(c))
	}
	return code, nil
}

// URL returns the OGC definition url of the CRS, as expected by OGC-compliant services
func (c CRS) URL() string {
	code, err := c.EPSG()
	if err != nil {
		return string(c)
	}
	return fmt.Sprintf("http://www.opengis.net/def/crs/EPSG/0/%d", code)
}

// utmZone returns the zone and the hemisphere if the CRS is a WGS84/UTM projection
func (c CRS) utmZone() (zone int, north bool, ok bool) {
	code, err := c.EPSG()
	if err != nil {
		return 0, false, false
	}
	switch {
	case code > 32600 && code <= 32660:
		return code - 32600, true, true
	case code > 32700 && code <= 32760:
		return code - 32700, false, true
	}
	return 0, false, false
}

// Proj4 returns the proj definition of the CRS (WGS84 or WGS84/UTM), or an empty string
func (c CRS) Proj4() string {
	if zone, north, ok := c.utmZone(); ok {
		south := " +south"
		if north {
			south = ""
		}
		return fmt.Sprintf("+proj=utm +zone=%d%s +datum=WGS84 +units=m +no_defs", zone, south)
	}
	if code, err := c.EPSG(); err == nil && code == 4326 {
		return "+proj=longlat +ellps=WGS84 +datum=WGS84 +no_defs"
	}
	return ""
}

// UTMCRS returns the WGS84/UTM CRS of the zone containing the point (with the Norway and Svalbard exceptions)
func UTMCRS(lon, lat float64) CRS {
	zone := int(math.Floor((lon+180)/6)) + 1
	if zone > 60 {
		zone = 60
	}
	switch {
	case lat >= 56 && lat < 64 && lon >= 3 && lon < 12:
		zone = 32
	case lat >= 72 && lat < 84 && lon >= 0 && lon < 9:
		zone = 31
	case lat >= 72 && lat < 84 && lon >= 9 && lon < 21:
		zone = 33
	case lat >= 72 && lat < 84 && lon >= 21 && lon < 33:
		zone = 35
	case lat >= 72 && lat < 84 && lon >= 33 && lon < 42:
		zone = 37
	}
	if lat < 0 {
		return CRS(fmt.Sprintf("EPSG:%d", 32700+zone))
	}
	return CRS(fmt.Sprintf("EPSG:%d", 32600+zone))
}

// AOI is the rectangular area of interest of the requests
type AOI struct {
	Extent geom.Extent
	CRS    CRS
}

// NewAOI creates an AOI from a [minx, miny, maxx, maxy] bounding box
func NewAOI(bbox [4]float64, crs CRS) (AOI, error) {
	if crs == "" {
		crs = WGS84
	}
	if _, _, ok := crs.utmZone(); !ok && crs != WGS84 {
		if code, err := crs.EPSG(); err != nil || code != 4326 {
			return AOI{}, fmt.Errorf("NewAOI: unsupported crs %s (expecting EPSG:4326 or UTM)", crs)
		}
		crs = WGS84
	}
	if !(bbox[0] < bbox[2]) || !(bbox[1] < bbox[3]) {
		return AOI{}, fmt.Errorf("NewAOI: invalid bbox %v (expecting minx < maxx and miny < maxy)", bbox)
	}
	return AOI{Extent: geom.Extent(bbox), CRS: crs}, nil
}

// NewAOIFromGeometry creates an AOI from the extent of the geometry
func NewAOIFromGeometry(g geom.Geometry, crs CRS) (AOI, error) {
	extent, err := geom.NewExtentFromGeometry(g)
	if err != nil {
		return AOI{}, fmt.Errorf("NewAOIFromGeometry: %w", err)
	}
	return NewAOI([4]float64(*extent), crs)
}

// BBox returns [minx, miny, maxx, maxy]
func (a AOI) BBox() [4]float64 {
	return [4]float64{a.Extent.MinX(), a.Extent.MinY(), a.Extent.MaxX(), a.Extent.MaxY()}
}

// WKT returns the AOI as a WKT polygon
func (a AOI) WKT() string {
	minx, miny, maxx, maxy := a.Extent.MinX(), a.Extent.MinY(), a.Extent.MaxX(), a.Extent.MaxY()
	return wkt.MustEncode(geom.Polygon{{{minx, miny}, {maxx, miny}, {maxx, maxy}, {minx, maxy}}})
}

func (a AOI) String() string {
	return fmt.Sprintf("%s [%s]", a.WKT(), a.CRS)
}

// Size returns the dimensions in pixels of the AOI at the given resolution (in meters).
// Geographic AOIs are first projected in the UTM zone of their center.
func (a AOI) Size(resolution float64) (width, height int, err error) {
	if resolution <= 0 {
		return 0, 0, fmt.Errorf("AOI.Size: resolution must be strictly positive (got %v)", resolution)
	}
	minx, miny, maxx, maxy := a.Extent.MinX(), a.Extent.MinY(), a.Extent.MaxX(), a.Extent.MaxY()
	if _, _, ok := a.CRS.utmZone(); !ok {
		cov := proj4go.Coverage{BoundingBox: geometry.BBox(minx, miny, maxx, maxy), Proj4: a.CRS.Proj4()}
		utm, err := cov.Transform(UTMCRS((minx+maxx)/2, (miny+maxy)/2).Proj4())
		if err != nil {
			return 0, 0, fmt.Errorf("AOI.Size.Transform: %w", err)
		}
		minx, miny = utm.BoundingBox.Min.X, utm.BoundingBox.Min.Y
		maxx, maxy = utm.BoundingBox.Max.X, utm.BoundingBox.Max.Y
	}
	width = int(math.Round(math.Abs(maxx-minx) / resolution))
	height = int(math.Round(math.Abs(maxy-miny) / resolution))
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("AOI.Size: AOI too small for a resolution of %vm (%dx%d)", resolution, width, height)
	}
	return width, height, nil
}
