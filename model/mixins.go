package model

import (
	"fmt"

	"github.com/venicegeo/geojson-go/geojson"
)

// AshBandFiles is a mixin containing the archive URLs of the three infrared
// band files that make up an ash composite
type AshBandFiles struct {
	C11 string // 8.4 µm
	C14 string // 11.2 µm
	C15 string // 12.3 µm
}

// AshBands lists the ABI channels consumed by the ash color scheme
var AshBands = []int{11, 14, 15}

// NewAshBandFiles builds the mixin from a channel-to-URL map, requiring all
// three ash channels to be present
func NewAshBandFiles(urls map[int]string) (*AshBandFiles, error) {
	files := AshBandFiles{}
	destinations := map[int]*string{
		11: &files.C11,
		14: &files.C14,
		15: &files.C15,
	}
	for band, dest := range destinations {
		url, ok := urls[band]
		if !ok {
			return nil, fmt.Errorf("No file available for ABI channel %02d", band)
		}
		*dest = url
	}
	return &files, nil
}

// Apply implements the GeoJSONFeatureMixin interface
func (abf AshBandFiles) Apply(feature *geojson.Feature) error {
	feature.Properties["bands"] = map[string]string{
		"C11": abf.C11,
		"C14": abf.C14,
		"C15": abf.C15,
	}
	return nil
}

// GridLocation is a mixin containing a fixed-grid pixel location computed
// from a lat/lon under the scene's geostationary projection
type GridLocation struct {
	Row float64
	Col float64
	Lat float64
	Lon float64
}

// Apply implements the GeoJSONFeatureMixin interface
func (gl GridLocation) Apply(feature *geojson.Feature) error {
	feature.Properties["row"] = gl.Row
	feature.Properties["col"] = gl.Col
	feature.Properties["lat"] = gl.Lat
	feature.Properties["lon"] = gl.Lon
	return nil
}
