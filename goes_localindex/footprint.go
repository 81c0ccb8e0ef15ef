package goeslocalindex

import (
	"github.com/venicegeo/geojson-go/geojson"

	"github.com/venicegeo/goes-ash-broker/geos"
)

// Nominal GOES-R series geometry. Full-disk footprints for index results are
// computed from the nominal orbit rather than per-file metadata; the
// per-file projection is still used for anything that touches pixels.
const (
	nominalHeight    = 35786023.0 // meters above the ellipsoid
	nominalSemiMajor = 6378137.0  // GRS80
	nominalSemiMinor = 6356752.31414
)

var satelliteLonOrigin = map[string]float64{
	"G16": -75.0,
	"G17": -137.0,
	"G18": -137.0,
	"G19": -75.0,
}

// NominalProjection returns the nominal fixed-grid projection for a satellite.
func NominalProjection(satellite string) geos.Projection {
	lon, ok := satelliteLonOrigin[satellite]
	if !ok {
		lon = satelliteLonOrigin["G16"]
	}
	return geos.Projection{
		PerspectiveHeight: nominalHeight,
		LonOrigin:         lon,
		SemiMajor:         nominalSemiMajor,
		SemiMinor:         nominalSemiMinor,
		SweepAxis:         "x",
	}
}

// footprintPolygon approximates the full-disk footprint of a satellite as a
// GeoJSON polygon around the visible limb.
func footprintPolygon(satellite string) (*geojson.Polygon, error) {
	ring, err := NominalProjection(satellite).VisibleDiskRing(72)
	if err != nil {
		return nil, err
	}
	return geojson.NewPolygon([][][]float64{ring}), nil
}
