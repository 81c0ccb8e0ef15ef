// Copyright 2019, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package geos navigates between geodetic coordinates and the ABI fixed
// grid under the geostationary perspective projection.
//
// The forward transform projects a lat/lon onto satellite scan angles by
// intersecting the satellite's line of sight with the GRS80 ellipsoid; the
// inverse solves the quadratic for the sight-vector length. Formulas follow
// the GOES-R Product Definition and User's Guide, section 5.1.2.
package geos

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotVisible is returned for coordinates beyond the limb of the earth
// as seen from the satellite.
var ErrNotVisible = errors.New("coordinate is not visible from the satellite")

// ErrOffEarth is returned for scan angles whose line of sight misses the earth.
var ErrOffEarth = errors.New("scan angle does not intersect the earth")

// Projection holds the geostationary projection parameters carried in ABI
// product metadata.
type Projection struct {
	PerspectiveHeight float64 // satellite height above the ellipsoid, meters
	LonOrigin         float64 // longitude of projection origin, degrees east
	SemiMajor         float64 // ellipsoid semi-major axis, meters
	SemiMinor         float64 // ellipsoid semi-minor axis, meters
	SweepAxis         string  // "x" for the GOES-R series
}

// Grid couples a projection with the fixed-grid pixel mapping of one band
// file: scan angle = offset + index*scale, in radians.
type Grid struct {
	Projection
	XScale  float64
	XOffset float64
	YScale  float64
	YOffset float64
	Cols    int
	Rows    int
}

// orbitRadius is the distance from the earth's center to the satellite.
func (p Projection) orbitRadius() float64 {
	return p.PerspectiveHeight + p.SemiMajor
}

func (p Projection) checkSweep() error {
	if p.SweepAxis != "" && p.SweepAxis != "x" {
		return fmt.Errorf("unsupported sweep angle axis %q", p.SweepAxis)
	}
	return nil
}

// LatLonToAngles converts a geodetic lat/lon (degrees) to fixed-grid scan
// angles (radians). Points beyond the limb return ErrNotVisible.
func (p Projection) LatLonToAngles(latDeg, lonDeg float64) (x, y float64, err error) {
	if err = p.checkSweep(); err != nil {
		return 0, 0, err
	}

	lat := latDeg * math.Pi / 180
	lon := lonDeg * math.Pi / 180
	lon0 := p.LonOrigin * math.Pi / 180

	req := p.SemiMajor
	rpol := p.SemiMinor
	h := p.orbitRadius()
	e2 := (req*req - rpol*rpol) / (req * req)

	// Geocentric latitude and radius at the surface point.
	latC := math.Atan((rpol * rpol / (req * req)) * math.Tan(lat))
	rc := rpol / math.Sqrt(1-e2*math.Cos(latC)*math.Cos(latC))

	// Sight vector from the satellite to the surface point.
	sx := h - rc*math.Cos(latC)*math.Cos(lon-lon0)
	sy := -rc * math.Cos(latC) * math.Sin(lon-lon0)
	sz := rc * math.Sin(latC)

	if h*(h-sx) < sy*sy+(req*req/(rpol*rpol))*sz*sz {
		return 0, 0, ErrNotVisible
	}

	rs := math.Sqrt(sx*sx + sy*sy + sz*sz)
	x = math.Asin(-sy / rs)
	y = math.Atan(sz / sx)
	return x, y, nil
}

// AnglesToLatLon converts fixed-grid scan angles (radians) back to a
// geodetic lat/lon (degrees). Angles that miss the earth return ErrOffEarth.
func (p Projection) AnglesToLatLon(x, y float64) (latDeg, lonDeg float64, err error) {
	if err = p.checkSweep(); err != nil {
		return 0, 0, err
	}

	req := p.SemiMajor
	rpol := p.SemiMinor
	h := p.orbitRadius()
	lon0 := p.LonOrigin * math.Pi / 180

	sinX, cosX := math.Sincos(x)
	sinY, cosY := math.Sincos(y)

	a := sinX*sinX + cosX*cosX*(cosY*cosY+(req*req/(rpol*rpol))*sinY*sinY)
	b := -2 * h * cosX * cosY
	c := h*h - req*req

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, 0, ErrOffEarth
	}

	rs := (-b - math.Sqrt(disc)) / (2 * a)
	sx := rs * cosX * cosY
	sy := -rs * sinX
	sz := rs * cosX * sinY

	lat := math.Atan((req * req / (rpol * rpol)) * sz / math.Sqrt((h-sx)*(h-sx)+sy*sy))
	lon := lon0 - math.Atan(sy/(h-sx))

	return lat * 180 / math.Pi, lon * 180 / math.Pi, nil
}

// LatLonToGrid converts a geodetic lat/lon to fractional pixel coordinates
// on this grid. The result may fall outside [0,Cols)x[0,Rows) for points
// visible to the satellite but outside the sector.
func (g Grid) LatLonToGrid(latDeg, lonDeg float64) (col, row float64, err error) {
	x, y, err := g.LatLonToAngles(latDeg, lonDeg)
	if err != nil {
		return 0, 0, err
	}
	if g.XScale == 0 || g.YScale == 0 {
		return 0, 0, errors.New("grid has zero scan-angle scale")
	}
	col = (x - g.XOffset) / g.XScale
	row = (y - g.YOffset) / g.YScale
	return col, row, nil
}

// GridToLatLon converts fractional pixel coordinates to a geodetic lat/lon.
func (g Grid) GridToLatLon(col, row float64) (latDeg, lonDeg float64, err error) {
	x := g.XOffset + col*g.XScale
	y := g.YOffset + row*g.YScale
	return g.AnglesToLatLon(x, y)
}

// Contains reports whether the fractional pixel coordinate falls inside the
// grid extents.
func (g Grid) Contains(col, row float64) bool {
	return col >= 0 && row >= 0 && col < float64(g.Cols) && row < float64(g.Rows)
}

// VisibleDiskRing samples the limb of the visible earth disk as a closed
// lat/lon ring with n distinct vertices, suitable for a GeoJSON polygon
// footprint. The ring is sampled slightly inside the limb so every vertex
// inverts cleanly.
func (p Projection) VisibleDiskRing(n int) ([][]float64, error) {
	if err := p.checkSweep(); err != nil {
		return nil, err
	}
	if n < 3 {
		n = 3
	}

	// Angular radius of the (polar-axis bounded) earth from the satellite.
	limb := math.Asin(p.SemiMinor / p.orbitRadius())
	radius := 0.995 * limb

	ring := make([][]float64, 0, n+1)
	for i := 0; i < n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n)
		lat, lon, err := p.AnglesToLatLon(radius*math.Cos(t), radius*math.Sin(t))
		if err != nil {
			return nil, err
		}
		ring = append(ring, []float64{lon, lat})
	}
	ring = append(ring, append([]float64{}, ring[0]...))
	return ring, nil
}
