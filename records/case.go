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

package records

import (
	"fmt"

	"github.com/venicegeo/goes-ash-broker/geos"
	"github.com/venicegeo/goes-ash-broker/model"
)

// Case is one record unpacked into composite-ready form: brightness
// temperature grids keyed by ABI channel, an optional pixel mask, and the
// fixed-grid navigation of the cutout.
type Case struct {
	Rows  int
	Cols  int
	Bands map[int]*model.BTGrid
	Mask  []byte
	Nav   geos.Grid
}

// Feature keys in the record schema
const (
	rowsKey = "rows"
	colsKey = "cols"
	maskKey = "mask"
)

var projectionFloats = []struct {
	key  string
	dest func(*geos.Grid) *float64
}{
	{"projection/perspective_point_height", func(g *geos.Grid) *float64 { return &g.PerspectiveHeight }},
	{"projection/longitude_of_origin", func(g *geos.Grid) *float64 { return &g.LonOrigin }},
	{"projection/semi_major_axis", func(g *geos.Grid) *float64 { return &g.SemiMajor }},
	{"projection/semi_minor_axis", func(g *geos.Grid) *float64 { return &g.SemiMinor }},
	{"projection/x_scale", func(g *geos.Grid) *float64 { return &g.XScale }},
	{"projection/x_offset", func(g *geos.Grid) *float64 { return &g.XOffset }},
	{"projection/y_scale", func(g *geos.Grid) *float64 { return &g.YScale }},
	{"projection/y_offset", func(g *geos.Grid) *float64 { return &g.YOffset }},
}

// bandKey is the feature name for an ABI channel's grid, e.g. "band_14".
func bandKey(channel int) string {
	return fmt.Sprintf("band_%02d", channel)
}

// ReadCase unpacks the given channels from a record. Every requested
// channel must be present and sized rows*cols.
func ReadCase(rec *Record, channels []int) (*Case, error) {
	rows, err := rec.Int(rowsKey)
	if err != nil {
		return nil, err
	}
	cols, err := rec.Int(colsKey)
	if err != nil {
		return nil, err
	}

	c := &Case{
		Rows:  int(rows),
		Cols:  int(cols),
		Bands: map[int]*model.BTGrid{},
	}

	for _, channel := range channels {
		kelvin, err := rec.Floats(bandKey(channel))
		if err != nil {
			return nil, err
		}
		grid, err := model.NewBTGrid(channel, c.Rows, c.Cols, kelvin)
		if err != nil {
			return nil, fmt.Errorf("feature %q: %w", bandKey(channel), err)
		}
		c.Bands[channel] = grid
	}

	if mask, err := rec.Bytes(maskKey); err == nil {
		if len(mask) != c.Rows*c.Cols {
			return nil, fmt.Errorf("mask length %d does not match shape %dx%d", len(mask), c.Rows, c.Cols)
		}
		c.Mask = mask
	}

	c.Nav.SweepAxis = "x"
	c.Nav.Rows = c.Rows
	c.Nav.Cols = c.Cols
	for _, p := range projectionFloats {
		value, err := rec.Float(p.key)
		if err != nil {
			return nil, err
		}
		*p.dest(&c.Nav) = value
	}

	return c, nil
}

// AshCase unpacks the three ash channels from a record.
func AshCase(rec *Record) (*Case, error) {
	return ReadCase(rec, model.AshBands)
}
