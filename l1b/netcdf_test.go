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

package l1b

import (
	"math"
	"testing"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/stretchr/testify/assert"
)

// fakeAttrs is a minimal attribute map for exercising the readers.
type fakeAttrs map[string]interface{}

func (f fakeAttrs) Get(key string) (interface{}, bool) {
	v, ok := f[key]
	return v, ok
}

func TestRadianceCounts_Int16(t *testing.T) {
	rad := &api.Variable{Values: [][]int16{{100, 200, 300}, {400, 500, 600}}}

	rows, cols, counts, err := radianceCounts(rad)
	assert.Nil(t, err)
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, []float64{100, 200, 300, 400, 500, 600}, counts)
}

func TestRadianceCounts_Float32(t *testing.T) {
	rad := &api.Variable{Values: [][]float32{{1.5, 2.5}, {3.5, 4.5}}}

	rows, cols, counts, err := radianceCounts(rad)
	assert.Nil(t, err)
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, []float64{1.5, 2.5, 3.5, 4.5}, counts)
}

func TestRadianceCounts_Ragged(t *testing.T) {
	rad := &api.Variable{Values: [][]int16{{1, 2, 3}, {4, 5}}}

	_, _, _, err := radianceCounts(rad)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "ragged")
}

func TestRadianceCounts_Empty(t *testing.T) {
	rad := &api.Variable{Values: [][]int16{}}

	_, _, _, err := radianceCounts(rad)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestRadianceCounts_UnexpectedType(t *testing.T) {
	rad := &api.Variable{Values: []string{"not", "radiance"}}

	_, _, _, err := radianceCounts(rad)
	assert.NotNil(t, err)
}

func TestCalibrateCounts_FillMapsToNaN(t *testing.T) {
	// Scale/offset chosen so count 100 lands at a plausible radiance.
	counts := []float64{100, -1, 0, 100}
	kelvin := calibrateCounts(counts, 0.5, 0, -1, true, channel14Constants)

	assert.False(t, math.IsNaN(kelvin[0]))
	assert.True(t, kelvin[0] > 200 && kelvin[0] < 320, "unexpected brightness temperature %f", kelvin[0])

	assert.True(t, math.IsNaN(kelvin[1]), "fill count must map to NaN")
	assert.True(t, math.IsNaN(kelvin[2]), "non-positive radiance must map to NaN")
	assert.Equal(t, kelvin[0], kelvin[3])
}

func TestCalibrateCounts_NoFillAttribute(t *testing.T) {
	kelvin := calibrateCounts([]float64{-1}, 0.5, 100, -1, false, channel14Constants)

	// Without a fill attribute the count calibrates normally.
	assert.False(t, math.IsNaN(kelvin[0]))
}

func TestAttrFloat(t *testing.T) {
	attrs := fakeAttrs{
		"scale_factor": float64(0.05),
		"add_offset":   []float32{-0.1},
		"band_id":      []int8{14},
		"units":        "W m-2 sr-1 um-1",
	}

	v, err := attrFloat(attrs, "scale_factor")
	assert.Nil(t, err)
	assert.Equal(t, 0.05, v)

	// Single-element slices unwrap.
	v, err = attrFloat(attrs, "add_offset")
	assert.Nil(t, err)
	assert.InDelta(t, -0.1, v, 1e-6)

	v, err = attrFloat(attrs, "band_id")
	assert.Nil(t, err)
	assert.Equal(t, 14.0, v)

	_, err = attrFloat(attrs, "missing")
	assert.NotNil(t, err)

	_, err = attrFloat(attrs, "units")
	assert.NotNil(t, err)
}

func TestAttrString(t *testing.T) {
	attrs := fakeAttrs{
		"sweep_angle_axis": "x",
		"long_name":        []string{"GOES-R ABI fixed grid projection"},
		"height":           float64(35786023),
	}

	v, err := attrString(attrs, "sweep_angle_axis")
	assert.Nil(t, err)
	assert.Equal(t, "x", v)

	v, err = attrString(attrs, "long_name")
	assert.Nil(t, err)
	assert.Equal(t, "GOES-R ABI fixed grid projection", v)

	_, err = attrString(attrs, "missing")
	assert.NotNil(t, err)

	_, err = attrString(attrs, "height")
	assert.NotNil(t, err)
}
