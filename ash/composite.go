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

// Package ash builds the "ash" false-color composite from ABI infrared
// brightness temperatures. The scheme highlights thin cirrus and contrails
// using split-window differences between the 8.4, 11.2 and 12.3 µm channels.
package ash

import (
	"fmt"
	"math"

	"github.com/venicegeo/goes-ash-broker/model"
)

// Channel bounds for the ash recipe, in kelvin. Differences outside the
// bounds clip to the bound.
const (
	RedLo   = -4.0
	RedHi   = 2.0
	GreenLo = -4.0
	GreenHi = 5.0
	BlueLo  = 243.0
	BlueHi  = 303.0
)

// Normalize linearly maps v from [lo,hi] onto [0,1], clipping outside the
// range. NaN input clips to 0.
func Normalize(v, lo, hi float64) float64 {
	scaled := (v - lo) / (hi - lo)
	if math.IsNaN(scaled) || scaled < 0 {
		return 0
	}
	if scaled > 1 {
		return 1
	}
	return scaled
}

// Image is a composited false-color image with per-channel values in [0,1],
// stored row-major as R,G,B triples.
type Image struct {
	Rows int
	Cols int
	Pix  []float64
}

// At returns the composited color at the given pixel.
func (img *Image) At(row, col int) (r, g, b float64) {
	i := 3 * (row*img.Cols + col)
	return img.Pix[i], img.Pix[i+1], img.Pix[i+2]
}

// Composite builds the ash image from the three infrared band grids:
//
//	red   = T(12.3µm) − T(11.2µm) over [−4, 2] K
//	green = T(11.2µm) − T(8.4µm)  over [−4, 5] K
//	blue  = T(11.2µm)             over [243, 303] K
//
// All three grids must share the same shape.
func Composite(c11, c14, c15 *model.BTGrid) (*Image, error) {
	if c11 == nil || c14 == nil || c15 == nil {
		return nil, fmt.Errorf("ash composite requires channels 11, 14 and 15")
	}
	if !c14.SameShape(c11) || !c14.SameShape(c15) {
		return nil, fmt.Errorf("band grid shapes differ: C11 %dx%d, C14 %dx%d, C15 %dx%d",
			c11.Rows, c11.Cols, c14.Rows, c14.Cols, c15.Rows, c15.Cols)
	}

	img := &Image{
		Rows: c14.Rows,
		Cols: c14.Cols,
		Pix:  make([]float64, 3*c14.Rows*c14.Cols),
	}

	for i := range c14.Kelvin {
		t11 := c11.Kelvin[i]
		t14 := c14.Kelvin[i]
		t15 := c15.Kelvin[i]
		img.Pix[3*i] = Normalize(t15-t14, RedLo, RedHi)
		img.Pix[3*i+1] = Normalize(t14-t11, GreenLo, GreenHi)
		img.Pix[3*i+2] = Normalize(t14, BlueLo, BlueHi)
	}

	return img, nil
}
