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

package render

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/venicegeo/goes-ash-broker/ash"
)

func grayComposite(rows, cols int, v float64) *ash.Image {
	img := &ash.Image{Rows: rows, Cols: cols, Pix: make([]float64, 3*rows*cols)}
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestRasterize(t *testing.T) {
	img := grayComposite(4, 6, 0.5)

	raster, err := Rasterize(img, nil)
	assert.Nil(t, err)
	assert.Equal(t, 6, raster.Bounds().Dx())
	assert.Equal(t, 4, raster.Bounds().Dy())

	pixel := raster.NRGBAAt(0, 0)
	assert.Equal(t, uint8(128), pixel.R)
	assert.Equal(t, uint8(128), pixel.G)
	assert.Equal(t, uint8(128), pixel.B)
	assert.Equal(t, uint8(255), pixel.A)
}

func TestRasterize_Empty(t *testing.T) {
	_, err := Rasterize(nil, nil)
	assert.NotNil(t, err)

	_, err = Rasterize(&ash.Image{}, nil)
	assert.NotNil(t, err)
}

func TestRasterize_Marks(t *testing.T) {
	img := grayComposite(32, 32, 0)

	raster, err := Rasterize(img, []Mark{{Row: 16, Col: 16}})
	assert.Nil(t, err)

	// The crosshair arms carry the marker color; the center stays the
	// composite color.
	assert.Equal(t, markColor, raster.NRGBAAt(17, 16))
	assert.Equal(t, markColor, raster.NRGBAAt(16, 17))
	assert.Equal(t, uint8(0), raster.NRGBAAt(16, 16).R)
}

func TestRasterize_MarkNearEdge(t *testing.T) {
	img := grayComposite(8, 8, 0)

	// Arms spill past the image; the draw must stay in bounds.
	raster, err := Rasterize(img, []Mark{{Row: 0, Col: 0}})
	assert.Nil(t, err)
	assert.Equal(t, markColor, raster.NRGBAAt(1, 0))
}

func TestChannelByte(t *testing.T) {
	assert.Equal(t, uint8(0), channelByte(0))
	assert.Equal(t, uint8(0), channelByte(-0.5))
	assert.Equal(t, uint8(0), channelByte(math.NaN()))
	assert.Equal(t, uint8(255), channelByte(1))
	assert.Equal(t, uint8(255), channelByte(1.5))
	assert.Equal(t, uint8(128), channelByte(0.5))
}

func TestPNG(t *testing.T) {
	var buf bytes.Buffer
	err := PNG(&buf, grayComposite(3, 3, 0.25), nil)
	assert.Nil(t, err)

	decoded, err := png.Decode(&buf)
	assert.Nil(t, err)
	assert.Equal(t, 3, decoded.Bounds().Dx())
}

func TestJPEG(t *testing.T) {
	var buf bytes.Buffer
	err := JPEG(&buf, grayComposite(3, 3, 0.25), nil)
	assert.Nil(t, err)
	assert.NotZero(t, buf.Len())
}
