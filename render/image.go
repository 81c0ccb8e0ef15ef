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

// Package render rasterizes ash composites to image files, optionally
// overlaying location markers.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"github.com/venicegeo/goes-ash-broker/ash"
)

// Mark is a fixed-grid pixel location to highlight on the output image.
type Mark struct {
	Row float64
	Col float64
}

// markColor contrasts with the ash palette's ochres and blues.
var markColor = color.NRGBA{R: 255, G: 0, B: 255, A: 255}

// markArm is the half-length of the crosshair arms in pixels.
const markArm = 8

// Rasterize converts a composite to an 8-bit NRGBA image with the given
// marks drawn as crosshairs.
func Rasterize(img *ash.Image, marks []Mark) (*image.NRGBA, error) {
	if img == nil || img.Rows <= 0 || img.Cols <= 0 {
		return nil, fmt.Errorf("empty composite")
	}

	out := image.NewNRGBA(image.Rect(0, 0, img.Cols, img.Rows))
	for row := 0; row < img.Rows; row++ {
		for col := 0; col < img.Cols; col++ {
			r, g, b := img.At(row, col)
			out.SetNRGBA(col, row, color.NRGBA{
				R: channelByte(r),
				G: channelByte(g),
				B: channelByte(b),
				A: 255,
			})
		}
	}

	for _, mark := range marks {
		drawCrosshair(out, mark)
	}

	return out, nil
}

// PNG writes the composite as a PNG.
func PNG(w io.Writer, img *ash.Image, marks []Mark) error {
	raster, err := Rasterize(img, marks)
	if err != nil {
		return err
	}
	return png.Encode(w, raster)
}

// JPEG writes the composite as a JPEG preview.
func JPEG(w io.Writer, img *ash.Image, marks []Mark) error {
	raster, err := Rasterize(img, marks)
	if err != nil {
		return err
	}
	return jpeg.Encode(w, raster, &jpeg.Options{Quality: 85})
}

func channelByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func drawCrosshair(out *image.NRGBA, mark Mark) {
	row := int(math.Round(mark.Row))
	col := int(math.Round(mark.Col))
	bounds := out.Bounds()

	for d := -markArm; d <= markArm; d++ {
		// Leave the center pixel visible.
		if d == 0 {
			continue
		}
		if p := image.Pt(col+d, row); p.In(bounds) {
			out.SetNRGBA(p.X, p.Y, markColor)
		}
		if p := image.Pt(col, row+d); p.In(bounds) {
			out.SetNRGBA(p.X, p.Y, markColor)
		}
	}
}
