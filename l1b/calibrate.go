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

// Package l1b reads ABI L1b radiance files and calibrates them to
// brightness temperatures.
package l1b

import "math"

// PlanckConstants are the band-specific inverse-Planck calibration
// coefficients carried in every ABI L1b emissive-band file.
type PlanckConstants struct {
	Fk1 float64 // W m-2 sr-1 um-1
	Fk2 float64 // K
	Bc1 float64 // K
	Bc2 float64 // dimensionless
}

// BrightnessTemperature converts a spectral radiance to the equivalent
// blackbody temperature in kelvin. Non-positive radiances (fill or space
// pixels) yield NaN.
func BrightnessTemperature(rad float64, pc PlanckConstants) float64 {
	if !(rad > 0) {
		return math.NaN()
	}
	return (pc.Fk2/math.Log(pc.Fk1/rad+1) - pc.Bc1) / pc.Bc2
}
