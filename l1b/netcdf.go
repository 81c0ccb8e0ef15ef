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
	"fmt"
	"math"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"

	"github.com/venicegeo/goes-ash-broker/geos"
	"github.com/venicegeo/goes-ash-broker/model"
)

// Scene is one calibrated band file: brightness temperatures plus the
// fixed-grid navigation needed to locate coordinates in it.
type Scene struct {
	Band *model.BTGrid
	Nav  geos.Grid
}

// ReadSceneFile reads an ABI L1b Rad NetCDF file and calibrates its
// radiances to brightness temperatures.
func ReadSceneFile(path string) (*Scene, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer nc.Close()

	return readScene(nc)
}

func readScene(nc api.Group) (*Scene, error) {
	pc, err := readPlanckConstants(nc)
	if err != nil {
		return nil, err
	}

	band, err := readBandID(nc)
	if err != nil {
		return nil, err
	}

	nav, err := readNavigation(nc)
	if err != nil {
		return nil, err
	}

	radVar, err := nc.GetVariable("Rad")
	if err != nil {
		return nil, fmt.Errorf("reading Rad variable: %w", err)
	}

	rows, cols, counts, err := radianceCounts(radVar)
	if err != nil {
		return nil, err
	}

	scale, err := attrFloat(radVar.Attributes, "scale_factor")
	if err != nil {
		return nil, err
	}
	offset, err := attrFloat(radVar.Attributes, "add_offset")
	if err != nil {
		return nil, err
	}
	fill, fillErr := attrFloat(radVar.Attributes, "_FillValue")
	kelvin := calibrateCounts(counts, scale, offset, fill, fillErr == nil, pc)

	grid, err := model.NewBTGrid(band, rows, cols, kelvin)
	if err != nil {
		return nil, err
	}
	nav.Rows = rows
	nav.Cols = cols

	return &Scene{Band: grid, Nav: nav}, nil
}

// calibrateCounts applies the linear count encoding and the Planck
// calibration. Fill counts map to NaN.
func calibrateCounts(counts []float64, scale, offset, fill float64, hasFill bool, pc PlanckConstants) []float64 {
	kelvin := make([]float64, len(counts))
	for i, count := range counts {
		if hasFill && count == fill {
			kelvin[i] = math.NaN()
			continue
		}
		kelvin[i] = BrightnessTemperature(count*scale+offset, pc)
	}
	return kelvin
}

// radianceCounts flattens the 2D Rad variable to raw counts, row-major.
func radianceCounts(radVar *api.Variable) (rows, cols int, counts []float64, err error) {
	switch vals := radVar.Values.(type) {
	case [][]int16:
		rows = len(vals)
		if rows == 0 {
			return 0, 0, nil, fmt.Errorf("Rad variable is empty")
		}
		cols = len(vals[0])
		counts = make([]float64, 0, rows*cols)
		for _, rowVals := range vals {
			if len(rowVals) != cols {
				return 0, 0, nil, fmt.Errorf("Rad variable is ragged")
			}
			for _, v := range rowVals {
				counts = append(counts, float64(v))
			}
		}
	case [][]float32:
		rows = len(vals)
		if rows == 0 {
			return 0, 0, nil, fmt.Errorf("Rad variable is empty")
		}
		cols = len(vals[0])
		counts = make([]float64, 0, rows*cols)
		for _, rowVals := range vals {
			if len(rowVals) != cols {
				return 0, 0, nil, fmt.Errorf("Rad variable is ragged")
			}
			for _, v := range rowVals {
				counts = append(counts, float64(v))
			}
		}
	default:
		return 0, 0, nil, fmt.Errorf("unexpected Rad variable type %T", radVar.Values)
	}
	return rows, cols, counts, nil
}

func readPlanckConstants(nc api.Group) (PlanckConstants, error) {
	pc := PlanckConstants{}
	for _, v := range []struct {
		name string
		dest *float64
	}{
		{"planck_fk1", &pc.Fk1},
		{"planck_fk2", &pc.Fk2},
		{"planck_bc1", &pc.Bc1},
		{"planck_bc2", &pc.Bc2},
	} {
		value, err := scalarFloat(nc, v.name)
		if err != nil {
			return pc, err
		}
		*v.dest = value
	}
	return pc, nil
}

func readBandID(nc api.Group) (int, error) {
	value, err := scalarFloat(nc, "band_id")
	if err != nil {
		return 0, err
	}
	return int(value), nil
}

func readNavigation(nc api.Group) (geos.Grid, error) {
	grid := geos.Grid{}

	projVar, err := nc.GetVariable("goes_imager_projection")
	if err != nil {
		return grid, fmt.Errorf("reading projection metadata: %w", err)
	}

	for _, a := range []struct {
		name string
		dest *float64
	}{
		{"perspective_point_height", &grid.PerspectiveHeight},
		{"longitude_of_projection_origin", &grid.LonOrigin},
		{"semi_major_axis", &grid.SemiMajor},
		{"semi_minor_axis", &grid.SemiMinor},
	} {
		value, err := attrFloat(projVar.Attributes, a.name)
		if err != nil {
			return grid, err
		}
		*a.dest = value
	}

	sweep, err := attrString(projVar.Attributes, "sweep_angle_axis")
	if err != nil {
		return grid, err
	}
	grid.SweepAxis = sweep

	for _, a := range []struct {
		coord  string
		scale  *float64
		offset *float64
	}{
		{"x", &grid.XScale, &grid.XOffset},
		{"y", &grid.YScale, &grid.YOffset},
	} {
		coordVar, err := nc.GetVariable(a.coord)
		if err != nil {
			return grid, fmt.Errorf("reading %s coordinate: %w", a.coord, err)
		}
		if *a.scale, err = attrFloat(coordVar.Attributes, "scale_factor"); err != nil {
			return grid, err
		}
		if *a.offset, err = attrFloat(coordVar.Attributes, "add_offset"); err != nil {
			return grid, err
		}
	}

	return grid, nil
}

// scalarFloat reads a scalar (or single-element) numeric variable.
func scalarFloat(nc api.Group, name string) (float64, error) {
	v, err := nc.GetVariable(name)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", name, err)
	}
	value, ok := numericValue(v.Values)
	if !ok {
		return 0, fmt.Errorf("variable %s has unexpected type %T", name, v.Values)
	}
	return value, nil
}

// attributeGetter is the attribute lookup surface the readers need from a
// variable's attribute map.
type attributeGetter interface {
	Get(key string) (interface{}, bool)
}

func attrFloat(attrs attributeGetter, name string) (float64, error) {
	raw, has := attrs.Get(name)
	if !has {
		return 0, fmt.Errorf("missing attribute %s", name)
	}
	value, ok := numericValue(raw)
	if !ok {
		return 0, fmt.Errorf("attribute %s has unexpected type %T", name, raw)
	}
	return value, nil
}

func attrString(attrs attributeGetter, name string) (string, error) {
	raw, has := attrs.Get(name)
	if !has {
		return "", fmt.Errorf("missing attribute %s", name)
	}
	switch v := raw.(type) {
	case string:
		return v, nil
	case []string:
		if len(v) == 1 {
			return v[0], nil
		}
	}
	return "", fmt.Errorf("attribute %s has unexpected type %T", name, raw)
}

// numericValue unwraps the scalar and single-element forms NetCDF numeric
// data comes back as.
func numericValue(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case int16:
		return float64(v), true
	case int8:
		return float64(v), true
	case uint8:
		return float64(v), true
	case []float64:
		if len(v) == 1 {
			return v[0], true
		}
	case []float32:
		if len(v) == 1 {
			return float64(v[0]), true
		}
	case []int32:
		if len(v) == 1 {
			return float64(v[0]), true
		}
	case []int16:
		if len(v) == 1 {
			return float64(v[0]), true
		}
	case []int8:
		if len(v) == 1 {
			return float64(v[0]), true
		}
	}
	return 0, false
}
