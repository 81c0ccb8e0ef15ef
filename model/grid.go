package model

import "fmt"

// BTGrid is a single band's brightness temperatures on the ABI fixed grid,
// stored row-major in kelvin. Pixels that could not be calibrated (fill
// values in the source data) are NaN.
type BTGrid struct {
	Band   int
	Rows   int
	Cols   int
	Kelvin []float64
}

// NewBTGrid allocates a grid, validating the dimensions against the data length
func NewBTGrid(band, rows, cols int, kelvin []float64) (*BTGrid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("Invalid grid shape %dx%d", rows, cols)
	}
	if len(kelvin) != rows*cols {
		return nil, fmt.Errorf("Grid data length %d does not match shape %dx%d", len(kelvin), rows, cols)
	}
	return &BTGrid{Band: band, Rows: rows, Cols: cols, Kelvin: kelvin}, nil
}

// At returns the brightness temperature at the given pixel
func (g *BTGrid) At(row, col int) float64 {
	return g.Kelvin[row*g.Cols+col]
}

// SameShape reports whether the other grid covers the same pixel extents
func (g *BTGrid) SameShape(other *BTGrid) bool {
	return other != nil && g.Rows == other.Rows && g.Cols == other.Cols
}
