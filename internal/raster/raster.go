// Package raster loads georeferenced raster files into memory.
package raster

import (
	"errors"
	"fmt"
	"math"
)

// ErrBandCount is returned when a raster does not have the expected number
// of bands.
var ErrBandCount = errors.New("unexpected band count")

// Raster is an in-memory, masked and scaled raster.
type Raster struct {
	Width, Height int
	// GeoTransform maps pixel/line to projected coordinates, GDAL order.
	GeoTransform [6]float64
	// CRS is the projection as WKT.
	CRS string
	// Bands holds one row-major grid per band. Nodata pixels are NaN.
	Bands [][]float64
}

// Reader reads rasters from paths.
type Reader interface {
	Read(path string) (*Raster, error)
}

// Band returns the only band of a single-band raster.
func (r *Raster) Band() ([]float64, error) {
	if len(r.Bands) != 1 {
		return nil, fmt.Errorf("%w: got %d, want 1", ErrBandCount, len(r.Bands))
	}
	return r.Bands[0], nil
}

// X returns the pixel-centre x coordinates of the columns.
func (r *Raster) X() []float64 {
	x := make([]float64, r.Width)
	for i := range x {
		x[i] = r.GeoTransform[0] + (float64(i)+0.5)*r.GeoTransform[1]
	}
	return x
}

// Y returns the pixel-centre y coordinates of the rows.
func (r *Raster) Y() []float64 {
	y := make([]float64, r.Height)
	for j := range y {
		y[j] = r.GeoTransform[3] + (float64(j)+0.5)*r.GeoTransform[5]
	}
	return y
}

// maskAndScale replaces nodata by NaN and applies scale and offset in place.
func maskAndScale(data []float64, nodata float64, hasNodata bool, scale, offset float64) {
	if scale == 0 {
		scale = 1
	}
	for i, v := range data {
		if hasNodata && (v == nodata || (math.IsNaN(nodata) && math.IsNaN(v))) {
			data[i] = math.NaN()
			continue
		}
		data[i] = v*scale + offset
	}
}
