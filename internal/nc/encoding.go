// Package nc writes and reads the per-tile NetCDF archives produced by the
// restructure tools.
package nc

import (
	"errors"
	"fmt"
	"math"
)

// ErrEncoding is returned for variables without a usable storage encoding.
var ErrEncoding = errors.New("invalid variable encoding")

// DataType is the on-disk type of a variable.
type DataType string

// Int16 is the only storage type the archives use.
const Int16 DataType = "int16"

// Encoding describes how physical values are quantized on disk.
type Encoding struct {
	// ScaleFactor divides values before rounding. Zero means unscaled.
	ScaleFactor float64
	// FillValue marks nodata in the stored integers. It is always written
	// as _FillValue, so the zero value is an explicit fill of 0.
	FillValue int16
	DType     DataType
	// Compress requests deflate compression where the file format supports it.
	Compress bool
}

// Scaled reports whether the encoding carries a scale factor.
func (e Encoding) Scaled() bool {
	return e.ScaleFactor != 0
}

// Validate checks that the encoding declares a storage type and a sane scale.
// Any FillValue, zero included, is a valid fill.
func (e Encoding) Validate() error {
	if e.DType != Int16 {
		return fmt.Errorf("%w: dtype %q, want %q", ErrEncoding, e.DType, Int16)
	}
	if math.IsNaN(e.ScaleFactor) || math.IsInf(e.ScaleFactor, 0) || e.ScaleFactor < 0 {
		return fmt.Errorf("%w: scale factor %v", ErrEncoding, e.ScaleFactor)
	}
	return nil
}

// Quantize encodes row-major values into a [height][width] grid. NaN and
// infinite values become the fill value; values outside the int16 range are
// clamped.
func (e Encoding) Quantize(data []float64, width, height int) [][]int16 {
	out := make([][]int16, height)
	for j := range out {
		row := make([]int16, width)
		for i := range row {
			row[i] = e.encode(data[j*width+i])
		}
		out[j] = row
	}
	return out
}

func (e Encoding) encode(v float64) int16 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return e.FillValue
	}
	if e.Scaled() {
		v /= e.ScaleFactor
	}
	v = math.RoundToEven(v)
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}
	return int16(v)
}

// Decode maps a stored integer back to its physical value; the fill value
// decodes to NaN.
func (e Encoding) Decode(v int16) float64 {
	if v == e.FillValue {
		return math.NaN()
	}
	if e.Scaled() {
		return float64(v) * e.ScaleFactor
	}
	return float64(v)
}
