package raster

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaster_Coordinates(t *testing.T) {
	r := &Raster{
		Width:        3,
		Height:       2,
		GeoTransform: [6]float64{5100000, 20, 0, 1600000, 0, -20},
	}
	assert.Equal(t, []float64{5100010, 5100030, 5100050}, r.X())
	assert.Equal(t, []float64{1599990, 1599970}, r.Y())
}

func TestRaster_Band(t *testing.T) {
	r := &Raster{Bands: [][]float64{{1, 2}}}
	b, err := r.Band()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, b)

	r.Bands = append(r.Bands, []float64{3, 4})
	_, err = r.Band()
	assert.ErrorIs(t, err, ErrBandCount)
}

func TestMaskAndScale(t *testing.T) {
	data := []float64{-9999, 10, 20}
	maskAndScale(data, -9999, true, 0.1, 1)
	assert.True(t, math.IsNaN(data[0]))
	assert.InDelta(t, 2, data[1], 1e-9)
	assert.InDelta(t, 3, data[2], 1e-9)

	data = []float64{-9999, 10}
	maskAndScale(data, 0, false, 0, 0)
	assert.Equal(t, []float64{-9999, 10}, data)
}
