package nc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncoding_Validate(t *testing.T) {
	tests := []struct {
		name    string
		enc     Encoding
		wantErr bool
	}{
		{name: "scaled", enc: Encoding{ScaleFactor: 0.1, FillValue: -9999, DType: Int16, Compress: true}},
		{name: "unscaled", enc: Encoding{FillValue: -9999, DType: Int16}},
		{name: "missing dtype", enc: Encoding{ScaleFactor: 0.1, FillValue: -9999}, wantErr: true},
		{name: "unsupported dtype", enc: Encoding{FillValue: -9999, DType: "float32"}, wantErr: true},
		{name: "negative scale", enc: Encoding{ScaleFactor: -1, DType: Int16}, wantErr: true},
		{name: "nan scale", enc: Encoding{ScaleFactor: math.NaN(), DType: Int16}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.enc.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEncoding)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEncoding_Quantize(t *testing.T) {
	enc := Encoding{ScaleFactor: 0.1, FillValue: -9999, DType: Int16}
	data := []float64{-12.34, math.NaN(), 0.05, 0.25, math.Inf(1), 1e9}

	got := enc.Quantize(data, 3, 2)
	assert.Equal(t, [][]int16{
		{-123, -9999, 0},
		{2, -9999, math.MaxInt16},
	}, got)
}

func TestEncoding_QuantizeUnscaled(t *testing.T) {
	enc := Encoding{FillValue: -9999, DType: Int16}
	got := enc.Quantize([]float64{12, math.NaN(), 2.5, -40000}, 4, 1)
	assert.Equal(t, [][]int16{{12, -9999, 2, math.MinInt16}}, got)
}

func TestEncoding_Decode(t *testing.T) {
	enc := Encoding{ScaleFactor: 0.01, FillValue: -9999, DType: Int16}
	assert.InDelta(t, 34.56, enc.Decode(3456), 1e-9)
	assert.True(t, math.IsNaN(enc.Decode(-9999)))

	unscaled := Encoding{FillValue: -9999, DType: Int16}
	assert.Equal(t, 17.0, unscaled.Decode(17))
}
