package yeoda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilename(t *testing.T) {
	r, err := ParseFilename("/data/SIG0_20180228T043908__VV_A117_E051N015T3_EU020M_V1M1R1_S1AIWGRDH_TUWIEN.tif")
	require.NoError(t, err)

	assert.Equal(t, "SIG0", r.VarName)
	assert.Equal(t, time.Date(2018, 2, 28, 4, 39, 8, 0, time.UTC), r.Datetime1)
	assert.True(t, r.Datetime2.IsZero())
	assert.Equal(t, "VV", r.Band)
	assert.Equal(t, "A117", r.ExtraField)
	assert.Equal(t, "E051N015T3", r.TileName)
	assert.Equal(t, "EU020M", r.GridName)
	assert.Equal(t, "V1M1R1", r.DataVersion)
	assert.Equal(t, "S1AIWGRDH", r.SensorField)
	assert.Equal(t, "TUWIEN", r.Creator)
	assert.Equal(t, "SIG0_20180228T043908__VV_A117_E051N015T3_EU020M_V1M1R1_S1AIWGRDH_TUWIEN", r.Stem())
}

func TestParseFilename_DateOnly(t *testing.T) {
	r, err := ParseFilename("SIG0-HPAR-NOBS_20160101_20181231__D080_E051N015T3_EU020M_V0M2R3_S1IWGRDH_TUWIEN.tif")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC), r.Datetime1)
	assert.Equal(t, time.Date(2018, 12, 31, 0, 0, 0, 0, time.UTC), r.Datetime2)
	assert.Equal(t, "2016-01-01 00:00:00", r.Field(Datetime1))
}

func TestParseFilename_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "too few fields", input: "SIG0_20180228T043908_VV.tif"},
		{name: "too many fields", input: "SIG0_20180228T043908__VV_A117_E051N015T3_EU020M_V1M1R1_S1AIWGRDH_TUWIEN_X.tif"},
		{name: "bad datetime", input: "SIG0_2018-02-28__VV_A117_E051N015T3_EU020M_V1M1R1_S1AIWGRDH_TUWIEN.tif"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFilename(tt.input)
			assert.ErrorIs(t, err, ErrNotYeoda)
		})
	}
}

func TestRecord_Field(t *testing.T) {
	r := Record{VarName: "PLIA-TAG-NOBS", ExtraField: "D080", Band: "VV"}
	assert.Equal(t, "PLIA-TAG-NOBS", r.Field(VarName))
	assert.Equal(t, "D080", r.Field(ExtraField))
	assert.Equal(t, "VV", r.Field(Band))
	assert.Equal(t, "", r.Field(Datetime1))
	assert.Equal(t, "", r.Field(Field("unknown")))
}
