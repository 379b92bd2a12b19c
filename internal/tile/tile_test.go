package tile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantGrid string
		wantName string
	}{
		{name: "europe 20m", input: "EU020M_E051N015T3", wantGrid: "EU020M", wantName: "E051N015T3"},
		{name: "africa 500m", input: "AF500M_E036N078T6", wantGrid: "AF500M", wantName: "E036N078T6"},
		{name: "split on first separator only", input: "EU020M_E051N015T3_X", wantGrid: "EU020M", wantName: "E051N015T3_X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantGrid, got.Grid)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, "EQUI7_"+tt.wantGrid, got.EquiGrid())
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, input := range []string{"", "EU020ME051N015T3", "_E051N015T3", "EU020M_"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestTile_String(t *testing.T) {
	tl, err := Parse("EU020M_E051N015T3")
	require.NoError(t, err)
	assert.Equal(t, "EU020M_E051N015T3", tl.String())
}
