package cli

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtm0/floodmapper/internal/nc"
	"github.com/rtm0/floodmapper/internal/raster"
	"github.com/rtm0/floodmapper/internal/restructure"
	"github.com/rtm0/floodmapper/internal/tile"
	"github.com/rtm0/floodmapper/internal/tiles"
	"github.com/rtm0/floodmapper/internal/yeoda"
)

type constReader struct{}

func (constReader) Read(string) (*raster.Raster, error) {
	return &raster.Raster{
		Width:        1,
		Height:       1,
		GeoTransform: [6]float64{0, 20, 0, 0, 0, -20},
		Bands:        [][]float64{{-7.5}},
	}, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPipeline() *restructure.Pipeline {
	logger := discard()
	return restructure.New(logger, yeoda.NewFileSystem(logger), constReader{}, nc.NewWriter(logger))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, false).Info("Wrote archive", "path", "/out/D080.nc")
	assert.Contains(t, buf.String(), "Wrote archive")
	assert.Contains(t, buf.String(), "/out/D080.nc")

	buf.Reset()
	NewLogger(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())

	NewLogger(&buf, true).Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestRestructureCmd_Args(t *testing.T) {
	cmd := NewRestructureCmd(restructure.SIG0, discard(), testPipeline)
	cmd.SetArgs([]string{"root", "out", "EU020M_E051N015T3"})
	cmd.SetOut(io.Discard)
	assert.Error(t, cmd.Execute())
	assert.Contains(t, cmd.Use, "<eventtime>")
}

func TestRestructureCmd_Run(t *testing.T) {
	root, out := t.TempDir(), t.TempDir()
	leaf := filepath.Join(root, "SIG0", "V1M1R1", "EQUI7_EU020M", "E051N015T3")
	require.NoError(t, os.MkdirAll(leaf, 0o755))
	for _, name := range []string{
		"SIG0_20180228T043908__VV_A117_E051N015T3_EU020M_V1M1R1_S1AIWGRDH_TUWIEN.tif",
		"SIG0_20180228T043908__VH_A117_E051N015T3_EU020M_V1M1R1_S1AIWGRDH_TUWIEN.tif",
		"SIG0_20180302T052211__VV_A117_E051N015T3_EU020M_V1M1R1_S1AIWGRDH_TUWIEN.tif",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(leaf, name), nil, 0o644))
	}

	cmd := NewRestructureCmd(restructure.SIG0, discard(), testPipeline)
	cmd.SetArgs([]string{root, out, "EU020M_E051N015T3", "2018-02-28 04:39:08"})
	require.NoError(t, cmd.Execute())

	entries, err := os.ReadDir(filepath.Join(out, "V1M1R1", "EQUI7_EU020M", "E051N015T3"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "SIG0_20180228T043908__VV_A117_E051N015T3_EU020M_V1M1R1_S1AIWGRDH_TUWIEN.nc", entries[0].Name())
}

func TestRestructureCmd_MalformedTile(t *testing.T) {
	cmd := NewRestructureCmd(restructure.HParam, discard(), testPipeline)
	cmd.SetArgs([]string{t.TempDir(), t.TempDir(), "EU020ME051N015T3", "D080"})
	assert.ErrorIs(t, cmd.Execute(), tile.ErrMalformed)
}

func TestViewCmd_Config(t *testing.T) {
	t.Setenv("FLOODMAP_ZOOM", "12")
	t.Setenv("FLOODMAP_TILE_URL", "http://localhost:8080/{z}/{x}/{y}.png")

	cmd := NewViewCmd(func(bool) *slog.Logger { return discard() })
	require.NoError(t, cmd.Flags().Parse([]string{"--width", "640", "--no-basemap"}))

	v := viper.New()
	require.NoError(t, bindViewConfig(v, cmd))

	cfg := ResolveViewConfig(v)
	assert.Equal(t, 12, cfg.Options.Zoom)
	assert.Equal(t, 640, cfg.Options.Width)
	assert.Equal(t, 64, cfg.Options.MaxTiles)
	assert.Equal(t, "Flood map", cfg.Options.Title)
	assert.Equal(t, "http://localhost:8080/{z}/{x}/{y}.png", cfg.TileURL)
	assert.True(t, cfg.NoBasemap)
	assert.False(t, cfg.Verbose)
}

func TestViewCmd_Defaults(t *testing.T) {
	cmd := NewViewCmd(func(bool) *slog.Logger { return discard() })
	v := viper.New()
	require.NoError(t, bindViewConfig(v, cmd))

	cfg := ResolveViewConfig(v)
	assert.Equal(t, 15, cfg.Options.Zoom)
	assert.Equal(t, 1300, cfg.Options.Width)
	assert.Equal(t, tiles.OSM, cfg.TileURL)
}

func TestViewCmd_ExecuteResolvesEnv(t *testing.T) {
	t.Setenv("FLOODMAP_VERBOSE", "true")

	var verbose bool
	cmd := NewViewCmd(func(v bool) *slog.Logger {
		verbose = v
		return discard()
	})
	cmd.SetArgs([]string{"--no-basemap", filepath.Join(t.TempDir(), "missing.tif"), filepath.Join(t.TempDir(), "out.png")})

	assert.Error(t, cmd.Execute())
	assert.True(t, verbose)
}
