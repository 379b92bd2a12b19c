package cli

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rtm0/floodmapper/internal/floodmap"
	"github.com/rtm0/floodmapper/internal/tiles"
)

// Viewer configuration keys.
const (
	KeyZoom      = "zoom"
	KeyTileURL   = "tile-url"
	KeyWidth     = "width"
	KeyMaxTiles  = "max-tiles"
	KeyNoBasemap = "no-basemap"
	KeyVerbose   = "verbose"
)

// EnvPrefix prefixes the environment variables read by the viewer.
const EnvPrefix = "FLOODMAP"

// ViewConfig holds the resolved viewer options.
type ViewConfig struct {
	Options   floodmap.Options
	TileURL   string
	NoBasemap bool
	Verbose   bool
}

// NewViewCmd creates the flood map viewer command. Flags may also be set
// through FLOODMAP_* environment variables, e.g. FLOODMAP_TILE_URL.
func NewViewCmd(newLogger func(verbose bool) *slog.Logger) *cobra.Command {
	v := viper.New()
	defaults := floodmap.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "view_flood_map <input> <output.png>",
		Short: "Render a two-class flood map over an OpenStreetMap basemap",
		Long: `Render a flood map raster (0 = non-flood, 1 = flood) reprojected to
geographic coordinates on top of OpenStreetMap tiles and write it as PNG.

Any raster format readable by GDAL is accepted.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindViewConfig(v, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ResolveViewConfig(v)
			logger := newLogger(cfg.Verbose)

			var tc *tiles.Client
			if !cfg.NoBasemap {
				var err error
				if tc, err = tiles.NewClient(logger, cfg.TileURL, 4); err != nil {
					return err
				}
				defer tc.Close()
			}
			return floodmap.NewViewer(logger, tc).View(cmd.Context(), args[0], args[1], cfg.Options)
		},
	}

	f := cmd.Flags()
	f.Int(KeyZoom, defaults.Zoom, "basemap zoom level")
	f.String(KeyTileURL, tiles.OSM, "XYZ tile URL template")
	f.Int(KeyWidth, defaults.Width, "map width in pixels")
	f.Int(KeyMaxTiles, defaults.MaxTiles, "maximum number of basemap tiles, the zoom is lowered to fit")
	f.Bool(KeyNoBasemap, false, "draw on white instead of fetching tiles")
	f.BoolP(KeyVerbose, "v", false, "enable debug logging")
	return cmd
}

var envReplacer = strings.NewReplacer("-", "_")

// bindViewConfig makes v resolve keys from the command flags, falling back
// to FLOODMAP_* environment variables.
func bindViewConfig(v *viper.Viper, cmd *cobra.Command) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()
	return nil
}

// ResolveViewConfig reads the viewer options from v.
func ResolveViewConfig(v *viper.Viper) ViewConfig {
	opts := floodmap.DefaultOptions()
	opts.Zoom = v.GetInt(KeyZoom)
	opts.Width = v.GetInt(KeyWidth)
	opts.MaxTiles = v.GetInt(KeyMaxTiles)
	return ViewConfig{
		Options:   opts,
		TileURL:   v.GetString(KeyTileURL),
		NoBasemap: v.GetBool(KeyNoBasemap),
		Verbose:   v.GetBool(KeyVerbose),
	}
}
