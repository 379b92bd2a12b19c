package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rtm0/floodmapper/internal/nc"
	"github.com/rtm0/floodmapper/internal/raster"
	"github.com/rtm0/floodmapper/internal/restructure"
	"github.com/rtm0/floodmapper/internal/yeoda"
)

// argHelp describes the fourth positional argument per product.
var argHelp = map[string]struct{ name, help string }{
	restructure.HParam.Name: {"tag", `tag of the orbits to process, i.e. "D080"`},
	restructure.PLIA.Name:   {"tag", `tag of the orbits to process, i.e. "D080"`},
	restructure.SIG0.Name:   {"eventtime", `datetime of the flood event, i.e. "2018-02-28 04:39:08"`},
}

// NewRestructureCmd creates the command restructuring prod. newPipeline is
// called once the arguments are validated.
func NewRestructureCmd(prod restructure.Product, logger *slog.Logger, newPipeline func() *restructure.Pipeline) *cobra.Command {
	arg := argHelp[prod.Name]
	return &cobra.Command{
		Use:   fmt.Sprintf("restructure_%s <root> <out> <tile> <%s>", prod.Name, arg.name),
		Short: fmt.Sprintf("Restructure %s tiffs to be loaded as local openEO dataset.", prod.Name),
		Long: fmt.Sprintf(`Restructure %s tiffs to be loaded as local openEO dataset.

  root   root path to the yeoda file structure
  out    root path to output structure
  tile   long name of tile to process, i.e. "EU020M_E051N015T3"
  %-6s %s

Archives are written to <out>/%s/EQUI7_<GRID>/<TILE>/.`, prod.Name, arg.name, arg.help, prod.DataVersion),
		Args:          cobra.ExactArgs(4),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := restructure.Request{Root: args[0], Out: args[1], Tile: args[2], Arg: args[3]}
			res, err := newPipeline().Run(prod, req)
			if err != nil {
				return err
			}
			logger.Info("Done", "product", prod.Name, "matched", res.Matched, "written", len(res.Files), "out", res.OutDir)
			return nil
		},
	}
}

// NewPipeline wires the file system discoverer, the GDAL reader and the
// NetCDF writer.
func NewPipeline(logger *slog.Logger) *restructure.Pipeline {
	return restructure.New(logger, yeoda.NewFileSystem(logger), raster.NewGDAL(logger), nc.NewWriter(logger))
}
