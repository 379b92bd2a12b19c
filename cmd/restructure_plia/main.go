// Command restructure_plia reorganizes PLIA rasters into per-tile NetCDF archives.
package main

import (
	"os"

	"github.com/rtm0/floodmapper/internal/cli"
	"github.com/rtm0/floodmapper/internal/restructure"
)

func main() {
	logger := cli.NewLogger(os.Stderr, false)
	cmd := cli.NewRestructureCmd(restructure.PLIA, logger, func() *restructure.Pipeline {
		return cli.NewPipeline(logger)
	})
	if err := cmd.Execute(); err != nil {
		logger.Error("Could not restructure plia files", "err", err)
		os.Exit(1)
	}
}
