// Command restructure_hparam reorganizes HParam rasters into per-tile NetCDF archives.
package main

import (
	"os"

	"github.com/rtm0/floodmapper/internal/cli"
	"github.com/rtm0/floodmapper/internal/restructure"
)

func main() {
	logger := cli.NewLogger(os.Stderr, false)
	cmd := cli.NewRestructureCmd(restructure.HParam, logger, func() *restructure.Pipeline {
		return cli.NewPipeline(logger)
	})
	if err := cmd.Execute(); err != nil {
		logger.Error("Could not restructure hparam files", "err", err)
		os.Exit(1)
	}
}
