// Command restructure_sig0 reorganizes SIG0 rasters into per-tile NetCDF archives.
package main

import (
	"os"

	"github.com/rtm0/floodmapper/internal/cli"
	"github.com/rtm0/floodmapper/internal/restructure"
)

func main() {
	logger := cli.NewLogger(os.Stderr, false)
	cmd := cli.NewRestructureCmd(restructure.SIG0, logger, func() *restructure.Pipeline {
		return cli.NewPipeline(logger)
	})
	if err := cmd.Execute(); err != nil {
		logger.Error("Could not restructure sig0 files", "err", err)
		os.Exit(1)
	}
}
