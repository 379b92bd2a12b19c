// Command view_flood_map renders a flood map over an OpenStreetMap basemap.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/rtm0/floodmapper/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := cli.NewLogger(os.Stderr, false)
	cmd := cli.NewViewCmd(func(verbose bool) *slog.Logger {
		if verbose {
			logger = cli.NewLogger(os.Stderr, true)
		}
		return logger
	})
	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.Error("Could not render flood map", "err", err)
		stop()
		os.Exit(1)
	}
}
