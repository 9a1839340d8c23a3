// Package cli wires the pipeline stages into a single trafficflow binary,
// one subcommand per stage. Stages communicate only through the artifacts
// on disk, so each command can run in isolation.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "trafficflow",
	Short: "City traffic speed prediction pipeline",
	Long: `Trafficflow downloads a city road network, extracts its segments,
simulates per-hour traffic speeds, trains a regression model and serves
speed predictions through a CLI and an interactive map.

Stages run in order: fetch, extract, simulate, train. Predictions are
then available through predict (one-shot), report (static overlay map)
and serve (interactive API + map UI).`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}
