package cli

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/smartcity/trafficflow/internal/artifact"
	"github.com/smartcity/trafficflow/internal/config"
	"github.com/smartcity/trafficflow/internal/roadnet"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download or load the cached road graph",
	RunE:  runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	client := roadnet.NewClient(cfg.OverpassURL)
	graph, cached, err := roadnet.EnsureGraph(cmd.Context(), client, cfg.AreaName, cfg.GraphPath)
	if err != nil {
		return err
	}

	if cached {
		log.Printf("Loaded cached road graph from %s", cfg.GraphPath)
	} else {
		log.Printf("Downloaded road network for %s, cached at %s", cfg.AreaName, cfg.GraphPath)
	}

	nodes, edges := graph.Stats()
	log.Printf("Network statistics: %d nodes, %d edges", nodes, edges)

	return artifact.Record(cfg.ManifestPath, "fetch", edges)
}
