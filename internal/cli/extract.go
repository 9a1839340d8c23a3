package cli

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/smartcity/trafficflow/internal/artifact"
	"github.com/smartcity/trafficflow/internal/config"
	"github.com/smartcity/trafficflow/internal/extract"
	"github.com/smartcity/trafficflow/internal/repository/csvstore"
	"github.com/smartcity/trafficflow/internal/roadnet"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Convert the cached road graph into the segment tables",
	RunE:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	graph, err := roadnet.LoadGraph(cfg.GraphPath)
	if err != nil {
		log.Println("No cached road graph found, run `trafficflow fetch` first")
		return err
	}

	segments, err := extract.Extract(graph)
	if err != nil {
		return err
	}
	named := extract.Named(segments)

	if err := csvstore.WriteSegments(cfg.SegmentsPath, segments); err != nil {
		return err
	}
	if err := csvstore.WriteSegments(cfg.NamedSegmentsPath, named); err != nil {
		return err
	}

	log.Printf("Extracted %d road segments (%d named) to %s", len(segments), len(named), cfg.SegmentsPath)
	return artifact.Record(cfg.ManifestPath, "extract", len(segments))
}
