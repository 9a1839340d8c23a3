package cli

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/smartcity/trafficflow/internal/artifact"
	"github.com/smartcity/trafficflow/internal/config"
	"github.com/smartcity/trafficflow/internal/repository/csvstore"
	"github.com/smartcity/trafficflow/internal/simulate"
)

var (
	simulateSeed    uint64
	simulateProfile string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Synthesize per-hour traffic speeds for every segment",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().Uint64Var(&simulateSeed, "seed", 0, "random seed (overrides SEED)")
	simulateCmd.Flags().StringVar(&simulateProfile, "profile", "", "speed profile YAML (overrides PROFILE_PATH)")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	seed := cfg.Seed
	if cmd.Flags().Changed("seed") {
		seed = simulateSeed
	}
	profilePath := cfg.ProfilePath
	if cmd.Flags().Changed("profile") {
		profilePath = simulateProfile
	}

	profile, err := config.LoadProfile(profilePath)
	if err != nil {
		return err
	}

	segments, err := csvstore.ReadSegments(cfg.SegmentsPath)
	if err != nil {
		log.Println("No segment table found, run `trafficflow extract` first")
		return err
	}

	samples := simulate.NewSimulator(profile, seed).Run(segments)
	if err := csvstore.WriteTraffic(cfg.TrafficPath, samples); err != nil {
		return err
	}

	log.Printf("Simulated %d speed samples (%d segments x 24 hours, seed %d) to %s",
		len(samples), len(segments), seed, cfg.TrafficPath)
	return artifact.Record(cfg.ManifestPath, "simulate", len(samples))
}
