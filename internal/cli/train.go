package cli

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/smartcity/trafficflow/internal/artifact"
	"github.com/smartcity/trafficflow/internal/config"
	"github.com/smartcity/trafficflow/internal/ml"
	"github.com/smartcity/trafficflow/internal/repository/csvstore"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the speed model on the simulated traffic table",
	RunE:  runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	samples, err := csvstore.ReadTraffic(cfg.TrafficPath)
	if err != nil {
		log.Println("No traffic table found, run `trafficflow simulate` first")
		return err
	}

	log.Printf("Training on %d samples...", len(samples))
	result, err := ml.Train(samples, ml.DefaultForestConfig())
	if err != nil {
		return err
	}

	if err := ml.SavePair(result.Forest, result.Encoder, cfg.ModelPath, cfg.EncoderPath); err != nil {
		return err
	}

	log.Printf("Trained on %d rows, evaluated on %d held-out rows", result.TrainRows, result.TestRows)
	log.Printf("Mean absolute error: %.2f km/h (mean speed %.1f km/h)", result.MAE, result.MeanSpeedKPH)
	log.Printf("Saved model to %s and encoder to %s", cfg.ModelPath, cfg.EncoderPath)

	return artifact.Record(cfg.ManifestPath, "train", result.TrainRows+result.TestRows)
}
