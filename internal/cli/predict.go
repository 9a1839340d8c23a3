package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/smartcity/trafficflow/internal/config"
	"github.com/smartcity/trafficflow/internal/domain"
	"github.com/smartcity/trafficflow/internal/ml"
	"github.com/smartcity/trafficflow/internal/repository/csvstore"
	"github.com/smartcity/trafficflow/internal/service"
	"github.com/smartcity/trafficflow/internal/viz"
)

var (
	predictSegment string
	predictHour    int
	predictMapPath string
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict the speed for one segment at one hour",
	RunE:  runPredict,
}

func init() {
	predictCmd.Flags().StringVar(&predictSegment, "segment", "", "segment id, display name or road name")
	predictCmd.Flags().IntVar(&predictHour, "hour", 8, "hour of day (0-23)")
	predictCmd.Flags().StringVar(&predictMapPath, "map", "", "also write a highlighted segment map to this HTML file")
	predictCmd.MarkFlagRequired("segment")
	rootCmd.AddCommand(predictCmd)
}

// loadPredictor builds the query core from the persisted artifacts.
// Shared by the predict and serve presentation variants.
func loadPredictor(cfg *config.Config) (*service.Predictor, error) {
	forest, encoder, err := ml.LoadPair(cfg.ModelPath, cfg.EncoderPath)
	if err != nil {
		log.Println("No trained model found, run `trafficflow train` first")
		return nil, err
	}

	segments, err := csvstore.ReadSegments(cfg.SegmentsPath)
	if err != nil {
		log.Println("No segment table found, run `trafficflow extract` first")
		return nil, err
	}

	return service.NewPredictor(forest, encoder, segments), nil
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	predictor, err := loadPredictor(cfg)
	if err != nil {
		return err
	}

	seg, ok := predictor.ResolveSegment(predictSegment)
	if !ok {
		return fmt.Errorf("cli: no segment matches %q", predictSegment)
	}

	result, err := predictor.Predict(seg.ID, predictHour)
	if err != nil {
		return err
	}

	fmt.Printf("%s at %s: %.1f km/h (%s traffic)\n",
		result.RoadName, domain.HourLabel(result.Hour), result.SpeedKPH, result.Level)

	if predictMapPath != "" {
		m := viz.NewSegmentMap(seg, result)
		if err := m.WriteFile(predictMapPath); err != nil {
			return err
		}
		log.Printf("Saved segment map to %s", predictMapPath)
	}
	return nil
}
