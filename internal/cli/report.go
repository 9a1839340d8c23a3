package cli

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/smartcity/trafficflow/internal/config"
	"github.com/smartcity/trafficflow/internal/domain"
	"github.com/smartcity/trafficflow/internal/repository/csvstore"
	"github.com/smartcity/trafficflow/internal/service"
	"github.com/smartcity/trafficflow/internal/viz"
)

var (
	reportHour int
	reportMax  int
	reportOut  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a static map of simulated traffic at one hour",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().IntVar(&reportHour, "hour", 8, "hour of day (0-23)")
	reportCmd.Flags().IntVar(&reportMax, "max", 500, "maximum segments to draw")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "output HTML file (overrides REPORT_PATH)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	if reportHour < 0 || reportHour > 23 {
		return service.ErrInvalidHour
	}
	out := cfg.ReportPath
	if reportOut != "" {
		out = reportOut
	}

	segments, err := csvstore.ReadSegments(cfg.SegmentsPath)
	if err != nil {
		log.Println("No segment table found, run `trafficflow extract` first")
		return err
	}
	samples, err := csvstore.ReadTraffic(cfg.TrafficPath)
	if err != nil {
		log.Println("No traffic table found, run `trafficflow simulate` first")
		return err
	}

	speeds := domain.SpeedsAtHour(samples, reportHour)
	m := viz.NewOverlayMap(segments, speeds, reportHour, reportMax)
	if err := m.WriteFile(out); err != nil {
		return err
	}

	log.Printf("Rendered %d segments at %s to %s", len(m.Lines), domain.HourLabel(reportHour), out)
	return nil
}
