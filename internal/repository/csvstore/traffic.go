package csvstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/smartcity/trafficflow/internal/domain"
)

var trafficColumns = []string{"segment_id", "road_name", "hour", "speed_kph"}

// WriteTraffic writes simulated samples with hours formatted as "HH:00"
func WriteTraffic(path string, samples []domain.TrafficSample) error {
	f, err := createFile(path)
	if err != nil {
		return fmt.Errorf("csvstore: failed to create traffic file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(trafficColumns); err != nil {
		return fmt.Errorf("csvstore: failed to write traffic header: %w", err)
	}
	for _, s := range samples {
		record := []string{
			s.SegmentID,
			s.RoadName,
			domain.HourLabel(s.Hour),
			strconv.FormatFloat(s.SpeedKPH, 'f', 1, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("csvstore: failed to write sample for %s: %w", s.SegmentID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csvstore: failed to flush traffic file: %w", err)
	}
	return nil
}

// ReadTraffic loads simulated samples. Rows with unparsable hours or
// speeds are skipped with a warning; missing columns halt the load.
func ReadTraffic(path string) ([]domain.TrafficSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvstore: failed to open traffic file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("csvstore: failed to read traffic header: %w", err)
	}
	col := headerIndex(header)
	for _, required := range []string{"segment_id", "hour", "speed_kph"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%w: %s in %s", ErrMissingColumn, required, path)
		}
	}

	var samples []domain.TrafficSample
	skipped := 0
	line := 1

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvstore: failed to read traffic row: %w", err)
		}
		line++

		get := func(key string) string {
			i, ok := col[key]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		id := get("segment_id")
		if id == "" {
			skipped++
			log.Printf("Warning: line %d: missing segment id, skipping", line)
			continue
		}
		hour, err := domain.ParseHourLabel(get("hour"))
		if err != nil {
			skipped++
			log.Printf("Warning: line %d: %v, skipping", line, err)
			continue
		}
		speed, err := strconv.ParseFloat(get("speed_kph"), 64)
		if err != nil {
			skipped++
			log.Printf("Warning: line %d: invalid speed %q, skipping", line, get("speed_kph"))
			continue
		}

		samples = append(samples, domain.TrafficSample{
			SegmentID: id,
			RoadName:  get("road_name"),
			Hour:      hour,
			SpeedKPH:  speed,
		})
	}

	if skipped > 0 {
		log.Printf("Warning: skipped %d malformed traffic rows in %s", skipped, path)
	}
	return samples, nil
}
