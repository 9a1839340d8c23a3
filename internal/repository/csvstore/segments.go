package csvstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"

	"github.com/smartcity/trafficflow/internal/domain"
)

// ErrMissingColumn indicates a required CSV column is absent
var ErrMissingColumn = errors.New("csvstore: missing required column")

var segmentColumns = []string{"segment_id", "name", "geometry", "length", "u", "v"}

// WriteSegments writes the segment table with WKT geometry
func WriteSegments(path string, segments []domain.RoadSegment) error {
	f, err := createFile(path)
	if err != nil {
		return fmt.Errorf("csvstore: failed to create segments file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(segmentColumns); err != nil {
		return fmt.Errorf("csvstore: failed to write segments header: %w", err)
	}
	for _, s := range segments {
		record := []string{
			s.ID,
			s.Name,
			wkt.MarshalString(s.Geometry),
			strconv.FormatFloat(s.LengthM, 'f', -1, 64),
			strconv.FormatInt(s.U, 10),
			strconv.FormatInt(s.V, 10),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("csvstore: failed to write segment %s: %w", s.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csvstore: failed to flush segments file: %w", err)
	}
	return nil
}

// ReadSegments loads the segment table. Rows with malformed or non-line
// geometry are skipped with a warning; a missing segment_id or geometry
// column halts the load. Rows lacking a usable length get one computed
// from their geometry.
func ReadSegments(path string) ([]domain.RoadSegment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvstore: failed to open segments file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("csvstore: failed to read segments header: %w", err)
	}
	col := headerIndex(header)
	for _, required := range []string{"segment_id", "geometry"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%w: %s in %s", ErrMissingColumn, required, path)
		}
	}

	var segments []domain.RoadSegment
	seen := make(map[string]struct{})
	skipped := 0
	line := 1

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvstore: failed to read segments row: %w", err)
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
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("csvstore: duplicate segment id %s at line %d", id, line)
		}

		geom, err := wkt.Unmarshal(get("geometry"))
		if err != nil {
			skipped++
			log.Printf("Warning: line %d: malformed geometry for segment %s: %v", line, id, err)
			continue
		}
		ls, ok := geom.(orb.LineString)
		if !ok || len(ls) < 2 {
			skipped++
			log.Printf("Warning: line %d: unsupported geometry for segment %s, skipping", line, id)
			continue
		}
		seen[id] = struct{}{}

		length, _ := strconv.ParseFloat(get("length"), 64)
		if length <= 0 {
			length = domain.LineLengthMeters(ls)
		}
		u, _ := strconv.ParseInt(get("u"), 10, 64)
		v, _ := strconv.ParseInt(get("v"), 10, 64)

		segments = append(segments, domain.RoadSegment{
			ID:       id,
			Name:     get("name"),
			Geometry: ls,
			LengthM:  length,
			U:        u,
			V:        v,
		})
	}

	if skipped > 0 {
		log.Printf("Warning: skipped %d malformed segment rows in %s", skipped, path)
	}
	return segments, nil
}

func headerIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	return col
}

func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}
