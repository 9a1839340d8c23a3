package extract

import (
	"fmt"
	"log"
	"sort"

	"github.com/smartcity/trafficflow/internal/domain"
	"github.com/smartcity/trafficflow/internal/roadnet"
)

// SegmentID derives the stable identifier for an edge from its endpoint
// pair. Parallel edges between the same endpoints carry their key as a
// suffix, so re-extraction from the same graph yields identical identifiers.
func SegmentID(u, v int64, key int) string {
	if key == 0 {
		return fmt.Sprintf("%d_%d", u, v)
	}
	return fmt.Sprintf("%d_%d_%d", u, v, key)
}

// Extract converts graph edges into road segment records, one per directed
// edge, ordered by (U, V, Key). Edges with malformed geometry are skipped
// with a warning; a duplicate identifier aborts the run since it would
// poison every downstream stage.
func Extract(g *roadnet.Graph) ([]domain.RoadSegment, error) {
	edges := make([]roadnet.Edge, len(g.Edges))
	copy(edges, g.Edges)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].U != edges[j].U {
			return edges[i].U < edges[j].U
		}
		if edges[i].V != edges[j].V {
			return edges[i].V < edges[j].V
		}
		return edges[i].Key < edges[j].Key
	})

	segments := make([]domain.RoadSegment, 0, len(edges))
	seen := make(map[string]struct{}, len(edges))
	skipped := 0

	for _, e := range edges {
		id := SegmentID(e.U, e.V, e.Key)
		if len(e.Geometry) < 2 {
			skipped++
			log.Printf("Warning: skipping segment %s: geometry has %d points", id, len(e.Geometry))
			continue
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("extract: duplicate segment id %s", id)
		}
		seen[id] = struct{}{}

		length := e.LengthM
		if length <= 0 {
			length = domain.LineLengthMeters(e.Geometry)
		}

		segments = append(segments, domain.RoadSegment{
			ID:       id,
			Name:     e.Name,
			Geometry: e.Geometry,
			LengthM:  length,
			U:        e.U,
			V:        e.V,
		})
	}

	if skipped > 0 {
		log.Printf("Warning: skipped %d segments with malformed geometry", skipped)
	}
	return segments, nil
}

// Named filters to segments carrying a road name
func Named(segments []domain.RoadSegment) []domain.RoadSegment {
	named := make([]domain.RoadSegment, 0, len(segments))
	for _, s := range segments {
		if s.Name != "" {
			named = append(named, s)
		}
	}
	return named
}
