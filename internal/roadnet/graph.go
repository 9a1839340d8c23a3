package roadnet

import (
	"fmt"
	"log"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"

	"github.com/smartcity/trafficflow/internal/domain"
)

// Node is a single graph vertex with WGS84 coordinates
type Node struct {
	ID  int64
	Lat float64
	Lon float64
}

// Edge is a directed road edge between two junction nodes
type Edge struct {
	U        int64
	V        int64
	Key      int // ordinal disambiguating parallel edges between the same endpoints
	Name     string
	Highway  string
	Oneway   bool
	LengthM  float64
	Geometry orb.LineString // (lon, lat) order
}

// Graph is the drivable road network for one area
type Graph struct {
	Area  string
	Nodes map[int64]Node
	Edges []Edge
}

// Stats returns the node and edge counts
func (g *Graph) Stats() (nodes, edges int) {
	return len(g.Nodes), len(g.Edges)
}

// BuildGraph converts an Overpass response into a directed road graph.
// Ways are split at junction nodes (nodes shared by more than one way) so
// that each edge runs between two junctions. Two-way streets produce one
// edge per direction; parallel edges between the same endpoints get
// increasing keys.
func BuildGraph(area string, o *osm.OSM) (*Graph, error) {
	nodes := make(map[int64]Node, len(o.Nodes))
	for _, n := range o.Nodes {
		nodes[int64(n.ID)] = Node{ID: int64(n.ID), Lat: n.Lat, Lon: n.Lon}
	}

	// Count how many way traversals touch each node; shared nodes are junctions.
	usage := make(map[int64]int)
	for _, w := range o.Ways {
		if w.Tags.Find("highway") == "" {
			continue
		}
		for _, wn := range w.Nodes {
			usage[int64(wn.ID)]++
		}
	}

	g := &Graph{Area: area, Nodes: nodes}
	keys := make(map[[2]int64]int)
	dropped := 0

	for _, w := range o.Ways {
		if w.Tags.Find("highway") == "" || len(w.Nodes) < 2 {
			continue
		}
		name := w.Tags.Find("name")
		highway := w.Tags.Find("highway")
		oneway := isOneway(w.Tags)

		start := 0
		for i := 1; i < len(w.Nodes); i++ {
			if i != len(w.Nodes)-1 && usage[int64(w.Nodes[i].ID)] < 2 {
				continue
			}
			path := w.Nodes[start : i+1]
			ls, ok := lineString(nodes, path)
			if !ok {
				dropped++
				start = i
				continue
			}
			u, v := int64(path[0].ID), int64(path[len(path)-1].ID)
			g.addEdge(keys, u, v, name, highway, oneway, ls)
			if !oneway {
				g.addEdge(keys, v, u, name, highway, oneway, reversed(ls))
			}
			start = i
		}
	}

	if dropped > 0 {
		log.Printf("Warning: dropped %d way sections referencing missing nodes", dropped)
	}
	if len(g.Edges) == 0 {
		return nil, fmt.Errorf("roadnet: response contains no drivable ways")
	}
	return g, nil
}

func (g *Graph) addEdge(keys map[[2]int64]int, u, v int64, name, highway string, oneway bool, ls orb.LineString) {
	k := keys[[2]int64{u, v}]
	keys[[2]int64{u, v}] = k + 1
	g.Edges = append(g.Edges, Edge{
		U:        u,
		V:        v,
		Key:      k,
		Name:     name,
		Highway:  highway,
		Oneway:   oneway,
		LengthM:  domain.LineLengthMeters(ls),
		Geometry: ls,
	})
}

func lineString(nodes map[int64]Node, path []osm.WayNode) (orb.LineString, bool) {
	ls := make(orb.LineString, 0, len(path))
	for _, wn := range path {
		n, ok := nodes[int64(wn.ID)]
		if !ok {
			return nil, false
		}
		ls = append(ls, orb.Point{n.Lon, n.Lat})
	}
	return ls, true
}

func reversed(ls orb.LineString) orb.LineString {
	out := make(orb.LineString, len(ls))
	for i, p := range ls {
		out[len(ls)-1-i] = p
	}
	return out
}

func isOneway(tags osm.Tags) bool {
	switch tags.Find("oneway") {
	case "yes", "true", "1":
		return true
	}
	return tags.Find("junction") == "roundabout"
}
