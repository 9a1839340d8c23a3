package domain

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/smartcity/trafficflow/pkg/utils"
)

// UnnamedRoad is the display fallback for segments without a name tag
const UnnamedRoad = "Unnamed Road"

// RoadSegment is one directed road edge extracted from the street graph.
// Segments are immutable once extracted; re-running extraction replaces
// the whole table.
type RoadSegment struct {
	ID       string         `json:"segment_id"`
	Name     string         `json:"name,omitempty"`
	Geometry orb.LineString `json:"-"`
	LengthM  float64        `json:"length_m"`
	U        int64          `json:"u,omitempty"`
	V        int64          `json:"v,omitempty"`
}

// RoadName returns the segment name or the unnamed fallback
func (s RoadSegment) RoadName() string {
	if s.Name == "" {
		return UnnamedRoad
	}
	return s.Name
}

// DisplayName returns the selector label shown to users, e.g. "Main St (12_34)"
func (s RoadSegment) DisplayName() string {
	return fmt.Sprintf("%s (%s)", s.RoadName(), s.ID)
}

// Midpoint returns the middle coordinate of the geometry, used for map centering
func (s RoadSegment) Midpoint() orb.Point {
	if len(s.Geometry) == 0 {
		return orb.Point{WarsawCenterLon, WarsawCenterLat}
	}
	return s.Geometry[len(s.Geometry)/2]
}

// LineLengthMeters computes the haversine length of a (lon, lat) polyline
func LineLengthMeters(ls orb.LineString) float64 {
	var km float64
	for i := 1; i < len(ls); i++ {
		km += utils.Haversine(ls[i-1].Lat(), ls[i-1].Lon(), ls[i].Lat(), ls[i].Lon())
	}
	return km * 1000
}
