package simulate

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/smartcity/trafficflow/internal/domain"
	"github.com/smartcity/trafficflow/pkg/utils"
)

// Simulator draws per-hour speed samples according to a speed profile.
// All draws share one seeded source, so a run is reproducible.
type Simulator struct {
	profile domain.SpeedProfile
	src     rand.Source
}

// NewSimulator creates a simulator for the given profile and seed
func NewSimulator(profile domain.SpeedProfile, seed uint64) *Simulator {
	return &Simulator{
		profile: profile,
		src:     rand.NewPCG(seed, 0),
	}
}

// Run produces exactly one sample per (segment, hour) pair, ordered by
// segment then hour
func (s *Simulator) Run(segments []domain.RoadSegment) []domain.TrafficSample {
	samples := make([]domain.TrafficSample, 0, len(segments)*24)
	for _, seg := range segments {
		for hour := 0; hour < 24; hour++ {
			samples = append(samples, domain.TrafficSample{
				SegmentID: seg.ID,
				RoadName:  seg.RoadName(),
				Hour:      hour,
				SpeedKPH:  s.draw(hour),
			})
		}
	}
	return samples
}

// draw samples one speed for the given hour, clamped to the profile floor
func (s *Simulator) draw(hour int) float64 {
	bucket := s.profile.BucketFor(hour)
	dist := distuv.Normal{Mu: bucket.MeanKPH, Sigma: bucket.StdDevKPH, Src: s.src}

	speed := dist.Rand()
	if speed < s.profile.FloorKPH {
		speed = s.profile.FloorKPH
	}
	return utils.RoundTo(speed, 1)
}
