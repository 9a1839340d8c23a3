package simulate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcity/trafficflow/internal/domain"
)

func testSegments() []domain.RoadSegment {
	return []domain.RoadSegment{
		{ID: "1_2", Name: "Test Ave"},
		{ID: "2_3"},
		{ID: "3_4", Name: "B St"},
	}
}

func TestRunCardinalityAndOrder(t *testing.T) {
	segments := testSegments()
	samples := NewSimulator(domain.DefaultSpeedProfile(), 42).Run(segments)

	require.Len(t, samples, len(segments)*24)

	// Exactly one sample per (segment, hour), ordered by segment then hour
	i := 0
	for _, seg := range segments {
		for hour := 0; hour < 24; hour++ {
			assert.Equal(t, seg.ID, samples[i].SegmentID)
			assert.Equal(t, hour, samples[i].Hour)
			i++
		}
	}
}

func TestRunNeverBreachesFloor(t *testing.T) {
	// A distribution centered below zero forces constant clamping
	profile := domain.SpeedProfile{
		FloorKPH: 5,
		Buckets:  []domain.SpeedBucket{{Name: "jam", MeanKPH: 1, StdDevKPH: 10}},
	}
	require.NoError(t, profile.Validate())

	samples := NewSimulator(profile, 7).Run(testSegments())
	for _, s := range samples {
		assert.GreaterOrEqual(t, s.SpeedKPH, 5.0, "segment %s hour %d", s.SegmentID, s.Hour)
	}
}

func TestRunDeterministicUnderSeed(t *testing.T) {
	profile := domain.DefaultSpeedProfile()
	a := NewSimulator(profile, 42).Run(testSegments())
	b := NewSimulator(profile, 42).Run(testSegments())
	assert.Equal(t, a, b)

	c := NewSimulator(profile, 43).Run(testSegments())
	assert.NotEqual(t, a, c)
}

func TestRunFollowsProfileBuckets(t *testing.T) {
	// Tight distributions pin each draw close to its bucket mean
	profile := domain.SpeedProfile{
		FloorKPH: 5,
		Buckets: []domain.SpeedBucket{
			{Name: "rush", Hours: []int{7, 8, 9, 16, 17, 18}, MeanKPH: 18, StdDevKPH: 0.01},
			{Name: "offpeak", MeanKPH: 50, StdDevKPH: 0.01},
		},
	}
	require.NoError(t, profile.Validate())

	samples := NewSimulator(profile, 42).Run([]domain.RoadSegment{{ID: "1_2"}})
	for _, s := range samples {
		if profile.Buckets[0].Covers(s.Hour) {
			assert.InDelta(t, 18, s.SpeedKPH, 0.2, "hour %d", s.Hour)
		} else {
			assert.InDelta(t, 50, s.SpeedKPH, 0.2, "hour %d", s.Hour)
		}
	}
}

func TestRunCarriesRoadNames(t *testing.T) {
	samples := NewSimulator(domain.DefaultSpeedProfile(), 42).Run(testSegments())

	assert.Equal(t, "Test Ave", samples[0].RoadName)
	assert.Equal(t, domain.UnnamedRoad, samples[24].RoadName)
}

func TestRunRoundsToTenth(t *testing.T) {
	samples := NewSimulator(domain.DefaultSpeedProfile(), 42).Run(testSegments())
	for _, s := range samples {
		assert.Equal(t, math.Round(s.SpeedKPH*10)/10, s.SpeedKPH)
	}
}
