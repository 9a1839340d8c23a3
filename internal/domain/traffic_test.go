package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyLevel(t *testing.T) {
	tests := []struct {
		speed float64
		want  Level
	}{
		{5.0, LevelHeavy},
		{14.9, LevelHeavy},
		{15.0, LevelModerate},
		{29.9, LevelModerate},
		{30.0, LevelLight},
		{55.0, LevelLight},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyLevel(tt.speed), "speed %.1f", tt.speed)
	}
}

func TestLevelColor(t *testing.T) {
	// Map colors must stay consistent with the prediction labels
	assert.Equal(t, "red", LevelHeavy.Color())
	assert.Equal(t, "orange", LevelModerate.Color())
	assert.Equal(t, "green", LevelLight.Color())
}

func TestHourLabel(t *testing.T) {
	assert.Equal(t, "08:00", HourLabel(8))
	assert.Equal(t, "00:00", HourLabel(0))
	assert.Equal(t, "23:00", HourLabel(23))
}

func TestParseHourLabel(t *testing.T) {
	t.Run("accepts padded and bare labels", func(t *testing.T) {
		for _, label := range []string{"08:00", "8:00", "8", " 08:00 "} {
			hour, err := ParseHourLabel(label)
			require.NoError(t, err, "label %q", label)
			assert.Equal(t, 8, hour)
		}
	})

	t.Run("rejects out-of-range and garbage", func(t *testing.T) {
		for _, label := range []string{"24:00", "-1:00", "noon", ""} {
			_, err := ParseHourLabel(label)
			assert.Error(t, err, "label %q", label)
		}
	})
}

func TestSpeedsAtHour(t *testing.T) {
	samples := []TrafficSample{
		{SegmentID: "1_2", Hour: 8, SpeedKPH: 17.5},
		{SegmentID: "1_2", Hour: 9, SpeedKPH: 21.0},
		{SegmentID: "2_3", Hour: 8, SpeedKPH: 12.0},
	}

	speeds := SpeedsAtHour(samples, 8)
	require.Len(t, speeds, 2)
	assert.Equal(t, 17.5, speeds["1_2"])
	assert.Equal(t, 12.0, speeds["2_3"])
}

func TestRoadSegmentNames(t *testing.T) {
	named := RoadSegment{ID: "1_2", Name: "Test Ave"}
	assert.Equal(t, "Test Ave", named.RoadName())
	assert.Equal(t, "Test Ave (1_2)", named.DisplayName())

	unnamed := RoadSegment{ID: "3_4"}
	assert.Equal(t, UnnamedRoad, unnamed.RoadName())
	assert.Equal(t, "Unnamed Road (3_4)", unnamed.DisplayName())
}
