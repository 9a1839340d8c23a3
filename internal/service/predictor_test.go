package service

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcity/trafficflow/internal/domain"
	"github.com/smartcity/trafficflow/internal/ml"
	"github.com/smartcity/trafficflow/internal/simulate"
)

// trainedPredictor runs the simulate and train stages in memory over the
// given segments and wires the result into a Predictor.
func trainedPredictor(t *testing.T, segments []domain.RoadSegment) *Predictor {
	t.Helper()

	samples := simulate.NewSimulator(domain.DefaultSpeedProfile(), 42).Run(segments)
	result, err := ml.Train(samples, ml.DefaultForestConfig())
	require.NoError(t, err)

	return NewPredictor(result.Forest, result.Encoder, segments)
}

func testSegments() []domain.RoadSegment {
	geometry := orb.LineString{{21.0, 52.0}, {21.001, 52.001}}
	return []domain.RoadSegment{
		{ID: "1_2", Name: "Test Ave", Geometry: geometry, LengthM: 140},
		{ID: "2_3", Name: "B St", Geometry: geometry, LengthM: 150},
		{ID: "3_4", Geometry: geometry, LengthM: 90},
	}
}

func TestPredictorPredict(t *testing.T) {
	p := trainedPredictor(t, testSegments())

	result, err := p.Predict("1_2", 8)
	require.NoError(t, err)

	assert.Equal(t, "1_2", result.SegmentID)
	assert.Equal(t, "Test Ave", result.RoadName)
	assert.Equal(t, 8, result.Hour)
	assert.Greater(t, result.SpeedKPH, 0.0)
	assert.Equal(t, domain.ClassifyLevel(result.SpeedKPH), result.Level)
}

func TestPredictorRejectsUnknownSegment(t *testing.T) {
	p := trainedPredictor(t, testSegments())

	// A held-out identifier must fail explicitly, never yield a number
	_, err := p.Predict("99_100", 8)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownSegment)
	assert.ErrorIs(t, err, ml.ErrUnknownCategory)
}

func TestPredictorRejectsInvalidHour(t *testing.T) {
	p := trainedPredictor(t, testSegments())

	for _, hour := range []int{-1, 24, 100} {
		_, err := p.Predict("1_2", hour)
		assert.ErrorIs(t, err, ErrInvalidHour, "hour %d", hour)
	}
}

func TestPredictorRushHourScenario(t *testing.T) {
	// One segment named "Test Ave" with id "1_2": simulate its 24 samples,
	// train, then query the morning rush. The profile draws rush speeds
	// from N(18, 5) floored at 5, so the prediction lands well below the
	// free-flow band and labels heavy or moderate.
	segments := []domain.RoadSegment{{
		ID:       "1_2",
		Name:     "Test Ave",
		Geometry: orb.LineString{{21.0, 52.0}, {21.001, 52.001}},
	}}
	p := trainedPredictor(t, segments)

	result, err := p.Predict("1_2", 8)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.SpeedKPH, 3.0)
	assert.LessOrEqual(t, result.SpeedKPH, 33.0)
	assert.Contains(t, []domain.Level{domain.LevelHeavy, domain.LevelModerate}, result.Level)
	assert.Equal(t, "Test Ave", result.RoadName)
}

func TestPredictorNamedSegments(t *testing.T) {
	p := trainedPredictor(t, testSegments())

	named := p.NamedSegments()
	require.Len(t, named, 2)
	assert.Equal(t, "B St", named[0].Name, "sorted by display name")
	assert.Equal(t, "Test Ave", named[1].Name)
}

func TestPredictorResolveSegment(t *testing.T) {
	p := trainedPredictor(t, testSegments())

	tests := []struct {
		ref    string
		wantID string
		found  bool
	}{
		{"1_2", "1_2", true},
		{"Test Ave", "1_2", true},
		{"Test Ave (1_2)", "1_2", true},
		{"3_4", "3_4", true},
		{"Missing Rd", "", false},
	}
	for _, tt := range tests {
		seg, ok := p.ResolveSegment(tt.ref)
		assert.Equal(t, tt.found, ok, "ref %q", tt.ref)
		if tt.found {
			assert.Equal(t, tt.wantID, seg.ID)
		}
	}
}

func TestPredictorCounts(t *testing.T) {
	p := trainedPredictor(t, testSegments())
	assert.Equal(t, 3, p.SegmentCount())
	assert.Equal(t, 3, p.Categories())

	seg, ok := p.Segment("2_3")
	require.True(t, ok)
	assert.Equal(t, "B St", seg.Name)
}
