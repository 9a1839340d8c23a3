package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepData builds a dataset where the target is a clean step function of
// the second feature, mimicking slow rush hours against fast nights.
func stepData(rows int) (features [][]float64, targets []float64) {
	for i := 0; i < rows; i++ {
		hour := float64(i % 24)
		speed := 50.0
		if hour >= 7 && hour <= 18 {
			speed = 18.0
		}
		features = append(features, []float64{float64(i % 3), hour})
		targets = append(targets, speed)
	}
	return features, targets
}

func TestFitForestLearnsStepFunction(t *testing.T) {
	features, targets := stepData(240)

	forest, err := FitForest(features, targets, DefaultForestConfig())
	require.NoError(t, err)

	slow, err := forest.Predict([]float64{0, 8})
	require.NoError(t, err)
	assert.InDelta(t, 18, slow, 4, "rush hour prediction")

	fast, err := forest.Predict([]float64{0, 2})
	require.NoError(t, err)
	assert.InDelta(t, 50, fast, 4, "night prediction")
}

func TestFitForestDeterministic(t *testing.T) {
	features, targets := stepData(120)
	cfg := DefaultForestConfig()

	a, err := FitForest(features, targets, cfg)
	require.NoError(t, err)
	b, err := FitForest(features, targets, cfg)
	require.NoError(t, err)

	pa, err := a.Predict([]float64{1, 8})
	require.NoError(t, err)
	pb, err := b.Predict([]float64{1, 8})
	require.NoError(t, err)
	assert.Equal(t, pa, pb)
}

func TestFitForestInputValidation(t *testing.T) {
	tests := []struct {
		name     string
		features [][]float64
		targets  []float64
		cfg      ForestConfig
		wantErr  string
	}{
		{
			name:    "no rows",
			cfg:     DefaultForestConfig(),
			wantErr: "no training rows",
		},
		{
			name:     "length mismatch",
			features: [][]float64{{1, 2}},
			targets:  []float64{1, 2},
			cfg:      DefaultForestConfig(),
			wantErr:  "mismatch",
		},
		{
			name:     "ragged rows",
			features: [][]float64{{1, 2}, {1}},
			targets:  []float64{1, 2},
			cfg:      DefaultForestConfig(),
			wantErr:  "ragged",
		},
		{
			name:     "zero trees",
			features: [][]float64{{1, 2}},
			targets:  []float64{1},
			cfg:      ForestConfig{NumTrees: 0, MaxDepth: 5, MinSamplesSplit: 2, MinSamplesLeaf: 1},
			wantErr:  "at least one tree",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FitForest(tt.features, tt.targets, tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestForestPredictValidation(t *testing.T) {
	features, targets := stepData(48)
	forest, err := FitForest(features, targets, DefaultForestConfig())
	require.NoError(t, err)

	_, err = forest.Predict([]float64{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2 features")

	empty := &Forest{}
	_, err = empty.Predict([]float64{1, 2})
	assert.Error(t, err)
}

func TestForestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultForestConfig().Validate())

	bad := DefaultForestConfig()
	bad.MinSamplesSplit = 1
	assert.Error(t, bad.Validate())

	bad = DefaultForestConfig()
	bad.MaxDepth = 0
	assert.Error(t, bad.Validate())

	bad = DefaultForestConfig()
	bad.MinSamplesLeaf = 0
	assert.Error(t, bad.Validate())
}

func TestTreeMinLeafRespected(t *testing.T) {
	// With a leaf minimum of half the rows, only the root split is possible
	features := [][]float64{{0, 1}, {0, 2}, {0, 3}, {0, 4}}
	targets := []float64{10, 10, 50, 50}

	tree := fitTree(features, targets, []int{0, 1, 2, 3}, TreeConfig{
		MaxDepth: 10, MinSamplesSplit: 2, MinSamplesLeaf: 2,
	})

	require.NotNil(t, tree.Root.Left)
	assert.InDelta(t, 10, tree.predict([]float64{0, 1}), 1e-9)
	assert.InDelta(t, 50, tree.predict([]float64{0, 4}), 1e-9)
}

func TestMeanAbsoluteError(t *testing.T) {
	assert.Equal(t, 0.0, MeanAbsoluteError(nil, nil))
	assert.InDelta(t, 1.0, MeanAbsoluteError([]float64{1, 2, 3}, []float64{2, 1, 4}), 1e-9)
	assert.InDelta(t, 0.0, MeanAbsoluteError([]float64{5, 5}, []float64{5, 5}), 1e-9)
}
