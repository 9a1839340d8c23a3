package ml

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"
)

// ForestConfig controls ensemble training
type ForestConfig struct {
	NumTrees        int
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	Seed            uint64
}

// DefaultForestConfig returns the standard training setup: a bagged
// ensemble with bounded depth and minimum split/leaf sizes to limit
// overfitting on a small feature space.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		NumTrees:        100,
		MaxDepth:        20,
		MinSamplesSplit: 10,
		MinSamplesLeaf:  5,
		Seed:            42,
	}
}

// Validate checks the configuration is trainable
func (c ForestConfig) Validate() error {
	if c.NumTrees <= 0 {
		return fmt.Errorf("ml: forest needs at least one tree, got %d", c.NumTrees)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("ml: max depth must be positive, got %d", c.MaxDepth)
	}
	if c.MinSamplesSplit < 2 {
		return fmt.Errorf("ml: min samples split must be at least 2, got %d", c.MinSamplesSplit)
	}
	if c.MinSamplesLeaf < 1 {
		return fmt.Errorf("ml: min samples leaf must be at least 1, got %d", c.MinSamplesLeaf)
	}
	return nil
}

// Forest is a bagged ensemble of regression trees
type Forest struct {
	Trees       []*Tree
	NumFeatures int
}

// FitForest trains the ensemble. Every tree is grown on a bootstrap sample
// drawn from a generator seeded by cfg.Seed, so training is deterministic
// for a given dataset and configuration.
func FitForest(features [][]float64, targets []float64, cfg ForestConfig) (*Forest, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("ml: no training rows")
	}
	if len(features) != len(targets) {
		return nil, fmt.Errorf("ml: features/targets length mismatch: %d != %d", len(features), len(targets))
	}
	numFeatures := len(features[0])
	for _, row := range features {
		if len(row) != numFeatures {
			return nil, fmt.Errorf("ml: ragged feature rows")
		}
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, 0))
	treeCfg := TreeConfig{
		MaxDepth:        cfg.MaxDepth,
		MinSamplesSplit: cfg.MinSamplesSplit,
		MinSamplesLeaf:  cfg.MinSamplesLeaf,
	}

	n := len(features)
	trees := make([]*Tree, cfg.NumTrees)
	for t := range trees {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = rng.IntN(n)
		}
		trees[t] = fitTree(features, targets, idx, treeCfg)
	}

	return &Forest{Trees: trees, NumFeatures: numFeatures}, nil
}

// Predict averages the trees' predictions for one feature vector
func (f *Forest) Predict(x []float64) (float64, error) {
	if len(f.Trees) == 0 {
		return 0, fmt.Errorf("ml: forest has no trees")
	}
	if len(x) != f.NumFeatures {
		return 0, fmt.Errorf("ml: expected %d features, got %d", f.NumFeatures, len(x))
	}

	preds := make([]float64, len(f.Trees))
	for i, t := range f.Trees {
		preds[i] = t.predict(x)
	}
	return stat.Mean(preds, nil), nil
}
