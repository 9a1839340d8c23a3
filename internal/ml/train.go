package ml

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/smartcity/trafficflow/internal/domain"
)

// TrainingResult summarizes a completed training run
type TrainingResult struct {
	Forest       *Forest
	Encoder      *Encoder
	TrainRows    int
	TestRows     int
	MAE          float64
	MeanSpeedKPH float64
}

// Train fits the encoder over every identifier in the sample table, builds
// (encoded segment, hour) feature rows, holds out 20% of rows with a
// deterministic shuffle, fits the forest on the rest, and reports the
// held-out mean absolute error.
//
// The encoder is fitted before the split so its category set covers the
// whole table; it is only ever valid together with the forest it was
// trained beside.
func Train(samples []domain.TrafficSample, cfg ForestConfig) (*TrainingResult, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("ml: no training samples")
	}

	ids := make([]string, len(samples))
	for i, s := range samples {
		ids[i] = s.SegmentID
	}
	encoder := FitEncoder(ids)

	features := make([][]float64, len(samples))
	targets := make([]float64, len(samples))
	for i, s := range samples {
		if s.Hour < 0 || s.Hour > 23 {
			return nil, fmt.Errorf("ml: sample %d has invalid hour %d", i, s.Hour)
		}
		code, err := encoder.Transform(s.SegmentID)
		if err != nil {
			return nil, fmt.Errorf("ml: failed to encode sample %d: %w", i, err)
		}
		features[i] = []float64{float64(code), float64(s.Hour)}
		targets[i] = s.SpeedKPH
	}

	trainIdx, testIdx := TrainTestSplit(len(samples), 0.2, cfg.Seed)
	if len(trainIdx) == 0 {
		return nil, fmt.Errorf("ml: split left no training rows")
	}

	trainFeatures := make([][]float64, len(trainIdx))
	trainTargets := make([]float64, len(trainIdx))
	for i, row := range trainIdx {
		trainFeatures[i] = features[row]
		trainTargets[i] = targets[row]
	}

	forest, err := FitForest(trainFeatures, trainTargets, cfg)
	if err != nil {
		return nil, err
	}

	var mae float64
	if len(testIdx) > 0 {
		preds := make([]float64, len(testIdx))
		actual := make([]float64, len(testIdx))
		for i, row := range testIdx {
			p, err := forest.Predict(features[row])
			if err != nil {
				return nil, err
			}
			preds[i] = p
			actual[i] = targets[row]
		}
		mae = MeanAbsoluteError(preds, actual)
	}

	return &TrainingResult{
		Forest:       forest,
		Encoder:      encoder,
		TrainRows:    len(trainIdx),
		TestRows:     len(testIdx),
		MAE:          mae,
		MeanSpeedKPH: stat.Mean(targets, nil),
	}, nil
}
