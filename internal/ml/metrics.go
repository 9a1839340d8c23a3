package ml

import (
	"gonum.org/v1/gonum/floats"
)

// MeanAbsoluteError returns the average absolute difference between
// predicted and actual values. Returns 0 for empty input.
func MeanAbsoluteError(predicted, actual []float64) float64 {
	if len(predicted) == 0 || len(predicted) != len(actual) {
		return 0
	}
	// L1 distance over the pair of vectors is the summed absolute error
	return floats.Distance(predicted, actual, 1) / float64(len(predicted))
}
