package domain

import (
	"context"
)

// QueryLog defines the interface for recording served predictions.
// The domain defines the interface; storage implementations live elsewhere.
// The pipeline never reads this data back: it is a write-only audit sink,
// and running without one changes no observable behavior.
type QueryLog interface {
	// SavePrediction persists one served prediction
	SavePrediction(ctx context.Context, result PredictionResult) error

	// Health checks connectivity of the underlying store
	Health(ctx context.Context) error
}
