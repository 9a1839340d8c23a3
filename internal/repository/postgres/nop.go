package postgres

import (
	"context"

	"github.com/smartcity/trafficflow/internal/domain"
)

// NopRepository implements domain.QueryLog when no database is configured.
// Predictions are simply not recorded.
type NopRepository struct{}

var _ domain.QueryLog = (*NopRepository)(nil)

// NewNopRepository creates a new no-op query log
func NewNopRepository() *NopRepository {
	return &NopRepository{}
}

// SavePrediction is a no-op without a database
func (r *NopRepository) SavePrediction(ctx context.Context, result domain.PredictionResult) error {
	return nil
}

// Health always returns nil without a database
func (r *NopRepository) Health(ctx context.Context) error {
	return nil
}
