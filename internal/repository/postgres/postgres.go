package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartcity/trafficflow/internal/domain"
)

// Repository implements domain.QueryLog backed by PostgreSQL.
// It only ever inserts; no pipeline stage reads the table back.
type Repository struct {
	pool *pgxpool.Pool
}

var _ domain.QueryLog = (*Repository)(nil)

// NewRepository creates a new PostgreSQL query log
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Init creates the query log table when it does not exist yet
func (r *Repository) Init(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS prediction_queries (
			id          BIGSERIAL PRIMARY KEY,
			segment_id  TEXT NOT NULL,
			road_name   TEXT,
			hour        INT NOT NULL,
			speed_kph   DOUBLE PRECISION NOT NULL,
			level       TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`

	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("postgres: failed to create query log table: %w", err)
	}
	return nil
}

// SavePrediction persists one served prediction
func (r *Repository) SavePrediction(ctx context.Context, result domain.PredictionResult) error {
	query := `
		INSERT INTO prediction_queries (segment_id, road_name, hour, speed_kph, level)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		result.SegmentID, result.RoadName, result.Hour, result.SpeedKPH, string(result.Level),
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save prediction: %w", err)
	}

	return nil
}

// Health checks database connectivity
func (r *Repository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
