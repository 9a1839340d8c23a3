package domain

// PredictionResult is the outcome of a single speed query.
// Results are derived per query and never persisted by the pipeline.
type PredictionResult struct {
	SegmentID string  `json:"segment_id"`
	RoadName  string  `json:"road_name"`
	Hour      int     `json:"hour"`
	SpeedKPH  float64 `json:"speed_kph"`
	Level     Level   `json:"level"`
}

// PredictionResponse wraps a prediction with metadata
type PredictionResponse struct {
	Data    PredictionResult `json:"data"`
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
}

// SegmentOption is one selectable entry for the interactive surface
type SegmentOption struct {
	SegmentID   string `json:"segment_id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}
