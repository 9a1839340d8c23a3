// Package service hosts the prediction core shared by every presentation
// surface: the CLI one-shot query, the static report and the HTTP API.
package service

import (
	"errors"
	"fmt"
	"sort"

	"github.com/smartcity/trafficflow/internal/domain"
	"github.com/smartcity/trafficflow/internal/ml"
	"github.com/smartcity/trafficflow/pkg/utils"
)

// ErrInvalidHour is returned for queries outside the 0-23 range
var ErrInvalidHour = errors.New("service: hour must be between 0 and 23")

// ErrUnknownSegment is returned for identifiers outside the trained set
var ErrUnknownSegment = ml.ErrUnknownCategory

// Predictor answers speed queries over model artifacts loaded once at
// process start. Nothing is mutated after construction, so it is safe
// for concurrent use.
type Predictor struct {
	forest   *ml.Forest
	encoder  *ml.Encoder
	segments map[string]domain.RoadSegment
	named    []domain.RoadSegment
}

// NewPredictor wires a trained model pair to the extracted segment table
func NewPredictor(forest *ml.Forest, encoder *ml.Encoder, segments []domain.RoadSegment) *Predictor {
	byID := make(map[string]domain.RoadSegment, len(segments))
	named := make([]domain.RoadSegment, 0, len(segments))
	for _, s := range segments {
		byID[s.ID] = s
		if s.Name != "" {
			named = append(named, s)
		}
	}
	sort.Slice(named, func(i, j int) bool {
		return named[i].DisplayName() < named[j].DisplayName()
	})

	return &Predictor{
		forest:   forest,
		encoder:  encoder,
		segments: byID,
		named:    named,
	}
}

// Predict returns the predicted speed and traffic level for a segment at
// an hour. Identifiers outside the encoder's category set are rejected,
// never coerced to a default encoding.
func (p *Predictor) Predict(segmentID string, hour int) (domain.PredictionResult, error) {
	if hour < 0 || hour > 23 {
		return domain.PredictionResult{}, ErrInvalidHour
	}

	code, err := p.encoder.Transform(segmentID)
	if err != nil {
		return domain.PredictionResult{}, err
	}

	speed, err := p.forest.Predict([]float64{float64(code), float64(hour)})
	if err != nil {
		return domain.PredictionResult{}, fmt.Errorf("service: prediction failed: %w", err)
	}
	speed = utils.RoundTo(speed, 1)

	roadName := domain.UnnamedRoad
	if seg, ok := p.segments[segmentID]; ok {
		roadName = seg.RoadName()
	}

	return domain.PredictionResult{
		SegmentID: segmentID,
		RoadName:  roadName,
		Hour:      hour,
		SpeedKPH:  speed,
		Level:     domain.ClassifyLevel(speed),
	}, nil
}

// Segment returns the segment record for an identifier
func (p *Predictor) Segment(id string) (domain.RoadSegment, bool) {
	seg, ok := p.segments[id]
	return seg, ok
}

// ResolveSegment accepts a raw identifier, a display name, or a bare road
// name and returns the matching segment
func (p *Predictor) ResolveSegment(ref string) (domain.RoadSegment, bool) {
	if seg, ok := p.segments[ref]; ok {
		return seg, true
	}
	for _, seg := range p.named {
		if seg.DisplayName() == ref || seg.Name == ref {
			return seg, true
		}
	}
	return domain.RoadSegment{}, false
}

// NamedSegments lists selectable segments sorted by display name
func (p *Predictor) NamedSegments() []domain.RoadSegment {
	return p.named
}

// SegmentCount returns the size of the loaded segment table
func (p *Predictor) SegmentCount() int {
	return len(p.segments)
}

// Categories returns the number of identifiers the model can serve
func (p *Predictor) Categories() int {
	return p.encoder.Len()
}
