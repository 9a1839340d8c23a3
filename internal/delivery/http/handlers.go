package http

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/smartcity/trafficflow/internal/domain"
	"github.com/smartcity/trafficflow/internal/ml"
	"github.com/smartcity/trafficflow/internal/service"
	"github.com/smartcity/trafficflow/internal/viz"
)

// Handler serves the prediction API and the interactive map page over
// artifacts loaded once at startup
type Handler struct {
	predictor *service.Predictor
	samples   []domain.TrafficSample
	queryLog  domain.QueryLog
	saves     sync.WaitGroup
}

// NewHandler creates a new handler over the loaded predictor. samples may
// be nil when no simulated traffic table is available; the overlay endpoint
// then reports 404.
func NewHandler(predictor *service.Predictor, samples []domain.TrafficSample, queryLog domain.QueryLog) *Handler {
	return &Handler{
		predictor: predictor,
		samples:   samples,
		queryLog:  queryLog,
	}
}

// HealthCheck reports liveness and a summary of the loaded artifacts
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	logStatus := "ok"
	if err := h.queryLog.Health(c.Context()); err != nil {
		logStatus = err.Error()
	}

	return c.JSON(fiber.Map{
		"status":     "ok",
		"service":    "trafficflow",
		"segments":   h.predictor.SegmentCount(),
		"categories": h.predictor.Categories(),
		"samples":    len(h.samples),
		"query_log":  logStatus,
	})
}

// ListSegments returns the selectable named segments
func (h *Handler) ListSegments(c *fiber.Ctx) error {
	named := h.predictor.NamedSegments()
	options := make([]domain.SegmentOption, len(named))
	for i, seg := range named {
		options[i] = domain.SegmentOption{
			SegmentID:   seg.ID,
			Name:        seg.RoadName(),
			DisplayName: seg.DisplayName(),
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    options,
		"count":   len(options),
	})
}

// Predict answers one (segment, hour) query and returns the prediction
// with the segment's geometry in (lat, lon) order for direct rendering
func (h *Handler) Predict(c *fiber.Ctx) error {
	segmentID := c.Query("segment_id")
	if segmentID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "segment_id is required")
	}
	hour := c.QueryInt("hour", -1)

	result, err := h.predictor.Predict(segmentID, hour)
	if err != nil {
		return err
	}

	// Record the served prediction in the background; shutdown waits for
	// in-flight saves via Flush.
	h.saves.Add(1)
	go func() {
		defer h.saves.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.queryLog.SavePrediction(ctx, result); err != nil {
			log.Printf("Failed to save prediction log: %v", err)
		}
	}()

	var latlngs [][2]float64
	if seg, ok := h.predictor.Segment(segmentID); ok {
		latlngs = viz.LatLngs(seg.Geometry)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
		"latlngs": latlngs,
	})
}

// trafficFeature is one segment of the simulated overlay at an hour
type trafficFeature struct {
	SegmentID string       `json:"segment_id"`
	RoadName  string       `json:"road_name"`
	SpeedKPH  float64      `json:"speed_kph"`
	Level     domain.Level `json:"level"`
	Color     string       `json:"color"`
	LatLngs   [][2]float64 `json:"latlngs"`
}

// Traffic returns the simulated overlay features at one hour
func (h *Handler) Traffic(c *fiber.Ctx) error {
	if len(h.samples) == 0 {
		return fiber.NewError(fiber.StatusNotFound, "no simulated traffic loaded; run `trafficflow simulate` first")
	}
	hour := c.QueryInt("hour", 8)
	if hour < 0 || hour > 23 {
		return service.ErrInvalidHour
	}

	speeds := domain.SpeedsAtHour(h.samples, hour)
	features := make([]trafficFeature, 0, len(speeds))
	for id, speed := range speeds {
		seg, ok := h.predictor.Segment(id)
		if !ok {
			continue
		}
		level := domain.ClassifyLevel(speed)
		features = append(features, trafficFeature{
			SegmentID: id,
			RoadName:  seg.RoadName(),
			SpeedKPH:  speed,
			Level:     level,
			Color:     level.Color(),
			LatLngs:   viz.LatLngs(seg.Geometry),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"hour":    domain.HourLabel(hour),
		"data":    features,
		"count":   len(features),
	})
}

// Index serves the interactive map page
func (h *Handler) Index(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(indexPage)
}

// Flush waits for in-flight query log saves, bounded by the context
func (h *Handler) Flush(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		h.saves.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		log.Printf("Warning: query log flush interrupted: %v", ctx.Err())
	}
}

// ErrorHandler maps service errors to HTTP statuses with the API's
// standard error envelope
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fiberErr *fiber.Error
	switch {
	case errors.Is(err, ml.ErrUnknownCategory):
		code = fiber.StatusNotFound
		message = err.Error()
	case errors.Is(err, service.ErrInvalidHour):
		code = fiber.StatusBadRequest
		message = err.Error()
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
