package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// TrafficSample is one simulated speed draw for a (segment, hour) pair
type TrafficSample struct {
	SegmentID string  `json:"segment_id"`
	RoadName  string  `json:"road_name"`
	Hour      int     `json:"hour"`
	SpeedKPH  float64 `json:"speed_kph"`
}

// HourLabel formats an hour of day as "HH:00"
func HourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// ParseHourLabel parses an "HH:00" label back to an hour of day.
// The minute part is optional, so "8" and "8:00" both parse to 8.
func ParseHourLabel(label string) (int, error) {
	part := strings.SplitN(strings.TrimSpace(label), ":", 2)[0]
	hour, err := strconv.Atoi(part)
	if err != nil {
		return 0, fmt.Errorf("domain: invalid hour label %q: %w", label, err)
	}
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("domain: hour %d out of range", hour)
	}
	return hour, nil
}

// SpeedsAtHour indexes samples taken at one hour by segment identifier
func SpeedsAtHour(samples []TrafficSample, hour int) map[string]float64 {
	speeds := make(map[string]float64)
	for _, s := range samples {
		if s.Hour == hour {
			speeds[s.SegmentID] = s.SpeedKPH
		}
	}
	return speeds
}

// Level is a qualitative traffic classification derived from speed
type Level string

const (
	LevelHeavy    Level = "heavy"
	LevelModerate Level = "moderate"
	LevelLight    Level = "light"
)

// Speed thresholds in km/h separating the traffic levels
const (
	HeavySpeedLimitKPH    = 15.0
	ModerateSpeedLimitKPH = 30.0
)

// ClassifyLevel maps a speed to its traffic level
func ClassifyLevel(speedKPH float64) Level {
	switch {
	case speedKPH < HeavySpeedLimitKPH:
		return LevelHeavy
	case speedKPH < ModerateSpeedLimitKPH:
		return LevelModerate
	default:
		return LevelLight
	}
}

// Color returns the map color drawn for the level
func (l Level) Color() string {
	switch l {
	case LevelHeavy:
		return "red"
	case LevelModerate:
		return "orange"
	default:
		return "green"
	}
}

// WarsawCenter coordinates, the default map center when no geometry is available
const (
	WarsawCenterLat = 52.2297
	WarsawCenterLon = 21.0122
)
