package viz

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcity/trafficflow/internal/domain"
)

func segment(id, name string) domain.RoadSegment {
	return domain.RoadSegment{
		ID:       id,
		Name:     name,
		Geometry: orb.LineString{{21.0, 52.0}, {21.002, 52.002}},
	}
}

func TestLatLngsTransposesCoordinates(t *testing.T) {
	// Source order is (lon, lat); Leaflet wants (lat, lon)
	ls := orb.LineString{{21.0122, 52.2297}, {21.02, 52.24}}
	got := LatLngs(ls)
	assert.Equal(t, [][2]float64{{52.2297, 21.0122}, {52.24, 21.02}}, got)
}

func TestNewSegmentMap(t *testing.T) {
	seg := segment("1_2", "Test Ave")
	result := domain.PredictionResult{
		SegmentID: "1_2", RoadName: "Test Ave", Hour: 8, SpeedKPH: 12.3, Level: domain.LevelHeavy,
	}

	m := NewSegmentMap(seg, result)

	require.Len(t, m.Lines, 1)
	assert.Equal(t, "red", m.Lines[0].Color, "heavy traffic draws red")
	assert.Equal(t, 7, m.Lines[0].Weight)
	assert.Equal(t, 15, m.Zoom)
	assert.Contains(t, m.Lines[0].Popup, "12.3")

	mid := seg.Midpoint()
	assert.Equal(t, mid.Lat(), m.CenterLat)
	assert.Equal(t, mid.Lon(), m.CenterLon)
}

func TestNewOverlayMap(t *testing.T) {
	segments := []domain.RoadSegment{
		segment("1_2", "Heavy St"),
		segment("2_3", "Moderate St"),
		segment("3_4", "Light St"),
		segment("4_5", "No Data St"),
	}
	speeds := map[string]float64{
		"1_2": 14.9,
		"2_3": 15.0,
		"3_4": 30.0,
	}

	m := NewOverlayMap(segments, speeds, 8, 500)
	require.Len(t, m.Lines, 4)

	// Colors follow the same thresholds as the prediction labels
	assert.Equal(t, "red", m.Lines[0].Color)
	assert.Equal(t, "orange", m.Lines[1].Color)
	assert.Equal(t, "green", m.Lines[2].Color)
	assert.Equal(t, "gray", m.Lines[3].Color, "segments without a sample draw gray")

	assert.Equal(t, 12, m.Zoom)
	assert.InDelta(t, 52.001, m.CenterLat, 0.01, "centered on the geometry bound")
}

func TestNewOverlayMapCapsLines(t *testing.T) {
	var segments []domain.RoadSegment
	speeds := map[string]float64{}
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("%d_%d", i, i+1)
		segments = append(segments, segment(id, "St"))
		speeds[id] = 25
	}

	m := NewOverlayMap(segments, speeds, 8, 5)
	assert.Len(t, m.Lines, 5)
}

func TestNewOverlayMapFallsBackToWarsaw(t *testing.T) {
	m := NewOverlayMap(nil, nil, 8, 500)
	assert.Equal(t, domain.WarsawCenterLat, m.CenterLat)
	assert.Equal(t, domain.WarsawCenterLon, m.CenterLon)
	assert.Empty(t, m.Lines)
}

func TestWriteHTML(t *testing.T) {
	seg := segment("1_2", "Test Ave")
	result := domain.PredictionResult{
		SegmentID: "1_2", RoadName: "Test Ave", Hour: 8, SpeedKPH: 12.3, Level: domain.LevelHeavy,
	}
	m := NewSegmentMap(seg, result)

	var buf bytes.Buffer
	require.NoError(t, m.WriteHTML(&buf))

	html := buf.String()
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "leaflet")
	assert.Contains(t, html, `"color":"red"`)
	assert.Contains(t, html, "[52.002,21.002]", "latlngs are transposed in the payload")
}

func TestWriteFile(t *testing.T) {
	seg := segment("1_2", "Test Ave")
	m := NewSegmentMap(seg, domain.PredictionResult{SpeedKPH: 40, Level: domain.LevelLight})

	path := filepath.Join(t.TempDir(), "maps", "out.html")
	require.NoError(t, m.WriteFile(path))

	blob, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(blob), "L.polyline")
}
