package viz

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"

	"github.com/smartcity/trafficflow/internal/domain"
)

// Polyline is one colored line on a rendered map
type Polyline struct {
	LatLngs [][2]float64 `json:"latlngs"`
	Color   string       `json:"color"`
	Weight  int          `json:"weight"`
	Opacity float64      `json:"opacity"`
	Popup   string       `json:"popup"`
}

// Map is a renderable standalone Leaflet document
type Map struct {
	Title       string
	CenterLat   float64
	CenterLon   float64
	Zoom        int
	TileURL     string
	Attribution string
	Lines       []Polyline
}

// Tile layers used by the two map styles
const (
	positronTiles       = "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png"
	positronAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> &copy; <a href="https://carto.com/attributions">CARTO</a>`
	osmTiles            = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
	osmAttribution      = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
)

// missingSpeedColor is drawn for segments without a sample at the chosen hour
const missingSpeedColor = "gray"

// LatLngs converts a (lon, lat) line to Leaflet's (lat, lon) order
func LatLngs(ls orb.LineString) [][2]float64 {
	out := make([][2]float64, len(ls))
	for i, p := range ls {
		out[i] = [2]float64{p.Lat(), p.Lon()}
	}
	return out
}

// NewSegmentMap renders a single highlighted segment colored by its
// predicted speed, centered on the segment's middle coordinate
func NewSegmentMap(seg domain.RoadSegment, result domain.PredictionResult) *Map {
	center := seg.Midpoint()
	return &Map{
		Title:       fmt.Sprintf("%s at %s", seg.RoadName(), domain.HourLabel(result.Hour)),
		CenterLat:   center.Lat(),
		CenterLon:   center.Lon(),
		Zoom:        15,
		TileURL:     positronTiles,
		Attribution: positronAttribution,
		Lines: []Polyline{{
			LatLngs: LatLngs(seg.Geometry),
			Color:   result.Level.Color(),
			Weight:  7,
			Opacity: 0.8,
			Popup:   fmt.Sprintf("%s<br>Predicted: %.1f km/h (%s)", seg.RoadName(), result.SpeedKPH, result.Level),
		}},
	}
}

// NewOverlayMap renders up to maxLines segments colored by their simulated
// speed at one hour. Segments without a sample at that hour draw gray.
// The view is centered on the bound of the included geometry, falling back
// to the Warsaw center when nothing is drawable.
func NewOverlayMap(segments []domain.RoadSegment, speeds map[string]float64, hour, maxLines int) *Map {
	m := &Map{
		Title:       fmt.Sprintf("Simulated traffic at %s", domain.HourLabel(hour)),
		CenterLat:   domain.WarsawCenterLat,
		CenterLon:   domain.WarsawCenterLon,
		Zoom:        12,
		TileURL:     osmTiles,
		Attribution: osmAttribution,
	}

	var bound orb.Bound
	first := true
	for _, seg := range segments {
		if maxLines > 0 && len(m.Lines) >= maxLines {
			break
		}
		if len(seg.Geometry) < 2 {
			continue
		}

		color := missingSpeedColor
		popup := seg.RoadName()
		if speed, ok := speeds[seg.ID]; ok {
			color = domain.ClassifyLevel(speed).Color()
			popup = fmt.Sprintf("%s<br>%.1f km/h at %s", seg.RoadName(), speed, domain.HourLabel(hour))
		}

		m.Lines = append(m.Lines, Polyline{
			LatLngs: LatLngs(seg.Geometry),
			Color:   color,
			Weight:  3,
			Opacity: 0.7,
			Popup:   popup,
		})

		if first {
			bound = seg.Geometry.Bound()
			first = false
		} else {
			bound = bound.Union(seg.Geometry.Bound())
		}
	}

	if !first {
		center := bound.Center()
		m.CenterLat = center.Lat()
		m.CenterLon = center.Lon()
	}
	return m
}

// WriteHTML renders the standalone document
func (m *Map) WriteHTML(w io.Writer) error {
	cfg := struct {
		Center      [2]float64 `json:"center"`
		Zoom        int        `json:"zoom"`
		Tiles       string     `json:"tiles"`
		Attribution string     `json:"attribution"`
		Lines       []Polyline `json:"lines"`
	}{
		Center:      [2]float64{m.CenterLat, m.CenterLon},
		Zoom:        m.Zoom,
		Tiles:       m.TileURL,
		Attribution: m.Attribution,
		Lines:       m.Lines,
	}
	blob, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("viz: failed to marshal map config: %w", err)
	}

	data := struct {
		Title  string
		Config template.JS
	}{Title: m.Title, Config: template.JS(blob)}

	if err := mapTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("viz: failed to render map: %w", err)
	}
	return nil
}

// WriteFile renders the document to a file
func (m *Map) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("viz: failed to create report directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("viz: failed to create report file: %w", err)
	}
	defer f.Close()
	return m.WriteHTML(f)
}

var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
const config = {{.Config}};
const map = L.map('map').setView(config.center, config.zoom);
L.tileLayer(config.tiles, { attribution: config.attribution, maxZoom: 19 }).addTo(map);
for (const line of config.lines) {
  L.polyline(line.latlngs, {
    color: line.color,
    weight: line.weight,
    opacity: line.opacity
  }).bindPopup(line.popup).addTo(map);
}
</script>
</body>
</html>
`))
