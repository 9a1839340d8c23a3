package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/smartcity/trafficflow/internal/domain"
)

// Config holds paths and settings shared by every pipeline stage.
// All values come from the environment with sensible defaults; there is
// no other configuration surface beyond the optional speed profile file.
type Config struct {
	AreaName    string
	OverpassURL string
	Seed        uint64

	GraphPath         string
	SegmentsPath      string
	NamedSegmentsPath string
	TrafficPath       string
	ModelPath         string
	EncoderPath       string
	ProfilePath       string
	ReportPath        string
	ManifestPath      string

	Port        string
	DatabaseURL string
}

// Load reads configuration from a .env file when present and the
// environment otherwise
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	return &Config{
		AreaName:    getEnv("AREA_NAME", "Warsaw"),
		OverpassURL: getEnv("OVERPASS_URL", ""),
		Seed:        getEnvUint("SEED", 42),

		GraphPath:         getEnv("GRAPH_PATH", "data/road_graph.gob"),
		SegmentsPath:      getEnv("SEGMENTS_PATH", "data/road_segments.csv"),
		NamedSegmentsPath: getEnv("NAMED_SEGMENTS_PATH", "data/named_road_segments.csv"),
		TrafficPath:       getEnv("TRAFFIC_PATH", "data/simulated_traffic.csv"),
		ModelPath:         getEnv("MODEL_PATH", "data/speed_model.gob"),
		EncoderPath:       getEnv("ENCODER_PATH", "data/segment_encoder.gob"),
		ProfilePath:       getEnv("PROFILE_PATH", ""),
		ReportPath:        getEnv("REPORT_PATH", "traffic_report.html"),
		ManifestPath:      getEnv("MANIFEST_PATH", "data/manifest.json"),

		Port:        getEnv("PORT", "3000"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
	}
}

// LoadProfile reads a YAML speed profile from path. An empty path returns
// the built-in policy table.
func LoadProfile(path string) (domain.SpeedProfile, error) {
	if path == "" {
		return domain.DefaultSpeedProfile(), nil
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		return domain.SpeedProfile{}, fmt.Errorf("config: failed to read speed profile %s: %w", path, err)
	}

	var profile domain.SpeedProfile
	if err := yaml.Unmarshal(blob, &profile); err != nil {
		return domain.SpeedProfile{}, fmt.Errorf("config: failed to parse speed profile %s: %w", path, err)
	}
	if err := profile.Validate(); err != nil {
		return domain.SpeedProfile{}, fmt.Errorf("config: invalid speed profile %s: %w", path, err)
	}
	return profile, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvUint(key string, defaultValue uint64) uint64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
