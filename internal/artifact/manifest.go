package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// SchemaVersion marks the interchange schema the pipeline artifacts follow.
// Bump it when a CSV column set or gob layout changes shape.
const SchemaVersion = 1

// StageRun records one successful run of a pipeline stage
type StageRun struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	Records   int       `json:"records"`
}

// Manifest tracks the latest successful run of every pipeline stage.
// It is written for operators to inspect; no stage reads it back.
type Manifest struct {
	SchemaVersion int                 `json:"schema_version"`
	Stages        map[string]StageRun `json:"stages"`
}

// Load reads the manifest from path, returning an empty manifest when the
// file does not exist yet
func Load(path string) (*Manifest, error) {
	blob, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Manifest{SchemaVersion: SchemaVersion, Stages: map[string]StageRun{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("artifact: failed to read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(blob, &m); err != nil {
		return nil, fmt.Errorf("artifact: failed to parse manifest %s: %w", path, err)
	}
	if m.Stages == nil {
		m.Stages = map[string]StageRun{}
	}
	return &m, nil
}

// Record marks a stage as completed with a fresh run id and rewrites the
// manifest at path
func Record(path, stage string, records int) error {
	m, err := Load(path)
	if err != nil {
		return err
	}

	m.SchemaVersion = SchemaVersion
	m.Stages[stage] = StageRun{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Records:   records,
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("artifact: failed to create manifest directory: %w", err)
		}
	}
	blob, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("artifact: failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		return fmt.Errorf("artifact: failed to write manifest %s: %w", path, err)
	}
	return nil
}
