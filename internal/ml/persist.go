package ml

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// SavePair writes the fitted forest and encoder side by side. The two
// artifacts are only meaningful together: encoded identifiers are garbage
// without the encoder that produced them.
func SavePair(forest *Forest, encoder *Encoder, modelPath, encoderPath string) error {
	if err := writeGob(modelPath, forest); err != nil {
		return fmt.Errorf("ml: failed to write model artifact: %w", err)
	}
	if err := writeGob(encoderPath, encoder); err != nil {
		return fmt.Errorf("ml: failed to write encoder artifact: %w", err)
	}
	return nil
}

// LoadPair reads a previously trained forest and encoder. Both artifacts
// must be present and non-empty.
func LoadPair(modelPath, encoderPath string) (*Forest, *Encoder, error) {
	var forest Forest
	if err := readGob(modelPath, &forest); err != nil {
		return nil, nil, fmt.Errorf("ml: failed to load model artifact: %w", err)
	}
	if len(forest.Trees) == 0 {
		return nil, nil, fmt.Errorf("ml: model artifact %s contains no trees", modelPath)
	}

	var encoder Encoder
	if err := readGob(encoderPath, &encoder); err != nil {
		return nil, nil, fmt.Errorf("ml: failed to load encoder artifact: %w", err)
	}
	if encoder.Len() == 0 {
		return nil, nil, fmt.Errorf("ml: encoder artifact %s contains no categories", encoderPath)
	}
	encoder.reindex()

	return &forest, &encoder, nil
}

func writeGob(path string, value any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(value)
}

func readGob(path string, value any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewDecoder(f).Decode(value)
}
