package roadnet

import (
	"context"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// SaveGraph writes the graph to the cache path using gob encoding
func SaveGraph(g *Graph, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("roadnet: failed to create cache directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("roadnet: failed to create cache file: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(g); err != nil {
		return fmt.Errorf("roadnet: failed to encode graph: %w", err)
	}
	return nil
}

// LoadGraph reads a previously cached graph
func LoadGraph(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("roadnet: failed to open cached graph %s: %w", path, err)
	}
	defer f.Close()

	var g Graph
	if err := gob.NewDecoder(f).Decode(&g); err != nil {
		return nil, fmt.Errorf("roadnet: failed to decode cached graph %s: %w", path, err)
	}
	if len(g.Edges) == 0 {
		return nil, fmt.Errorf("roadnet: cached graph %s is empty", path)
	}
	return &g, nil
}

// EnsureGraph returns the cached graph when present, downloading, building
// and caching it otherwise. The second return reports whether the cache was
// used.
func EnsureGraph(ctx context.Context, c *Client, area, path string) (*Graph, bool, error) {
	if _, err := os.Stat(path); err == nil {
		g, err := LoadGraph(path)
		if err != nil {
			return nil, false, err
		}
		return g, true, nil
	}

	g, err := c.FetchNetwork(ctx, area)
	if err != nil {
		return nil, false, err
	}
	if err := SaveGraph(g, path); err != nil {
		return nil, false, err
	}
	return g, false, nil
}
