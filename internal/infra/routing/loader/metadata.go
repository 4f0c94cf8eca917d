package loader

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/yunusemre274/World-Car/internal/errors"
)

const metadataFile = "metadata.json"

// GraphMetadata tracks the provenance of a converted road network so
// stale caches can be detected and reported.
type GraphMetadata struct {
	Version    string         `json:"version"`
	Source     SourceInfo     `json:"source"`
	Processing ProcessingInfo `json:"processing"`
	Output     OutputInfo     `json:"output"`
}

// SourceInfo describes the raw OSM extract the graph was built from.
type SourceInfo struct {
	Region    string `json:"region"`
	URL       string `json:"url,omitempty"`
	Filename  string `json:"filename"`
	SizeBytes int64  `json:"size_bytes"`
	SHA256    string `json:"sha256,omitempty"`
}

// ProcessingInfo describes the conversion run.
type ProcessingInfo struct {
	GeneratedAt  time.Time `json:"generated_at"`
	NetworkType  string    `json:"network_type"`
	TagsIncluded []string  `json:"tags_included,omitempty"`
}

// OutputInfo describes the generated graph files.
type OutputInfo struct {
	NodesCount int64 `json:"nodes_count"`
	EdgesCount int64 `json:"edges_count"`
}

// LoadMetadata loads and parses metadata.json from the data directory.
func LoadMetadata(dataDir string) (*GraphMetadata, error) {
	path := filepath.Join(dataDir, metadataFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, "metadata.json not found in graph data directory")
		}

		return nil, errors.Wrap(err, "failed to read metadata.json")
	}

	var metadata GraphMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, errors.Wrap(err, "failed to parse metadata.json")
	}

	return &metadata, nil
}

// Write saves the metadata alongside the graph files.
func (m *GraphMetadata) Write(dataDir string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal metadata")
	}

	path := filepath.Join(dataDir, metadataFile)

	return errors.Wrap(os.WriteFile(path, data, 0o644), "failed to write metadata.json")
}

// Validate checks that the metadata is complete.
func (m *GraphMetadata) Validate() error {
	if m.Version == "" {
		return errors.New("metadata version is required")
	}
	if m.Source.Region == "" {
		return errors.New("source region is required")
	}
	if m.Processing.GeneratedAt.IsZero() {
		return errors.New("processing generated_at timestamp is required")
	}
	if m.Output.NodesCount <= 0 {
		return errors.New("output nodes_count must be positive")
	}
	if m.Output.EdgesCount <= 0 {
		return errors.New("output edges_count must be positive")
	}

	return nil
}

// Age returns the time elapsed since the graph was generated.
func (m *GraphMetadata) Age() time.Duration {
	return time.Since(m.Processing.GeneratedAt)
}

// Summary returns a brief summary for logging.
func (m *GraphMetadata) Summary() map[string]any {
	return map[string]any{
		"region":       m.Source.Region,
		"generated_at": m.Processing.GeneratedAt,
		"network_type": m.Processing.NetworkType,
		"nodes_count":  m.Output.NodesCount,
		"edges_count":  m.Output.EdgesCount,
	}
}
