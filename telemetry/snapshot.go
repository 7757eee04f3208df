package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/isoballs/config"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the source state of a run so it can be restarted from the
// same arrangement.
type Snapshot struct {
	Version int `json:"version"`

	DomainWidth  float64 `json:"domain_width"`
	DomainHeight float64 `json:"domain_height"`
	CellSize     float64 `json:"cell_size"`

	Tick    int32   `json:"tick"`
	SimTime float64 `json:"sim_time"`

	Sources []config.SourceConfig `json:"sources"`
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("snapshot_%d.json", snapshot.Tick))

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}

// Apply replaces the configured sources, and the cell size when the
// snapshot has one, then revalidates cfg.
func (s *Snapshot) Apply(cfg *config.Config) error {
	cfg.Sources = append(cfg.Sources[:0], s.Sources...)
	if s.CellSize > 0 {
		cfg.Grid.CellSize = s.CellSize
	}
	if err := cfg.Finalize(); err != nil {
		return fmt.Errorf("apply snapshot: %w", err)
	}
	return nil
}
