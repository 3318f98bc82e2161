// Package config reads the rotation policy configuration file stored
// alongside a rit repository: a single JSON file under the
// administrative directory, defaulting when absent.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// configFileName is the file holding the rotation policy, sibling to
// HEAD/branches/commits under the administrative directory.
const configFileName = "rotation.json"

// Level names a rung of the periodic snapshot hierarchy, coarsest first.
type Level struct {
	// Name labels the rung ("month", "day", "hour", "minute", ...).
	Name string `json:"name"`

	// LabelFormat is a time.Format-compatible layout applied to the
	// current UTC time to produce this level's label.
	LabelFormat string `json:"labelFormat"`

	// MaxAgeSeconds, if > 0, is the pruning threshold: branches at this
	// level whose commit is older than now - MaxAgeSeconds are deleted
	// by the rotation pruning pass. Zero means never pruned by age.
	MaxAgeSeconds int64 `json:"maxAgeSeconds"`
}

// RotationConfig is the tiered-backup policy: the periodic level
// hierarchy plus the restore and quick ring sizes.
type RotationConfig struct {
	Levels           []Level `json:"levels"`
	RestoreRingSize  int     `json:"restoreRingSize"`
	QuickRingSize    int     `json:"quickRingSize"`
}

// DefaultRotationConfig is the example four-level policy: a monthly
// full, daily, hourly, and minute-rounded periodic chain, with 5-slot
// restore and quick rings.
func DefaultRotationConfig() RotationConfig {
	return RotationConfig{
		Levels: []Level{
			{Name: "month", LabelFormat: "2006_01", MaxAgeSeconds: 0},
			{Name: "day", LabelFormat: "02", MaxAgeSeconds: 90 * 24 * 3600},
			{Name: "hour", LabelFormat: "15", MaxAgeSeconds: 7 * 24 * 3600},
			{Name: "minute", LabelFormat: "04", MaxAgeSeconds: 24 * 3600},
		},
		RestoreRingSize: 5,
		QuickRingSize:   5,
	}
}

// Load reads the rotation policy from ritDir, returning the default
// policy if no config file has ever been written.
func Load(ritDir string) (RotationConfig, error) {
	data, err := os.ReadFile(filepath.Join(ritDir, configFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultRotationConfig(), nil
		}
		return RotationConfig{}, err
	}
	var cfg RotationConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return RotationConfig{}, fmt.Errorf("failed to parse rotation config: %w", err)
	}
	return cfg, nil
}

// Save writes the rotation policy to ritDir.
func Save(ritDir string, cfg RotationConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(ritDir, configFileName), data, 0o644)
}
