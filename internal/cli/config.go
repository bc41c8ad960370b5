package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds optional file-based settings. All fields can be overridden by
// flags; the file itself is optional.
type Config struct {
	// Database is the SQLite database path.
	Database string `yaml:"database,omitempty"`

	// DefaultAirTime, when set (HH:MM), is assumed for broadcast dates that
	// carry no explicit time. Leave empty to place date-only events at
	// start of day.
	DefaultAirTime string `yaml:"defaultAirTime,omitempty"`

	// StartingBudget overrides the stored starting budget when non-empty.
	StartingBudget string `yaml:"startingBudget,omitempty"`
}

// LoadConfig reads a YAML config file. A missing file at the default path is
// not an error; an explicitly requested file must exist.
func LoadConfig(path string, explicit bool) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
