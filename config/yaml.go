package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadConfigFile loads configuration from a YAML file. Keys missing from
// the file keep their default values.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for config file in standard locations
// Returns empty string if not found (non-fatal)
func FindConfigFile() string {
	locations := []string{
		"./fixmerge.yaml",
		"./fixmerge.yml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations,
			filepath.Join(home, ".fixmerge", "config.yaml"),
			filepath.Join(home, ".fixmerge", "config.yml"),
		)
	}
	locations = append(locations,
		"/etc/fixmerge/config.yaml",
		"/etc/fixmerge/config.yml",
	)

	for _, path := range locations {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
