package config

import (
	"fmt"
)

// LoadConfig loads configuration with priority: CLI flags > Config file > Defaults
func LoadConfig(f *Flags) (*Config, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	// 1. Start with defaults
	cfg := DefaultConfig()

	// 2. Explicit --config wins over the standard locations
	configPath := ""
	if f != nil {
		configPath = f.ConfigPath
	}
	if configPath == "" {
		configPath = FindConfigFile()
	}

	if configPath != "" {
		fileCfg, err := LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg = fileCfg
	}

	// 3. Merge CLI flags (highest priority, overwrites everything)
	cfg.MergeFromFlags(f)

	return cfg, nil
}
