package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"fixmerge/models"
)

// Validate checks if the configuration is valid. Codec listing only needs
// the ffmpeg path; an unknown log level falls back to info there.
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.FFmpegPath) == "" {
		errors = append(errors, "ffmpeg path is required")
	}
	if !c.ListCodecs {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			errors = append(errors, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
		}
		if _, err := models.ParseBackend(c.Hardware); err != nil {
			errors = append(errors, err.Error())
		}
		if _, err := models.ParseSyncVariant(c.Variant); err != nil {
			errors = append(errors, err.Error())
		}
		if c.SourceDir == "" {
			errors = append(errors, "source directory is required")
		}
		if c.TargetDir == "" {
			errors = append(errors, "target directory is required")
		}
		if len(c.Inputs) == 0 {
			errors = append(errors, "at least one input file is required")
		}
		for _, name := range c.Inputs {
			if strings.TrimSpace(name) == "" {
				errors = append(errors, "input file names cannot be empty")
				break
			}
		}
		if c.StartupDelay < 0 {
			errors = append(errors, "startup delay cannot be negative")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// Resolve validates the config and builds the immutable run configuration,
// resolving directories to absolute paths.
func (c *Config) Resolve() (models.RunConfig, error) {
	if err := c.Validate(); err != nil {
		return models.RunConfig{}, err
	}

	rc := models.RunConfig{
		Mode:       models.ModeTranscode,
		FFmpegPath: c.FFmpegPath,
		DryRun:     c.DryRun,
	}
	if c.ListCodecs {
		rc.Mode = models.ModeListCodecs
		rc.CodecFilter = c.CodecFilter
		return rc, nil
	}

	backend, _ := models.ParseBackend(c.Hardware)
	variant, _ := models.ParseSyncVariant(c.Variant)

	sourceDir, err := filepath.Abs(c.SourceDir)
	if err != nil {
		return models.RunConfig{}, fmt.Errorf("failed to resolve source directory: %w", err)
	}
	targetDir, err := filepath.Abs(c.TargetDir)
	if err != nil {
		return models.RunConfig{}, fmt.Errorf("failed to resolve target directory: %w", err)
	}

	rc.Backend = backend
	rc.Variant = variant
	rc.SourceDir = sourceDir
	rc.TargetDir = targetDir
	rc.Inputs = append([]string(nil), c.Inputs...)
	rc.StartupDelay = c.StartupDelay
	rc.FailFast = c.FailFast
	return rc, nil
}
